package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/move"
)

func mustMove(t *testing.T, s string, captured bool) *move.Move {
	t.Helper()
	m, err := move.FromDigits(s, captured)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func boardWith(pieces map[board.Coord]board.Square) *board.GameBoard {
	b := &board.GameBoard{}
	for c, s := range pieces {
		b.Set(c, s)
	}
	return b
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.True(g.IsRoot())
	is.Equal(g.SideToMove(), board.White)
	is.Equal(g.Halfmoves(), 0)
	is.Equal(g.Outcome(), InProgress)
	is.Equal(g.Board().Count(board.White), 12)
	is.Equal(g.Board().Count(board.Black), 12)
	is.Equal(len(g.LegalMoves()), 7)
}

func TestPlaySimpleMove(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	// the captured flag of the legal move wins over the one given.
	err := g.PlayMove(move.NewCaptureMove(board.Coord{Row: 2, Col: 2}, board.Coord{Row: 3, Col: 1}))
	is.NoErr(err)
	is.Equal(g.SideToMove(), board.Black)
	is.Equal(g.Halfmoves(), 1)
	is.Equal(g.Turn(), 1)
	is.True(!g.LastMove().Captured())
	is.Equal(g.Board().At(board.Coord{Row: 3, Col: 1}), board.WhiteMan)
	is.True(g.Board().At(board.Coord{Row: 2, Col: 2}).IsEmpty())
}

func TestInvalidMove(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	before := g.Board().Copy()
	// nothing to jump on 33
	err := g.PlayMove(mustMove(t, "2244", true))
	is.True(errors.Is(err, ErrInvalidMove))
	// black piece, wrong side
	err = g.PlayMove(mustMove(t, "5142", false))
	is.True(errors.Is(err, ErrInvalidMove))
	err = g.PlayMove(nil)
	is.True(errors.Is(err, ErrInvalidMove))
	is.True(g.Board().Equals(before))
	is.Equal(g.SideToMove(), board.White)
	is.Equal(g.Halfmoves(), 0)
}

func TestCaptureChainResetsHalfmoves(t *testing.T) {
	is := is.New(t)
	b := boardWith(map[board.Coord]board.Square{
		{Row: 2, Col: 2}: board.WhiteMan,
		{Row: 3, Col: 3}: board.BlackMan,
		{Row: 5, Col: 5}: board.BlackMan,
		{Row: 7, Col: 1}: board.BlackMan,
	})
	g := NewFromBoard(b, board.White, 17)
	err := g.PlayMove(mustMove(t, "224466", true))
	is.NoErr(err)
	is.Equal(g.Halfmoves(), 0)
	is.True(g.LastMove().Captured())
	is.Equal(g.Board().At(board.Coord{Row: 6, Col: 6}), board.WhiteMan)
	is.True(g.Board().At(board.Coord{Row: 3, Col: 3}).IsEmpty())
	is.True(g.Board().At(board.Coord{Row: 5, Col: 5}).IsEmpty())
	is.Equal(g.Board().Count(board.Black), 1)
	is.Equal(g.Outcome(), InProgress)
	is.Equal(g.Material(), 0)
}

func TestPromotion(t *testing.T) {
	is := is.New(t)
	b := boardWith(map[board.Coord]board.Square{
		{Row: 6, Col: 0}: board.WhiteMan,
		{Row: 7, Col: 7}: board.BlackMan,
	})
	g := NewFromBoard(b, board.White, 0)
	is.NoErr(g.PlayMove(mustMove(t, "6071", false)))
	is.Equal(g.Board().At(board.Coord{Row: 7, Col: 1}), board.WhiteKing)
	is.NoErr(g.PlayMove(mustMove(t, "7766", false)))
	// a king stays a king after moving off the far rank
	is.NoErr(g.PlayMove(mustMove(t, "7160", false)))
	is.Equal(g.Board().At(board.Coord{Row: 6, Col: 0}), board.WhiteKing)
}

func TestNoLegalMovesLoses(t *testing.T) {
	is := is.New(t)
	b := boardWith(map[board.Coord]board.Square{
		{Row: 0, Col: 0}: board.WhiteMan,
		{Row: 1, Col: 1}: board.BlackMan,
	})
	g := NewFromBoard(b, board.White, 0)
	is.NoErr(g.PlayMove(mustMove(t, "0022", true)))
	is.Equal(g.Outcome(), WhiteWin)
	w, ok := g.Outcome().Winner()
	is.True(ok)
	is.Equal(w, board.White)
	is.True(!g.Playing())

	err := g.PlayMove(mustMove(t, "2233", false))
	is.True(errors.Is(err, ErrGameOver))
}

func TestStuckPositionIsDecidedOnLoad(t *testing.T) {
	is := is.New(t)
	b := boardWith(map[board.Coord]board.Square{
		{Row: 7, Col: 1}: board.WhiteMan,
		{Row: 4, Col: 4}: board.BlackMan,
	})
	g := NewFromBoard(b, board.White, 0)
	is.Equal(g.Outcome(), BlackWin)
}

func shuffleKings(t *testing.T, g *Game, plies int) {
	t.Helper()
	for i := 0; i < plies; i++ {
		var s string
		switch g.Turn() % 4 {
		case 0:
			s = "0011"
		case 1:
			s = "7766"
		case 2:
			s = "1100"
		case 3:
			s = "6677"
		}
		if err := g.PlayMove(mustMove(t, s, false)); err != nil {
			t.Fatalf("ply %d: %v", i, err)
		}
	}
}

func kingsBoard() *board.GameBoard {
	return boardWith(map[board.Coord]board.Square{
		{Row: 0, Col: 0}: board.WhiteKing,
		{Row: 7, Col: 7}: board.BlackKing,
	})
}

func TestDrawAfterFiftyQuietPlies(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(kingsBoard(), board.White, 0)
	shuffleKings(t, g, 49)
	is.Equal(g.Halfmoves(), 49)
	is.Equal(g.Outcome(), InProgress)

	shuffleKings(t, g, 1)
	is.Equal(g.Halfmoves(), 50)
	is.Equal(g.Outcome(), Draw)
}

func TestCopiesNeverEnd(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(kingsBoard(), board.White, 0)
	cp := g.Copy()
	is.True(!cp.IsRoot())
	shuffleKings(t, cp, 60)
	is.Equal(cp.Halfmoves(), 60)
	is.Equal(cp.Outcome(), InProgress)

	b := boardWith(map[board.Coord]board.Square{
		{Row: 0, Col: 0}: board.WhiteMan,
		{Row: 1, Col: 1}: board.BlackMan,
	})
	cp = NewFromBoard(b, board.White, 0).Copy()
	is.NoErr(cp.PlayMove(mustMove(t, "0022", true)))
	is.Equal(cp.Outcome(), InProgress)
	is.Equal(len(cp.LegalMoves()), 0)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	cp := g.Copy()
	is.NoErr(cp.PlayMove(mustMove(t, "2231", false)))
	is.Equal(g.SideToMove(), board.White)
	is.Equal(g.Turn(), 0)
	is.Equal(g.Board().At(board.Coord{Row: 2, Col: 2}), board.WhiteMan)

	g.CopyFrom(cp)
	is.True(g.IsRoot())
	is.Equal(g.SideToMove(), board.Black)
	is.True(g.Board().Equals(cp.Board()))
}

func TestLegalMovesForPiece(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	moves := g.LegalMovesForPiece(board.Coord{Row: 2, Col: 2})
	is.Equal(len(moves), 2)
	is.Equal(len(g.LegalMovesForPiece(board.Coord{Row: 1, Col: 1})), 0)
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(mustMove(t, "2231", false)))
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "black to move"))
	is.True(strings.Contains(txt, "Last move: 22-31"))
}
