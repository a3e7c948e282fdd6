package search

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/gametree"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/position"
)

func positionGame(t *testing.T, pos string) *game.Game {
	t.Helper()
	p, err := position.Parse(pos)
	require.NoError(t, err)
	return p.Game
}

var testPositions = []string{
	position.Start,
	// white to move with a capture on (3,3)
	"8/8/1b1b4/8/3b4/2w5/8/8 w 0",
	// a middlegame, black to move
	"1b1b1b2/b3b1b1/1b3b1b/4b3/1w1w4/w3w1w1/1w1w1w1w/w1w5 b 3",
	// kings in the open
	"8/2B5/8/4W3/8/2b1B3/8/W7 w 10",
}

func TestValuesAgree(t *testing.T) {
	for _, pos := range testPositions {
		for depth := 1; depth <= 4; depth++ {
			g := positionGame(t, pos)
			tree, err := gametree.Expand(g, nil, depth)
			require.NoError(t, err)

			mm, err := Minimax(g, tree)
			require.NoError(t, err)
			ab, err := AlphaBeta(g, tree, -Infinity, Infinity)
			require.NoError(t, err)
			assert.Equal(t, mm.Value, ab.Value, "pos %q depth %d", pos, depth)
			require.NotNil(t, mm.Move)
			require.NotNil(t, ab.Move)
			// both answers are legal in the root position
			assert.NoError(t, g.Copy().PlayMove(mm.Move))
			assert.NoError(t, g.Copy().PlayMove(ab.Move))
		}
	}
}

func TestFirstTieWins(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	tree, err := gametree.Expand(g, nil, 1)
	is.NoErr(err)
	mm, err := Minimax(g, tree)
	is.NoErr(err)
	is.Equal(mm.Move.Digits(), "2031")
	is.Equal(mm.Value, 0)
	ab, err := AlphaBeta(g, tree, -Infinity, Infinity)
	is.NoErr(err)
	is.Equal(ab.Move.Digits(), "2031")
}

func TestCaptureIsFound(t *testing.T) {
	is := is.New(t)
	b := &board.GameBoard{}
	b.Set(board.Coord{Row: 2, Col: 2}, board.WhiteMan)
	b.Set(board.Coord{Row: 3, Col: 3}, board.BlackMan)
	b.Set(board.Coord{Row: 5, Col: 5}, board.BlackMan)
	b.Set(board.Coord{Row: 7, Col: 1}, board.BlackMan)
	g := game.NewFromBoard(b, board.White, 0)
	tree, err := gametree.Expand(g, nil, 1)
	is.NoErr(err)
	res, err := Minimax(g, tree)
	is.NoErr(err)
	// the double jump beats the single
	is.Equal(res.Move.Digits(), "224466")
	is.Equal(res.Value, 0)

	// black minimizes
	b = &board.GameBoard{}
	b.Set(board.Coord{Row: 5, Col: 5}, board.BlackMan)
	b.Set(board.Coord{Row: 4, Col: 4}, board.WhiteMan)
	b.Set(board.Coord{Row: 0, Col: 6}, board.WhiteMan)
	g = game.NewFromBoard(b, board.Black, 0)
	tree, err = gametree.Expand(g, nil, 2)
	is.NoErr(err)
	res, err = AlphaBeta(g, tree, -Infinity, Infinity)
	is.NoErr(err)
	is.Equal(res.Move.Digits(), "5533")
	is.Equal(res.Value, 0)
}

func TestNonRootReturnsOwnMove(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	tree, err := gametree.Expand(g, nil, 3)
	is.NoErr(err)
	c := tree.Children[4]
	cp := g.Copy()
	is.NoErr(cp.PlayMove(c.Move))
	res, err := Minimax(cp, c)
	is.NoErr(err)
	is.True(res.Move.Equals(c.Move))
	res, err = AlphaBeta(cp, c, -Infinity, Infinity)
	is.NoErr(err)
	is.True(res.Move.Equals(c.Move))
}

func TestLeafRoot(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	res, err := Minimax(g, &gametree.Node{})
	is.NoErr(err)
	is.Equal(res.Move, (*move.Move)(nil))
	is.Equal(res.Value, 0)
}

func TestInvalidTreeMove(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	// 22 is taken
	bad, err := move.FromDigits("1122", false)
	is.NoErr(err)
	tree := &gametree.Node{Side: board.White, Children: []*gametree.Node{
		{Move: bad, Side: board.White},
	}}
	_, err = Minimax(g, tree)
	is.True(errors.Is(err, game.ErrInvalidMove))
	_, err = AlphaBeta(g, tree, -Infinity, Infinity)
	is.True(errors.Is(err, game.ErrInvalidMove))
}

func TestSearcherPrunes(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	mm := NewSearcher(VariantMinimax, 4)
	ab := NewSearcher(VariantAlphaBeta, 4)
	r1, err := mm.BestMove(g)
	is.NoErr(err)
	r2, err := ab.BestMove(g)
	is.NoErr(err)
	is.Equal(r1.Value, r2.Value)
	is.Equal(mm.LastVisited(), mm.LastTree().NumNodes())
	is.True(ab.LastVisited() < mm.LastVisited())
	// the live game is untouched
	is.Equal(g.Turn(), 0)
}

func TestSearcherLog(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := NewSearcher(VariantAlphaBeta, 2)
	s.SetLogStream(&buf)
	g := game.NewGame()
	for i := 0; i < 2; i++ {
		res, err := s.BestMove(g)
		is.NoErr(err)
		is.NoErr(g.PlayMove(res.Move))
	}
	var decisions []LogDecision
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &decisions))
	is.Equal(len(decisions), 2)
	is.Equal(decisions[0].Side, "white")
	is.Equal(decisions[0].Position, position.Start)
	is.Equal(decisions[1].Side, "black")
	is.Equal(decisions[1].Variant, "alphabeta")
	is.Equal(decisions[1].Depth, 2)
}

func TestSearcherErrors(t *testing.T) {
	is := is.New(t)
	_, err := NewSearcher(VariantMinimax, 0).BestMove(game.NewGame())
	is.True(err != nil)

	b := &board.GameBoard{}
	b.Set(board.Coord{Row: 7, Col: 1}, board.WhiteMan)
	b.Set(board.Coord{Row: 4, Col: 4}, board.BlackMan)
	g := game.NewFromBoard(b, board.White, 0)
	_, err = NewSearcher(VariantAlphaBeta, 3).BestMove(g)
	is.True(errors.Is(err, ErrNoMoves))

	v, err := ParseVariant("AlphaBeta")
	is.NoErr(err)
	is.Equal(v, VariantAlphaBeta)
	_, err = ParseVariant("negamax")
	is.True(err != nil)
}
