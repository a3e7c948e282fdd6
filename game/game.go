// Package game encapsulates the main mechanics for a game of checkers:
// the board, the side to move, the no-capture counter, and the outcome.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/movegen"
)

var (
	ErrInvalidMove = errors.New("move is not legal in this position")
	ErrGameOver    = errors.New("game is over")
)

// Game is the actual internal game structure. A root game is the live
// game and is the only kind that ever declares an outcome; copies made
// for search are never root, so they keep playing past a finished
// position.
// Note: a Game doesn't care how it is played. Bots and human players
// play a game outside of the scope of this package.
type Game struct {
	board     *board.GameBoard
	onturn    board.Color
	halfmoves int
	outcome   Outcome
	root      bool
	turnnum   int
	lastMove  *move.Move
}

// NewGame creates a root game in the starting position, White to move.
func NewGame() *Game {
	return &Game{
		board:  board.NewStartingBoard(),
		onturn: board.White,
		root:   true,
	}
}

// NewFromBoard creates a root game from an arbitrary position. The
// position's outcome is evaluated immediately, so a side to move with no
// legal moves has already lost.
func NewFromBoard(b *board.GameBoard, onturn board.Color, halfmoves int) *Game {
	g := &Game{
		board:     b.Copy(),
		onturn:    onturn,
		halfmoves: halfmoves,
		root:      true,
	}
	g.outcome = terminalOutcome(g.board, g.onturn, g.halfmoves)
	return g
}

// Copy returns a deep, independent, non-root copy of the game. Copies
// never carry an outcome, so play can continue on a copy of a finished
// game.
func (g *Game) Copy() *Game {
	return &Game{
		board:     g.board.Copy(),
		onturn:    g.onturn,
		halfmoves: g.halfmoves,
		outcome:   InProgress,
		root:      false,
		turnnum:   g.turnnum,
		lastMove:  g.lastMove,
	}
}

// CopyFrom copies the state of o into this game, keeping this game's
// root flag.
func (g *Game) CopyFrom(o *Game) {
	g.board.CopyFrom(o.board)
	g.onturn = o.onturn
	g.halfmoves = o.halfmoves
	g.outcome = o.outcome
	g.turnnum = o.turnnum
	g.lastMove = o.lastMove
}

// LegalMoves returns every legal move for the side to move. It does not
// modify the game.
func (g *Game) LegalMoves() []*move.Move {
	return movegen.GenAll(g.board, g.onturn)
}

// LegalMovesForPiece returns the legal moves of the piece on c.
func (g *Game) LegalMovesForPiece(c board.Coord) []*move.Move {
	return movegen.GenForPiece(g.board, g.onturn, c)
}

// PlayMove validates m against the legal moves and applies it. On error
// the game is left untouched.
func (g *Game) PlayMove(m *move.Move) error {
	if g.outcome != InProgress {
		return ErrGameOver
	}
	if m == nil {
		return fmt.Errorf("%w: no move given", ErrInvalidMove)
	}
	legal, ok := lo.Find(g.LegalMoves(), func(l *move.Move) bool {
		return l.SamePath(m)
	})
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidMove, m.ShortDescription())
	}
	g.apply(legal)
	return nil
}

func (g *Game) apply(m *move.Move) {
	if m.Captured() {
		// the increment below brings this back to zero
		g.halfmoves = -1
	}
	// captured pieces go first; a later jump may land where one stood
	for _, c := range m.CapturedSquares() {
		g.board.ClearSquare(c)
	}
	g.board.Relocate(m.From(), m.To())
	g.onturn = g.onturn.Opponent()
	g.board.Promote()
	g.halfmoves++
	g.turnnum++
	g.lastMove = m

	if !g.root {
		return
	}
	g.outcome = terminalOutcome(g.board, g.onturn, g.halfmoves)
	if g.outcome != InProgress {
		log.Debug().Str("outcome", g.outcome.String()).Int("turn", g.turnnum).
			Int("halfmoves", g.halfmoves).Msg("game-over")
	}
}

func (g *Game) Board() *board.GameBoard {
	return g.board
}

// SideToMove is the color whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.onturn
}

// Halfmoves is the number of plies since the last capture.
func (g *Game) Halfmoves() int {
	return g.halfmoves
}

func (g *Game) Outcome() Outcome {
	return g.outcome
}

func (g *Game) Playing() bool {
	return g.outcome == InProgress
}

func (g *Game) IsRoot() bool {
	return g.root
}

// Turn is the number of plies played in this game.
func (g *Game) Turn() int {
	return g.turnnum
}

// LastMove is the move that led to this position, or nil.
func (g *Game) LastMove() *move.Move {
	return g.lastMove
}

// Material is the number of White pieces minus the number of Black
// pieces. Kings count as one.
func (g *Game) Material() int {
	return g.board.Count(board.White) - g.board.Count(board.Black)
}
