package game

import (
	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/movegen"
)

// DrawHalfmoves is the number of consecutive plies without a capture
// after which the game is drawn.
const DrawHalfmoves = 50

// Outcome is the play state of a game.
type Outcome int

const (
	InProgress Outcome = iota
	WhiteWin
	BlackWin
	Draw
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case WhiteWin:
		return "white wins"
	case BlackWin:
		return "black wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Winner returns the winning color; ok is false unless a side has won.
func (o Outcome) Winner() (c board.Color, ok bool) {
	switch o {
	case WhiteWin:
		return board.White, true
	case BlackWin:
		return board.Black, true
	}
	return board.White, false
}

func winFor(c board.Color) Outcome {
	if c == board.White {
		return WhiteWin
	}
	return BlackWin
}

// terminalOutcome is the outcome for a side to move in the given
// position. A side with no legal moves has lost.
func terminalOutcome(b *board.GameBoard, onturn board.Color, halfmoves int) Outcome {
	if !movegen.HasMoves(b, onturn) {
		return winFor(onturn.Opponent())
	}
	if halfmoves >= DrawHalfmoves {
		return Draw
	}
	return InProgress
}
