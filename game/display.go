package game

import (
	"fmt"
	"strings"

	"github.com/domino14/checkers/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText turns the current state of the game into a displayable
// string: the board, with the side to move, the no-capture counter and
// the outcome alongside it.
func (g *Game) ToDisplayText() string {
	bt := g.board.ToDisplayText()
	bts := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 3

	addText(bts, vpadding, hpadding, fmt.Sprintf("White: %d (%d kings)",
		g.board.Count(board.White), g.board.CountKings(board.White)))
	addText(bts, vpadding+1, hpadding, fmt.Sprintf("Black: %d (%d kings)",
		g.board.Count(board.Black), g.board.CountKings(board.Black)))
	addText(bts, vpadding+3, hpadding, fmt.Sprintf("Turn %d: %s to move", g.turnnum, g.onturn))
	addText(bts, vpadding+4, hpadding, fmt.Sprintf("Plies since capture: %d", g.halfmoves))
	if g.lastMove != nil {
		addText(bts, vpadding+5, hpadding, "Last move: "+g.lastMove.ShortDescription())
	}
	if g.outcome != InProgress {
		addText(bts, vpadding+7, hpadding, fmt.Sprintf("Game is over (%s).", g.outcome))
	}
	return strings.Join(bts, "\n")
}
