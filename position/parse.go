// Package position reads and writes the one-line text form of a game:
//
//	<row7>/<row6>/.../<row0> <w|b> <halfmoves>[ ; op arg; ...]
//
// Rows are listed from the top of the display (row 7) down. Within a row,
// w and b are men, W and B are kings, and a digit is a run of empty
// squares.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/game"
)

var ErrBadPosition = errors.New("bad position string")

// Start is the position of a new game.
const Start = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/w1w1w1w1/1w1w1w1w/w1w1w1w1 w 0"

// Known operations.
const (
	OpBot   = "bot"
	OpDepth = "depth"
)

type Parsed struct {
	*game.Game
	Opcodes map[string]string
}

// Depth returns the value of the depth op, or def if there isn't one.
func (p *Parsed) Depth(def int) int {
	if d, ok := p.Opcodes[OpDepth]; ok {
		n, err := strconv.Atoi(d)
		if err == nil {
			return n
		}
	}
	return def
}

func badPosition(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrBadPosition, fmt.Sprintf(format, a...))
}

// Parse returns an instantiated root Game from the given position string.
func Parse(s string) (*Parsed, error) {
	var ops []string
	if i := strings.Index(s, ";"); i >= 0 {
		ops = strings.Split(s[i+1:], ";")
		s = s[:i]
	}
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return nil, badPosition("must have 3 space-separated fields, got %d", len(fields))
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != board.Dim {
		return nil, badPosition("must have %d rows, got %d", board.Dim, len(rows))
	}
	b := &board.GameBoard{}
	for i, row := range rows {
		r := board.Dim - 1 - i
		squares, err := rowToSquares(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		for c, sq := range squares {
			if !sq.IsEmpty() && !board.Playable(board.Coord{Row: r, Col: c}) {
				return nil, badPosition("piece on unplayable square %d%d", r, c)
			}
			b.Set(board.Coord{Row: r, Col: c}, sq)
		}
	}

	var onturn board.Color
	switch fields[1] {
	case "w":
		onturn = board.White
	case "b":
		onturn = board.Black
	default:
		return nil, badPosition("side to move must be w or b, got %q", fields[1])
	}

	halfmoves, err := strconv.Atoi(fields[2])
	if err != nil || halfmoves < 0 {
		return nil, badPosition("bad halfmove count %q", fields[2])
	}

	opcodes := map[string]string{}
	for _, op := range ops {
		op := strings.TrimSpace(op)
		if len(op) == 0 {
			continue
		}
		opWithParams := strings.SplitN(op, " ", 2)
		if len(opWithParams) != 2 {
			return nil, badPosition("wrong number of arguments for %s operation", opWithParams[0])
		}
		arg := strings.TrimSpace(opWithParams[1])
		switch opWithParams[0] {
		case OpBot:
			opcodes[OpBot] = arg
		case OpDepth:
			if d, err := strconv.Atoi(arg); err != nil || d < 0 {
				return nil, badPosition("bad depth %q", arg)
			}
			opcodes[OpDepth] = arg
		default:
			log.Debug().Str("op", opWithParams[0]).Msg("ignoring-unknown-op")
		}
	}

	g := game.NewFromBoard(b, onturn, halfmoves)
	return &Parsed{Game: g, Opcodes: opcodes}, nil
}

func rowToSquares(row string) ([]board.Square, error) {
	squares := make([]board.Square, 0, board.Dim)
	for _, rn := range row {
		if rn >= '1' && rn <= '8' {
			for n := 0; n < int(rn-'0'); n++ {
				squares = append(squares, board.EmptySquare)
			}
			continue
		}
		sq, ok := board.SquareFromRune(rn)
		if !ok || sq.IsEmpty() {
			return nil, badPosition("unexpected character %q", rn)
		}
		squares = append(squares, sq)
	}
	if len(squares) != board.Dim {
		return nil, badPosition("row %q has %d squares", row, len(squares))
	}
	return squares, nil
}

// FromGame writes the position of g, without any ops.
func FromGame(g *game.Game) string {
	return fmt.Sprintf("%s %s %d", boardString(g.Board()), sideString(g.SideToMove()), g.Halfmoves())
}

// WithOps appends ops, in the order given as key/value pairs.
func WithOps(pos string, kv ...string) string {
	var sb strings.Builder
	sb.WriteString(pos)
	for i := 0; i+1 < len(kv); i += 2 {
		sb.WriteString(" ; ")
		sb.WriteString(kv[i])
		sb.WriteString(" ")
		sb.WriteString(kv[i+1])
	}
	return sb.String()
}

func sideString(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func boardString(b *board.GameBoard) string {
	rows := make([]string, 0, board.Dim)
	for r := board.Dim - 1; r >= 0; r-- {
		var sb strings.Builder
		empty := 0
		for c := 0; c < board.Dim; c++ {
			sq := b.At(board.Coord{Row: r, Col: c})
			if sq.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(sq.DisplayString())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "/")
}
