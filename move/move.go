// Package move contains the checkers move type. Internally a move is a
// path of board coordinates; the flat digit string ("2231", "224466") is
// only used at the edges (files, wire, shell).
package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/checkers/board"
)

var ErrBadMoveString = errors.New("bad move string")

// Move is one turn's worth of movement by a single piece: either a
// simple one-square step, or a chain of one or more jumps. A chain never
// mixes steps and jumps.
type Move struct {
	path     []board.Coord
	captured bool
}

// NewSimpleMove returns a non-capturing one-step move.
func NewSimpleMove(from, to board.Coord) *Move {
	return &Move{path: []board.Coord{from, to}}
}

// NewCaptureMove returns a jump chain through the given landing squares.
func NewCaptureMove(path ...board.Coord) *Move {
	p := make([]board.Coord, len(path))
	copy(p, path)
	return &Move{path: p, captured: true}
}

// FromDigits parses the flat digit form, e.g. "2231" or "224466".
func FromDigits(s string, captured bool) (*Move, error) {
	if len(s) < 4 || len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %q must have an even number of digits, at least 4",
			ErrBadMoveString, s)
	}
	path := make([]board.Coord, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		r, c := s[i], s[i+1]
		if r < '0' || r > '7' || c < '0' || c > '7' {
			return nil, fmt.Errorf("%w: %q has a coordinate off the board", ErrBadMoveString, s)
		}
		path = append(path, board.Coord{Row: int(r - '0'), Col: int(c - '0')})
	}
	if !captured && len(path) != 2 {
		return nil, fmt.Errorf("%w: %q is a multi-hop move without a capture",
			ErrBadMoveString, s)
	}
	// a step is one square diagonally, a jump two
	span, kind := 1, "step"
	if captured {
		span, kind = 2, "jump"
	}
	for i := 0; i+1 < len(path); i++ {
		if !diagonal(path[i], path[i+1], span) {
			return nil, fmt.Errorf("%w: %q is not a diagonal %s", ErrBadMoveString, s, kind)
		}
	}
	return &Move{path: path, captured: captured}, nil
}

func diagonal(a, b board.Coord, span int) bool {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	return (dr == span || dr == -span) && (dc == span || dc == -span)
}

// Prepend returns a new move with c in front of the path.
func (m *Move) Prepend(c board.Coord) *Move {
	p := make([]board.Coord, 0, len(m.path)+1)
	p = append(p, c)
	p = append(p, m.path...)
	return &Move{path: p, captured: m.captured}
}

// Path returns the coordinates visited, origin first. Callers must not
// modify it.
func (m *Move) Path() []board.Coord {
	return m.path
}

func (m *Move) From() board.Coord {
	return m.path[0]
}

func (m *Move) To() board.Coord {
	return m.path[len(m.path)-1]
}

func (m *Move) Captured() bool {
	return m.captured
}

// Hops is the number of steps or jumps in the move.
func (m *Move) Hops() int {
	return len(m.path) - 1
}

// CapturedSquares returns the squares of the pieces a capture removes.
func (m *Move) CapturedSquares() []board.Coord {
	if !m.captured {
		return nil
	}
	sqs := make([]board.Coord, 0, m.Hops())
	for i := 0; i+1 < len(m.path); i++ {
		sqs = append(sqs, board.Midpoint(m.path[i], m.path[i+1]))
	}
	return sqs
}

// Digits is the flat digit encoding of the path. A nil move (the root of
// a game tree) encodes as the empty string.
func (m *Move) Digits() string {
	if m == nil {
		return ""
	}
	var sb strings.Builder
	for _, c := range m.path {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Equals compares paths and capture flags.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.captured != o.captured || len(m.path) != len(o.path) {
		return false
	}
	for i := range m.path {
		if m.path[i] != o.path[i] {
			return false
		}
	}
	return true
}

// SamePath compares paths only.
func (m *Move) SamePath(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.path) != len(o.path) {
		return false
	}
	for i := range m.path {
		if m.path[i] != o.path[i] {
			return false
		}
	}
	return true
}

// ShortDescription provides a short description, useful for logging or
// user display: "22-31" for a step, "22x44x66" for a jump chain.
func (m *Move) ShortDescription() string {
	if m == nil {
		return "(root)"
	}
	sep := "-"
	if m.captured {
		sep = "x"
	}
	parts := make([]string, len(m.path))
	for i, c := range m.path {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	if m == nil {
		return "<nil move>"
	}
	return fmt.Sprintf("<move %v captured: %v hops: %d>", m.Digits(), m.captured, m.Hops())
}
