// Package movegen contains all the move-generating functions. They are
// pure functions over a board and never modify it; capture chains are
// explored on scratch copies.
package movegen

import (
	"github.com/samber/lo"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/move"
)

// Direction is one of the four diagonals, as a row and column delta.
type Direction struct {
	DR, DC int
}

var (
	UpLeft    = Direction{DR: 1, DC: -1}
	UpRight   = Direction{DR: 1, DC: 1}
	DownLeft  = Direction{DR: -1, DC: -1}
	DownRight = Direction{DR: -1, DC: 1}
)

func (d Direction) String() string {
	switch d {
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	case DownLeft:
		return "down-left"
	case DownRight:
		return "down-right"
	}
	return "?"
}

// scanDirections is the probe order used when scanning a piece at the
// start of its move. Men only go forward. A king probes its forward pair
// first.
func scanDirections(p board.Piece) []Direction {
	switch {
	case p.Color == board.White && p.King:
		return []Direction{UpLeft, UpRight, DownLeft, DownRight}
	case p.Color == board.White:
		return []Direction{UpLeft, UpRight}
	case p.King:
		return []Direction{DownLeft, DownRight, UpLeft, UpRight}
	default:
		return []Direction{DownLeft, DownRight}
	}
}

// chainDirections is the probe order for continuing a capture. Men stay
// forward-only mid-chain.
func chainDirections(p board.Piece) []Direction {
	if p.King {
		return []Direction{UpLeft, UpRight, DownLeft, DownRight}
	}
	return scanDirections(p)
}

// probe looks one diagonal away from `from` for the piece p. In a chain,
// only captures are returned. A capture returns the single jump followed
// by every longer chain that starts with it.
func probe(b *board.GameBoard, from board.Coord, p board.Piece, d Direction, chain bool) []*move.Move {
	adj := from.Add(d.DR, d.DC)
	if !adj.Valid() {
		return nil
	}
	sq := b.At(adj)
	if sq.IsEmpty() {
		if chain {
			return nil
		}
		return []*move.Move{move.NewSimpleMove(from, adj)}
	}
	if sq.Belongs(p.Color) {
		return nil
	}
	landing := adj.Add(d.DR, d.DC)
	if !landing.Valid() || !b.At(landing).IsEmpty() {
		return nil
	}
	moves := []*move.Move{move.NewCaptureMove(from, landing)}
	for _, cont := range continuations(b, from, landing, p) {
		moves = append(moves, cont.Prepend(from))
	}
	return moves
}

// continuations returns every capture chain starting at landing, after a
// jump from origin. The jumped piece is removed from a scratch board; the
// mover itself is left on its origin square there.
func continuations(b *board.GameBoard, origin, landing board.Coord, p board.Piece) []*move.Move {
	scratch := b.Copy()
	scratch.ClearSquare(board.Midpoint(origin, landing))
	var moves []*move.Move
	for _, d := range chainDirections(p) {
		moves = append(moves, probe(scratch, landing, p, d, true)...)
	}
	return moves
}

func pieceMoves(b *board.GameBoard, c board.Coord, p board.Piece) []*move.Move {
	var moves []*move.Move
	for _, d := range scanDirections(p) {
		moves = append(moves, probe(b, c, p, d, false)...)
	}
	return moves
}

// capturesOnly applies the mandatory capture rule: if any move captures,
// only the captures are kept.
func capturesOnly(moves []*move.Move) []*move.Move {
	captures := lo.Filter(moves, func(m *move.Move, _ int) bool {
		return m.Captured()
	})
	if len(captures) > 0 {
		return captures
	}
	return moves
}

// GenAll generates every legal move for the side `onTurn`. Pieces are
// visited in row-major order starting at row 0.
func GenAll(b *board.GameBoard, onTurn board.Color) []*move.Move {
	var moves []*move.Move
	for _, c := range b.Pieces(onTurn) {
		p, _ := b.At(c).Piece()
		moves = append(moves, pieceMoves(b, c, p)...)
	}
	return capturesOnly(moves)
}

// GenForPiece generates the legal moves for the piece on c. A piece that
// can only step gets no moves while another piece has a capture.
func GenForPiece(b *board.GameBoard, onTurn board.Color, c board.Coord) []*move.Move {
	if !c.Valid() {
		return nil
	}
	p, ok := b.At(c).Piece()
	if !ok || p.Color != onTurn {
		return nil
	}
	moves := capturesOnly(pieceMoves(b, c, p))
	all := GenAll(b, onTurn)
	return lo.Filter(moves, func(m *move.Move, _ int) bool {
		return lo.ContainsBy(all, func(o *move.Move) bool { return o.Equals(m) })
	})
}

// HasMoves returns true if onTurn has at least one legal move.
func HasMoves(b *board.GameBoard, onTurn board.Color) bool {
	for _, c := range b.Pieces(onTurn) {
		p, _ := b.At(c).Piece()
		if len(pieceMoves(b, c, p)) > 0 {
			return true
		}
	}
	return false
}
