// Package board contains the 8x8 checkerboard and the piece and square
// types that live on it.
package board

import (
	"fmt"
	"strconv"
)

// Dim is the width and height of the board.
const Dim = 8

// Coord is a (row, col) position. Row 0 is White's back rank.
type Coord struct {
	Row int
	Col int
}

// Valid returns true if the coordinate is on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Dim && c.Col >= 0 && c.Col < Dim
}

// Add offsets the coordinate.
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// String renders the coordinate as its two-digit form, e.g. "22".
func (c Coord) String() string {
	return strconv.Itoa(c.Row) + strconv.Itoa(c.Col)
}

// Midpoint is the square jumped over between two coordinates two
// diagonal steps apart.
func Midpoint(a, b Coord) Coord {
	return Coord{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

// Playable returns true for the dark squares pieces are placed on.
func Playable(c Coord) bool {
	return (c.Row+c.Col)%2 == 0
}

// GameBoard is a fixed 8x8 grid. It is a plain value; assigning it copies
// every square, so copies never share state.
type GameBoard struct {
	squares [Dim][Dim]Square
}

// NewStartingBoard returns a board set up for a new game: white men on
// rows 0-2, black men on rows 5-7, on the playable squares.
func NewStartingBoard() *GameBoard {
	b := &GameBoard{}
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if !Playable(Coord{r, c}) {
				continue
			}
			switch {
			case r < 3:
				b.squares[r][c] = WhiteMan
			case r > 4:
				b.squares[r][c] = BlackMan
			}
		}
	}
	return b
}

// Copy returns an independent copy of the board.
func (g *GameBoard) Copy() *GameBoard {
	n := *g
	return &n
}

// CopyFrom overwrites this board with the contents of o.
func (g *GameBoard) CopyFrom(o *GameBoard) {
	g.squares = o.squares
}

func (g *GameBoard) At(c Coord) Square {
	return g.squares[c.Row][c.Col]
}

func (g *GameBoard) Set(c Coord, s Square) {
	g.squares[c.Row][c.Col] = s
}

func (g *GameBoard) ClearSquare(c Coord) {
	g.squares[c.Row][c.Col] = EmptySquare
}

// Relocate moves whatever is on from to to, leaving from empty.
func (g *GameBoard) Relocate(from, to Coord) {
	g.squares[from.Row][from.Col], g.squares[to.Row][to.Col] =
		EmptySquare, g.squares[from.Row][from.Col]
}

// Pieces returns the coordinates of every piece of color c, scanning row
// 0 first and left to right within a row. Move generation relies on this
// order.
func (g *GameBoard) Pieces(c Color) []Coord {
	coords := make([]Coord, 0, 12)
	for r := 0; r < Dim; r++ {
		for col := 0; col < Dim; col++ {
			if g.squares[r][col].Belongs(c) {
				coords = append(coords, Coord{r, col})
			}
		}
	}
	return coords
}

// Count returns the number of pieces of color c. Kings count as one.
func (g *GameBoard) Count(c Color) int {
	n := 0
	for r := 0; r < Dim; r++ {
		for col := 0; col < Dim; col++ {
			if g.squares[r][col].Belongs(c) {
				n++
			}
		}
	}
	return n
}

// CountKings returns the number of kings of color c.
func (g *GameBoard) CountKings(c Color) int {
	n := 0
	for r := 0; r < Dim; r++ {
		for col := 0; col < Dim; col++ {
			if p, ok := g.squares[r][col].Piece(); ok && p.King && p.Color == c {
				n++
			}
		}
	}
	return n
}

// Promote crowns every man standing on its own far rank.
func (g *GameBoard) Promote() {
	for col := 0; col < Dim; col++ {
		if g.squares[White.PromotionRow()][col] == WhiteMan {
			g.squares[White.PromotionRow()][col] = WhiteKing
		}
		if g.squares[Black.PromotionRow()][col] == BlackMan {
			g.squares[Black.PromotionRow()][col] = BlackKing
		}
	}
}

func (g *GameBoard) Equals(o *GameBoard) bool {
	return g.squares == o.squares
}

func (g *GameBoard) String() string {
	return fmt.Sprintf("<board white=%d black=%d>", g.Count(White), g.Count(Black))
}
