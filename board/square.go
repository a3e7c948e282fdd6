package board

// Color is the side a piece belongs to. White always moves first.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row delta a man of this color moves in. White men move
// up the board (toward row 7), black men move down.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// PromotionRow is the far rank for this color.
func (c Color) PromotionRow() int {
	if c == White {
		return Dim - 1
	}
	return 0
}

// Piece is a checker. A man becomes a king when it reaches the far rank
// and never reverts.
type Piece struct {
	Color Color
	King  bool
}

// A Square is the content of one cell on the board. The zero value is an
// empty square, so a zeroed Board is empty.
type Square uint8

const (
	EmptySquare Square = iota
	WhiteMan
	WhiteKing
	BlackMan
	BlackKing
)

func (s Square) IsEmpty() bool {
	return s == EmptySquare
}

// Piece returns the piece on this square; ok is false for an empty square.
func (s Square) Piece() (p Piece, ok bool) {
	switch s {
	case WhiteMan:
		return Piece{Color: White}, true
	case WhiteKing:
		return Piece{Color: White, King: true}, true
	case BlackMan:
		return Piece{Color: Black}, true
	case BlackKing:
		return Piece{Color: Black, King: true}, true
	}
	return Piece{}, false
}

// Belongs returns true if the square holds a piece of color c.
func (s Square) Belongs(c Color) bool {
	p, ok := s.Piece()
	return ok && p.Color == c
}

// DisplayString is the single-character rendering used by the display
// text and by position strings.
func (s Square) DisplayString() string {
	switch s {
	case WhiteMan:
		return "w"
	case WhiteKing:
		return "W"
	case BlackMan:
		return "b"
	case BlackKing:
		return "B"
	}
	return "."
}

// SquareFromRune is the inverse of DisplayString for piece runes.
func SquareFromRune(r rune) (Square, bool) {
	switch r {
	case 'w':
		return WhiteMan, true
	case 'W':
		return WhiteKing, true
	case 'b':
		return BlackMan, true
	case 'B':
		return BlackKing, true
	case '.':
		return EmptySquare, true
	}
	return EmptySquare, false
}
