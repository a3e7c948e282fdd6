package board

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

// ToDisplayText renders the board with row 7 at the top, the way it is
// seen from White's side of the table.
func (g *GameBoard) ToDisplayText() string {
	var str string
	header := "   "
	for c := 0; c < Dim; c++ {
		header = header + fmt.Sprintf("%d ", c)
	}
	str = str + header + "\n"
	str = str + "   " + strings.Repeat("-", Dim*2) + "\n"
	for r := Dim - 1; r >= 0; r-- {
		row := fmt.Sprintf("%2d|", r)
		for c := 0; c < Dim; c++ {
			sq := g.squares[r][c]
			if sq.IsEmpty() && !Playable(Coord{r, c}) {
				row = row + "  "
				continue
			}
			row = row + sq.DisplayString() + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", Dim*2) + "\n"
	return "\n" + str
}

// Fingerprint is a 64-bit hash of the square contents. Two boards with
// the same pieces on the same squares have the same fingerprint.
func (g *GameBoard) Fingerprint() uint64 {
	var buf [Dim * Dim]byte
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			buf[r*Dim+c] = byte(g.squares[r][c])
		}
	}
	return xxhash.Sum64(buf[:])
}
