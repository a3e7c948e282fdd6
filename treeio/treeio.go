// Package treeio saves and loads game trees as text. Each node is one
// line, written in pre-order:
//
//	<move digits><captured 0|1><side 0|1>,<number of children>
//
// The side flag is 1 for White. A freshly generated root has no move
// digits, so its line is only the two flags and the count.
package treeio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/gametree"
	"github.com/domino14/checkers/move"
)

// Extension is appended to the base names given to Export and Import.
const Extension = ".txt"

var ErrCorruptTreeFormat = errors.New("corrupt tree format")

func flag(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

// Write serializes the tree rooted at n.
func Write(w io.Writer, n *gametree.Node) error {
	bw := bufio.NewWriter(w)
	if err := writeNode(bw, n); err != nil {
		return err
	}
	return bw.Flush()
}

func writeNode(bw *bufio.Writer, n *gametree.Node) error {
	captured := n.Move != nil && n.Move.Captured()
	line := n.Move.Digits() + string([]byte{flag(captured), flag(n.Side == board.White)}) +
		"," + strconv.Itoa(len(n.Children)) + "\n"
	if _, err := bw.WriteString(line); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeNode(bw, c); err != nil {
			return err
		}
	}
	return nil
}

type record struct {
	lineno   int
	move     *move.Move
	side     board.Color
	children int
}

func corrupt(lineno int, format string, a ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrCorruptTreeFormat, lineno, fmt.Sprintf(format, a...))
}

func parseLine(line string, lineno int) (*record, error) {
	comma := strings.LastIndexByte(line, ',')
	if comma < 0 {
		return nil, corrupt(lineno, "missing comma")
	}
	ct, err := strconv.Atoi(line[comma+1:])
	if err != nil || ct < 0 {
		return nil, corrupt(lineno, "bad child count %q", line[comma+1:])
	}
	head := line[:comma]
	if len(head) < 2 {
		return nil, corrupt(lineno, "missing flags")
	}
	digits, flags := head[:len(head)-2], head[len(head)-2:]
	for _, f := range flags {
		if f != '0' && f != '1' {
			return nil, corrupt(lineno, "bad flag %q", f)
		}
	}
	rec := &record{lineno: lineno, children: ct, side: board.Black}
	if flags[1] == '1' {
		rec.side = board.White
	}
	if digits == "" {
		if flags[0] == '1' {
			return nil, corrupt(lineno, "empty move marked as a capture")
		}
		return rec, nil
	}
	rec.move, err = move.FromDigits(digits, flags[0] == '1')
	if err != nil {
		return nil, corrupt(lineno, "%v", err)
	}
	return rec, nil
}

type reader struct {
	recs []*record
	pos  int
}

func (r *reader) node() (*gametree.Node, error) {
	if r.pos >= len(r.recs) {
		last := 0
		if len(r.recs) > 0 {
			last = r.recs[len(r.recs)-1].lineno
		}
		return nil, corrupt(last, "tree ends early")
	}
	rec := r.recs[r.pos]
	r.pos++
	if rec.move == nil && rec.lineno != 1 {
		return nil, corrupt(rec.lineno, "empty move below the root")
	}
	n := &gametree.Node{Move: rec.move, Side: rec.side}
	if rec.children > 0 {
		n.Children = make([]*gametree.Node, 0, rec.children)
	}
	for i := 0; i < rec.children; i++ {
		c, err := r.node()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

// Read deserializes a tree written by Write. Every line must belong to
// the tree: a short or overlong file is an error.
func Read(rd io.Reader) (*gametree.Node, error) {
	var recs []*record
	scanner := bufio.NewScanner(rd)
	lineno := 0
	for scanner.Scan() {
		lineno++
		rec, err := parseLine(strings.TrimRight(scanner.Text(), "\r"), lineno)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, corrupt(0, "no records")
	}
	r := &reader{recs: recs}
	root, err := r.node()
	if err != nil {
		return nil, err
	}
	if r.pos != len(recs) {
		return nil, corrupt(recs[r.pos].lineno, "%d lines after the end of the tree", len(recs)-r.pos)
	}
	return root, nil
}

// Export writes the tree to basename + ".txt", replacing any existing
// file.
func Export(basename string, n *gametree.Node) error {
	f, err := os.Create(basename + Extension)
	if err != nil {
		return err
	}
	if err := Write(f, n); err != nil {
		f.Close()
		return err
	}
	log.Debug().Str("file", f.Name()).Int("nodes", n.NumNodes()).Msg("exported-tree")
	return f.Close()
}

// Import reads a tree from basename + ".txt".
func Import(basename string) (*gametree.Node, error) {
	f, err := os.Open(basename + Extension)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	log.Debug().Str("file", f.Name()).Int("nodes", n.NumNodes()).Msg("imported-tree")
	return n, nil
}
