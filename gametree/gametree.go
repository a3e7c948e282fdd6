// Package gametree builds the fixed-depth game trees the searchers walk.
// A tree is always built fresh from a position; it is never updated in
// place as the game moves on.
package gametree

import (
	"fmt"
	"strings"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/move"
)

// Node is one position in a game tree. Move is the move that led to it
// (nil for a freshly generated root) and Side is the color that played
// that move. At the root, Side is the color to move, which is the same
// as the Side of each of its children.
type Node struct {
	Move     *move.Move
	Side     board.Color
	Children []*Node
}

// Expand generates the complete tree of depth `depth` below g. Children
// are in legal-move order. g is not modified; every child is expanded
// from its own copy.
func Expand(g *game.Game, root *move.Move, depth int) (*Node, error) {
	return expand(g, root, g.SideToMove(), depth)
}

func expand(g *game.Game, m *move.Move, side board.Color, depth int) (*Node, error) {
	n := &Node{Move: m, Side: side}
	if depth == 0 {
		return n, nil
	}
	moves := g.LegalMoves()
	n.Children = make([]*Node, 0, len(moves))
	for _, lm := range moves {
		cp := g.Copy()
		mover := cp.SideToMove()
		if err := cp.PlayMove(lm); err != nil {
			return nil, fmt.Errorf("expanding %v: %w", lm.ShortDescription(), err)
		}
		child, err := expand(cp, lm, mover, depth-1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// NumNodes counts this node and everything below it.
func (n *Node) NumNodes() int {
	ct := 1
	for _, c := range n.Children {
		ct += c.NumNodes()
	}
	return ct
}

// Depth is the length of the longest path down to a leaf.
func (n *Node) Depth() int {
	d := 0
	for _, c := range n.Children {
		if cd := c.Depth() + 1; cd > d {
			d = cd
		}
	}
	return d
}

// Equal returns true if both trees have the same shape with the same
// moves, capture flags and sides at every node.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Side != o.Side || !n.Move.Equals(o.Move) || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String dumps the tree, one move per line, indented by depth.
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, d int) {
	sb.WriteString(strings.Repeat("  ", d))
	if n.Move == nil {
		sb.WriteString("(root)")
	} else {
		sb.WriteString(n.Move.ShortDescription())
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.dump(sb, d+1)
	}
}
