// Package search picks moves by backing up material counts through a
// fixed-depth game tree, with plain minimax or with alpha-beta pruning.
// White maximizes and Black minimizes.
package search

import (
	"fmt"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/gametree"
	"github.com/domino14/checkers/move"
)

// Infinity is 10 million.
const Infinity = 10000000

// Result is a move paired with its backed-up value. At the root of a
// freshly generated tree, Move is the best immediate move; below the
// root it is the node's own move.
type Result struct {
	Move  *move.Move
	Value int
}

func (r Result) String() string {
	return fmt.Sprintf("<%v value: %d>", r.Move.ShortDescription(), r.Value)
}

// Evaluate is the static evaluation of a position: White's piece count
// minus Black's. Kings and men count the same.
func Evaluate(g *game.Game) int {
	return g.Material()
}

type walker struct {
	visited int
}

// Minimax searches the tree n, whose root position is g. Ties go to the
// first child encountered.
func Minimax(g *game.Game, n *gametree.Node) (Result, error) {
	w := &walker{}
	return w.minimax(g, n)
}

// AlphaBeta searches like Minimax but stops looking at siblings once
// beta <= alpha. The value always matches Minimax's; the move may differ
// when several moves tie.
func AlphaBeta(g *game.Game, n *gametree.Node, alpha, beta int) (Result, error) {
	w := &walker{}
	return w.alphabeta(g, n, alpha, beta)
}

// child plays the child's move on a copy of g.
func child(g *game.Game, c *gametree.Node) (*game.Game, error) {
	cp := g.Copy()
	if err := cp.PlayMove(c.Move); err != nil {
		return nil, err
	}
	return cp, nil
}

// backUp returns what node n reports to its parent given its best
// child result.
func backUp(n *gametree.Node, best Result) Result {
	if n.Move == nil {
		return best
	}
	return Result{Move: n.Move, Value: best.Value}
}

func (w *walker) minimax(g *game.Game, n *gametree.Node) (Result, error) {
	w.visited++
	if n.IsLeaf() {
		return Result{Move: n.Move, Value: Evaluate(g)}, nil
	}
	maximizing := g.SideToMove() == board.White
	var best Result
	for i, c := range n.Children {
		cp, err := child(g, c)
		if err != nil {
			return Result{}, err
		}
		r, err := w.minimax(cp, c)
		if err != nil {
			return Result{}, err
		}
		if i == 0 || (maximizing && r.Value > best.Value) || (!maximizing && r.Value < best.Value) {
			best = r
		}
	}
	return backUp(n, best), nil
}

func (w *walker) alphabeta(g *game.Game, n *gametree.Node, alpha, beta int) (Result, error) {
	w.visited++
	if n.IsLeaf() {
		return Result{Move: n.Move, Value: Evaluate(g)}, nil
	}
	maximizing := g.SideToMove() == board.White
	best := Result{Value: Infinity}
	if maximizing {
		best.Value = -Infinity
	}
	for _, c := range n.Children {
		cp, err := child(g, c)
		if err != nil {
			return Result{}, err
		}
		r, err := w.alphabeta(cp, c, alpha, beta)
		if err != nil {
			return Result{}, err
		}
		if maximizing {
			if r.Value > best.Value {
				best = r
			}
			alpha = max(alpha, best.Value)
		} else {
			if r.Value < best.Value {
				best = r
			}
			beta = min(beta, best.Value)
		}
		if beta <= alpha {
			break
		}
	}
	return backUp(n, best), nil
}
