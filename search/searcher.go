package search

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/gametree"
	"github.com/domino14/checkers/position"
)

var ErrNoMoves = errors.New("no moves to search")

// Variant selects the search algorithm.
type Variant int

const (
	VariantMinimax Variant = iota
	VariantAlphaBeta
)

func (v Variant) String() string {
	if v == VariantMinimax {
		return "minimax"
	}
	return "alphabeta"
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "minimax":
		return VariantMinimax, nil
	case "alphabeta", "ab":
		return VariantAlphaBeta, nil
	}
	return 0, fmt.Errorf("unknown search variant %q", s)
}

// LogDecision is a struct meant for serializing to a log-file, for debug
// and other purposes. There is one per move chosen.
type LogDecision struct {
	Ply       int    `yaml:"ply"`
	Side      string `yaml:"side"`
	Position  string `yaml:"position"`
	Variant   string `yaml:"variant"`
	Depth     int    `yaml:"depth"`
	TreeSize  int    `yaml:"tree_size"`
	Visited   int    `yaml:"visited"`
	Move      string `yaml:"move"`
	Captured  bool   `yaml:"captured"`
	Value     int    `yaml:"value"`
	ElapsedMs int64  `yaml:"elapsed_ms"`
}

// Searcher chooses moves at a fixed depth. It generates a new tree from
// the given position on every call.
type Searcher struct {
	variant   Variant
	depth     int
	logStream io.Writer

	lastTree    *gametree.Node
	lastVisited int
}

func NewSearcher(v Variant, depth int) *Searcher {
	return &Searcher{variant: v, depth: depth}
}

// SetLogStream makes the searcher append a YAML record of each decision
// to w. Pass nil to turn it off.
func (s *Searcher) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Searcher) Variant() Variant {
	return s.variant
}

func (s *Searcher) Depth() int {
	return s.depth
}

// LastTree is the tree built by the last call to BestMove.
func (s *Searcher) LastTree() *gametree.Node {
	return s.lastTree
}

// LastVisited is the number of nodes the last search visited.
func (s *Searcher) LastVisited() int {
	return s.lastVisited
}

// Search runs the searcher's variant over a tree the caller already has.
func (s *Searcher) Search(g *game.Game, tree *gametree.Node) (Result, error) {
	w := &walker{}
	var res Result
	var err error
	switch s.variant {
	case VariantMinimax:
		res, err = w.minimax(g, tree)
	default:
		res, err = w.alphabeta(g, tree, -Infinity, Infinity)
	}
	s.lastVisited = w.visited
	return res, err
}

// BestMove expands g to the searcher's depth and returns the best move.
func (s *Searcher) BestMove(g *game.Game) (Result, error) {
	if s.depth < 1 {
		return Result{}, fmt.Errorf("search depth must be at least 1, got %d", s.depth)
	}
	ts := time.Now()
	tree, err := gametree.Expand(g, nil, s.depth)
	if err != nil {
		return Result{}, err
	}
	s.lastTree = tree
	if tree.IsLeaf() {
		return Result{}, ErrNoMoves
	}
	res, err := s.Search(g, tree)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(ts)
	log.Debug().Str("variant", s.variant.String()).Int("depth", s.depth).
		Int("tree-size", tree.NumNodes()).Int("visited", s.lastVisited).
		Str("move", res.Move.ShortDescription()).Int("value", res.Value).
		Dur("elapsed", elapsed).Msg("search-done")

	if s.logStream != nil {
		if err := s.logDecision(g, tree, res, elapsed); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func (s *Searcher) logDecision(g *game.Game, tree *gametree.Node, res Result, elapsed time.Duration) error {
	d := LogDecision{
		Ply:       g.Turn(),
		Side:      g.SideToMove().String(),
		Position:  position.FromGame(g),
		Variant:   s.variant.String(),
		Depth:     s.depth,
		TreeSize:  tree.NumNodes(),
		Visited:   s.lastVisited,
		Move:      res.Move.Digits(),
		Captured:  res.Move.Captured(),
		Value:     res.Value,
		ElapsedMs: elapsed.Milliseconds(),
	}
	out, err := yaml.Marshal([]LogDecision{d})
	if err != nil {
		log.Error().Err(err).Msg("marshalling log")
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}
