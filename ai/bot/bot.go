// Package bot contains the computer players. There are exactly three
// kinds: one that plays a random legal move and two that search a game
// tree to a fixed depth.
package bot

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/search"
)

var ErrNoLegalMoves = errors.New("no legal moves")

// DefaultDepth is the deepest search that is still comfortable for
// interactive play.
const DefaultDepth = 5

type Kind int

const (
	RandomBot Kind = iota
	MinimaxBot
	AlphaBetaBot
)

func (k Kind) String() string {
	switch k {
	case RandomBot:
		return "random"
	case MinimaxBot:
		return "minimax"
	case AlphaBetaBot:
		return "alphabeta"
	}
	return "unknown"
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return RandomBot, nil
	case "minimax":
		return MinimaxBot, nil
	case "alphabeta", "ab", "prune":
		return AlphaBetaBot, nil
	}
	return 0, fmt.Errorf("unknown bot kind %q; try random, minimax or alphabeta", s)
}

// Bot picks a move for the side to move. It never modifies g.
type Bot interface {
	ChooseMove(g *game.Game) (*move.Move, error)
	Kind() Kind
}

type options struct {
	logStream io.Writer
}

type Option func(*options)

// WithLogStream makes searching bots log their decisions to w.
func WithLogStream(w io.Writer) Option {
	return func(o *options) {
		o.logStream = w
	}
}

// New creates a bot. depth is ignored by the random bot.
func New(kind Kind, depth int, opts ...Option) (Bot, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	switch kind {
	case RandomBot:
		return &randomBot{}, nil
	case MinimaxBot, AlphaBetaBot:
		if depth < 1 {
			return nil, fmt.Errorf("%v bot needs a depth of at least 1, got %d", kind, depth)
		}
		v := search.VariantMinimax
		if kind == AlphaBetaBot {
			v = search.VariantAlphaBeta
		}
		s := search.NewSearcher(v, depth)
		if o.logStream != nil {
			s.SetLogStream(o.logStream)
		}
		return &searchingBot{kind: kind, searcher: s}, nil
	}
	return nil, fmt.Errorf("unknown bot kind %d", kind)
}

// Play has the bot choose a move and applies it to g.
func Play(b Bot, g *game.Game) (*move.Move, error) {
	m, err := b.ChooseMove(g)
	if err != nil {
		return nil, err
	}
	if err := g.PlayMove(m); err != nil {
		return nil, err
	}
	log.Debug().Str("bot", b.Kind().String()).Str("move", m.ShortDescription()).
		Int("turn", g.Turn()).Msg("bot-played")
	return m, nil
}
