package bot

import (
	"errors"

	"lukechampine.com/frand"

	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/search"
)

type randomBot struct{}

func (r *randomBot) Kind() Kind {
	return RandomBot
}

// ChooseMove picks uniformly among the legal moves.
func (r *randomBot) ChooseMove(g *game.Game) (*move.Move, error) {
	if !g.Playing() {
		return nil, game.ErrGameOver
	}
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}
	return moves[frand.Intn(len(moves))], nil
}

type searchingBot struct {
	kind     Kind
	searcher *search.Searcher
}

func (s *searchingBot) Kind() Kind {
	return s.kind
}

// ChooseMove builds a new tree from g and searches it.
func (s *searchingBot) ChooseMove(g *game.Game) (*move.Move, error) {
	if !g.Playing() {
		return nil, game.ErrGameOver
	}
	res, err := s.searcher.BestMove(g)
	if errors.Is(err, search.ErrNoMoves) {
		return nil, ErrNoLegalMoves
	}
	if err != nil {
		return nil, err
	}
	return res.Move, nil
}
