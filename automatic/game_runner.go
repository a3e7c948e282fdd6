// Package automatic runs computer-vs-computer games and collects
// statistics about them.
package automatic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/checkers/ai/bot"
	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/game"
)

// BotSpec names a bot kind and its search depth.
type BotSpec struct {
	Kind  bot.Kind
	Depth int
}

func (s BotSpec) String() string {
	if s.Kind == bot.RandomBot {
		return s.Kind.String()
	}
	return s.Kind.String() + ":" + strconv.Itoa(s.Depth)
}

// ParseBotSpec parses "kind" or "kind:depth". defDepth is used when no
// depth is given.
func ParseBotSpec(s string, defDepth int) (BotSpec, error) {
	name, d, found := strings.Cut(s, ":")
	k, err := bot.ParseKind(name)
	if err != nil {
		return BotSpec{}, err
	}
	spec := BotSpec{Kind: k, Depth: defDepth}
	if found {
		spec.Depth, err = strconv.Atoi(d)
		if err != nil || spec.Depth < 1 {
			return BotSpec{}, fmt.Errorf("bad depth in bot spec %q", s)
		}
	}
	return spec, nil
}

// GameResult is the record of one finished game.
type GameResult struct {
	ID          string
	White       string
	Black       string
	Outcome     game.Outcome
	Capped      bool
	Plies       int
	Material    int
	Fingerprint uint64
	FinishedAt  time.Time
}

// CSVHeader is the header of the per-ply log.
const CSVHeader = "gameID,ply,side,move,captured,material,halfmoves\n"

// GamesCSVHeader is the header of the per-game log.
const GamesCSVHeader = "gameID,white,black,outcome,plies,material\n"

// GameRunner plays games between two bots.
type GameRunner struct {
	game     *game.Game
	gameID   string
	specs    [2]BotSpec
	bots     [2]bot.Bot
	maxPlies int
	logchan  chan string
	gamechan chan string
}

// NewGameRunner creates a runner. logchan receives one CSV line per ply
// and gamechan one per game; either may be nil.
func NewGameRunner(logchan, gamechan chan string, cfg *config.Config,
	white, black BotSpec, opts ...bot.Option) (*GameRunner, error) {

	r := &GameRunner{
		specs:    [2]BotSpec{white, black},
		maxPlies: cfg.GetInt(config.ConfigAutoplayMaxPlies),
		logchan:  logchan,
		gamechan: gamechan,
	}
	for i, spec := range r.specs {
		b, err := bot.New(spec.Kind, spec.Depth, opts...)
		if err != nil {
			return nil, err
		}
		r.bots[i] = b
	}
	return r, nil
}

func (r *GameRunner) StartGame() {
	r.game = game.NewGame()
	r.gameID = uuid.NewString()
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayBotTurn has the bot for the side to move play one move.
func (r *GameRunner) PlayBotTurn() error {
	side := r.game.SideToMove()
	m, err := bot.Play(r.bots[side], r.game)
	if err != nil {
		return fmt.Errorf("game %v ply %d: %w", r.gameID, r.game.Turn(), err)
	}
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%s,%d,%s,%s,%d,%d,%d\n",
			r.gameID, r.game.Turn(), side, m.Digits(), boolInt(m.Captured()),
			r.game.Material(), r.game.Halfmoves())
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// PlayGame plays a new game to the end, or until the ply cap, which is
// scored as a draw.
func (r *GameRunner) PlayGame() (*GameResult, error) {
	r.StartGame()
	for r.game.Playing() {
		if r.maxPlies > 0 && r.game.Turn() >= r.maxPlies {
			break
		}
		if err := r.PlayBotTurn(); err != nil {
			return nil, err
		}
	}
	res := &GameResult{
		ID:          r.gameID,
		White:       r.specs[board.White].String(),
		Black:       r.specs[board.Black].String(),
		Outcome:     r.game.Outcome(),
		Plies:       r.game.Turn(),
		Material:    r.game.Material(),
		Fingerprint: r.game.Board().Fingerprint(),
		FinishedAt:  time.Now(),
	}
	if res.Outcome == game.InProgress {
		res.Outcome = game.Draw
		res.Capped = true
	}
	log.Debug().Str("id", res.ID).Str("outcome", res.Outcome.String()).
		Int("plies", res.Plies).Bool("capped", res.Capped).Msg("game-finished")
	if r.gamechan != nil {
		r.gamechan <- fmt.Sprintf("%s,%s,%s,%s,%d,%d\n", res.ID, res.White, res.Black,
			outcomeCode(res.Outcome), res.Plies, res.Material)
	}
	return res, nil
}

// outcomeCode is the short form of an outcome used in logs.
func outcomeCode(o game.Outcome) string {
	switch o {
	case game.WhiteWin:
		return "white"
	case game.BlackWin:
		return "black"
	case game.Draw:
		return "draw"
	}
	return "none"
}

func parseOutcomeCode(s string) (game.Outcome, error) {
	switch s {
	case "white":
		return game.WhiteWin, nil
	case "black":
		return game.BlackWin, nil
	case "draw":
		return game.Draw, nil
	}
	return game.InProgress, fmt.Errorf("unknown outcome %q", s)
}
