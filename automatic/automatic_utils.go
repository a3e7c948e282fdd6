package automatic

// Data collection for automatic games: computer vs computer, many at a
// time.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Results aggregates finished games. It is safe for concurrent use.
type Results struct {
	sync.Mutex
	outcomes map[game.Outcome]int
	capped   int
	plies    stats.Sample
	material stats.Statistic
	games    []*GameResult
}

func newResults() *Results {
	return &Results{outcomes: map[game.Outcome]int{}}
}

func (r *Results) add(g *GameResult) {
	r.Lock()
	defer r.Unlock()
	r.outcomes[g.Outcome]++
	if g.Capped {
		r.capped++
	}
	r.plies.Push(float64(g.Plies))
	r.material.Push(float64(g.Material))
	r.games = append(r.games, g)
}

func (r *Results) NumGames() int {
	r.Lock()
	defer r.Unlock()
	return len(r.games)
}

func (r *Results) Count(o game.Outcome) int {
	r.Lock()
	defer r.Unlock()
	return r.outcomes[o]
}

func (r *Results) Games() []*GameResult {
	r.Lock()
	defer r.Unlock()
	return append([]*GameResult(nil), r.games...)
}

// Summary describes the results and draws a histogram of game lengths.
func (r *Results) Summary() string {
	r.Lock()
	defer r.Unlock()
	var sb strings.Builder
	n := len(r.games)
	fmt.Fprintf(&sb, "Games played: %d\n", n)
	if n == 0 {
		return sb.String()
	}
	pct := func(k int) float64 { return 100.0 * float64(k) / float64(n) }
	fmt.Fprintf(&sb, "White wins: %d (%.1f%%)\n", r.outcomes[game.WhiteWin], pct(r.outcomes[game.WhiteWin]))
	fmt.Fprintf(&sb, "Black wins: %d (%.1f%%)\n", r.outcomes[game.BlackWin], pct(r.outcomes[game.BlackWin]))
	fmt.Fprintf(&sb, "Draws: %d (%.1f%%), %d stopped at the ply cap\n",
		r.outcomes[game.Draw], pct(r.outcomes[game.Draw]), r.capped)
	fmt.Fprintf(&sb, "Game length (plies): %s\n", r.plies.Summary())
	fmt.Fprintf(&sb, "Final material (white - black): %s\n", r.material.Summary())
	distinct := len(lo.UniqBy(r.games, func(g *GameResult) uint64 { return g.Fingerprint }))
	fmt.Fprintf(&sb, "Distinct final positions: %d\n", distinct)
	sb.WriteString("\n")
	r.plies.FprintHistogram(&sb, 10)
	return sb.String()
}

type Job struct{}

// writeLines copies lines to w until the channel is closed. After the
// first write error it calls onErr and keeps draining, so that senders
// never block on a dead writer.
func writeLines(w io.Writer, header string, lines <-chan string, onErr func(error)) error {
	_, err := io.WriteString(w, header)
	if err != nil {
		onErr(err)
	}
	for line := range lines {
		if err != nil {
			continue
		}
		if _, err = io.WriteString(w, line); err != nil {
			onErr(err)
		}
	}
	return err
}

// GamesFilename is where the per-game log for a ply log at outFile goes.
func GamesFilename(outFile string) string {
	return strings.TrimSuffix(outFile, ".csv") + "-games.csv"
}

// StartCompVComp plays numGames games between the white and black bots
// on `threads` workers. Every ply is logged to outFile, every game to
// GamesFilename(outFile), and to the sqlite results database if one is
// configured. It blocks until all games are done or ctx is cancelled.
func StartCompVComp(ctx context.Context, cfg *config.Config, white, black BotSpec,
	numGames, threads int, outFile string) (*Results, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}

	logfile, err := os.Create(outFile)
	if err != nil {
		return nil, err
	}
	defer logfile.Close()
	gamefile, err := os.Create(GamesFilename(outFile))
	if err != nil {
		return nil, err
	}
	defer gamefile.Close()

	var store *ResultStore
	if dbPath := cfg.GetString(config.ConfigResultsDB); dbPath != "" {
		store, err = OpenResultStore(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	CVCCounter.Set(0)
	results := newResults()

	jobs := make(chan Job, 100)
	logChan := make(chan string, 100)
	gameChan := make(chan string, 10)

	// The writers run outside the errgroup so that they drain the
	// channels even after a worker fails. A failed write stops the
	// workers.
	ctx, stop := context.WithCancelCause(ctx)
	defer stop(nil)
	var writers errgroup.Group
	writers.Go(func() error { return writeLines(logfile, CSVHeader, logChan, stop) })
	writers.Go(func() error { return writeLines(gamefile, GamesCSVHeader, gameChan, stop) })

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- Job{}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		log.Info().Msg("Finished queueing all jobs.")
		return nil
	})

	for i := 1; i <= threads; i++ {
		g.Go(func() error {
			r, err := NewGameRunner(logChan, gameChan, cfg, white, black)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				if gctx.Err() != nil {
					continue
				}
				res, err := r.PlayGame()
				if err != nil {
					return err
				}
				results.add(res)
				if store != nil {
					if err := store.Record(gctx, res); err != nil {
						return err
					}
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	workErr := g.Wait()
	close(logChan)
	close(gameChan)
	writeErr := writers.Wait()
	log.Info().Int("games", results.NumGames()).Msg("All games finished.")
	if writeErr != nil {
		return results, fmt.Errorf("writing game logs: %w", writeErr)
	}
	return results, workErr
}
