package automatic

import (
	"context"
	"database/sql"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/domino14/checkers/game"
)

const createGamesTable = `CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	white TEXT NOT NULL,
	black TEXT NOT NULL,
	outcome TEXT NOT NULL,
	capped INTEGER NOT NULL,
	plies INTEGER NOT NULL,
	material INTEGER NOT NULL,
	fingerprint TEXT NOT NULL,
	finished_at TIMESTAMP NOT NULL
)`

// ResultStore keeps autoplay results in a sqlite database.
type ResultStore struct {
	db *sql.DB
}

func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection serializes writes from the workers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createGamesTable); err != nil {
		db.Close()
		return nil, err
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func (s *ResultStore) Record(ctx context.Context, g *GameResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, white, black, outcome, capped, plies, material, fingerprint, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.White, g.Black, outcomeCode(g.Outcome), boolInt(g.Capped), g.Plies,
		g.Material, strconv.FormatUint(g.Fingerprint, 16), g.FinishedAt.UTC())
	return err
}

// OutcomeCounts returns the number of stored games per outcome for the
// given pairing.
func (s *ResultStore) OutcomeCounts(ctx context.Context, white, black string) (map[game.Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome, COUNT(*) FROM games WHERE white = ? AND black = ? GROUP BY outcome`,
		white, black)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := map[game.Outcome]int{}
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		o, err := parseOutcomeCode(code)
		if err != nil {
			return nil, err
		}
		counts[o] = n
	}
	return counts, rows.Err()
}
