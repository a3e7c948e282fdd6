package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/stats"
)

// AnalyzeLogFile analyzes the given per-game CSV file and spits out a
// bunch of statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,white,black,outcome,plies,material

	plies := &stats.Statistic{}
	material := &stats.Statistic{}
	whiteScore := &stats.Statistic{}
	outcomes := map[game.Outcome]int{}
	var whiteName, blackName string
	gamesPlayed := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		if len(record) != 6 {
			return "", fmt.Errorf("line %d: expected 6 fields, got %d", gamesPlayed+2, len(record))
		}
		whiteName, blackName = record[1], record[2]
		o, err := parseOutcomeCode(record[3])
		if err != nil {
			return "", err
		}
		p, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		m, err := strconv.Atoi(record[5])
		if err != nil {
			return "", err
		}
		outcomes[o]++
		plies.Push(float64(p))
		material.Push(float64(m))
		switch o {
		case game.WhiteWin:
			whiteScore.Push(1)
		case game.BlackWin:
			whiteScore.Push(0)
		default:
			whiteScore.Push(0.5)
		}
		gamesPlayed++
	}

	out := fmt.Sprintf("Games played: %d\n", gamesPlayed)
	if gamesPlayed == 0 {
		return out, nil
	}
	lo, hi := whiteScore.ConfidenceInterval(95)
	out += fmt.Sprintf("White (%v) wins: %d  Black (%v) wins: %d  Draws: %d\n",
		whiteName, outcomes[game.WhiteWin], blackName, outcomes[game.BlackWin], outcomes[game.Draw])
	out += fmt.Sprintf("White score: %.3f (95%% CI %.3f - %.3f)\n", whiteScore.Mean(), lo, hi)
	out += fmt.Sprintf("Mean plies: %.2f  Stdev: %.2f\n", plies.Mean(), plies.Stdev())
	out += fmt.Sprintf("Mean final material: %.2f  Stdev: %.2f\n", material.Mean(), material.Stdev())
	return out, nil
}
