package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	aibot "github.com/domino14/checkers/ai/bot"
	"github.com/domino14/checkers/automatic"
	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/gametree"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/position"
	"github.com/domino14/checkers/search"
	"github.com/domino14/checkers/treeio"
)

var errNoTree = errors.New("no tree; generate one with `tree gen` or load one with `tree import`")

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb)
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = game.NewGame()
	sc.tree = nil
	sc.treeGame = nil
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.game.ToDisplayText() + "\nPosition: " + position.FromGame(sc.game)), nil
}

func parseCoord(s string) (board.Coord, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '7' || s[1] < '0' || s[1] > '7' {
		return board.Coord{}, fmt.Errorf("%q is not a square; use row and column, like 22", s)
	}
	return board.Coord{Row: int(s[0] - '0'), Col: int(s[1] - '0')}, nil
}

func moveList(moves []*move.Move) string {
	if len(moves) == 0 {
		return "No legal moves."
	}
	var sb strings.Builder
	for i, m := range moves {
		fmt.Fprintf(&sb, "%3d: %-12s%s\n", i+1, m.ShortDescription(), m.Digits())
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(moveList(sc.game.LegalMoves())), nil
	}
	c, err := parseCoord(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(moveList(sc.game.LegalMovesForPiece(c))), nil
}

// findMove looks a move up among the legal moves. It takes the digit
// form or the display form ("22-31", "22x44x66").
func (sc *ShellController) findMove(s string) (*move.Move, error) {
	digits := strings.NewReplacer("-", "", "x", "").Replace(s)
	if _, err := move.FromDigits(digits, false); err != nil {
		if _, err := move.FromDigits(digits, true); err != nil {
			return nil, err
		}
	}
	m, ok := lo.Find(sc.game.LegalMoves(), func(m *move.Move) bool {
		return m.Digits() == digits
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrInvalidMove, s)
	}
	return m, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("play takes exactly one move, like 2231 or 22x44x66")
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	m, err := sc.findMove(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

// ai has the bot for the side to move play, or a fresh alpha-beta bot
// if that side has none.
func (sc *ShellController) ai(cmd *shellcmd) (*Response, error) {
	b := sc.bots[sc.game.SideToMove()]
	if b == nil {
		var err error
		b, err = aibot.New(aibot.AlphaBetaBot, sc.config.GetInt(config.ConfigSearchDepth))
		if err != nil {
			return nil, err
		}
	}
	m, err := aibot.Play(b, sc.game)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%v plays %s\n%s", b.Kind(), m.ShortDescription(), sc.game.ToDisplayText())), nil
}

func parseSide(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return board.White, nil
	case "black", "b":
		return board.Black, nil
	}
	return 0, fmt.Errorf("side must be white or black, got %q", s)
}

func (sc *ShellController) botDescription() string {
	var sb strings.Builder
	for _, side := range []board.Color{board.White, board.Black} {
		desc := "human"
		if b := sc.bots[side]; b != nil {
			desc = b.Kind().String()
		}
		fmt.Fprintf(&sb, "%s: %s\n", side, desc)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) bot(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.botDescription()), nil
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: bot <white|black> <random|minimax|alphabeta|human> [depth]")
	}
	side, err := parseSide(cmd.args[0])
	if err != nil {
		return nil, err
	}
	depth := sc.config.GetInt(config.ConfigSearchDepth)
	if len(cmd.args) > 2 {
		depth, err = strconv.Atoi(cmd.args[2])
		if err != nil {
			return nil, err
		}
	}
	if err := sc.setBot(side, cmd.args[1], depth); err != nil {
		return nil, err
	}
	return msg(sc.botDescription()), nil
}

func (sc *ShellController) position(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(position.FromGame(sc.game)), nil
	}
	// the position may have been given unquoted
	p, err := position.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.game = p.Game
	sc.tree = nil
	sc.treeGame = nil
	if k, ok := p.Opcodes[position.OpBot]; ok {
		depth := p.Depth(sc.config.GetInt(config.ConfigSearchDepth))
		if err := sc.setBot(sc.game.SideToMove(), k, depth); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) treePath(name string) (string, error) {
	dir := sc.config.GetString(config.ConfigTreePath)
	if dir == "" {
		return name, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func (sc *ShellController) treeCmd(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: tree <gen|print|export|import|search|dot> ...")
	}
	sub, rest := cmd.args[0], cmd.args[1:]
	switch sub {
	case "gen":
		depth := sc.config.GetInt(config.ConfigSearchDepth)
		if len(rest) > 0 {
			var err error
			depth, err = strconv.Atoi(rest[0])
			if err != nil {
				return nil, err
			}
		}
		tree, err := gametree.Expand(sc.game, nil, depth)
		if err != nil {
			return nil, err
		}
		sc.tree, sc.treeGame = tree, sc.game.Copy()
		return msg(fmt.Sprintf("Generated a tree of depth %d with %d nodes.", tree.Depth(), tree.NumNodes())), nil

	case "print":
		if sc.tree == nil {
			return nil, errNoTree
		}
		return msg(strings.TrimRight(sc.tree.String(), "\n")), nil

	case "export":
		if sc.tree == nil {
			return nil, errNoTree
		}
		if len(rest) != 1 {
			return nil, errors.New("usage: tree export <name>")
		}
		path, err := sc.treePath(rest[0])
		if err != nil {
			return nil, err
		}
		if err := treeio.Export(path, sc.tree); err != nil {
			return nil, err
		}
		return msg("Exported tree to " + path + treeio.Extension), nil

	case "import":
		if len(rest) != 1 {
			return nil, errors.New("usage: tree import <name>")
		}
		path, err := sc.treePath(rest[0])
		if err != nil {
			return nil, err
		}
		tree, err := treeio.Import(path)
		if err != nil {
			return nil, err
		}
		// an imported tree is taken to start from the current position
		sc.tree, sc.treeGame = tree, sc.game.Copy()
		return msg(fmt.Sprintf("Imported a tree of depth %d with %d nodes.", tree.Depth(), tree.NumNodes())), nil

	case "search":
		if sc.tree == nil {
			return nil, errNoTree
		}
		variant := search.VariantAlphaBeta
		if len(rest) > 0 {
			var err error
			variant, err = search.ParseVariant(rest[0])
			if err != nil {
				return nil, err
			}
		}
		s := search.NewSearcher(variant, sc.tree.Depth())
		res, err := s.Search(sc.treeGame, sc.tree)
		if err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("%v: best %v (visited %d of %d nodes)",
			variant, res, s.LastVisited(), sc.tree.NumNodes())), nil

	case "dot":
		if sc.tree == nil {
			return nil, errNoTree
		}
		if len(rest) != 1 {
			return nil, errors.New("usage: tree dot <file>")
		}
		f, err := os.Create(rest[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := gametree.WriteDot(f, sc.tree); err != nil {
			return nil, err
		}
		return msg("Wrote " + rest[0]), nil
	}
	return nil, fmt.Errorf("unknown tree command %q", sub)
}

func (sc *ShellController) defaultBotSpec(key string) string {
	if s := sc.config.GetString(key); s != "" && s != "human" {
		return s
	}
	return aibot.RandomBot.String()
}

// autoplay runs computer-vs-computer games:
//
//	autoplay <n> [threads] [-white spec] [-black spec] [-file path]
//	autoplay analyze <games-file>
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: autoplay <n> [threads], or autoplay analyze <file>")
	}
	if cmd.args[0] == "analyze" {
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: autoplay analyze <file>")
		}
		out, err := automatic.AnalyzeLogFile(cmd.args[1])
		if err != nil {
			return nil, err
		}
		return msg(out), nil
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("bad number of games %q", cmd.args[0])
	}
	threads := sc.config.GetInt(config.ConfigAutoplayThreads)
	if len(cmd.args) > 1 {
		threads, err = strconv.Atoi(cmd.args[1])
		if err != nil {
			return nil, err
		}
	}
	depth := sc.config.GetInt(config.ConfigSearchDepth)
	whiteStr := lo.CoalesceOrEmpty(cmd.options["white"], sc.defaultBotSpec(config.ConfigWhiteBot))
	blackStr := lo.CoalesceOrEmpty(cmd.options["black"], sc.defaultBotSpec(config.ConfigBlackBot))
	white, err := automatic.ParseBotSpec(whiteStr, depth)
	if err != nil {
		return nil, err
	}
	black, err := automatic.ParseBotSpec(blackStr, depth)
	if err != nil {
		return nil, err
	}
	outFile := lo.CoalesceOrEmpty(cmd.options["file"], filepath.Join(os.TempDir(), "autoplay.csv"))

	log.Info().Str("white", white.String()).Str("black", black.String()).
		Int("games", n).Int("threads", threads).Msg("starting-autoplay")
	res, err := automatic.StartCompVComp(context.Background(), sc.config, white, black, n, threads, outFile)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s vs %s\n%s\nPly log: %s\nGame log: %s",
		white, black, res.Summary(), outFile, automatic.GamesFilename(outFile))), nil
}

var settings = []string{config.ConfigSearchDepth, config.ConfigAutoplayThreads,
	config.ConfigAutoplayMaxPlies, config.ConfigTreePath, config.ConfigResultsDB}

func (sc *ShellController) settingsText() string {
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, key := range settings {
		fmt.Fprintf(&sb, "  %s: %v\n", key, sc.config.Get(key))
	}
	sb.WriteString(sc.botDescription())
	return sb.String()
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	opt := cmd.args[0]
	if !lo.Contains(settings, opt) {
		return nil, fmt.Errorf("no such option: %s", opt)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", opt, sc.config.Get(opt))), nil
	}
	val := cmd.args[1]
	switch opt {
	case config.ConfigSearchDepth, config.ConfigAutoplayThreads, config.ConfigAutoplayMaxPlies:
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s needs a non-negative number, got %q", opt, val)
		}
		sc.config.Set(opt, n)
	default:
		sc.config.Set(opt, val)
	}
	return msg(fmt.Sprintf("set %s to %v", opt, sc.config.Get(opt))), nil
}
