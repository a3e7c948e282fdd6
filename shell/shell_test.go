package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/position"
	"github.com/domino14/checkers/treeio"
)

func testController(t *testing.T) *ShellController {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBlackBot, "")
	cfg.Set(config.ConfigSearchDepth, 2)
	cfg.Set(config.ConfigTreePath, t.TempDir())
	sc, err := newController(cfg, "")
	require.NoError(t, err)
	sc.out = &bytes.Buffer{}
	return sc
}

func run(t *testing.T, sc *ShellController, line string) string {
	t.Helper()
	r, err := sc.standardModeSwitch(line, nil)
	require.NoError(t, err, line)
	if r == nil {
		return ""
	}
	return r.message
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay 10 -file /path/to/log.csv",
			&shellcmd{"autoplay", []string{"10"}, map[string]string{"file": "/path/to/log.csv"}},
			nil},
		{"tree gen 3",
			&shellcmd{"tree", []string{"gen", "3"}, map[string]string{}},
			nil},
		{`position "8/8/8/8/8/8/8/w7 b 0 ; bot random"`,
			&shellcmd{"position", []string{"8/8/8/8/8/8/8/w7 b 0 ; bot random"}, map[string]string{}},
			nil,
		},
		{"autoplay 10 -white",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestPlayAndMoves(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	out := run(t, sc, "moves")
	is.True(strings.Contains(out, "  1: 20-31"))
	is.True(strings.Contains(out, "  7: 26-37"))

	out = run(t, sc, "moves 22")
	is.Equal(out, "  1: 22-31       2231\n  2: 22-33       2233")

	run(t, sc, "play 22-31")
	is.Equal(sc.game.SideToMove(), board.Black)
	run(t, sc, "play 5142")
	is.Equal(sc.game.Turn(), 2)

	_, err := sc.standardModeSwitch("play 2031", nil)
	is.True(errors.Is(err, game.ErrInvalidMove))
	_, err = sc.standardModeSwitch("play 22", nil)
	is.True(err != nil)

	out = run(t, sc, "show")
	is.True(strings.Contains(out, "Position: "+position.FromGame(sc.game)))
}

func TestAIAndBots(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	out := run(t, sc, "ai")
	is.True(strings.HasPrefix(out, "alphabeta plays "))
	is.Equal(sc.game.Turn(), 1)

	out = run(t, sc, "bot black minimax 1")
	is.Equal(out, "white: human\nblack: minimax")
	is.NoErr(sc.playBotTurns())
	is.Equal(sc.game.SideToMove(), board.White)
	is.Equal(sc.game.Turn(), 2)

	run(t, sc, "bot black human")
	is.Equal(sc.bots[board.Black], nil)
	_, err := sc.standardModeSwitch("bot green random", nil)
	is.True(err != nil)
}

func TestPositionCommand(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	is.Equal(run(t, sc, "position"), position.Start)

	run(t, sc, `position "8/8/5b2/8/3b4/2w5/8/8 b 3 ; bot random"`)
	is.Equal(sc.game.Halfmoves(), 3)
	is.Equal(sc.game.SideToMove(), board.Black)
	is.True(sc.bots[board.Black] != nil)

	_, err := sc.standardModeSwitch("position 8/8 w 0", nil)
	is.True(errors.Is(err, position.ErrBadPosition))
}

func TestTreeCommands(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	_, err := sc.standardModeSwitch("tree print", nil)
	is.Equal(err, errNoTree)

	out := run(t, sc, "tree gen 2")
	is.Equal(out, "Generated a tree of depth 2 with 57 nodes.")
	out = run(t, sc, "tree print")
	is.True(strings.HasPrefix(out, "(root)"))

	out = run(t, sc, "tree export opening")
	fn := filepath.Join(sc.config.GetString(config.ConfigTreePath), "opening") + treeio.Extension
	is.Equal(out, "Exported tree to "+fn)
	_, err = os.Stat(fn)
	is.NoErr(err)

	generated := sc.tree
	run(t, sc, "new")
	is.Equal(sc.tree, nil)
	out = run(t, sc, "tree import opening")
	is.Equal(out, "Imported a tree of depth 2 with 57 nodes.")
	is.True(sc.tree.Equal(generated))

	mm := run(t, sc, "tree search minimax")
	ab := run(t, sc, "tree search alphabeta")
	is.True(strings.HasPrefix(mm, "minimax: best <20-31 value: 0>"))
	is.True(strings.HasPrefix(ab, "alphabeta: best"))

	dot := filepath.Join(t.TempDir(), "tree.dot")
	run(t, sc, "tree dot "+dot)
	contents, err := os.ReadFile(dot)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(contents), "digraph"))

	_, err = sc.standardModeSwitch("tree import nosuchtree", nil)
	is.True(errors.Is(err, os.ErrNotExist))
}

func TestAutoplay(t *testing.T) {
	sc := testController(t)
	outFile := filepath.Join(t.TempDir(), "games.csv")
	out := run(t, sc, "autoplay 4 2 -white random -black alphabeta:1 -file "+outFile)
	assert.Contains(t, out, "random vs alphabeta:1")
	assert.Contains(t, out, "Games played: 4")

	out = run(t, sc, "autoplay analyze "+filepath.Join(filepath.Dir(outFile), "games-games.csv"))
	assert.Contains(t, out, "Games played: 4")

	_, err := sc.standardModeSwitch("autoplay lots", nil)
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	out := run(t, sc, "set")
	is.True(strings.Contains(out, "search-depth: 2"))
	run(t, sc, "set search-depth 3")
	is.Equal(sc.config.GetInt(config.ConfigSearchDepth), 3)
	_, err := sc.standardModeSwitch("set search-depth deep", nil)
	is.True(err != nil)
	_, err = sc.standardModeSwitch("set debug true", nil)
	is.True(err != nil)
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	script := filepath.Join(t.TempDir(), "game.lua")
	is.NoErr(os.WriteFile(script, []byte(`
checkers_new()
local r = checkers_play("2231")
assert(not string.find(r, "ERROR"), r)
r = checkers_play("2231")
assert(string.find(r, "ERROR") == 1, "replaying a move should fail")
local m = checkers_ai()
assert(string.len(m) == 4, m)
assert(checkers_outcome() == "in progress")
checkers_position("8/8/8/8/8/8/8/w7 b 0")
assert(checkers_outcome() == "white wins")
`), 0644))
	run(t, sc, "script "+script)
	is.Equal(sc.game.Outcome(), game.WhiteWin)
}

func TestHelpAndUnknown(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	is.True(strings.HasPrefix(run(t, sc, "help"), "Commands:"))
	is.True(strings.HasPrefix(run(t, sc, "help tree"), "tree gen"))
	is.True(strings.HasPrefix(run(t, sc, "help nope"), "There is no help text"))
	_, err := sc.standardModeSwitch("castle", nil)
	is.True(err != nil)
	_, err = sc.standardModeSwitch("exit", nil)
	is.Equal(err, errQuit)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := &ShellCompleter{}
	line := []rune("tr")
	out, n := c.Do(line, len(line))
	is.Equal(n, 2)
	is.Equal(out, [][]rune{[]rune("ee ")})

	line = []rune("bot white mini")
	out, _ = c.Do(line, len(line))
	is.Equal(out, [][]rune{[]rune("max ")})

	line = []rune("autoplay 3 -wh")
	out, _ = c.Do(line, len(line))
	is.Equal(out, [][]rune{[]rune("ite ")})
}

func TestCleanupClosesOnce(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBlackBot, "")
	cfg.Set(config.ConfigSearchLogPath, filepath.Join(t.TempDir(), "search.log"))
	sc, err := newController(cfg, "")
	is.NoErr(err)
	is.True(sc.searchLog != nil)

	sc.Cleanup()
	_, err = sc.searchLog.WriteString("late\n")
	is.True(errors.Is(err, os.ErrClosed))
	// a second call, as main makes after Loop returns, is harmless
	sc.Cleanup()
}
