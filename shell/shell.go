// Package shell is an interactive readline shell for playing checkers
// against the bots and poking at game trees.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	aibot "github.com/domino14/checkers/ai/bot"
	"github.com/domino14/checkers/board"
	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/gametree"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	config   *config.Config
	execPath string

	game *game.Game
	bots [2]aibot.Bot

	// the last generated or imported tree, and the position its root
	// stands for
	tree     *gametree.Node
	treeGame *game.Game

	searchLog *os.File
	closeOnce sync.Once
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates a shell with a readline instance. Bots are
// assigned from the white-bot and black-bot settings.
func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc, err := newController(cfg, execPath)
	if err != nil {
		panic(err)
	}
	sc.l, err = readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcheckers>\033[0m ",
		HistoryFile:     "/tmp/checkers_readline.tmp",
		AutoComplete:    &ShellCompleter{},
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.out = sc.l.Stderr()
	return sc
}

func newController(cfg *config.Config, execPath string) (*ShellController, error) {
	sc := &ShellController{
		out:      os.Stderr,
		config:   cfg,
		execPath: execPath,
		game:     game.NewGame(),
	}
	if p := cfg.GetString(config.ConfigSearchLogPath); p != "" {
		f, err := os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		sc.searchLog = f
	}
	depth := cfg.GetInt(config.ConfigSearchDepth)
	for side, key := range map[board.Color]string{
		board.White: config.ConfigWhiteBot,
		board.Black: config.ConfigBlackBot,
	} {
		kind := cfg.GetString(key)
		if kind == "" || kind == "human" {
			continue
		}
		if err := sc.setBot(side, kind, depth); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// setBot assigns a bot to a side; "human" takes it away.
func (sc *ShellController) setBot(side board.Color, kindStr string, depth int) error {
	if kindStr == "human" {
		sc.bots[side] = nil
		return nil
	}
	kind, err := aibot.ParseKind(kindStr)
	if err != nil {
		return err
	}
	var opts []aibot.Option
	if sc.searchLog != nil {
		opts = append(opts, aibot.WithLogStream(sc.searchLog))
	}
	b, err := aibot.New(kind, depth, opts...)
	if err != nil {
		return err
	}
	sc.bots[side] = b
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves", "gen":
		return sc.moves(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai":
		return sc.ai(cmd)
	case "bot":
		return sc.bot(cmd)
	case "tree":
		return sc.treeCmd(cmd)
	case "position", "pos":
		return sc.position(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	case "set":
		return sc.set(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(line))
	return nil, fmt.Errorf("unknown command %q; try help", cmd.cmd)
}

// playBotTurns lets the bots move for as long as one is assigned to the
// side to move.
func (sc *ShellController) playBotTurns() error {
	for sc.game.Playing() && sc.bots[sc.game.SideToMove()] != nil {
		side := sc.game.SideToMove()
		m, err := aibot.Play(sc.bots[side], sc.game)
		if err != nil {
			return err
		}
		sc.showMessage(fmt.Sprintf("%s (%v) plays %s", side, sc.bots[side].Kind(), m.ShortDescription()))
		sc.showMessage(sc.game.ToDisplayText())
	}
	return nil
}

// Execute runs a single command, for when the shell is started with
// arguments.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err == errQuit {
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

// Cleanup closes the readline instance and the search log. It is safe to
// call more than once.
func (sc *ShellController) Cleanup() {
	sc.closeOnce.Do(func() {
		if sc.l != nil {
			sc.l.Close()
		}
		if sc.searchLog != nil {
			sc.searchLog.Close()
		}
	})
}

// Loop reads commands until exit or EOF. The caller closes the shell with
// Cleanup.
func (sc *ShellController) Loop(sig chan os.Signal) {
	sc.showMessage(sc.game.ToDisplayText())
	for {
		if err := sc.playBotTurns(); err != nil {
			sc.showError(err)
		}
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err != nil {
			// EOF, or the instance was closed under us
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}
