package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides tab completion for the shell.
type ShellCompleter struct{}

var commandNames = []string{
	"new", "show", "moves", "play", "ai", "bot", "tree", "position",
	"autoplay", "script", "set", "help", "exit",
}

// Arguments that can be completed, by command and argument position.
var argValues = map[string][][]string{
	"bot":  {{"white", "black"}, {"random", "minimax", "alphabeta", "human"}},
	"tree": {{"gen", "print", "export", "import", "search", "dot"}},
	"help": {{"tree", "autoplay", "script"}},
	"set":  {settings},
}

var optionNames = map[string][]string{
	"autoplay": {"-white", "-black", "-file"},
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	if !endsWithSpace && len(fields) > 0 {
		prefix = fields[len(fields)-1]
	}

	var completions []string
	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		completions = commandNames
	} else {
		cmd := fields[0]
		argIdx := len(fields) - 1
		if !endsWithSpace {
			argIdx--
		}
		if strings.HasPrefix(prefix, "-") {
			completions = optionNames[cmd]
		} else if vals := argValues[cmd]; argIdx < len(vals) {
			completions = vals[argIdx]
		} else if cmd == "tree" && argIdx == 1 && len(fields) > 1 && fields[1] == "search" {
			completions = []string{"minimax", "alphabeta"}
		}
	}

	var out [][]rune
	for _, comp := range completions {
		if strings.HasPrefix(comp, prefix) {
			out = append(out, []rune(comp[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}
