package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("checkers_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand wraps a shell command as a Lua function. String arguments
// passed from Lua become the command's arguments.
func luaCommand(name string, fn func(*ShellController, *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		var args []string
		for i := 1; i <= L.GetTop(); i++ {
			args = append(args, L.ToString(i))
		}
		sc := getShell(L)
		r, err := fn(sc, &shellcmd{cmd: name, args: args, options: map[string]string{}})
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			return 0
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// Ai returns the move the bot played rather than the whole display.
func Ai(L *lua.LState) int {
	sc := getShell(L)
	if _, err := sc.ai(&shellcmd{cmd: "ai"}); err != nil {
		log.Err(err).Msg("error-executing-ai")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(sc.game.LastMove().Digits()))
	return 1
}

func Outcome(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LString(sc.game.Outcome().String()))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("checkers_shell", lsc)
	L.SetGlobal("checkers_new", L.NewFunction(luaCommand("new", (*ShellController).newGame)))
	L.SetGlobal("checkers_play", L.NewFunction(luaCommand("play", (*ShellController).play)))
	L.SetGlobal("checkers_show", L.NewFunction(luaCommand("show", (*ShellController).show)))
	L.SetGlobal("checkers_position", L.NewFunction(luaCommand("position", (*ShellController).position)))
	L.SetGlobal("checkers_ai", L.NewFunction(Ai))
	L.SetGlobal("checkers_outcome", L.NewFunction(Outcome))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
