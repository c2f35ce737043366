package script

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord/internal/command"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Commands is the command service scripts can extend and call.
type Commands interface {
	Register(name string, fn command.Func) error
	Invoke(name string, args ...any) error
	List() []string
}

// Engine runs Lua scripts against a keymap and a command registry.
type Engine struct {
	L *lua.LState

	keymap   *keymap.Keymap
	commands Commands
	logger   *slog.Logger

	closed bool
}

// NewEngine creates a sandboxed Lua state with the keys and command
// modules installed. A nil logger discards script output.
func NewEngine(km *keymap.Keymap, commands Commands, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	e := &Engine{
		L:        L,
		keymap:   km,
		commands: commands,
		logger:   logger,
	}
	e.installPrint()
	e.installKeys()
	e.installCommand()
	return e
}

// openSafeLibraries opens only the libraries scripts need.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile executes a Lua file.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	return e.doWithRecovery(path, func() error {
		return e.L.DoFile(path)
	})
}

// DoString executes a chunk of Lua code.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrClosed
	}
	return e.doWithRecovery("<string>", func() error {
		return e.L.DoString(code)
	})
}

func (e *Engine) doWithRecovery(source string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrScript, source, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScript, source, err)
	}
	return nil
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

// installPrint routes print to the logger.
func (e *Engine) installPrint() {
	e.L.SetGlobal("print", e.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		e.logger.Info(strings.Join(parts, "\t"), "source", "lua")
		return 0
	}))
}

func (e *Engine) installKeys() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"register":  e.keysRegister,
		"normalize": e.keysNormalize,
		"state":     e.keysState,
		"states":    e.keysStates,
	})
	e.L.SetGlobal("keys", mod)
}

func (e *Engine) installCommand() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"register": e.commandRegister,
		"invoke":   e.commandInvoke,
		"list":     e.commandList,
	})
	e.L.SetGlobal("command", mod)
}

// keys.register{state = {shortcut = "command" | function(seq) ... end}}
// Returns the number of entries that failed to register.
func (e *Engine) keysRegister(L *lua.LState) int {
	tbl := L.CheckTable(1)

	states := make(map[string][]keymap.Binding)
	tbl.ForEach(func(k, v lua.LValue) {
		state, ok := k.(lua.LString)
		if !ok {
			L.ArgError(1, "state names must be strings")
		}
		entries, ok := v.(*lua.LTable)
		if !ok {
			L.ArgError(1, fmt.Sprintf("state %q must be a table", string(state)))
		}
		states[string(state)] = e.bindings(L, string(state), entries)
	})

	failed := 0
	if err := e.keymap.RegisterKeys(states); err != nil {
		failed = len(unwrapAll(err))
		e.logger.Warn("script registered invalid shortcuts", "error", err)
	}
	L.Push(lua.LNumber(failed))
	return 1
}

func (e *Engine) bindings(L *lua.LState, state string, entries *lua.LTable) []keymap.Binding {
	var bindings []keymap.Binding
	entries.ForEach(func(k, v lua.LValue) {
		shortcut, ok := k.(lua.LString)
		if !ok {
			L.ArgError(1, fmt.Sprintf("shortcuts in %q must be strings", state))
		}
		switch action := v.(type) {
		case lua.LString:
			bindings = append(bindings, keymap.Bind(string(shortcut), keymap.Command(action)))
		case *lua.LFunction:
			bindings = append(bindings, keymap.Bind(string(shortcut), e.handler(action)))
		default:
			L.ArgError(1, fmt.Sprintf("%s %q: expected a command name or function, got %s", state, string(shortcut), v.Type()))
		}
	})
	sort.SliceStable(bindings, func(i, j int) bool {
		return bindings[i].Keys < bindings[j].Keys
	})
	return bindings
}

// handler wraps a Lua function as a key handler. Only a literal false
// declines.
func (e *Engine) handler(fn *lua.LFunction) keymap.Handler {
	return func(sequence string) bool {
		if e.closed {
			return false
		}
		results, err := e.call(fn, lua.LString(sequence))
		if err != nil {
			e.logger.Warn("lua key handler failed", "sequence", sequence, "error", err)
			return true
		}
		if len(results) > 0 && results[0] == lua.LFalse {
			return false
		}
		return true
	}
}

// call runs a Lua function in protected mode and collects its results.
func (e *Engine) call(fn *lua.LFunction, args ...lua.LValue) (results []lua.LValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrScript, r)
		}
	}()

	top := e.L.GetTop()
	e.L.Push(fn)
	for _, arg := range args {
		e.L.Push(arg)
	}
	if err := e.L.PCall(len(args), lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}

	n := e.L.GetTop() - top
	results = make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		results[i] = e.L.Get(top + i + 1)
	}
	e.L.Pop(n)
	return results, nil
}

func (e *Engine) keysNormalize(L *lua.LState) int {
	L.Push(lua.LString(e.keymap.Normalize(L.CheckString(1))))
	return 1
}

// keys.state([name]) returns the active state, switching first when a
// name is given.
func (e *Engine) keysState(L *lua.LState) int {
	if L.GetTop() >= 1 {
		e.keymap.SetState(L.CheckString(1))
	}
	L.Push(lua.LString(e.keymap.State()))
	return 1
}

func (e *Engine) keysStates(L *lua.LState) int {
	L.Push(stringsToTable(L, e.keymap.States()))
	return 1
}

// command.register(name, fn)
func (e *Engine) commandRegister(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	err := e.commands.Register(name, func(args ...any) error {
		if e.closed {
			return ErrClosed
		}
		values := make([]lua.LValue, len(args))
		for i, a := range args {
			values[i] = toLua(e.L, a)
		}
		_, err := e.call(fn, values...)
		return err
	})
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// command.invoke(name, ...) returns true, or false and an error message.
func (e *Engine) commandInvoke(L *lua.LState) int {
	name := L.CheckString(1)
	args := make([]any, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, toGo(L.Get(i)))
	}

	if err := e.commands.Invoke(name, args...); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) commandList(L *lua.LState) int {
	L.Push(stringsToTable(L, e.commands.List()))
	return 1
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var all []error
		for _, inner := range joined.Unwrap() {
			all = append(all, unwrapAll(inner)...)
		}
		return all
	}
	return []error{err}
}
