// Package script runs Lua macros against an editor. The interpreter is
// sandboxed: only the base, table, string, and math libraries are open,
// and the file and code loading primitives are removed. Macros reach
// the editor through a global "editor" module.
//
// Positions passed to the editor module are 0-based rune offsets,
// matching the Go document API.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/jsonforge/fileio"
)

// Editor is the surface a macro can drive. The facade implements it
// with an adapter so scripts share undo history and validation with
// interactive edits.
type Editor interface {
	Insert(position int, text string) error
	Delete(start, end int) error
	Replace(start, end int, text string) error
	Content() string
	Length() int

	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool

	Format(indent int) error
	Validate() (valid bool, message string)

	PathValue(path string) (any, bool)
	SetPathValue(path string, value any) error
	RemovePath(path string) error
}

// Engine owns one sandboxed Lua state bound to an editor.
//
// gopher-lua's LState is not goroutine-safe. The engine serializes Run
// calls with a mutex; a script runs to completion before the next one
// starts.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	editor Editor
	closed bool
}

// NewEngine creates a sandboxed engine bound to editor.
func NewEngine(editor Editor) (*Engine, error) {
	if editor == nil {
		return nil, errors.New("script: editor is nil")
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Code and file loading would let a macro escape the sandbox.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	e := &Engine{L: L, editor: editor}
	mod := L.SetFuncs(L.NewTable(), e.editorFuncs())
	L.SetGlobal("editor", mod)
	return e, nil
}

// editorFuncs builds the "editor" module. Mutating functions raise a
// Lua error on failure, which surfaces as the error returned by Run.
func (e *Engine) editorFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"insert": func(L *lua.LState) int {
			pos := L.CheckInt(1)
			text := L.CheckString(2)
			if err := e.editor.Insert(pos, text); err != nil {
				L.RaiseError("insert: %s", err.Error())
			}
			return 0
		},
		"delete": func(L *lua.LState) int {
			start := L.CheckInt(1)
			end := L.CheckInt(2)
			if err := e.editor.Delete(start, end); err != nil {
				L.RaiseError("delete: %s", err.Error())
			}
			return 0
		},
		"replace": func(L *lua.LState) int {
			start := L.CheckInt(1)
			end := L.CheckInt(2)
			text := L.CheckString(3)
			if err := e.editor.Replace(start, end, text); err != nil {
				L.RaiseError("replace: %s", err.Error())
			}
			return 0
		},
		"content": func(L *lua.LState) int {
			L.Push(lua.LString(e.editor.Content()))
			return 1
		},
		"length": func(L *lua.LState) int {
			L.Push(lua.LNumber(e.editor.Length()))
			return 1
		},
		"undo": func(L *lua.LState) int {
			L.Push(lua.LBool(e.editor.Undo() == nil))
			return 1
		},
		"redo": func(L *lua.LState) int {
			L.Push(lua.LBool(e.editor.Redo() == nil))
			return 1
		},
		"can_undo": func(L *lua.LState) int {
			L.Push(lua.LBool(e.editor.CanUndo()))
			return 1
		},
		"can_redo": func(L *lua.LState) int {
			L.Push(lua.LBool(e.editor.CanRedo()))
			return 1
		},
		"format": func(L *lua.LState) int {
			indent := L.OptInt(1, 2)
			if err := e.editor.Format(indent); err != nil {
				L.RaiseError("format: %s", err.Error())
			}
			return 0
		},
		"validate": func(L *lua.LState) int {
			valid, message := e.editor.Validate()
			L.Push(lua.LBool(valid))
			L.Push(lua.LString(message))
			return 2
		},
		"get": func(L *lua.LState) int {
			path := L.CheckString(1)
			v, ok := e.editor.PathValue(path)
			if !ok {
				L.Push(lua.LNil)
				L.Push(lua.LFalse)
				return 2
			}
			L.Push(ToLua(L, v))
			L.Push(lua.LTrue)
			return 2
		},
		"set": func(L *lua.LState) int {
			path := L.CheckString(1)
			value := ToGo(L.CheckAny(2))
			if err := e.editor.SetPathValue(path, value); err != nil {
				L.RaiseError("set: %s", err.Error())
			}
			return 0
		},
		"remove": func(L *lua.LState) int {
			path := L.CheckString(1)
			if err := e.editor.RemovePath(path); err != nil {
				L.RaiseError("remove: %s", err.Error())
			}
			return 0
		},
	}
}

// Run executes Lua source. Script errors, including editor failures
// raised inside the module, come back as the returned error.
func (e *Engine) Run(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	return e.recovered(func() error {
		return e.L.DoString(src)
	})
}

// RunFile reads and executes a Lua file.
func (e *Engine) RunFile(path string) error {
	src, err := fileio.Read(path)
	if err != nil {
		return err
	}
	return e.Run(src)
}

// recovered runs fn and converts a runtime panic into an error.
func (e *Engine) recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Closed reports whether the engine has been closed.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close releases the Lua state. Further Run calls return
// ErrEngineClosed. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}
