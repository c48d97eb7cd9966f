// Package script drives an editing session from a Lua script, for
// batch edits that would be tedious through the interactive prompts.
//
// Scripts run in a restricted Lua state: the base, string, table, and
// math libraries are open, but there is no io, os, or module loading.
// A script talks to the session only through the registered functions:
//
//	edit(pattern, occurrence, operation, replacement) -> timestamp
//	matches(pattern) -> { {start=, line=, text=}, ... }
//	text() -> current document
//	reconstruct(t) -> document at timestamp t
//	revert(t) -> document at timestamp t, discarding later commands
package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/Krish962/regex-text-versioning/internal/engine"
)

// RunFile executes the Lua script at path against the session.
func RunFile(session *engine.Session, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return runChunk(session, string(src), path)
}

// Run executes Lua source against the session. The name appears in Lua
// error messages.
func Run(session *engine.Session, source, name string) error {
	return runChunk(session, source, name)
}

func runChunk(session *engine.Session, source, name string) error {
	L := newState()
	defer L.Close()

	register(L, session)

	fn, err := L.LoadString(source)
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// newState builds a Lua state with only the safe standard libraries.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // must be first
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	// Base and package bring in loaders that reach the filesystem; drop
	// them and close off module search paths.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	return L
}
