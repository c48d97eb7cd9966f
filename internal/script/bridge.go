package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/Krish962/regex-text-versioning/internal/engine"
	"github.com/Krish962/regex-text-versioning/internal/engine/match"
)

// register installs the session functions as globals on L.
func register(L *lua.LState, session *engine.Session) {
	L.SetGlobal("edit", L.NewFunction(fnEdit(session)))
	L.SetGlobal("matches", L.NewFunction(fnMatches(session)))
	L.SetGlobal("text", L.NewFunction(fnText(session)))
	L.SetGlobal("reconstruct", L.NewFunction(fnReconstruct(session)))
	L.SetGlobal("revert", L.NewFunction(fnRevert(session)))
}

func fnEdit(session *engine.Session) lua.LGFunction {
	return func(L *lua.LState) int {
		pattern := L.CheckString(1)
		occurrence := L.CheckInt(2)
		opName := L.CheckString(3)
		replacement := L.OptString(4, "")

		cmd, err := session.Edit(pattern, occurrence, engine.Operation(opName), replacement)
		if err != nil {
			L.RaiseError("edit: %s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(cmd.Timestamp))
		return 1
	}
}

func fnMatches(session *engine.Session) lua.LGFunction {
	return func(L *lua.LState) int {
		pattern := L.CheckString(1)

		found, err := session.Matches(pattern)
		if err != nil {
			L.RaiseError("matches: %s", err.Error())
			return 0
		}

		result := L.NewTable()
		for i, m := range found {
			entry := L.NewTable()
			entry.RawSetString("start", lua.LNumber(m.Start))
			entry.RawSetString("line", lua.LNumber(match.LineNumber(session.Current(), m.Start)))
			entry.RawSetString("text", lua.LString(m.Text))
			result.RawSetInt(i+1, entry)
		}
		L.Push(result)
		return 1
	}
}

func fnText(session *engine.Session) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LString(session.Current()))
		return 1
	}
}

func fnReconstruct(session *engine.Session) lua.LGFunction {
	return func(L *lua.LState) int {
		target := L.CheckInt64(1)

		text, err := session.ReconstructAt(target)
		if err != nil {
			L.RaiseError("reconstruct: %s", err.Error())
			return 0
		}
		L.Push(lua.LString(text))
		return 1
	}
}

func fnRevert(session *engine.Session) lua.LGFunction {
	return func(L *lua.LState) int {
		target := L.CheckInt64(1)

		text, err := session.RevertTo(target)
		if err != nil {
			L.RaiseError("revert: %s", err.Error())
			return 0
		}
		L.Push(lua.LString(text))
		return 1
	}
}
