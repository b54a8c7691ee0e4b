package lua

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/linestack/internal/engine"
)

// SaveFunc writes the buffer to path.
type SaveFunc func(path string) error

// BufferModule implements the buf table over an engine.
type BufferModule struct {
	engine      *engine.Engine
	save        SaveFunc
	defaultPath string
}

// NewBufferModule creates a buf module. save may be nil, in which case
// buf.save raises an error.
func NewBufferModule(eng *engine.Engine, save SaveFunc, defaultPath string) *BufferModule {
	return &BufferModule{
		engine:      eng,
		save:        save,
		defaultPath: defaultPath,
	}
}

// Name returns the global the module is installed as.
func (m *BufferModule) Name() string {
	return "buf"
}

// Register installs the module into the Lua state.
func (m *BufferModule) Register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "replace", L.NewFunction(m.replace))
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))
	L.SetField(mod, "lines", L.NewFunction(m.lines))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "len", L.NewFunction(m.bufLen))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "save", L.NewFunction(m.saveFile))

	L.SetGlobal(m.Name(), mod)
}

// insert(n, text) -> number
// Returns the line the text landed on.
func (m *BufferModule) insert(L *lua.LState) int {
	n := L.CheckInt(1)
	text := L.CheckString(2)

	at, err := m.engine.Insert(n, text)
	if err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}

	L.Push(lua.LNumber(at))
	return 1
}

// delete(n)
func (m *BufferModule) delete(L *lua.LState) int {
	n := L.CheckInt(1)

	if err := m.engine.Delete(n); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// replace(n, text)
func (m *BufferModule) replace(L *lua.LState) int {
	n := L.CheckInt(1)
	text := L.CheckString(2)

	if err := m.engine.Replace(n, text); err != nil {
		L.RaiseError("replace: %v", err)
	}
	return 0
}

// undo() -> bool
func (m *BufferModule) undo(L *lua.LState) int {
	_, err := m.engine.Undo()
	if errors.Is(err, engine.ErrNothingToUndo) {
		L.Push(lua.LFalse)
		return 1
	}
	if err != nil {
		L.RaiseError("undo: %v", err)
		return 0
	}

	L.Push(lua.LTrue)
	return 1
}

// redo() -> bool
func (m *BufferModule) redo(L *lua.LState) int {
	_, err := m.engine.Redo()
	if errors.Is(err, engine.ErrNothingToRedo) {
		L.Push(lua.LFalse)
		return 1
	}
	if err != nil {
		L.RaiseError("redo: %v", err)
		return 0
	}

	L.Push(lua.LTrue)
	return 1
}

// lines() -> table
func (m *BufferModule) lines(L *lua.LState) int {
	lines := m.engine.Strings()
	tbl := L.CreateTable(len(lines), 0)
	for _, s := range lines {
		tbl.Append(lua.LString(s))
	}

	L.Push(tbl)
	return 1
}

// line(n) -> string
func (m *BufferModule) line(L *lua.LState) int {
	n := L.CheckInt(1)

	text, err := m.engine.Line(n)
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}

	L.Push(lua.LString(text))
	return 1
}

// len() -> number
func (m *BufferModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.engine.Len()))
	return 1
}

// clear()
func (m *BufferModule) clear(L *lua.LState) int {
	m.engine.Clear()
	return 0
}

// save([path])
func (m *BufferModule) saveFile(L *lua.LState) int {
	path := L.OptString(1, m.defaultPath)

	if m.save == nil {
		L.RaiseError("save: not available")
		return 0
	}
	if path == "" {
		L.ArgError(1, "no output path")
		return 0
	}
	if err := m.save(path); err != nil {
		L.RaiseError("save: %v", err)
	}
	return 0
}
