// Package luaapi exposes the trail extension to Lua plugin scripts.
//
// The module registers a global `trail` table:
//
//	trail.setup{trail_length = 5, color = "#ff8800", ...}
//	trail.clear()
//	trail.clear_all()
//	local t = trail.get_trail()      -- or trail.get_trail(bufnr)
//	-- t is {{line = 20}, {line = 15}, ...}, newest first
package luaapi

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cursortrail/internal/color"
	"github.com/dshills/cursortrail/internal/config"
	"github.com/dshills/cursortrail/internal/extension"
	"github.com/dshills/cursortrail/internal/host"
)

// Module implements the trail Lua API module.
type Module struct {
	ext *extension.Extension
}

// New creates a module bound to an extension instance.
func New(ext *extension.Extension) *Module {
	return &Module{ext: ext}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "trail"
}

// Register registers the module into the Lua state.
func (m *Module) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "setup", L.NewFunction(m.setup))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "clear_all", L.NewFunction(m.clearAll))
	L.SetField(mod, "get_trail", L.NewFunction(m.getTrail))
	L.SetField(mod, "is_active", L.NewFunction(m.isActive))

	L.SetGlobal("trail", mod)
	return nil
}

// setup(config?) -> ok, err
// Applies configuration from a Lua table over the defaults.
func (m *Module) setup(L *lua.LState) int {
	cfg := config.Default()

	if L.GetTop() >= 1 {
		tbl := L.CheckTable(1)
		applyTable(L, tbl, &cfg)
	}

	if err := m.ext.Setup(cfg); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// clear() -> nil
// Clears the current buffer's trail.
func (m *Module) clear(L *lua.LState) int {
	m.ext.Clear()
	return 0
}

// clear_all() -> nil
// Clears every tracked buffer's trail.
func (m *Module) clearAll(L *lua.LState) int {
	m.ext.ClearAll()
	return 0
}

// get_trail(bufnr?) -> {{line = n}, ...}
// Returns the trail snapshot, newest first.
func (m *Module) getTrail(L *lua.LState) int {
	var positions = m.ext.GetTrail()
	if L.GetTop() >= 1 {
		positions = m.ext.GetTrail(host.BufferID(L.CheckInt(1)))
	}

	out := L.NewTable()
	for i, p := range positions {
		entry := L.NewTable()
		L.SetField(entry, "line", lua.LNumber(p.Line))
		out.RawSetInt(i+1, entry)
	}
	L.Push(out)
	return 1
}

// is_active() -> bool
func (m *Module) isActive(L *lua.LState) int {
	L.Push(lua.LBool(m.ext.Active()))
	return 1
}

// applyTable overlays recognized keys from a Lua table onto cfg. Unknown
// keys are ignored; type mismatches fall through to validation.
func applyTable(L *lua.LState, tbl *lua.LTable, cfg *config.Config) {
	if v := L.GetField(tbl, "trail_length"); v != lua.LNil {
		if n, ok := v.(lua.LNumber); ok {
			cfg.TrailLength = int(n)
		}
	}
	if v := L.GetField(tbl, "character"); v != lua.LNil {
		if s, ok := v.(lua.LString); ok {
			cfg.Character = string(s)
		}
	}
	if v := L.GetField(tbl, "debounce_ms"); v != lua.LNil {
		if n, ok := v.(lua.LNumber); ok {
			cfg.DebounceMS = int(n)
		}
	}
	if v := L.GetField(tbl, "active_buffer_only"); v != lua.LNil {
		cfg.ActiveBufferOnly = lua.LVAsBool(v)
	}
	if v := L.GetField(tbl, "trail_includes"); v != lua.LNil {
		if s, ok := v.(lua.LString); ok {
			cfg.TrailIncludes = config.TrailIncludes(s)
		}
	}
	if v := L.GetField(tbl, "excluded_buftypes"); v != lua.LNil {
		if t, ok := v.(*lua.LTable); ok {
			cfg.ExcludedBuftypes = stringList(t)
		}
	}
	if v := L.GetField(tbl, "excluded_filetypes"); v != lua.LNil {
		if t, ok := v.(*lua.LTable); ok {
			cfg.ExcludedFiletypes = stringList(t)
		}
	}
	if v := L.GetField(tbl, "color"); v != lua.LNil {
		switch c := v.(type) {
		case lua.LString:
			cfg.Color = color.Input{Name: string(c)}
		case *lua.LTable:
			hsl := &color.HSL{
				H: float64(lua.LVAsNumber(L.GetField(c, "h"))),
				S: float64(lua.LVAsNumber(L.GetField(c, "s"))),
				L: float64(lua.LVAsNumber(L.GetField(c, "l"))),
			}
			cfg.Color = color.Input{HSL: hsl}
		}
	}
}

func stringList(t *lua.LTable) []string {
	var out []string
	t.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}
