package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/pfclarke/pickat/internal/launch"
)

// Logger is the logging surface the host and plugins use.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Host loads plugins and exposes the pickat Lua API to them.
//
// Plugins run once, at load time, to contribute tool registrations.
// Each plugin gets its own Lua state which is closed after its entry
// file returns, so no Lua code survives loading and the LState's
// single-goroutine constraint is trivially met.
type Host struct {
	launcher *launch.Launcher
	logger   Logger

	loaded []*Manifest
}

// NewHost creates a plugin host that registers tools into launcher.
func NewHost(launcher *launch.Launcher, logger Logger) *Host {
	return &Host{
		launcher: launcher,
		logger:   logger,
	}
}

// Loaded returns the manifests of successfully loaded plugins.
func (h *Host) Loaded() []*Manifest {
	out := make([]*Manifest, len(h.loaded))
	copy(out, h.loaded)
	return out
}

// LoadAll loads every plugin directory under dir, in name order.
// A broken plugin is logged and skipped; it never blocks the others.
func (h *Host) LoadAll(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read plugin dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.Load(filepath.Join(dir, name)); err != nil {
			if h.logger != nil {
				h.logger.Warnf("plugin %s: %v", name, err)
			}
		}
	}
	return nil
}

// Load loads a single plugin directory: validate the manifest, run the
// entry Lua file with the pickat API available, then tear the state down.
func (h *Host) Load(dir string) error {
	m, err := LoadManifest(dir)
	if err != nil {
		return err
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open only the safe subset of the standard libraries.
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}

	h.registerAPI(L, m)

	if err := L.DoFile(m.MainPath()); err != nil {
		h.launcher.UnregisterBySource(m.Name)
		return fmt.Errorf("run %s: %w", m.Main, err)
	}

	h.loaded = append(h.loaded, m)
	if h.logger != nil {
		h.logger.Debugf("plugin %s %s loaded", m.Name, m.Version)
	}
	return nil
}

// Unload removes all tool registrations contributed by a plugin.
func (h *Host) Unload(name string) int {
	for i, m := range h.loaded {
		if m.Name == name {
			h.loaded = append(h.loaded[:i], h.loaded[i+1:]...)
			break
		}
	}
	return h.launcher.UnregisterBySource(name)
}

// registerAPI installs the global pickat table.
func (h *Host) registerAPI(L *lua.LState, m *Manifest) {
	mod := L.NewTable()
	L.SetField(mod, "register_tool", L.NewFunction(h.luaRegisterTool(m)))
	L.SetField(mod, "log", L.NewFunction(h.luaLog(m)))
	L.SetField(mod, "plugin_name", lua.LString(m.Name))
	L.SetGlobal("pickat", mod)
}

// pickat.register_tool(name, command [, args])
func (h *Host) luaRegisterTool(m *Manifest) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)
		command := L.CheckString(2)

		var args []string
		if L.GetTop() >= 3 {
			tbl := L.CheckTable(3)
			tbl.ForEach(func(_, v lua.LValue) {
				args = append(args, lua.LVAsString(v))
			})
		}

		err := h.launcher.Register(launch.Tool{
			Name:    name,
			Command: command,
			Args:    args,
			Source:  m.Name,
		})
		if err != nil {
			L.RaiseError("register_tool: %v", err)
			return 0
		}
		return 0
	}
}

// pickat.log(level, message)
func (h *Host) luaLog(m *Manifest) lua.LGFunction {
	return func(L *lua.LState) int {
		level := L.CheckString(1)
		msg := L.CheckString(2)
		if h.logger == nil {
			return 0
		}
		switch level {
		case "debug":
			h.logger.Debugf("[%s] %s", m.Name, msg)
		case "warn":
			h.logger.Warnf("[%s] %s", m.Name, msg)
		case "error":
			h.logger.Errorf("[%s] %s", m.Name, msg)
		default:
			h.logger.Infof("[%s] %s", m.Name, msg)
		}
		return 0
	}
}
