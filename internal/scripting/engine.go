package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/acimap/kernel/internal/sim"
)

// Engine wraps a single gopher-lua VM that drives a scenario.
// Single-goroutine access only: hooks run in the script phase, never while
// the simulation is forking work.
type Engine struct {
	vm  *lua.LState
	sim *sim.Simulation
	log *zap.Logger
}

// NewEngine creates a VM with the acimap module bound to s.
func NewEngine(s *sim.Simulation, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, sim: s, log: log}
	mod := vm.SetFuncs(vm.NewTable(), e.exports())
	vm.SetGlobal("acimap", mod)
	vm.PreloadModule("acimap", func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	return e
}

// Close releases the VM.
func (e *Engine) Close() { e.vm.Close() }

// Load runs a script file, or every .lua file of a directory in name order.
func (e *Engine) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	if info.IsDir() {
		return e.loadDir(path)
	}
	return e.loadFile(path)
}

// LoadString runs a chunk of Lua source.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

func (e *Engine) loadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("load scripts %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.loadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// --- Hooks ---

// Setup calls the global setup() once the scenario is built.
func (e *Engine) Setup() error {
	return e.call("setup")
}

// OnTick calls the global on_tick(time) before each physics tick.
func (e *Engine) OnTick(now float64) error {
	return e.call("on_tick", lua.LNumber(now))
}

// HasHook reports whether the script defines the named global function.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// call invokes a global hook. A missing hook is not an error.
func (e *Engine) call(name string, args ...lua.LValue) error {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua hook error", zap.String("hook", name), zap.Error(err))
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}
