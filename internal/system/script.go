package system

import (
	"time"

	coresys "github.com/acimap/kernel/internal/core/system"
	"github.com/acimap/kernel/internal/sim"
)

// TickHook is the part of the script engine the tick loop needs.
type TickHook interface {
	OnTick(now float64) error
}

// ScriptSystem calls the scenario script before each physics tick.
// Phase 1 (Script). Hook errors are logged by the engine and do not stop the
// simulation.
type ScriptSystem struct {
	sim  *sim.Simulation
	hook TickHook
}

func NewScriptSystem(s *sim.Simulation, hook TickHook) *ScriptSystem {
	return &ScriptSystem{sim: s, hook: hook}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseScript }

func (s *ScriptSystem) Update(_ time.Duration) {
	_ = s.hook.OnTick(s.sim.Time())
}
