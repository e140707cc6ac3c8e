package system

import (
	"time"

	coresys "github.com/acimap/kernel/internal/core/system"
	"github.com/acimap/kernel/internal/sim"
)

// PhysicsSystem advances diffusion, object effects and AI once per tick.
// Phase 2 (Simulate).
type PhysicsSystem struct {
	sim   *sim.Simulation
	scale float64 // simulated seconds per wall second
}

func NewPhysicsSystem(s *sim.Simulation, timeScale float64) *PhysicsSystem {
	if timeScale <= 0 {
		timeScale = 1
	}
	return &PhysicsSystem{sim: s, scale: timeScale}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhaseSimulate }

func (s *PhysicsSystem) Update(dt time.Duration) {
	s.sim.Simulate(float32(dt.Seconds() * s.scale))
}

// MovementSystem walks characters along their paths between physics ticks.
// Phase 4 (Frame), driven by the frame ticker rather than the tick ticker.
type MovementSystem struct {
	sim   *sim.Simulation
	scale float64
}

func NewMovementSystem(s *sim.Simulation, timeScale float64) *MovementSystem {
	if timeScale <= 0 {
		timeScale = 1
	}
	return &MovementSystem{sim: s, scale: timeScale}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseFrame }

func (s *MovementSystem) Update(dt time.Duration) {
	s.sim.PerformFrameTick(float32(dt.Seconds() * s.scale))
}
