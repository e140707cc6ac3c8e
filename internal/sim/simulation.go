// Package sim advances the world: diffusion, object effects and AI per
// simulation tick, movement per rendered frame.
package sim

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/acimap/kernel/internal/ai"
	"github.com/acimap/kernel/internal/core/event"
	"github.com/acimap/kernel/internal/diffusion"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/world"
)

// Simulation owns the grid and the objects living on it. The grid is only
// mutated inside Simulate, after all concurrent calculations have finished.
// Simulate and PerformFrameTick must not be called concurrently.
type Simulation struct {
	grid    *world.Grid
	objects *objects.Registry
	planner *ai.Planner
	bus     *event.Bus
	log     *zap.Logger

	now   float64
	ticks uint64
}

// New wires a simulation around an existing grid and registry. bus and log
// may be nil.
func New(grid *world.Grid, reg *objects.Registry, bus *event.Bus, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	return &Simulation{
		grid:    grid,
		objects: reg,
		planner: ai.NewPlanner(grid, reg, bus, log.Named("ai")),
		bus:     bus,
		log:     log,
	}
}

func (s *Simulation) Grid() *world.Grid          { return s.grid }
func (s *Simulation) Objects() *objects.Registry { return s.objects }
func (s *Simulation) Planner() *ai.Planner       { return s.planner }
func (s *Simulation) Bus() *event.Bus            { return s.bus }

// Time is the simulated time in seconds.
func (s *Simulation) Time() float64 { return s.now }

// Ticks is the number of completed Simulate calls.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Simulate advances the world by dt seconds.
//
// Air, water and lava diffusion and the AI decisions are calculated
// concurrently against the same pre-tick state. Once all four are done the
// results are applied in a fixed order: air and air effectors, then liquids
// and liquid levelers, then AI changes.
func (s *Simulation) Simulate(dt float32) {
	var (
		airDiff   diffusion.AirDiff
		waterDiff []float32
		lavaDiff  []float32
		changes   []ai.Change
		g         errgroup.Group
	)
	g.Go(func() error {
		airDiff = diffusion.CalculateAirDiff(s.grid, dt)
		return nil
	})
	g.Go(func() error {
		waterDiff = diffusion.CalculateLiquidDiff(s.grid, world.LiquidWater, dt)
		return nil
	})
	g.Go(func() error {
		lavaDiff = diffusion.CalculateLiquidDiff(s.grid, world.LiquidLava, dt)
		return nil
	})
	g.Go(func() error {
		changes = s.planner.CalculateChanges()
		return nil
	})
	_ = g.Wait()

	diffusion.ApplyAirDiff(s.grid, airDiff)
	diffusion.ApplyAirEffectors(s.grid, s.objects, dt)

	solidified := diffusion.ApplyLiquidDiff(s.grid, waterDiff, lavaDiff)
	diffusion.ApplyLiquidLevelers(s.grid, s.objects)
	for _, c := range solidified {
		event.Emit(s.bus, event.TileSolidified{Tile: c, Tick: s.ticks})
	}

	s.planner.Apply(changes)

	s.now += float64(dt)
	s.ticks++
}

// PerformFrameTick moves characters along their paths by dt seconds. It
// does not advance the simulation clock.
func (s *Simulation) PerformFrameTick(dt float32) {
	s.planner.Move(dt)
}
