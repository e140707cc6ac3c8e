package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/acimap/kernel/internal/core/event"
	coresys "github.com/acimap/kernel/internal/core/system"
)

// EventDispatchSystem delivers the events emitted during the previous tick.
// Phase 0 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// Flush delivers everything still pending, including events emitted by the
// handlers themselves. Used at shutdown.
func (s *EventDispatchSystem) Flush() {
	for i := 0; i < 8 && s.bus.Pending() > 0; i++ {
		s.Update(0)
	}
}

// LogEvents subscribes log lines for every simulation event.
func LogEvents(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.WorkStarted) {
		log.Debug("work started",
			zap.Uint32("character", uint32(ev.Character)),
			zap.Uint32("building", uint32(ev.Building)),
			zap.Int("workspot", ev.Workspot))
	})
	event.Subscribe(bus, func(ev event.WorkspotClaimLost) {
		log.Debug("workspot claim lost",
			zap.Uint32("character", uint32(ev.Character)),
			zap.Uint32("building", uint32(ev.Building)),
			zap.Int("workspot", ev.Workspot))
	})
	event.Subscribe(bus, func(ev event.WorkAbandoned) {
		log.Info("work abandoned",
			zap.Uint32("character", uint32(ev.Character)),
			zap.Uint32("building", uint32(ev.Building)),
			zap.Int("workspot", ev.Workspot))
	})
	event.Subscribe(bus, func(ev event.PanicRunStarted) {
		log.Info("character fleeing",
			zap.Uint32("character", uint32(ev.Character)),
			zap.Int("from_x", ev.From.X), zap.Int("from_y", ev.From.Y),
			zap.Int("to_x", ev.To.X), zap.Int("to_y", ev.To.Y))
	})
	event.Subscribe(bus, func(ev event.TileSolidified) {
		log.Debug("tile solidified",
			zap.Uint64("tick", ev.Tick),
			zap.Int("x", ev.Tile.X), zap.Int("y", ev.Tile.Y))
	})
}
