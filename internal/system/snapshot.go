package system

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acimap/kernel/internal/core/event"
	coresys "github.com/acimap/kernel/internal/core/system"
	"github.com/acimap/kernel/internal/persist"
	"github.com/acimap/kernel/internal/sim"
)

const saveTimeout = 5 * time.Second

// Saver is the part of persist.SnapshotRepo the snapshot system writes to.
type Saver interface {
	SaveSnapshot(ctx context.Context, row persist.SnapshotRow) error
	SaveSolidified(ctx context.Context, runID uuid.UUID, events []event.TileSolidified) error
}

// SnapshotSystem periodically stores a summary of the world, plus every tile
// that solidified since the previous save. Phase 3 (Persist).
type SnapshotSystem struct {
	sim        *sim.Simulation
	saver      Saver
	runID      uuid.UUID
	log        *zap.Logger
	interval   uint64 // save every N ticks
	storeTiles bool

	tickCount  uint64
	lastSaved  uint64
	saved      bool
	solidified []event.TileSolidified
}

func NewSnapshotSystem(s *sim.Simulation, saver Saver, runID uuid.UUID, log *zap.Logger, intervalTicks uint64, storeTiles bool) *SnapshotSystem {
	if intervalTicks == 0 {
		intervalTicks = 1
	}
	sys := &SnapshotSystem{
		sim:        s,
		saver:      saver,
		runID:      runID,
		log:        log,
		interval:   intervalTicks,
		storeTiles: storeTiles,
	}
	event.Subscribe(s.Bus(), func(ev event.TileSolidified) {
		sys.solidified = append(sys.solidified, ev)
	})
	return sys
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.Save(ctx); err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
	}
}

// Save writes a snapshot now. Called for graceful shutdown so the final
// state is never lost. A tick that was already saved is not written again.
func (s *SnapshotSystem) Save(ctx context.Context) error {
	st := s.sim.Stats()
	if s.saved && st.Tick == s.lastSaved && len(s.solidified) == 0 {
		return nil
	}
	if err := s.saver.SaveSolidified(ctx, s.runID, s.solidified); err != nil {
		return err
	}
	s.solidified = s.solidified[:0]

	row := persist.BuildSnapshotRow(s.runID, st, s.sim.Grid(), s.storeTiles)
	if err := s.saver.SaveSnapshot(ctx, row); err != nil {
		return err
	}
	s.saved, s.lastSaved = true, st.Tick
	s.log.Debug("snapshot saved",
		zap.Uint64("tick", st.Tick),
		zap.Float64("air", st.Totals.Air()),
		zap.Int("working", st.Working))
	return nil
}
