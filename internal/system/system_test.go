package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/acimap/kernel/internal/core/event"
	coresys "github.com/acimap/kernel/internal/core/system"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/persist"
	"github.com/acimap/kernel/internal/sim"
	"github.com/acimap/kernel/internal/world"
)

type fakeSaver struct {
	rows       []persist.SnapshotRow
	solidified []event.TileSolidified
	err        error
}

func (f *fakeSaver) SaveSnapshot(_ context.Context, row persist.SnapshotRow) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSaver) SaveSolidified(_ context.Context, _ uuid.UUID, events []event.TileSolidified) error {
	f.solidified = append(f.solidified, events...)
	return nil
}

type recordingHook struct{ times []float64 }

func (h *recordingHook) OnTick(now float64) error {
	h.times = append(h.times, now)
	return nil
}

func newSim(t *testing.T) *sim.Simulation {
	t.Helper()
	return sim.New(world.NewGrid(4, 4), objects.NewRegistry(), nil, nil)
}

func TestRunnerDrivesSimulation(t *testing.T) {
	s := newSim(t)
	hook := &recordingHook{}
	saver := &fakeSaver{}

	r := coresys.NewRunner()
	r.Register(NewSnapshotSystem(s, saver, uuid.New(), zap.NewNop(), 2, false))
	r.Register(NewPhysicsSystem(s, 2))
	r.Register(NewMovementSystem(s, 2))
	r.Register(NewScriptSystem(s, hook))
	r.Register(NewEventDispatchSystem(s.Bus()))

	for i := 0; i < 4; i++ {
		r.Tick(50 * time.Millisecond)
	}
	assert.Equal(t, uint64(4), s.Ticks())
	assert.InDelta(t, 0.4, s.Time(), 1e-6, "time scale doubles simulated time")
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.2, 0.3}, hook.times, 1e-6, "script runs before physics")

	require.Len(t, saver.rows, 2)
	assert.Equal(t, uint64(2), saver.rows[0].Tick)
	assert.Equal(t, uint64(4), saver.rows[1].Tick)

	r.TickPhase(coresys.PhaseFrame, 16*time.Millisecond)
	assert.Equal(t, uint64(4), s.Ticks(), "frames never advance physics")
}

func TestSnapshotCollectsSolidifiedTiles(t *testing.T) {
	s := newSim(t)
	saver := &fakeSaver{}
	snap := NewSnapshotSystem(s, saver, uuid.New(), zap.NewNop(), 1, true)
	dispatch := NewEventDispatchSystem(s.Bus())

	event.Emit(s.Bus(), event.TileSolidified{Tile: world.Coord{X: 1, Y: 2}, Tick: 1})
	dispatch.Flush()

	require.NoError(t, snap.Save(context.Background()))
	assert.Equal(t, []event.TileSolidified{{Tile: world.Coord{X: 1, Y: 2}, Tick: 1}}, saver.solidified)
	require.Len(t, saver.rows, 1)
	assert.Len(t, saver.rows[0].Tiles, 16)

	require.NoError(t, snap.Save(context.Background()))
	assert.Len(t, saver.rows, 1, "an unchanged tick is saved once")
}

func TestSnapshotErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := newSim(t)
	snap := NewSnapshotSystem(s, &fakeSaver{err: errors.New("db down")}, uuid.New(), zap.New(core), 1, false)

	snap.Update(50 * time.Millisecond)
	require.Equal(t, 1, logs.FilterMessage("snapshot failed").Len())
}

func TestLogEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	bus := event.NewBus()
	LogEvents(bus, zap.New(core))

	event.Emit(bus, event.WorkStarted{Character: 1, Building: 2})
	event.Emit(bus, event.WorkAbandoned{Character: 1, Building: 2})
	event.Emit(bus, event.PanicRunStarted{Character: 3})
	NewEventDispatchSystem(bus).Flush()

	assert.Equal(t, 1, logs.FilterMessage("work started").Len())
	assert.Equal(t, 1, logs.FilterMessage("work abandoned").Len())
	assert.Equal(t, 1, logs.FilterMessage("character fleeing").Len())
}
