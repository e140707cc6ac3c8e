package objects

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/effect"
	"github.com/acimap/kernel/internal/world"
)

func TestVentilatorWorkspotsTurnWithFacing(t *testing.T) {
	north := NewVentilator(10, 5, world.North)
	require.Len(t, north.Workspots, 2)
	assert.Equal(t, mgl32.Vec2{9.5, 5.5}, north.Workspots[0].Location)
	assert.Equal(t, mgl32.Vec2{11.5, 5.5}, north.Workspots[1].Location)

	east := NewVentilator(10, 5, world.East)
	assert.InDelta(t, 10.5, east.Workspots[0].Location.X(), 1e-6)
	assert.InDelta(t, 4.5, east.Workspots[0].Location.Y(), 1e-6)
	assert.InDelta(t, 10.5, east.Workspots[1].Location.X(), 1e-6)
	assert.InDelta(t, 6.5, east.Workspots[1].Location.Y(), 1e-6)
}

func TestWorkspotLifecycle(t *testing.T) {
	b := NewVentilator(0, 0, world.North)
	alice := IDOf[Character](7)
	bob := IDOf[Character](8)

	assert.ErrorIs(t, b.StartWork(0, alice), ErrNotClaimed)
	require.NoError(t, b.Claim(0, alice))
	assert.ErrorIs(t, b.Claim(0, bob), ErrWorkspotTaken)
	assert.ErrorIs(t, b.StartWork(0, bob), ErrNotClaimed)
	assert.ErrorIs(t, b.Release(0, bob), ErrNotClaimed)
	assert.ErrorIs(t, b.Claim(2, bob), ErrNoSuchWorkspot)
	assert.ErrorIs(t, b.Release(-1, bob), ErrNoSuchWorkspot)

	require.NoError(t, b.StartWork(0, alice))
	assert.Equal(t, Working, b.Workspots[0].Occupation)
	assert.NoError(t, b.StartWork(0, alice))
	assert.Equal(t, 1, b.WorkingCount())

	require.NoError(t, b.Release(0, alice))
	assert.True(t, b.Workspots[0].IsOpen())
	assert.True(t, b.Workspots[0].Character.IsZero())
}

func TestVentilatorPushScalesWithWorkers(t *testing.T) {
	b := NewVentilator(3, 4, world.West)
	assert.Empty(t, b.AirPushers())
	assert.Empty(t, b.AirLevelers())
	assert.Empty(t, b.OxygenUsers())

	for i := range b.Workspots {
		require.NoError(t, b.Claim(i, IDOf[Character](ecs.EntityID(i+1))))
		require.NoError(t, b.StartWork(i, IDOf[Character](ecs.EntityID(i+1))))
	}
	assert.Equal(t, []effect.AirPusher{{X: 3, Y: 4, Direction: world.West, Amount: 2}}, b.AirPushers())
}

func TestEnvironmentObjectProvidesOwnKindOnly(t *testing.T) {
	o := NewAirPusher(1, 2, world.South, 0.5)
	assert.Equal(t, []effect.AirPusher{{X: 1, Y: 2, Direction: world.South, Amount: 0.5}}, o.AirPushers())
	assert.Empty(t, o.AirLevelers())
	assert.Empty(t, o.OxygenUsers())
	assert.Empty(t, o.LiquidLevelers())
	x, y := o.Position()
	assert.Equal(t, [2]int{1, 2}, [2]int{x, y})

	l := NewLiquidLeveler(4, 4, world.Lava(1.1))
	assert.Equal(t, world.Lava(1.1), l.LiquidLevelers()[0].Target)
	assert.Equal(t, "liquid_leveler", l.Kind.String())
}

func TestPathLength(t *testing.T) {
	p := Path{Points: []mgl32.Vec2{{0, 0}, {3, 4}, {3, 5}}}
	assert.InDelta(t, 6.0, p.TotalLength(), 1e-6)
	assert.Equal(t, mgl32.Vec2{3, 5}, p.End())

	single := Path{Points: []mgl32.Vec2{{1, 1}}}
	assert.Zero(t, single.TotalLength())
}

func TestCharacterGoIdle(t *testing.T) {
	c := NewCharacter(mgl32.Vec2{2.9, 0.1}, 1, []WorkGoal{WorkAtVentilation})
	c.Goal = WorkGoalOf(WorkAtVentilation)
	c.Task = WorkAtSpotTask(IDOf[Building](3), 1)
	c.Path = &Path{}
	c.GoIdle()
	assert.Equal(t, IdleGoal(), c.Goal)
	assert.Equal(t, TaskIdle, c.Task.Kind)
	assert.Nil(t, c.Path)

	x, y := c.Tile()
	assert.Equal(t, [2]int{2, 0}, [2]int{x, y})
	assert.Equal(t, "work:work_at_ventilation", WorkGoalOf(WorkAtVentilation).String())
}
