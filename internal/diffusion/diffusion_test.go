package diffusion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/effect"
	"github.com/acimap/kernel/internal/world"
)

// uneven builds a small grid with walls, liquid and varied air.
func uneven() *world.Grid {
	g := world.NewGrid(8, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			t := g.At(x, y)
			t.Air.Nitrogen = 0.5 + 0.1*float32(x)
			t.Air.Oxygen = 0.3 - 0.02*float32(y)
			t.Air.Fumes = 0.01 * float32(x*y)
			t.GroundLevel = -0.1 * float32(x)
		}
	}
	g.At(3, 1).SetWall()
	g.At(3, 2).SetWall()
	g.At(3, 3).SetWall()
	g.At(6, 4).Liquids = world.Water(1.5)
	g.At(1, 4).Liquids = world.Lava(0.7)
	return g
}

type providers []effect.Provider

func (p providers) EachProvider(fn func(ecs.EntityID, effect.Provider)) {
	for i, pr := range p {
		fn(ecs.EntityID(i+1), pr)
	}
}

type fixed struct {
	levelers []effect.AirLeveler
	users    []effect.OxygenUser
	pushers  []effect.AirPusher
	liquids  []effect.LiquidLeveler
}

func (f fixed) AirLevelers() []effect.AirLeveler       { return f.levelers }
func (f fixed) OxygenUsers() []effect.OxygenUser       { return f.users }
func (f fixed) AirPushers() []effect.AirPusher         { return f.pushers }
func (f fixed) LiquidLevelers() []effect.LiquidLeveler { return f.liquids }

func TestAirDiffusionConservesMass(t *testing.T) {
	g := uneven()
	before := g.Totals()

	for i := 0; i < 200; i++ {
		diff := CalculateAirDiff(g, 0.05)
		var sum float64
		for _, d := range diff {
			sum += float64(d.Nitrogen + d.Oxygen + d.Fumes)
		}
		require.InDelta(t, 0, sum, 1e-4, "tick %d", i)
		ApplyAirDiff(g, diff)
	}

	after := g.Totals()
	assert.InDelta(t, before.Nitrogen, after.Nitrogen, 1e-3)
	assert.InDelta(t, before.Oxygen, after.Oxygen, 1e-3)
	assert.InDelta(t, before.Fumes, after.Fumes, 1e-3)
}

func TestAirDiffIsPureAndDeterministic(t *testing.T) {
	g := uneven()
	sum := g.Checksum()

	a := CalculateAirDiff(g, 0.05)
	b := CalculateAirDiff(g.Clone(), 0.05)
	assert.Equal(t, a, b)
	assert.Equal(t, sum, g.Checksum(), "calculation must not touch the grid")
}

func TestAirDiffIgnoresWalls(t *testing.T) {
	g := uneven()
	diff := CalculateAirDiff(g, 0.05)
	assert.Equal(t, world.AirData{}, diff[g.Index(3, 2)])

	// A uniform open grid has nothing to exchange under pressure, only
	// balanced equalizing trades.
	flat := world.NewGrid(4, 4)
	for _, d := range CalculateAirDiff(flat, 0.05) {
		assert.InDelta(t, 0, d.Total(), 1e-6)
	}
}

func TestAirFlowsTowardLowPressure(t *testing.T) {
	g := world.NewGrid(3, 1)
	g.At(0, 0).Air = world.AirData{Nitrogen: 1.58, Oxygen: 0.42}
	g.At(2, 0).Air = world.AirData{Nitrogen: 0.395, Oxygen: 0.105}

	ApplyAirDiff(g, CalculateAirDiff(g, 0.05))
	left, _ := g.At(0, 0).Pressure()
	right, _ := g.At(2, 0).Pressure()
	assert.Less(t, left, float32(2))
	assert.Greater(t, right, float32(0.5))
}

func TestEmptyTileStaysFinite(t *testing.T) {
	g := world.NewGrid(2, 1)
	g.At(0, 0).Air = world.AirData{}
	ApplyAirDiff(g, CalculateAirDiff(g, 0.05))
	a := g.At(0, 0).Air
	assert.False(t, math.IsNaN(float64(a.Total())), "NaN in empty tile")
	assert.Greater(t, a.Total(), float32(0))
}

func TestLiquidStaysNonNegative(t *testing.T) {
	g := world.NewGrid(5, 5)
	g.At(2, 2).Liquids = world.Water(0.5)
	g.At(2, 2).GroundLevel = 1
	g.At(0, 0).Liquids = world.Lava(0.3)
	g.At(0, 0).GroundLevel = 2

	for i := 0; i < 50; i++ {
		water := CalculateLiquidDiff(g, world.LiquidWater, 5)
		lava := CalculateLiquidDiff(g, world.LiquidLava, 5)
		ApplyLiquidDiff(g, water, lava)
		for _, tile := range g.Tiles() {
			require.GreaterOrEqual(t, tile.Liquids.Level, float32(0))
		}
	}
}

func TestLiquidOnlyFlowsDownhill(t *testing.T) {
	g := world.NewGrid(3, 1)
	g.At(1, 0).Liquids = world.Water(1)
	g.At(0, 0).GroundLevel = 1
	g.At(2, 0).GroundLevel = 0.5

	diff := CalculateLiquidDiff(g, world.LiquidWater, 0.05)
	assert.Zero(t, diff[0], "surface 1.0 is not lower than 1.0")
	assert.Greater(t, diff[2], float32(0))
	assert.InDelta(t, -diff[2], diff[1], 1e-7)
	assert.Zero(t, CalculateLiquidDiff(g, world.LiquidLava, 0.05)[2], "lava is computed separately")
}

func TestLiquidBelowMinimumDoesNotSpread(t *testing.T) {
	g := world.NewGrid(2, 1)
	g.At(0, 0).Liquids = world.Lava(0.09)
	g.At(1, 0).GroundLevel = -1
	for _, d := range CalculateLiquidDiff(g, world.LiquidLava, 1) {
		assert.Zero(t, d)
	}
}

func TestLiquidDoesNotFlowIntoFullTile(t *testing.T) {
	g := world.NewGrid(2, 1)
	g.At(0, 0).Liquids = world.Water(1)
	g.At(0, 0).GroundLevel = 10
	g.At(1, 0).Liquids = world.Water(world.MaxLiquidLevel)
	for _, d := range CalculateLiquidDiff(g, world.LiquidWater, 1) {
		assert.Zero(t, d)
	}
}

func TestWaterLavaCollision(t *testing.T) {
	g := world.NewGrid(2, 1)
	g.At(0, 0).Liquids = world.Water(0.5)
	g.At(0, 0).GroundLevel = 1

	water := []float32{0.3, 0}
	lava := []float32{1.0, 0}
	solid := ApplyLiquidDiff(g, water, lava)

	tile := g.At(0, 0)
	assert.Equal(t, world.LiquidLava, tile.Liquids.Kind)
	assert.InDelta(t, 0.2, tile.Liquids.Level, 1e-6)
	assert.InDelta(t, 1.2, tile.GroundLevel, 1e-6)
	assert.Equal(t, []world.Coord{{X: 0, Y: 0}}, solid)
	assert.True(t, g.At(1, 0).Liquids.IsNone())
}

func TestLiquidDrainsToNone(t *testing.T) {
	g := world.NewGrid(1, 1)
	g.At(0, 0).Liquids = world.Water(0.1)
	ApplyLiquidDiff(g, []float32{-0.5}, []float32{0})
	assert.True(t, g.At(0, 0).Liquids.IsNone())
	assert.Zero(t, g.At(0, 0).GroundLevel)
}

func TestLiquidDiffSizeMismatchPanics(t *testing.T) {
	g := world.NewGrid(2, 2)
	assert.Panics(t, func() { ApplyLiquidDiff(g, make([]float32, 3), make([]float32, 4)) })
	assert.Panics(t, func() { ApplyAirDiff(g, make(AirDiff, 1)) })
	assert.Panics(t, func() { ParamsFor(world.LiquidNone) })
}

func TestAirEffectorOrder(t *testing.T) {
	g := world.NewGrid(3, 3)
	src := providers{
		fixed{
			levelers: []effect.AirLeveler{{X: 1, Y: 1, Nitrogen: 0.5, Oxygen: 0.5}},
			users:    []effect.OxygenUser{{X: 1, Y: 1, ChangePerSec: 1}},
		},
		fixed{
			pushers: []effect.AirPusher{{X: 1, Y: 1, Direction: world.East, Amount: 1}},
		},
	}

	ApplyAirEffectors(g, src, 0.5)

	// Leveler, then 0.5 oxygen burnt, then half of everything pushed east.
	assert.InDelta(t, 0.25, g.At(1, 1).Air.Nitrogen, 1e-6)
	assert.InDelta(t, 0.0, g.At(1, 1).Air.Oxygen, 1e-6)
	assert.InDelta(t, 0.25, g.At(1, 1).Air.Fumes, 1e-6)
	assert.InDelta(t, 0.79+0.25, g.At(2, 1).Air.Nitrogen, 1e-6)
	assert.InDelta(t, 0.21, g.At(2, 1).Air.Oxygen, 1e-6)
	assert.InDelta(t, 0.25, g.At(2, 1).Air.Fumes, 1e-6)
}

func TestOxygenUserNeedsEnoughOxygen(t *testing.T) {
	g := world.NewGrid(1, 1)
	g.At(0, 0).Air = world.AirData{Nitrogen: 1, Oxygen: 0.05}
	ApplyAirEffectors(g, providers{fixed{users: []effect.OxygenUser{{ChangePerSec: 1}}}}, 0.1)
	assert.Equal(t, world.AirData{Nitrogen: 1, Oxygen: 0.05}, g.At(0, 0).Air)
}

func TestPusherNeedsGroundTarget(t *testing.T) {
	g := world.NewGrid(2, 1)
	g.At(1, 0).SetWall()
	before := g.At(0, 0).Air

	ApplyAirEffectors(g, providers{fixed{pushers: []effect.AirPusher{
		{X: 0, Y: 0, Direction: world.East, Amount: 1},
		{X: 0, Y: 0, Direction: world.West, Amount: 1},
		{X: 0, Y: 0, Direction: world.North, Amount: 1},
	}}}, 0.5)

	assert.Equal(t, before, g.At(0, 0).Air)
	assert.Equal(t, world.AirData{}, g.At(1, 0).Air)
}

func TestLevelersSkipWalls(t *testing.T) {
	g := world.NewGrid(2, 1)
	g.At(1, 0).SetWall()
	ApplyAirEffectors(g, providers{fixed{levelers: []effect.AirLeveler{{X: 1, Y: 0, Nitrogen: 1}}}}, 1)
	ApplyLiquidLevelers(g, providers{fixed{liquids: []effect.LiquidLeveler{
		{X: 0, Y: 0, Target: world.Lava(1.1)},
		{X: 1, Y: 0, Target: world.Water(1)},
	}}})
	assert.Equal(t, world.AirData{}, g.At(1, 0).Air)
	assert.True(t, g.At(1, 0).Liquids.IsNone())
	assert.Equal(t, world.Lava(1.1), g.At(0, 0).Liquids)
}
