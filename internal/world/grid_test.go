package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbours(t *testing.T) {
	for _, tc := range []struct {
		name     string
		w, h     int
		x, y     int
		expected []Coord
	}{
		{
			name: "north-west corner", w: 10, h: 10, x: 0, y: 0,
			expected: []Coord{{0, 1}, {1, 1}, {1, 0}},
		},
		{
			name: "south-east corner", w: 10, h: 10, x: 9, y: 9,
			expected: []Coord{{8, 9}, {8, 8}, {9, 8}},
		},
		{
			name: "interior", w: 10, h: 10, x: 5, y: 5,
			expected: []Coord{{4, 4}, {4, 5}, {4, 6}, {5, 4}, {5, 6}, {6, 4}, {6, 5}, {6, 6}},
		},
		{
			name: "single row", w: 10, h: 1, x: 1, y: 0,
			expected: []Coord{{0, 0}, {2, 0}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(tc.w, tc.h)
			assert.ElementsMatch(t, tc.expected, g.Neighbours(tc.x, tc.y))
		})
	}
}

func TestOutOfRangePanics(t *testing.T) {
	g := NewGrid(4, 3)
	assert.Panics(t, func() { g.At(4, 0) })
	assert.Panics(t, func() { g.At(0, -1) })
	assert.Panics(t, func() { NewGrid(0, 3) })
	assert.NotPanics(t, func() { g.At(3, 2) })
}

func TestIndexRoundTrip(t *testing.T) {
	g := NewGrid(7, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			assert.Equal(t, Coord{x, y}, g.Coord(g.Index(x, y)))
		}
	}
}

func TestWallsCarryNoState(t *testing.T) {
	g := NewGrid(3, 3)
	g.At(1, 1).Liquids = Water(1)
	g.At(1, 1).SetWall()

	_, _, ok := g.At(1, 1).Ground()
	assert.False(t, ok)
	assert.Equal(t, AirData{}, g.At(1, 1).Air)
	assert.True(t, g.At(1, 1).Liquids.IsNone())

	g.At(1, 1).SetGround()
	air, liquids, ok := g.At(1, 1).Ground()
	require.True(t, ok)
	assert.Equal(t, DefaultAir(), *air)
	assert.True(t, liquids.IsNone())
}

func TestPressureRisesWithLiquid(t *testing.T) {
	air := DefaultAir()
	assert.InDelta(t, 1.0, air.Pressure(0), 1e-6)
	assert.InDelta(t, 1.5, air.Pressure(1), 1e-5)
	assert.InDelta(t, 1000.0, air.Pressure(MaxLiquidLevel), 1e-2)
	assert.InDelta(t, 0.21, air.OxygenFraction(), 1e-6)
}

func TestLiquidLevels(t *testing.T) {
	w := Water(1.5)
	assert.Equal(t, float32(1.5), w.Water())
	assert.Equal(t, float32(0), w.Lava())
	assert.Equal(t, float32(1.5), w.AnyLevel())
	assert.Equal(t, float32(0), NoLiquid().AnyLevel())

	kind, err := ParseLiquidKind("lava")
	require.NoError(t, err)
	assert.Equal(t, LiquidLava, kind)
	_, err = ParseLiquidKind("mercury")
	assert.Error(t, err)
}

func TestMapsReportNaNForWalls(t *testing.T) {
	g := NewGrid(3, 2)
	g.At(2, 1).SetWall()
	g.At(2, 1).GroundLevel = 0.5
	g.At(0, 0).Liquids = Lava(0.25)
	g.At(0, 0).GroundLevel = -1

	pressure := g.AirPressureMap()
	require.Len(t, pressure, 6)
	assert.True(t, math.IsNaN(float64(pressure[g.Index(2, 1)])))
	assert.InDelta(t, 1.0, pressure[g.Index(1, 0)], 1e-6)

	assert.True(t, math.IsNaN(float64(g.OxygenMap()[g.Index(2, 1)])))
	assert.True(t, math.IsNaN(float64(g.FumesMap()[g.Index(2, 1)])))
	assert.Equal(t, float32(0.25), g.LiquidMap(LiquidLava)[0])
	assert.Equal(t, float32(0), g.LiquidMap(LiquidWater)[0])

	surface := g.SurfaceLevelMap()
	assert.Equal(t, float32(-0.75), surface[0])
	assert.Equal(t, float32(0.5), surface[g.Index(2, 1)])
	assert.Equal(t, float32(0.5), g.GroundLevelMap()[g.Index(2, 1)])
}

func TestChecksumTracksState(t *testing.T) {
	a := NewGrid(5, 5)
	b := a.Clone()
	assert.Equal(t, a.Checksum(), b.Checksum())

	b.At(2, 2).Air.Fumes = 0.01
	assert.NotEqual(t, a.Checksum(), b.Checksum())
	assert.Equal(t, float32(0), a.At(2, 2).Air.Fumes, "clone must not share tiles")
}

func TestTotals(t *testing.T) {
	g := NewGrid(2, 2)
	g.At(0, 0).SetWall()
	g.At(1, 1).Liquids = Water(2)
	totals := g.Totals()
	assert.InDelta(t, 3.0, totals.Air(), 1e-6)
	assert.InDelta(t, 2.0, totals.Water, 1e-6)
	assert.Zero(t, totals.Lava)
}
