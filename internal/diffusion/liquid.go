package diffusion

import (
	"fmt"
	"math"

	"github.com/acimap/kernel/internal/world"
)

// LiquidParams are the flow constants of one liquid kind.
type LiquidParams struct {
	SpreadRate        float32
	MinHeightToSpread float32
}

var (
	WaterParams = LiquidParams{SpreadRate: 0.01, MinHeightToSpread: 0.01}
	LavaParams  = LiquidParams{SpreadRate: 0.001, MinHeightToSpread: 0.1}
)

// transferCapDivisor bounds a single transfer to level/0.8.
const transferCapDivisor float32 = 0.8

// ParamsFor returns the constants of a liquid kind.
func ParamsFor(kind world.LiquidKind) LiquidParams {
	switch kind {
	case world.LiquidWater:
		return WaterParams
	case world.LiquidLava:
		return LavaParams
	}
	panic(fmt.Sprintf("diffusion: no flow parameters for %v", kind))
}

// CalculateLiquidDiff returns the level each tile gains or loses of one
// liquid kind this tick. Liquid only flows to neighbours whose surface is
// strictly lower and which are not already full. Other kinds are ignored.
func CalculateLiquidDiff(g *world.Grid, kind world.LiquidKind, dt float32) []float32 {
	params := ParamsFor(kind)
	diff := make([]float32, g.Len())
	tiles := g.Tiles()
	nbuf := make([]world.Coord, 0, 8)

	for i := range tiles {
		t := &tiles[i]
		if !t.IsGround() {
			continue
		}
		level := t.Liquids.LevelOf(kind)
		if level < params.MinHeightToSpread {
			continue
		}
		surface := t.GroundLevel + level
		limit := level / transferCapDivisor

		c := g.Coord(i)
		nbuf = g.AppendNeighbours(nbuf[:0], c.X, c.Y)
		for _, nc := range nbuf {
			ni := g.Index(nc.X, nc.Y)
			nt := &tiles[ni]
			if !nt.IsGround() {
				continue
			}
			nlevel := nt.Liquids.LevelOf(kind)
			nsurface := nt.GroundLevel + nlevel
			if nsurface >= surface || nlevel >= world.MaxLiquidLevel {
				continue
			}

			moved := float32(math.Sqrt(float64((surface-nsurface)*params.SpreadRate))) * dt
			if moved > limit {
				moved = limit
			}
			diff[ni] += moved
			diff[i] -= moved
		}
	}
	return diff
}

// ApplyLiquidDiff adds the water and lava deltas to every ground tile and
// clamps both at 0. Where water and lava meet, the tile keeps only the kind
// with more volume, holding the difference, and the ground rises by that same
// difference. It returns the tiles where water and lava met.
func ApplyLiquidDiff(g *world.Grid, water, lava []float32) []world.Coord {
	if len(water) != g.Len() || len(lava) != g.Len() {
		panic(fmt.Sprintf("diffusion: liquid diffs of %d/%d tiles for a grid of %d", len(water), len(lava), g.Len()))
	}
	var solidified []world.Coord
	tiles := g.Tiles()
	for i := range tiles {
		t := &tiles[i]
		if !t.IsGround() {
			continue
		}
		w := t.Liquids.Water() + water[i]
		if w < 0 {
			w = 0
		}
		l := t.Liquids.Lava() + lava[i]
		if l < 0 {
			l = 0
		}

		if w == 0 && l == 0 {
			t.Liquids = world.NoLiquid()
			continue
		}
		d := w - l
		if w > 0 && l > 0 {
			t.GroundLevel += float32(math.Abs(float64(d)))
			solidified = append(solidified, g.Coord(i))
		}
		if d >= 0 {
			t.Liquids = world.Water(d)
		} else {
			t.Liquids = world.Lava(-d)
		}
	}
	return solidified
}
