// Package diffusion computes and applies the per-tick exchange of air and
// liquids between neighbouring tiles.
//
// The Calculate functions only read the grid and can run concurrently with
// each other. The Apply functions mutate it and must run alone.
package diffusion

import (
	"fmt"
	"math"

	"github.com/acimap/kernel/internal/world"
)

const (
	// PressureSpreadRate scales bulk flow from high to low pressure.
	PressureSpreadRate float32 = 0.01
	// DiffusionSpreadRate scales the equalizing trade of each gas.
	DiffusionSpreadRate float32 = 0.05
)

// AirDiff holds one delta per tile in grid order.
type AirDiff []world.AirData

func fractions(a world.AirData) (n, o, f float32) {
	total := a.Total()
	if total <= 0 {
		return 0, 0, 0
	}
	return a.Nitrogen / total, a.Oxygen / total, a.Fumes / total
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CalculateAirDiff returns the air each ground tile gains or loses this tick.
// Whatever one tile gives, its neighbour receives, so the deltas sum to zero.
func CalculateAirDiff(g *world.Grid, dt float32) AirDiff {
	diff := make(AirDiff, g.Len())
	tiles := g.Tiles()
	nbuf := make([]world.Coord, 0, 8)

	for i := range tiles {
		t := &tiles[i]
		if !t.IsGround() {
			continue
		}
		air := t.Air
		pressure := air.Pressure(t.Liquids.AnyLevel())
		nf, of, ff := fractions(air)

		c := g.Coord(i)
		nbuf = g.AppendNeighbours(nbuf[:0], c.X, c.Y)
		for _, nc := range nbuf {
			ni := g.Index(nc.X, nc.Y)
			nt := &tiles[ni]
			if !nt.IsGround() {
				continue
			}
			nair := nt.Air
			npressure := nair.Pressure(nt.Liquids.AnyLevel())

			// Equalizing trade: each gas moves toward this tile's share of the
			// neighbour's pressure, never more than an eighth of our stock.
			traded := world.AirData{
				Nitrogen: clamp(nf*npressure, -nair.Nitrogen, air.Nitrogen/8) * DiffusionSpreadRate * dt,
				Oxygen:   clamp(of*npressure, -nair.Oxygen, air.Oxygen/8) * DiffusionSpreadRate * dt,
				Fumes:    clamp(ff*npressure, -nair.Fumes, air.Fumes/8) * DiffusionSpreadRate * dt,
			}
			transfer(diff, i, ni, traded)

			if npressure < pressure {
				flow := float32(math.Sqrt(float64((pressure-npressure)*PressureSpreadRate))) * dt
				if limit := pressure / 8; flow > limit {
					flow = limit
				}
				transfer(diff, i, ni, world.AirData{
					Nitrogen: flow * nf,
					Oxygen:   flow * of,
					Fumes:    flow * ff,
				})
			}
		}
	}
	return diff
}

func transfer(diff AirDiff, from, to int, amount world.AirData) {
	diff[to].Nitrogen += amount.Nitrogen
	diff[to].Oxygen += amount.Oxygen
	diff[to].Fumes += amount.Fumes
	diff[from].Nitrogen -= amount.Nitrogen
	diff[from].Oxygen -= amount.Oxygen
	diff[from].Fumes -= amount.Fumes
}

// ApplyAirDiff adds the deltas to every ground tile and clamps each gas at 0.
func ApplyAirDiff(g *world.Grid, diff AirDiff) {
	if len(diff) != g.Len() {
		panic(fmt.Sprintf("diffusion: air diff of %d tiles for a grid of %d", len(diff), g.Len()))
	}
	tiles := g.Tiles()
	for i := range tiles {
		t := &tiles[i]
		if !t.IsGround() {
			continue
		}
		t.Air.Nitrogen += diff[i].Nitrogen
		t.Air.Oxygen += diff[i].Oxygen
		t.Air.Fumes += diff[i].Fumes
		t.Air.ClampNonNegative()
	}
}
