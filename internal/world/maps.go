package world

import "math"

var nan = float32(math.NaN())

// collect builds a full-grid row-major map, NaN for walls.
func (g *Grid) collect(fn func(t *Tile) float32) []float32 {
	out := make([]float32, len(g.tiles))
	for i := range g.tiles {
		t := &g.tiles[i]
		if t.Type != TileGround {
			out[i] = nan
			continue
		}
		out[i] = fn(t)
	}
	return out
}

// AirPressureMap returns the pressure of every tile.
func (g *Grid) AirPressureMap() []float32 {
	return g.collect(func(t *Tile) float32 { return t.Air.Pressure(t.Liquids.AnyLevel()) })
}

// OxygenMap returns the oxygen fraction of every tile.
func (g *Grid) OxygenMap() []float32 {
	return g.collect(func(t *Tile) float32 { return t.Air.OxygenFraction() })
}

// FumesMap returns the fumes fraction of every tile.
func (g *Grid) FumesMap() []float32 {
	return g.collect(func(t *Tile) float32 { return t.Air.FumesFraction() })
}

// LiquidMap returns the level of one liquid kind on every tile.
func (g *Grid) LiquidMap(kind LiquidKind) []float32 {
	return g.collect(func(t *Tile) float32 { return t.Liquids.LevelOf(kind) })
}

// SurfaceLevelMap returns ground plus liquid level. Walls report their
// ground level instead of NaN.
func (g *Grid) SurfaceLevelMap() []float32 {
	out := make([]float32, len(g.tiles))
	for i := range g.tiles {
		out[i] = g.tiles[i].SurfaceLevel()
	}
	return out
}

// GroundLevelMap returns the ground level of every tile, walls included.
func (g *Grid) GroundLevelMap() []float32 {
	out := make([]float32, len(g.tiles))
	for i := range g.tiles {
		out[i] = g.tiles[i].GroundLevel
	}
	return out
}

// Totals aggregates the contents of all ground tiles.
type Totals struct {
	Nitrogen float64
	Oxygen   float64
	Fumes    float64
	Water    float64
	Lava     float64
}

// Air is the total amount of gas.
func (t Totals) Air() float64 { return t.Nitrogen + t.Oxygen + t.Fumes }

// Totals sums air and liquid over all ground tiles in float64.
func (g *Grid) Totals() Totals {
	var out Totals
	for i := range g.tiles {
		t := &g.tiles[i]
		if t.Type != TileGround {
			continue
		}
		out.Nitrogen += float64(t.Air.Nitrogen)
		out.Oxygen += float64(t.Air.Oxygen)
		out.Fumes += float64(t.Air.Fumes)
		out.Water += float64(t.Liquids.Water())
		out.Lava += float64(t.Liquids.Lava())
	}
	return out
}
