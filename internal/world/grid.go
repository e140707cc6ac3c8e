package world

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Coord addresses a tile.
type Coord struct {
	X, Y int
}

// Grid is a fixed-size 2D array of tiles stored in row-major order. Its
// dimensions never change after construction.
//
// Accessing a tile outside the grid is a caller bug and panics.
type Grid struct {
	width, height int
	tiles         []Tile
}

// NewGrid returns a width x height grid of default ground tiles.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid size %dx%d", width, height))
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = DefaultTile()
	}
	return &Grid{width: width, height: height, tiles: tiles}
}

// NewGridFromTiles wraps an existing row-major tile slice.
func NewGridFromTiles(width, height int, tiles []Tile) *Grid {
	if width <= 0 || height <= 0 || len(tiles) != width*height {
		panic(fmt.Sprintf("world: %d tiles do not fill a %dx%d grid", len(tiles), width, height))
	}
	return &Grid{width: width, height: height, tiles: tiles}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Len() int    { return len(g.tiles) }

// Tiles exposes the backing slice.
func (g *Grid) Tiles() []Tile { return g.tiles }

// Index returns the slice index of (x, y).
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: tile (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Coord is the inverse of Index.
func (g *Grid) Coord(idx int) Coord {
	return Coord{X: idx % g.width, Y: idx / g.width}
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) *Tile {
	return &g.tiles[g.Index(x, y)]
}

// Set replaces the tile at (x, y).
func (g *Grid) Set(x, y int, t Tile) {
	g.tiles[g.Index(x, y)] = t
}

// AppendNeighbours appends the in-bounds 8-neighbourhood of (x, y) to dst.
// The order is fixed: west column, same column, east column, north to south.
func (g *Grid) AppendNeighbours(dst []Coord, x, y int) []Coord {
	hasW := x > 0
	hasN := y > 0
	hasE := x < g.width-1
	hasS := y < g.height-1

	if hasW {
		if hasN {
			dst = append(dst, Coord{x - 1, y - 1})
		}
		dst = append(dst, Coord{x - 1, y})
		if hasS {
			dst = append(dst, Coord{x - 1, y + 1})
		}
	}
	if hasN {
		dst = append(dst, Coord{x, y - 1})
	}
	if hasS {
		dst = append(dst, Coord{x, y + 1})
	}
	if hasE {
		if hasN {
			dst = append(dst, Coord{x + 1, y - 1})
		}
		dst = append(dst, Coord{x + 1, y})
		if hasS {
			dst = append(dst, Coord{x + 1, y + 1})
		}
	}
	return dst
}

// Neighbours returns the in-bounds 8-neighbourhood of (x, y).
func (g *Grid) Neighbours(x, y int) []Coord {
	return g.AppendNeighbours(make([]Coord, 0, 8), x, y)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{width: g.width, height: g.height, tiles: tiles}
}

// Checksum fingerprints the full tile state. Two grids with identical tiles
// produce identical checksums.
func (g *Grid) Checksum() [32]byte {
	buf := make([]byte, 0, len(g.tiles)*26)
	for i := range g.tiles {
		t := &g.tiles[i]
		buf = append(buf, byte(t.Type), byte(t.Liquids.Kind))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(t.GroundLevel))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(t.Air.Nitrogen))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(t.Air.Oxygen))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(t.Air.Fumes))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(t.Liquids.Level))
	}
	return blake2b.Sum256(buf)
}
