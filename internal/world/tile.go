package world

// TileType distinguishes solid walls from open ground.
type TileType uint8

const (
	TileGround TileType = iota
	TileWall
)

// Tile is one cell of the grid. Air and Liquids are only meaningful for
// ground tiles; walls always carry zero values there.
type Tile struct {
	GroundLevel float32
	Type        TileType
	Air         AirData
	Liquids     LiquidData
}

// DefaultTile returns open ground at level 0 with a breathable atmosphere.
func DefaultTile() Tile {
	return Tile{Type: TileGround, Air: DefaultAir()}
}

// GroundTile returns open ground with the given state.
func GroundTile(level float32, air AirData, liquids LiquidData) Tile {
	return Tile{GroundLevel: level, Type: TileGround, Air: air, Liquids: liquids}
}

// WallTile returns a wall at the given ground level.
func WallTile(level float32) Tile {
	return Tile{GroundLevel: level, Type: TileWall}
}

func (t *Tile) IsGround() bool { return t.Type == TileGround }
func (t *Tile) IsWall() bool   { return t.Type == TileWall }

// Ground returns the air and liquid state of a ground tile. ok is false for
// walls.
func (t *Tile) Ground() (air *AirData, liquids *LiquidData, ok bool) {
	if t.Type != TileGround {
		return nil, nil, false
	}
	return &t.Air, &t.Liquids, true
}

// SurfaceLevel is the ground level plus any liquid standing on it.
func (t *Tile) SurfaceLevel() float32 {
	if t.Type != TileGround {
		return t.GroundLevel
	}
	return t.GroundLevel + t.Liquids.AnyLevel()
}

// Pressure returns the tile's air pressure, ok is false for walls.
func (t *Tile) Pressure() (float32, bool) {
	if t.Type != TileGround {
		return 0, false
	}
	return t.Air.Pressure(t.Liquids.AnyLevel()), true
}

// SetWall turns the tile into a wall, discarding its air and liquid.
func (t *Tile) SetWall() {
	t.Type = TileWall
	t.Air = AirData{}
	t.Liquids = LiquidData{}
}

// SetGround turns a wall into ground with a default atmosphere. Ground tiles
// are left untouched.
func (t *Tile) SetGround() {
	if t.Type == TileGround {
		return
	}
	t.Type = TileGround
	t.Air = DefaultAir()
	t.Liquids = LiquidData{}
}
