package world

import "fmt"

// MaxLiquidLevel is the deepest any liquid can stand on a tile.
const MaxLiquidLevel float32 = 3.0

// LiquidKind identifies which liquid occupies a tile. Only one kind can be
// present at a time.
type LiquidKind uint8

const (
	LiquidNone LiquidKind = iota
	LiquidWater
	LiquidLava
)

func (k LiquidKind) String() string {
	switch k {
	case LiquidNone:
		return "none"
	case LiquidWater:
		return "water"
	case LiquidLava:
		return "lava"
	}
	return fmt.Sprintf("LiquidKind(%d)", uint8(k))
}

// ParseLiquidKind maps the names used in scenarios and scripts to a kind.
func ParseLiquidKind(s string) (LiquidKind, error) {
	switch s {
	case "", "none":
		return LiquidNone, nil
	case "water":
		return LiquidWater, nil
	case "lava":
		return LiquidLava, nil
	}
	return LiquidNone, fmt.Errorf("unknown liquid %q", s)
}

// LiquidData is the liquid standing on a ground tile.
type LiquidData struct {
	Kind  LiquidKind
	Level float32
}

func NoLiquid() LiquidData           { return LiquidData{} }
func Water(level float32) LiquidData { return LiquidData{Kind: LiquidWater, Level: level} }
func Lava(level float32) LiquidData  { return LiquidData{Kind: LiquidLava, Level: level} }
func (l LiquidData) IsNone() bool    { return l.Kind == LiquidNone }
func (l LiquidData) Water() float32  { return l.LevelOf(LiquidWater) }
func (l LiquidData) Lava() float32   { return l.LevelOf(LiquidLava) }

// LevelOf returns the level of the given kind, or 0 if another kind (or
// nothing) occupies the tile.
func (l LiquidData) LevelOf(kind LiquidKind) float32 {
	if l.Kind == LiquidNone || l.Kind != kind {
		return 0
	}
	return l.Level
}

// AnyLevel returns the level regardless of kind.
func (l LiquidData) AnyLevel() float32 {
	if l.Kind == LiquidNone {
		return 0
	}
	return l.Level
}
