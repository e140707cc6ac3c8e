// Package effect holds the environmental effect records objects expose to the
// diffusion apply phase.
package effect

import "github.com/acimap/kernel/internal/world"

// AirLeveler force-sets the air of a tile every tick.
type AirLeveler struct {
	X, Y     int
	Nitrogen float32
	Oxygen   float32
	Fumes    float32
}

// Air returns the target composition.
func (l AirLeveler) Air() world.AirData {
	return world.AirData{Nitrogen: l.Nitrogen, Oxygen: l.Oxygen, Fumes: l.Fumes}
}

// OxygenUser turns oxygen into fumes at ChangePerSec.
type OxygenUser struct {
	X, Y         int
	ChangePerSec float32
}

// AirPusher moves Amount*dt of a tile's air one tile in Direction.
type AirPusher struct {
	X, Y      int
	Direction world.Facing
	Amount    float32
}

// LiquidLeveler force-sets the liquid of a tile every tick.
type LiquidLeveler struct {
	X, Y   int
	Target world.LiquidData
}

// Provider is implemented by every object kind that can affect the
// environment. Records are in absolute tile coordinates.
type Provider interface {
	AirLevelers() []AirLeveler
	OxygenUsers() []OxygenUser
	AirPushers() []AirPusher
	LiquidLevelers() []LiquidLeveler
}

// None can be embedded by object kinds that only implement some of Provider.
type None struct{}

func (None) AirLevelers() []AirLeveler       { return nil }
func (None) OxygenUsers() []OxygenUser       { return nil }
func (None) AirPushers() []AirPusher         { return nil }
func (None) LiquidLevelers() []LiquidLeveler { return nil }

// Anchor is the position and orientation relative records are translated by.
type Anchor struct {
	X, Y   int
	Facing world.Facing
}

func (a Anchor) offset(dx, dy int) (int, int) {
	rx, ry := a.Facing.RotateInt(dx, dy)
	return a.X + rx, a.Y + ry
}

// RelativeAirPusher is an AirPusher positioned relative to its owner. The
// owner's facing rotates both the offset and the push direction.
type RelativeAirPusher struct {
	DX, DY    int
	Direction world.Facing
	Amount    float32
}

func (r RelativeAirPusher) ToAbsolute(a Anchor) AirPusher {
	x, y := a.offset(r.DX, r.DY)
	return AirPusher{X: x, Y: y, Direction: r.Direction.Rotate(a.Facing), Amount: r.Amount}
}
