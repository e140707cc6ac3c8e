package world

import (
	"fmt"
	"strings"
)

// Facing is a cardinal direction. Used as a rotation, North is the identity.
//
// Coordinates have 0,0 at the north-west corner: north is -y, east is +x,
// south is +y and west is -x.
type Facing uint8

const (
	North Facing = iota
	East
	South
	West
)

func (f Facing) String() string {
	switch f {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Facing(%d)", uint8(f))
}

// ParseFacing accepts the lower- or mixed-case direction name.
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(s) {
	case "", "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return North, fmt.Errorf("unknown facing %q", s)
}

// Rotate applies another facing as a rotation: East rotated by East is South.
func (f Facing) Rotate(applied Facing) Facing {
	return Facing((uint8(f) + uint8(applied)) % 4)
}

// Step returns the coordinates one tile further in this direction. ok is
// false when that would leave a width x height grid.
func (f Facing) Step(x, y, width, height int) (nx, ny int, ok bool) {
	switch f {
	case North:
		return x, y - 1, y > 0
	case East:
		return x + 1, y, x < width-1
	case South:
		return x, y + 1, y < height-1
	case West:
		return x - 1, y, x > 0
	}
	return x, y, false
}

// RotateInt rotates integer offsets around 0,0.
func (f Facing) RotateInt(x, y int) (int, int) {
	switch f {
	case East:
		return -y, x
	case South:
		return -x, -y
	case West:
		return y, -x
	}
	return x, y
}

// RotateFloat rotates coordinates around 0.5,0.5, the middle of tile 0,0.
func (f Facing) RotateFloat(x, y float32) (float32, float32) {
	x -= 0.5
	y -= 0.5
	switch f {
	case East:
		x, y = -y, x
	case South:
		x, y = -x, -y
	case West:
		x, y = y, -x
	}
	return x + 0.5, y + 0.5
}
