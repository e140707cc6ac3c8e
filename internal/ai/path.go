package ai

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/acimap/kernel/internal/objects"
)

const (
	// DrownHeight is the liquid level a character cannot stand in.
	DrownHeight float32 = 2.0
	// lavaThreshold is the lava level that already counts as lava.
	lavaThreshold float32 = 0.001
	// hazardFactor multiplies the penalty of lava and drowning tiles.
	hazardFactor float32 = 100000
)

func tileOf(pos mgl32.Vec2) (int, int) {
	return int(math.Floor(float64(pos.X()))), int(math.Floor(float64(pos.Y())))
}

// PositionPenalty rates how bad it is to stand at pos. ok is false when the
// position cannot be walked at all: outside the grid, on a wall, or in a
// hazard the caller asked to avoid. Lower penalties are preferable.
func (p *Planner) PositionPenalty(pos mgl32.Vec2, avoidLava, avoidDrowning bool) (penalty float32, ok bool) {
	x, y := tileOf(pos)
	if !p.grid.InBounds(x, y) {
		return 0, false
	}
	t := p.grid.At(x, y)
	if !t.IsGround() {
		return 0, false
	}

	level := t.Liquids.AnyLevel()
	drowning := level > DrownHeight
	lava := t.Liquids.Lava() > lavaThreshold
	if drowning && avoidDrowning || lava && avoidLava {
		return 0, false
	}

	penalty = level
	if lava {
		penalty *= hazardFactor
	}
	if drowning {
		penalty *= hazardFactor
	}
	return penalty, true
}

// FindPath returns a walkable path between two positions, or false if either
// end fails PositionPenalty. Paths are straight lines; callers compare them
// by TotalLength.
func (p *Planner) FindPath(from, to mgl32.Vec2, avoidLava, avoidDrowning bool) (*objects.Path, bool) {
	if _, ok := p.PositionPenalty(from, avoidLava, avoidDrowning); !ok {
		return nil, false
	}
	if _, ok := p.PositionPenalty(to, avoidLava, avoidDrowning); !ok {
		return nil, false
	}
	return &objects.Path{Points: []mgl32.Vec2{from, to}}, true
}

// nearestSafeTile searches rings of growing radius around pos for the
// closest tile centre a character can stand on without hazard.
func (p *Planner) nearestSafeTile(pos mgl32.Vec2) (mgl32.Vec2, bool) {
	cx, cy := tileOf(pos)
	for r := 1; r <= dangerSearchRadius; r++ {
		var (
			best     mgl32.Vec2
			bestDist float32
			found    bool
		)
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if x != cx-r && x != cx+r && y != cy-r && y != cy+r {
					continue
				}
				centre := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
				if _, ok := p.PositionPenalty(centre, true, true); !ok {
					continue
				}
				d := centre.Sub(pos).Len()
				if !found || d < bestDist {
					best, bestDist, found = centre, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return mgl32.Vec2{}, false
}

// inDanger reports whether the character stands on ground it should flee.
func (p *Planner) inDanger(pos mgl32.Vec2) bool {
	if _, ok := p.PositionPenalty(pos, false, false); !ok {
		return false
	}
	_, safe := p.PositionPenalty(pos, true, true)
	return !safe
}
