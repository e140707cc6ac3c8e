package data

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/acimap/kernel/internal/world"
)

// Terrain generates rolling ground levels from simplex noise.
type Terrain struct {
	Seed      int64   `yaml:"seed"`
	Scale     float64 `yaml:"scale"`     // noise frequency per tile
	Amplitude float64 `yaml:"amplitude"` // peak deviation from Offset
	Offset    float64 `yaml:"offset"`
}

// Apply sets the ground level of every tile. The same seed always yields the
// same terrain.
func (t *Terrain) Apply(g *world.Grid) {
	noise := opensimplex.New(t.Seed)
	scale := t.Scale
	if scale == 0 {
		scale = 0.1
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := noise.Eval2(float64(x)*scale, float64(y)*scale)
			g.At(x, y).GroundLevel = float32(t.Offset + v*t.Amplitude)
		}
	}
}
