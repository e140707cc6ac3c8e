package objects

import "github.com/go-gl/mathgl/mgl32"

// Path is a polyline a character walks along. Points[0] is where the
// character currently stands.
type Path struct {
	Points []mgl32.Vec2
}

// TotalLength is the sum of all segment lengths.
func (p *Path) TotalLength() float32 {
	var total float32
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Sub(p.Points[i-1]).Len()
	}
	return total
}

// End returns the final point.
func (p *Path) End() mgl32.Vec2 { return p.Points[len(p.Points)-1] }
