package sim

import (
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/world"
)

// Stats is a summary of the current state.
type Stats struct {
	Tick       uint64
	Time       float64
	Totals     world.Totals
	Characters int
	Working    int
	Checksum   [32]byte
}

// Stats summarizes the simulation. It must not run concurrently with
// Simulate.
func (s *Simulation) Stats() Stats {
	working := 0
	objects.Each(s.objects, func(_ objects.ObjectID[objects.Building], b *objects.Building) {
		working += b.WorkingCount()
	})
	return Stats{
		Tick:       s.ticks,
		Time:       s.now,
		Totals:     s.grid.Totals(),
		Characters: objects.Count[objects.Character](s.objects),
		Working:    working,
		Checksum:   s.grid.Checksum(),
	}
}
