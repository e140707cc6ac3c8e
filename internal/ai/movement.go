package ai

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/acimap/kernel/internal/core/event"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/world"
)

// epsilon is the distance below which two points are the same.
const epsilon float32 = 1.1920929e-07

type arrival struct {
	id   objects.ObjectID[objects.Character]
	task objects.Task
}

// Move walks every character along its path for dt seconds and handles the
// ones that arrived.
func (p *Planner) Move(dt float32) {
	var arrived []arrival
	objects.EachMut(p.objects, func(id objects.ObjectID[objects.Character], c *objects.Character) {
		if walk(c, objects.WalkSpeed*dt) {
			arrived = append(arrived, arrival{id: id, task: c.Task})
		}
	})

	for _, a := range arrived {
		switch a.task.Kind {
		case objects.TaskWorkAtSpot:
			p.startWork(a)
		case objects.TaskPanicRun:
			// Safe again; the next evaluation picks a new goal.
			objects.Update(p.objects, a.id, (*objects.Character).GoIdle)
		}
	}
}

func (p *Planner) startWork(a arrival) {
	var err error
	found := objects.Update(p.objects, a.task.Building, func(b *objects.Building) {
		err = b.StartWork(a.task.Workspot, a.id)
	})

	fields := []zap.Field{
		idField("character", a.id.Raw()),
		idField("building", a.task.Building.Raw()),
		zap.Int("workspot", a.task.Workspot),
	}
	if found && err == nil {
		event.Emit(p.bus, event.WorkStarted{Character: a.id.Raw(), Building: a.task.Building.Raw(), Workspot: a.task.Workspot})
		return
	}

	if !found {
		p.log.Warn("workspot building vanished before arrival", fields...)
	} else {
		p.log.Warn("could not start work at workspot", append(fields, zap.Error(err))...)
	}
	objects.Update(p.objects, a.id, (*objects.Character).GoIdle)
	event.Emit(p.bus, event.WorkAbandoned{Character: a.id.Raw(), Building: a.task.Building.Raw(), Workspot: a.task.Workspot})
}

// walk advances c up to distance along its path. It reports true when the
// path has been used up; the path is then cleared and the character stands
// on its last point.
func walk(c *objects.Character, distance float32) bool {
	path := c.Path
	if path == nil {
		return false
	}
	pts := path.Points
	for distance > epsilon && len(pts) >= 2 {
		seg := pts[1].Sub(pts[0])
		l := seg.Len()
		if l < epsilon {
			pts = pts[1:]
			continue
		}
		if distance >= l {
			c.Location = pts[1]
			pts = pts[1:]
			distance -= l
			continue
		}
		c.Location = pts[0].Add(seg.Mul(distance / l))
		pts[0] = c.Location
		distance = 0
	}
	for len(pts) >= 2 && pts[1].Sub(pts[0]).Len() < epsilon {
		pts = pts[1:]
	}
	path.Points = pts

	if len(pts) >= 2 {
		return false
	}
	if len(pts) == 1 {
		c.Location = pts[0]
	}
	c.Path = nil
	return true
}

func tileCoord(v mgl32.Vec2) world.Coord {
	x, y := tileOf(v)
	return world.Coord{X: x, Y: y}
}
