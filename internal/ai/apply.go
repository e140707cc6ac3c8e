package ai

import (
	"go.uber.org/zap"

	"github.com/acimap/kernel/internal/core/event"
	"github.com/acimap/kernel/internal/objects"
)

// Apply commits changes one at a time. For each change the new workspot is
// claimed first; losing that race skips the change and leaves the character
// as it was. Then the character's previous claim is released and the new
// goal, task and path are written. At most one object guard is held at any
// moment.
func (p *Planner) Apply(changes []Change) {
	for i := range changes {
		p.apply(&changes[i])
	}
}

func (p *Planner) apply(ch *Change) {
	charField := idField("character", ch.Character.Raw())

	claimed := false
	if ch.Task.Kind == objects.TaskWorkAtSpot {
		if !p.claim(ch) {
			return
		}
		claimed = true
	}

	var old objects.Task
	if !objects.View(p.objects, ch.Character, func(c *objects.Character) { old = c.Task }) {
		p.log.Warn("character vanished before its change was applied", charField)
		if claimed {
			p.release(ch.Character, ch.Task)
		}
		return
	}

	if old.Kind == objects.TaskWorkAtSpot {
		p.release(ch.Character, old)
	}

	committed := objects.Update(p.objects, ch.Character, func(c *objects.Character) {
		c.Goal = ch.Goal
		c.Task = ch.Task
		c.Path = ch.Path
	})
	if !committed {
		p.log.Warn("character vanished before its change was applied", charField)
		if claimed {
			p.release(ch.Character, ch.Task)
		}
		return
	}

	if ch.Task.Kind == objects.TaskPanicRun && ch.Path != nil && len(ch.Path.Points) > 0 {
		event.Emit(p.bus, event.PanicRunStarted{
			Character: ch.Character.Raw(),
			From:      tileCoord(ch.Path.Points[0]),
			To:        tileCoord(ch.Task.Target),
		})
	}
}

// claim reserves the workspot named by the change's task.
func (p *Planner) claim(ch *Change) bool {
	task := ch.Task
	var err error
	found := objects.Update(p.objects, task.Building, func(b *objects.Building) {
		err = b.Claim(task.Workspot, ch.Character)
	})
	fields := []zap.Field{
		idField("character", ch.Character.Raw()),
		idField("building", task.Building.Raw()),
		zap.Int("workspot", task.Workspot),
	}
	if !found {
		p.log.Warn("workspot building vanished", fields...)
		return false
	}
	if err != nil {
		p.log.Warn("workspot claim lost", append(fields, zap.Error(err))...)
		event.Emit(p.bus, event.WorkspotClaimLost{
			Character: ch.Character.Raw(),
			Building:  task.Building.Raw(),
			Workspot:  task.Workspot,
		})
		return false
	}
	return true
}

// release gives up a workspot held by c.
func (p *Planner) release(c objects.ObjectID[objects.Character], task objects.Task) {
	var err error
	found := objects.Update(p.objects, task.Building, func(b *objects.Building) {
		err = b.Release(task.Workspot, c)
	})
	if !found {
		p.log.Warn("could not release workspot, building vanished",
			idField("character", c.Raw()), idField("building", task.Building.Raw()))
		return
	}
	if err != nil {
		p.log.Debug("workspot was not held",
			idField("character", c.Raw()), idField("building", task.Building.Raw()),
			zap.Int("workspot", task.Workspot), zap.Error(err))
	}
}
