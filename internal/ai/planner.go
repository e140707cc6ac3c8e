// Package ai chooses goals and tasks for characters and walks them along
// their paths.
package ai

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/core/event"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/world"
)

// dangerSearchRadius is how many tiles a fleeing character looks around.
const dangerSearchRadius = 5

// Change is a decision taken during the read phase and committed by Apply.
type Change struct {
	Character objects.ObjectID[objects.Character]
	Goal      objects.Goal
	Task      objects.Task
	Path      *objects.Path
}

// Planner runs the goal/task state machine.
type Planner struct {
	grid    *world.Grid
	objects *objects.Registry
	bus     *event.Bus
	log     *zap.Logger
}

func NewPlanner(grid *world.Grid, reg *objects.Registry, bus *event.Bus, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	return &Planner{grid: grid, objects: reg, bus: bus, log: log}
}

// candidate is the state of one character as seen by the read phase.
type candidate struct {
	id        objects.ObjectID[objects.Character]
	location  mgl32.Vec2
	goal      objects.Goal
	task      objects.Task
	walking   bool
	workGoals []objects.WorkGoal
}

type openSpot struct {
	building objects.ObjectID[objects.Building]
	index    int
	location mgl32.Vec2
}

// goalCheck evaluates one goal for a character. handled is true when the
// evaluation is over for this character, with or without a change.
type goalCheck func(c *candidate) (change *Change, handled bool)

// CalculateChanges evaluates every character against the current grid and
// objects without modifying either. Changes are returned in character ID
// order.
func (p *Planner) CalculateChanges() []Change {
	var chars []candidate
	objects.Each(p.objects, func(id objects.ObjectID[objects.Character], c *objects.Character) {
		chars = append(chars, candidate{
			id:        id,
			location:  c.Location,
			goal:      c.Goal,
			task:      c.Task,
			walking:   c.Path != nil,
			workGoals: append([]objects.WorkGoal(nil), c.WorkGoals...),
		})
	})
	if len(chars) == 0 {
		return nil
	}
	spots := p.openVentilatorSpots()

	var changes []Change
	for i := range chars {
		c := &chars[i]
		lost := p.lostWorkspot(c)
		if lost {
			c.goal = objects.IdleGoal()
		}
		changed := false
		for _, check := range p.checksFor(c, spots) {
			change, handled := check(c)
			if change != nil {
				changes = append(changes, *change)
				changed = true
			}
			if handled {
				break
			}
		}
		if lost && !changed {
			changes = append(changes, Change{Character: c.id, Goal: objects.IdleGoal(), Task: objects.IdleTask()})
		}
	}
	return changes
}

// lostWorkspot reports whether a character standing at its workspot no
// longer holds it, because the building or the claim is gone. Characters
// still walking are left to the arrival check.
func (p *Planner) lostWorkspot(c *candidate) bool {
	if c.task.Kind != objects.TaskWorkAtSpot || c.walking {
		return false
	}
	held := false
	objects.View(p.objects, c.task.Building, func(b *objects.Building) {
		if c.task.Workspot < 0 || c.task.Workspot >= len(b.Workspots) {
			return
		}
		s := b.Workspots[c.task.Workspot]
		held = !s.IsOpen() && s.Character == c.id
	})
	if !held {
		p.log.Debug("workspot lost, re-evaluating",
			idField("character", c.id.Raw()),
			idField("building", c.task.Building.Raw()),
			zap.Int("workspot", c.task.Workspot))
	}
	return !held
}

// checksFor lists the goal checks for a character in priority order.
func (p *Planner) checksFor(c *candidate, spots []openSpot) []goalCheck {
	checks := make([]goalCheck, 0, len(objects.SurviveGoalOrder)+len(c.workGoals))
	for _, g := range objects.SurviveGoalOrder {
		checks = append(checks, p.surviveCheck(g))
	}
	for _, g := range c.workGoals {
		checks = append(checks, p.workCheck(g, spots))
	}
	return checks
}

func (p *Planner) surviveCheck(g objects.SurviveGoal) goalCheck {
	return func(c *candidate) (*Change, bool) {
		if c.goal == objects.SurviveGoalOf(g) {
			return nil, true
		}
		switch g {
		case objects.RunFromDanger:
			return p.runFromDanger(c)
		default:
			// Nothing models hunger yet, so nobody starves.
			return nil, false
		}
	}
}

func (p *Planner) runFromDanger(c *candidate) (*Change, bool) {
	if !p.inDanger(c.location) {
		return nil, false
	}
	target, ok := p.nearestSafeTile(c.location)
	if !ok {
		return nil, false
	}
	path, ok := p.FindPath(c.location, target, false, false)
	if !ok {
		return nil, false
	}
	return &Change{
		Character: c.id,
		Goal:      objects.SurviveGoalOf(objects.RunFromDanger),
		Task:      objects.PanicRunTask(target),
		Path:      path,
	}, true
}

func (p *Planner) workCheck(g objects.WorkGoal, spots []openSpot) goalCheck {
	return func(c *candidate) (*Change, bool) {
		if c.goal == objects.WorkGoalOf(g) {
			return nil, true
		}
		switch g {
		case objects.WorkAtVentilation:
			return p.workAtVentilation(c, spots)
		}
		return nil, false
	}
}

func (p *Planner) workAtVentilation(c *candidate, spots []openSpot) (*Change, bool) {
	var (
		best     *openSpot
		bestPath *objects.Path
		bestLen  float32
	)
	for i := range spots {
		path, ok := p.FindPath(c.location, spots[i].location, true, true)
		if !ok {
			continue
		}
		if l := path.TotalLength(); best == nil || l < bestLen {
			best, bestPath, bestLen = &spots[i], path, l
		}
	}
	if best == nil {
		return nil, false
	}
	return &Change{
		Character: c.id,
		Goal:      objects.WorkGoalOf(objects.WorkAtVentilation),
		Task:      objects.WorkAtSpotTask(best.building, best.index),
		Path:      bestPath,
	}, true
}

func (p *Planner) openVentilatorSpots() []openSpot {
	var spots []openSpot
	objects.Each(p.objects, func(id objects.ObjectID[objects.Building], b *objects.Building) {
		if !b.Type.IsVentilator() {
			return
		}
		for i := range b.Workspots {
			if b.Workspots[i].IsOpen() {
				spots = append(spots, openSpot{building: id, index: i, location: b.Workspots[i].Location})
			}
		}
	})
	return spots
}

func idField(key string, id ecs.EntityID) zap.Field {
	return zap.Uint32(key, uint32(id))
}
