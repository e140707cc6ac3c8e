package objects

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/acimap/kernel/internal/effect"
)

// WalkSpeed is how far a character walks per second.
const WalkSpeed float32 = 1.2

// breathPerSec is the oxygen a character turns into fumes each second.
const breathPerSec float32 = 0.00001

// SurviveGoal is a goal of the highest priority tier.
type SurviveGoal uint8

const (
	RunFromDanger SurviveGoal = iota
	PreventStarvation
)

// SurviveGoalOrder is the order survive goals are considered in.
var SurviveGoalOrder = [...]SurviveGoal{RunFromDanger, PreventStarvation}

func (g SurviveGoal) String() string {
	switch g {
	case RunFromDanger:
		return "run_from_danger"
	case PreventStarvation:
		return "prevent_starvation"
	}
	return "unknown"
}

// WorkGoal is a goal of the work tier. Each character ranks its own.
type WorkGoal uint8

const (
	WorkAtVentilation WorkGoal = iota
)

func (g WorkGoal) String() string {
	switch g {
	case WorkAtVentilation:
		return "work_at_ventilation"
	}
	return "unknown"
}

// Tier is a goal priority. Zero is idle.
type Tier uint8

const (
	TierIdle Tier = iota
	TierWork
	TierSurvive
)

// Goal is what a character is currently trying to achieve.
type Goal struct {
	Tier    Tier
	Survive SurviveGoal
	Work    WorkGoal
}

func IdleGoal() Goal                   { return Goal{} }
func SurviveGoalOf(g SurviveGoal) Goal { return Goal{Tier: TierSurvive, Survive: g} }
func WorkGoalOf(g WorkGoal) Goal       { return Goal{Tier: TierWork, Work: g} }

func (g Goal) String() string {
	switch g.Tier {
	case TierSurvive:
		return "survive:" + g.Survive.String()
	case TierWork:
		return "work:" + g.Work.String()
	}
	return "idle"
}

// TaskKind is the concrete activity backing a goal.
type TaskKind uint8

const (
	TaskIdle TaskKind = iota
	TaskPanicRun
	TaskWorkAtSpot
)

func (k TaskKind) String() string {
	switch k {
	case TaskPanicRun:
		return "panic_run"
	case TaskWorkAtSpot:
		return "work_at_spot"
	}
	return "idle"
}

// Task carries the data of the current activity. Target is used by
// TaskPanicRun, Building and Workspot by TaskWorkAtSpot.
type Task struct {
	Kind     TaskKind
	Target   mgl32.Vec2
	Building ObjectID[Building]
	Workspot int
}

func IdleTask() Task { return Task{} }

func PanicRunTask(target mgl32.Vec2) Task {
	return Task{Kind: TaskPanicRun, Target: target}
}

func WorkAtSpotTask(building ObjectID[Building], workspot int) Task {
	return Task{Kind: TaskWorkAtSpot, Building: building, Workspot: workspot}
}

// Character is a mobile agent.
type Character struct {
	effect.None

	Location  mgl32.Vec2
	Health    float32
	WorkGoals []WorkGoal
	Goal      Goal
	Task      Task
	Path      *Path
}

func NewCharacter(location mgl32.Vec2, health float32, workGoals []WorkGoal) Character {
	return Character{Location: location, Health: health, WorkGoals: workGoals}
}

// Tile returns the tile the character stands on.
func (c *Character) Tile() (int, int) {
	return int(math.Floor(float64(c.Location.X()))), int(math.Floor(float64(c.Location.Y())))
}

// GoIdle drops the current goal, task and path.
func (c *Character) GoIdle() {
	c.Goal = IdleGoal()
	c.Task = IdleTask()
	c.Path = nil
}

// OxygenUsers makes the character breathe at the tile it stands on.
func (c *Character) OxygenUsers() []effect.OxygenUser {
	x, y := c.Tile()
	return []effect.OxygenUser{{X: x, Y: y, ChangePerSec: breathPerSec}}
}
