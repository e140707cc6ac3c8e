package objects

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/acimap/kernel/internal/effect"
	"github.com/acimap/kernel/internal/world"
)

var (
	ErrNoSuchWorkspot = errors.New("no such workspot")
	ErrWorkspotTaken  = errors.New("workspot already taken")
	ErrNotClaimed     = errors.New("workspot not claimed by character")
)

// BuildingType identifies what a building does.
type BuildingType uint8

const (
	HandCrankedVentilator BuildingType = iota
)

func (t BuildingType) String() string {
	switch t {
	case HandCrankedVentilator:
		return "hand_cranked_ventilator"
	}
	return "unknown"
}

func (t BuildingType) IsVentilator() bool { return t == HandCrankedVentilator }

// ventilatorPushPerWorker is the air pusher amount each working character
// adds to a ventilator.
const ventilatorPushPerWorker float32 = 1.0

// Occupation is the state of a workspot.
type Occupation uint8

const (
	// Open: nobody works here and nobody is on the way.
	Open Occupation = iota
	// Claimed: a character is walking to the spot.
	Claimed
	// Working: a character is working the spot.
	Working
)

func (o Occupation) String() string {
	switch o {
	case Open:
		return "open"
	case Claimed:
		return "claimed"
	case Working:
		return "working"
	}
	return "unknown"
}

// WorkSpot is a place next to a building where one character can work.
// Location is in world coordinates.
type WorkSpot struct {
	Location   mgl32.Vec2
	Occupation Occupation
	Character  ObjectID[Character]
}

func (w *WorkSpot) IsOpen() bool { return w.Occupation == Open }

// Building is a fixed structure anchored at a tile.
type Building struct {
	effect.None

	X, Y      int
	Facing    world.Facing
	Type      BuildingType
	Workspots []WorkSpot
}

// NewVentilator builds a hand cranked ventilator with a workspot on either
// side of it. The spots turn with the building.
func NewVentilator(x, y int, facing world.Facing) Building {
	offsets := [...]mgl32.Vec2{{-0.5, 0.5}, {1.5, 0.5}}
	spots := make([]WorkSpot, len(offsets))
	for i, off := range offsets {
		rx, ry := facing.RotateFloat(off.X(), off.Y())
		spots[i] = WorkSpot{Location: mgl32.Vec2{float32(x) + rx, float32(y) + ry}}
	}
	return Building{X: x, Y: y, Facing: facing, Type: HandCrankedVentilator, Workspots: spots}
}

func (b *Building) spot(index int) (*WorkSpot, error) {
	if index < 0 || index >= len(b.Workspots) {
		return nil, ErrNoSuchWorkspot
	}
	return &b.Workspots[index], nil
}

// Claim reserves an open workspot for c.
func (b *Building) Claim(index int, c ObjectID[Character]) error {
	s, err := b.spot(index)
	if err != nil {
		return err
	}
	if s.Occupation != Open {
		return ErrWorkspotTaken
	}
	s.Occupation = Claimed
	s.Character = c
	return nil
}

// Release opens a workspot held by c.
func (b *Building) Release(index int, c ObjectID[Character]) error {
	s, err := b.spot(index)
	if err != nil {
		return err
	}
	if s.Occupation == Open || s.Character != c {
		return ErrNotClaimed
	}
	s.Occupation = Open
	s.Character = ObjectID[Character]{}
	return nil
}

// StartWork moves a spot claimed by c to Working. Starting twice is a no-op.
func (b *Building) StartWork(index int, c ObjectID[Character]) error {
	s, err := b.spot(index)
	if err != nil {
		return err
	}
	if s.Occupation == Open || s.Character != c {
		return ErrNotClaimed
	}
	s.Occupation = Working
	return nil
}

// WorkingCount returns how many spots are being worked.
func (b *Building) WorkingCount() int {
	n := 0
	for i := range b.Workspots {
		if b.Workspots[i].Occupation == Working {
			n++
		}
	}
	return n
}

func (b *Building) anchor() effect.Anchor {
	return effect.Anchor{X: b.X, Y: b.Y, Facing: b.Facing}
}

// AirPushers returns the ventilator's push, which grows with every worker.
func (b *Building) AirPushers() []effect.AirPusher {
	if !b.Type.IsVentilator() {
		return nil
	}
	n := b.WorkingCount()
	if n == 0 {
		return nil
	}
	rel := effect.RelativeAirPusher{Direction: world.North, Amount: ventilatorPushPerWorker * float32(n)}
	return []effect.AirPusher{rel.ToAbsolute(b.anchor())}
}
