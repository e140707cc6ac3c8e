package event

import (
	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/world"
)

// WorkspotClaimLost is emitted when a character's claim on a workspot fails
// because another character got there first.
type WorkspotClaimLost struct {
	Character ecs.EntityID
	Building  ecs.EntityID
	Workspot  int
}

// WorkStarted is emitted when a character arrives at its workspot and starts
// working it.
type WorkStarted struct {
	Character ecs.EntityID
	Building  ecs.EntityID
	Workspot  int
}

// WorkAbandoned is emitted when a character arrives but cannot work because
// the building or its claim vanished. The character goes idle.
type WorkAbandoned struct {
	Character ecs.EntityID
	Building  ecs.EntityID
	Workspot  int
}

// PanicRunStarted is emitted when a character starts fleeing its tile.
type PanicRunStarted struct {
	Character ecs.EntityID
	From, To  world.Coord
}

// TileSolidified is emitted for every tile where water and lava met.
type TileSolidified struct {
	Tile world.Coord
	Tick uint64
}
