// Package objects stores the simulation's environment effectors, buildings
// and characters, each independently lockable.
package objects

import (
	"strconv"

	"github.com/acimap/kernel/internal/core/ecs"
)

// ObjectID is a handle to an object of kind T. T only routes the handle to
// the right store; all kinds share one ID sequence.
type ObjectID[T any] struct {
	raw ecs.EntityID
}

// IDOf wraps a raw ID, e.g. one received from a script.
func IDOf[T any](raw ecs.EntityID) ObjectID[T] { return ObjectID[T]{raw: raw} }

func (id ObjectID[T]) Raw() ecs.EntityID { return id.raw }
func (id ObjectID[T]) IsZero() bool      { return id.raw == 0 }
func (id ObjectID[T]) String() string    { return strconv.FormatUint(uint64(id.raw), 10) }
