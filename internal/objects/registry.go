package objects

import (
	"fmt"
	"sync"

	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/effect"
)

// Kind is the set of object types a Registry can hold.
type Kind interface {
	EnvironmentObject | Building | Character
}

// Registry holds every object of the simulation in one ID-sorted store per
// kind.
//
// Locking is two-tiered. Push and Remove take the registry lock exclusively.
// Everything else takes it shared just long enough to find the entry and
// then holds only that object's spinlock, so unrelated objects can be read
// and written concurrently. A goroutine should hold at most one object guard
// at a time; code that needs two must acquire them in ascending ID order.
type Registry struct {
	mu    sync.RWMutex
	world *ecs.World

	environment *ecs.Store[EnvironmentObject]
	buildings   *ecs.Store[Building]
	characters  *ecs.Store[Character]
}

func NewRegistry() *Registry {
	r := &Registry{
		world:       ecs.NewWorld(),
		environment: ecs.NewStore[EnvironmentObject](),
		buildings:   ecs.NewStore[Building](),
		characters:  ecs.NewStore[Character](),
	}
	r.world.Registry().Register(r.environment)
	r.world.Registry().Register(r.buildings)
	r.world.Registry().Register(r.characters)
	return r
}

func storeOf[T Kind](r *Registry) *ecs.Store[T] {
	var s any
	switch any((*T)(nil)).(type) {
	case *EnvironmentObject:
		s = r.environment
	case *Building:
		s = r.buildings
	case *Character:
		s = r.characters
	}
	return s.(*ecs.Store[T])
}

// Push adds an object and returns its new ID.
func Push[T Kind](r *Registry, value T) ObjectID[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.world.CreateEntity()
	storeOf[T](r).Insert(id, value)
	return ObjectID[T]{raw: id}
}

// Remove deletes an object. Removing an ID that is not present is a caller
// bug and panics. A removed character gives up the workspot its task holds.
func Remove[T Kind](r *Registry, id ObjectID[T]) {
	task, isChar := heldTask(r, id.raw)
	r.mu.Lock()
	removed := storeOf[T](r).Remove(id.raw)
	r.mu.Unlock()
	if !removed {
		panic(fmt.Sprintf("objects: remove of unknown %T id %d", *new(T), id.raw))
	}
	if isChar {
		releaseClaim(r, id.raw, task)
	}
}

// RemoveAny deletes an object of any kind. It reports false if the ID is not
// present.
func (r *Registry) RemoveAny(id ecs.EntityID) bool {
	task, isChar := heldTask(r, id)
	r.mu.Lock()
	removed := r.world.Destroy(id)
	r.mu.Unlock()
	if removed && isChar {
		releaseClaim(r, id, task)
	}
	return removed
}

// heldTask reads the task of the character with the given raw ID. ok is
// false when the ID is not a character.
func heldTask(r *Registry, raw ecs.EntityID) (task Task, ok bool) {
	ok = View(r, IDOf[Character](raw), func(c *Character) { task = c.Task })
	return task, ok
}

// releaseClaim opens the workspot a removed character claimed or worked.
// The character's guard is no longer held, so only the building is locked.
func releaseClaim(r *Registry, raw ecs.EntityID, task Task) {
	if task.Kind != TaskWorkAtSpot {
		return
	}
	Update(r, task.Building, func(b *Building) {
		_ = b.Release(task.Workspot, IDOf[Character](raw))
	})
}

func lookup[T Kind](r *Registry, id ObjectID[T]) (*ecs.Entry[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return storeOf[T](r).Get(id.raw)
}

// Get returns a read guard on the object, or false if it does not exist.
func Get[T Kind](r *Registry, id ObjectID[T]) (ecs.ReadGuard[T], bool) {
	e, ok := lookup(r, id)
	if !ok {
		return ecs.ReadGuard[T]{}, false
	}
	return e.Read(), true
}

// GetMut returns a write guard on the object, or false if it does not exist.
func GetMut[T Kind](r *Registry, id ObjectID[T]) (ecs.WriteGuard[T], bool) {
	e, ok := lookup(r, id)
	if !ok {
		return ecs.WriteGuard[T]{}, false
	}
	return e.Write(), true
}

// View runs fn with the object read-locked and reports whether it exists.
func View[T Kind](r *Registry, id ObjectID[T], fn func(*T)) bool {
	e, ok := lookup(r, id)
	if !ok {
		return false
	}
	e.View(fn)
	return true
}

// Update runs fn with the object write-locked and reports whether it exists.
func Update[T Kind](r *Registry, id ObjectID[T], fn func(*T)) bool {
	e, ok := lookup(r, id)
	if !ok {
		return false
	}
	e.Update(fn)
	return true
}

// Each visits every object of kind T in ID order, each read-locked for the
// duration of its call. Push and Remove block until Each returns, so fn must
// not call them.
func Each[T Kind](r *Registry, fn func(ObjectID[T], *T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	storeOf[T](r).Each(func(e *ecs.Entry[T]) {
		e.View(func(v *T) { fn(ObjectID[T]{raw: e.ID()}, v) })
	})
}

// EachMut is Each with write locks.
func EachMut[T Kind](r *Registry, fn func(ObjectID[T], *T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	storeOf[T](r).Each(func(e *ecs.Entry[T]) {
		e.Update(func(v *T) { fn(ObjectID[T]{raw: e.ID()}, v) })
	})
}

// Count returns the number of objects of kind T.
func Count[T Kind](r *Registry) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return storeOf[T](r).Len()
}

// Len returns the number of objects of all kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.environment.Len() + r.buildings.Len() + r.characters.Len()
}

// EachProvider visits every object of every kind in global ID order as an
// effect.Provider, each read-locked for the duration of its call.
func (r *Registry) EachProvider(fn func(ecs.EntityID, effect.Provider)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stores := []ecs.Ordered{r.environment, r.buildings, r.characters}
	ecs.EachMerged(stores, func(store, pos int) {
		switch store {
		case 0:
			e := r.environment.At(pos)
			e.View(func(v *EnvironmentObject) { fn(e.ID(), v) })
		case 1:
			e := r.buildings.At(pos)
			e.View(func(v *Building) { fn(e.ID(), v) })
		case 2:
			e := r.characters.At(pos)
			e.View(func(v *Character) { fn(e.ID(), v) })
		}
	})
}
