package ecs

// ReadGuard is shared access to an entry. Release must be called exactly
// once per acquisition; extra calls are ignored.
type ReadGuard[T any] struct {
	entry    *Entry[T]
	released bool
}

// Value returns the guarded value. It must not be modified or retained after
// Release.
func (g *ReadGuard[T]) Value() *T { return &g.entry.value }

func (g *ReadGuard[T]) ID() EntityID { return g.entry.id }

func (g *ReadGuard[T]) Release() {
	if g.released || g.entry == nil {
		return
	}
	g.released = true
	g.entry.lock.RUnlock()
}

// WriteGuard is exclusive access to an entry.
type WriteGuard[T any] struct {
	entry    *Entry[T]
	released bool
}

// Value returns the guarded value. It must not be retained after Release.
func (g *WriteGuard[T]) Value() *T { return &g.entry.value }

func (g *WriteGuard[T]) ID() EntityID { return g.entry.id }

func (g *WriteGuard[T]) Release() {
	if g.released || g.entry == nil {
		return
	}
	g.released = true
	g.entry.lock.Unlock()
}
