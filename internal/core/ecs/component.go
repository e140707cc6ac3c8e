package ecs

import (
	"fmt"
	"sort"
)

// Removable is implemented by all component stores so the Registry can
// remove an entity without knowing which store holds it.
type Removable interface {
	Remove(id EntityID) bool
}

// Entry is one stored value together with its lock.
type Entry[T any] struct {
	id    EntityID
	lock  SpinRW
	value T
}

func (e *Entry[T]) ID() EntityID { return e.id }

// Read acquires the entry for reading.
func (e *Entry[T]) Read() ReadGuard[T] {
	e.lock.RLock()
	return ReadGuard[T]{entry: e}
}

// Write acquires the entry for writing.
func (e *Entry[T]) Write() WriteGuard[T] {
	e.lock.Lock()
	return WriteGuard[T]{entry: e}
}

// View runs fn with the entry read-locked. The lock is released even if fn
// panics.
func (e *Entry[T]) View(fn func(*T)) {
	e.lock.RLock()
	defer e.lock.RUnlock()
	fn(&e.value)
}

// Update runs fn with the entry write-locked.
func (e *Entry[T]) Update(fn func(*T)) {
	e.lock.Lock()
	defer e.lock.Unlock()
	fn(&e.value)
}

// Lock exposes the entry's lock, mostly for tests.
func (e *Entry[T]) Lock() *SpinRW { return &e.lock }

// Store keeps entries sorted by ascending ID so lookups are a binary search.
// It is not safe for concurrent structural changes; the owner serializes
// Insert and Remove against everything else.
type Store[T any] struct {
	entries []*Entry[T]
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make([]*Entry[T], 0, 64)}
}

// Insert appends a value. IDs must be inserted in ascending order, which
// holds for IDs taken from a single EntityPool.
func (s *Store[T]) Insert(id EntityID, value T) *Entry[T] {
	if n := len(s.entries); n > 0 && s.entries[n-1].id >= id {
		panic(fmt.Sprintf("ecs: insert of id %d after id %d", id, s.entries[n-1].id))
	}
	e := &Entry[T]{id: id, value: value}
	s.entries = append(s.entries, e)
	return e
}

func (s *Store[T]) search(id EntityID) (int, bool) {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].id >= id })
	return i, i < len(s.entries) && s.entries[i].id == id
}

func (s *Store[T]) Get(id EntityID) (*Entry[T], bool) {
	i, ok := s.search(id)
	if !ok {
		return nil, false
	}
	return s.entries[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.search(id)
	return ok
}

// Remove erases the entry with the given ID, keeping the order of the rest.
// A guard already held on the entry stays usable but no longer reaches the
// store.
func (s *Store[T]) Remove(id EntityID) bool {
	i, ok := s.search(id)
	if !ok {
		return false
	}
	copy(s.entries[i:], s.entries[i+1:])
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return true
}

func (s *Store[T]) Len() int { return len(s.entries) }

func (s *Store[T]) At(i int) *Entry[T] { return s.entries[i] }

func (s *Store[T]) IDAt(i int) EntityID { return s.entries[i].id }

// Each visits entries in ID order without locking them.
func (s *Store[T]) Each(fn func(*Entry[T])) {
	for _, e := range s.entries {
		fn(e)
	}
}
