package ecs

// EntityID is a monotonically increasing object handle. Zero is never issued.
// IDs are not reused after removal, so a stale ID simply fails to resolve.
type EntityID uint32

func (id EntityID) IsZero() bool { return id == 0 }

// EntityPool hands out IDs. It is not safe for concurrent use; callers hold
// their structural lock while creating entities.
type EntityPool struct {
	last EntityID
}

func NewEntityPool() *EntityPool {
	return &EntityPool{}
}

func (p *EntityPool) Create() EntityID {
	if p.last == ^EntityID(0) {
		panic("ecs: entity id space exhausted")
	}
	p.last++
	return p.last
}

// Issued reports whether id was ever handed out by this pool.
func (p *EntityPool) Issued(id EntityID) bool {
	return id != 0 && id <= p.last
}

// Last returns the most recently issued ID.
func (p *EntityPool) Last() EntityID { return p.last }
