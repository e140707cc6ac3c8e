package ecs

// World owns the entity pool and the store registry. It carries no lock of
// its own; the owner guards structural changes.
type World struct {
	pool     *EntityPool
	registry *Registry
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// Destroy removes the entity from every store. It reports false if no store
// held it.
func (w *World) Destroy(id EntityID) bool {
	return w.registry.RemoveAll(id)
}
