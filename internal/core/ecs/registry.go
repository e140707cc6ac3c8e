package ecs

// Registry tracks all component stores and supports removal by bare ID.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 4),
	}
}

// Register adds a component store to the registry.
func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

// RemoveAll clears the given entity from every registered store and reports
// whether any store held it.
func (r *Registry) RemoveAll(id EntityID) bool {
	removed := false
	for _, s := range r.stores {
		if s.Remove(id) {
			removed = true
		}
	}
	return removed
}
