package ecs

// Ordered is a store viewed as an ID-sorted sequence.
type Ordered interface {
	Len() int
	IDAt(i int) EntityID
}

// EachMerged walks several ID-sorted stores as one sequence in global ID
// order. fn receives the index of the store in stores and the position of
// the entry inside it.
func EachMerged(stores []Ordered, fn func(store, pos int)) {
	cursors := make([]int, len(stores))
	for {
		best := -1
		var bestID EntityID
		for s, st := range stores {
			if cursors[s] >= st.Len() {
				continue
			}
			id := st.IDAt(cursors[s])
			if best < 0 || id < bestID {
				best, bestID = s, id
			}
		}
		if best < 0 {
			return
		}
		fn(best, cursors[best])
		cursors[best]++
	}
}
