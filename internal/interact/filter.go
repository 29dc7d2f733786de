package interact

import "sort"

// Filter is the set of visible cluster ids over a fixed universe.
type Filter struct {
	all []int
	on  map[int]bool
}

// NewFilter starts with every cluster in ids switched on.
func NewFilter(ids []int) Filter {
	f := Filter{on: map[int]bool{}}
	seen := map[int]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			f.all = append(f.all, id)
		}
	}
	sort.Ints(f.all)
	f.SetAll(true)
	return f
}

func (f Filter) Has(id int) bool { return f.on[id] }

func (f Filter) Set(id int, on bool) {
	if on {
		f.on[id] = true
	} else {
		delete(f.on, id)
	}
}

func (f Filter) Toggle(id int) { f.Set(id, !f.on[id]) }

func (f Filter) SetAll(on bool) {
	for _, id := range f.all {
		f.Set(id, on)
	}
}

func (f Filter) Clear() { f.SetAll(false) }

// IDs lists every known cluster in ascending order.
func (f Filter) IDs() []int { return f.all }
