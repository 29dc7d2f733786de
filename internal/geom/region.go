package geom

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Region is one administrative unit as loaded from boundary data.
type Region struct {
	Key        string
	Name       string
	Cluster    int
	Boundary   orb.MultiPolygon
	Centroid   *orb.Point
	Properties map[string]any
}

// Bound is the lon/lat bounding box of the boundary.
func (r Region) Bound() orb.Bound {
	return r.Boundary.Bound()
}

// keyer hands out collision-free region keys. A duplicate gets the
// first free "#n" suffix, checked against every key already handed out.
type keyer struct {
	used map[string]bool
	next map[string]int
}

func newKeyer() *keyer { return &keyer{used: map[string]bool{}, next: map[string]int{}} }

// claim reserves key and reports whether it was still free.
func (k *keyer) claim(key string) bool {
	if k.used[key] {
		return false
	}
	k.used[key] = true
	return true
}

func (k *keyer) key(name string) string {
	if name == "" {
		name = "id_" + uuid.NewString()
	}
	if k.claim(name) {
		return name
	}
	for n := max(k.next[name], 2); ; n++ {
		if c := fmt.Sprintf("%s#%d", name, n); k.claim(c) {
			k.next[name] = n + 1
			return c
		}
	}
}

// AssignKeys fills in Key for every region that has none, keeping keys
// unique across the slice. The first region holding a key keeps it; a
// later region with the same key is renamed.
func AssignKeys(regions []Region) {
	k := newKeyer()
	clash := make([]bool, len(regions))
	for i, r := range regions {
		if r.Key != "" && !k.claim(r.Key) {
			clash[i] = true
		}
	}
	for i := range regions {
		switch {
		case regions[i].Key == "":
			regions[i].Key = k.key(regions[i].Name)
		case clash[i]:
			regions[i].Key = k.key(regions[i].Key)
		}
	}
}
