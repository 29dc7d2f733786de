package interact

import (
	"log/slog"
	"slices"
)

// Picker finds the nearest visible region under a frame position.
type Picker interface {
	Pick(x, y float64) (key string, ok bool)
}

// Pointer is one input snapshot. Has is false while the pointer is
// outside the map.
type Pointer struct {
	X, Y float64
	Has  bool
}

// Coordinator owns the interaction state and the filter.
type Coordinator struct {
	state   State
	filter  Filter
	picker  Picker
	cluster map[string]int
}

// NewCoordinator needs each region key's cluster to answer visibility.
func NewCoordinator(p Picker, clusterOf map[string]int, clusters []int) *Coordinator {
	return &Coordinator{picker: p, cluster: clusterOf, filter: NewFilter(clusters)}
}

func (c *Coordinator) State() State { return c.state }
func (c *Coordinator) Filter() Filter { return c.filter }

// Register adds a region created after construction. An unseen cluster
// joins the filter switched on.
func (c *Coordinator) Register(key string, cluster int) {
	if c.cluster == nil {
		c.cluster = map[string]int{}
	}
	c.cluster[key] = cluster
	if !slices.Contains(c.filter.all, cluster) {
		c.filter.all = append(c.filter.all, cluster)
		slices.Sort(c.filter.all)
		c.filter.Set(cluster, true)
	}
}

func (c *Coordinator) Visible(cluster int) bool { return c.filter.Has(cluster) }

// KeyVisible reports whether a region passes the filter.
func (c *Coordinator) KeyVisible(key string) bool {
	id, ok := c.cluster[key]
	return ok && c.filter.Has(id)
}

func (c *Coordinator) pick(p Pointer) (string, bool) {
	if !p.Has || c.picker == nil {
		return "", false
	}
	return c.picker.Pick(p.X, p.Y)
}

// Tick updates the hover from the pointer and reports whether the state
// changed. A lock skips picking entirely.
func (c *Coordinator) Tick(p Pointer) bool {
	if c.state.Kind == Locked {
		return false
	}
	key, hit := c.pick(p)
	return c.set(c.state.Hover(key, hit))
}

func (c *Coordinator) Click(p Pointer) Effect {
	key, hit := c.pick(p)
	next, eff := c.state.Click(key, hit)
	c.set(next)
	return eff
}

func (c *Coordinator) Close() Effect {
	next, eff := c.state.Close()
	c.set(next)
	return eff
}

func (c *Coordinator) Toggle(cluster int) Effect {
	c.filter.Toggle(cluster)
	return c.reconcile()
}

func (c *Coordinator) SetAll(on bool) Effect {
	c.filter.SetAll(on)
	return c.reconcile()
}

func (c *Coordinator) reconcile() Effect {
	next, eff := c.state.Reconcile(c.KeyVisible)
	c.set(next)
	return eff
}

func (c *Coordinator) set(next State) bool {
	if next == c.state {
		return false
	}
	slog.Debug("interaction", "from", c.state.Kind.String(), "to", next.Kind.String(), "region", next.Key)
	c.state = next
	return true
}
