package icon

import (
	"math"
	"time"

	"choromap/internal/geom"
	"choromap/internal/stencil"

	"github.com/lucasb-eyer/go-colorful"
)

// refFrame is the frame time the grow rate is expressed against.
const refFrame = time.Second / 60

type Options struct {
	Padding       float64
	GrowScale     float64
	GrowRate      float64
	ExtrudeRatio  float64
	LODDistance   float64
	LODHysteresis float64
}

func DefaultOptions() Options {
	return Options{
		Padding:      0.88,
		GrowScale:    1.35,
		GrowRate:     0.12,
		ExtrudeRatio: 0.15,
		LODDistance:  6.0,
	}
}

// Layer owns every icon node and the stencil reference allocator.
type Layer struct {
	opts  Options
	alloc stencil.Allocator
	nodes []*Node
	byKey map[string]*Node
}

func NewLayer(opts Options) *Layer {
	return &Layer{opts: opts, byKey: map[string]*Node{}}
}

// Add creates the node for one region. The mask is in anchor-local space.
func (l *Layer) Add(key string, cluster int, anchor geom.Vec3, mask geom.Mesh, tex *Texture, tint colorful.Color) *Node {
	if tex == nil {
		tex = Placeholder()
	}
	size := mask.Bound().Size()
	n := &Node{
		Key:     key,
		Cluster: cluster,
		Anchor:  anchor,
		Ref:     l.alloc.Next(),
		Mask:    mask,
		MaskW:   size.X,
		MaskH:   size.Y,
		Tex:     tex,
		Tint:    tint,
		LOD:     LOD{Threshold: l.opts.LODDistance, Hysteresis: l.opts.LODHysteresis},
		Scale:   1,
		target:  1,
	}
	n.W, n.H = Fit(n.MaskW, n.MaskH, tex.Aspect(), l.opts.Padding)
	n.Flat = flatFace(n.W, n.H)
	n.Volume = volume(n.W, n.H, l.opts.ExtrudeRatio*min(n.W, n.H))
	l.nodes = append(l.nodes, n)
	l.byKey[key] = n
	return n
}

func (l *Layer) Nodes() []*Node { return l.nodes }

func (l *Layer) Node(key string) (*Node, bool) {
	n, ok := l.byKey[key]
	return n, ok
}

// Grow eases the highlighted node toward GrowScale and all others back to
// 1. The easing is frame-rate independent.
func (l *Layer) Grow(key string, ok bool, dt time.Duration) {
	k := 0.0
	if dt > 0 {
		k = 1 - math.Pow(1-l.opts.GrowRate, float64(dt)/float64(refFrame))
	}
	for _, n := range l.nodes {
		n.target = 1
		if ok && n.Key == key {
			n.target = l.opts.GrowScale
		}
		n.Scale = n.Scale*(1-k) + n.target*k
		if math.Abs(n.Scale-n.target) < 1e-4 {
			n.Scale = n.target
		}
	}
}

// UpdateLOD feeds the camera-to-target distance to every node and returns
// how many switched variant.
func (l *Layer) UpdateLOD(dist float64) int {
	changed := 0
	for _, n := range l.nodes {
		if n.LOD.Update(dist) {
			changed++
		}
	}
	return changed
}
