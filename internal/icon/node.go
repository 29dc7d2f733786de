// Package icon owns the per-region cluster icons: a flat textured quad and
// an extruded volume, both clipped to the region mask through the stencil.
package icon

import (
	"choromap/internal/geom"

	"github.com/lucasb-eyer/go-colorful"
)

type Variant int

const (
	Flat Variant = iota
	Volumetric
)

func (v Variant) String() string {
	if v == Volumetric {
		return "volumetric"
	}
	return "flat"
}

// LOD switches between the flat and volumetric icon by camera distance.
// Below Threshold-Hysteresis/2 the volume shows; above
// Threshold+Hysteresis/2 the flat quad returns.
type LOD struct {
	Threshold  float64
	Hysteresis float64
	variant    Variant
}

func (l *LOD) Variant() Variant { return l.variant }

// SetVariant reports whether the visible variant changed.
func (l *LOD) SetVariant(v Variant) bool {
	if l.variant == v {
		return false
	}
	l.variant = v
	return true
}

func (l *LOD) Update(dist float64) bool {
	half := l.Hysteresis / 2
	switch l.variant {
	case Flat:
		if dist < l.Threshold-half {
			return l.SetVariant(Volumetric)
		}
	case Volumetric:
		if dist > l.Threshold+half {
			return l.SetVariant(Flat)
		}
	}
	return false
}

// Face is one textured or shaded quad in node-local space, corners
// counter-clockwise from the bottom left.
type Face struct {
	Quad  [4]geom.Vec3
	UV    [4][2]float64
	Top   bool
	Shade float64
}

// quadUV maps the top image row to the +y edge.
var quadUV = [4][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// Node is one region's icon, positioned at the region anchor.
type Node struct {
	Key     string
	Cluster int
	Anchor  geom.Vec3
	Ref     uint8

	Mask         geom.Mesh
	MaskW, MaskH float64

	Tex  *Texture
	Tint colorful.Color
	W, H float64

	Flat   Face
	Volume []Face

	LOD    LOD
	Scale  float64
	target float64
}

// World maps a node-local point into the scene.
func (n *Node) World(v geom.Vec3) geom.Vec3 {
	return n.Anchor.Add(v.Mul(n.Scale))
}

// Faces returns the geometry of the visible variant.
func (n *Node) Faces() []Face {
	if n.LOD.Variant() == Volumetric && len(n.Volume) > 0 {
		return n.Volume
	}
	return []Face{n.Flat}
}

// Fit sizes a quad of the given aspect into the mask box shrunk by pad,
// preserving aspect. A zero-size mask yields a zero-size quad.
func Fit(maskW, maskH, aspect, pad float64) (w, h float64) {
	if !(maskW > 0) || !(maskH > 0) || !(aspect > 0) {
		return 0, 0
	}
	w, h = maskW*pad, maskH*pad
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	return w, h
}

func flatFace(w, h float64) Face {
	x, y := w/2, h/2
	return Face{
		Quad: [4]geom.Vec3{{X: -x, Y: -y, Z: geom.IconZ}, {X: x, Y: -y, Z: geom.IconZ}, {X: x, Y: y, Z: geom.IconZ}, {X: -x, Y: y, Z: geom.IconZ}},
		UV:   quadUV,
		Top:  true,
	}
}

// volume extrudes the flat footprint upward by depth: a textured top and
// four shaded sides.
func volume(w, h, depth float64) []Face {
	if depth <= 0 {
		return nil
	}
	x, y := w/2, h/2
	z0, z1 := geom.IconZ, geom.IconZ+depth
	top := flatFace(w, h)
	for i := range top.Quad {
		top.Quad[i].Z = z1
	}
	side := func(a, b geom.Vec3, shade float64) Face {
		return Face{
			Quad:  [4]geom.Vec3{{X: a.X, Y: a.Y, Z: z0}, {X: b.X, Y: b.Y, Z: z0}, {X: b.X, Y: b.Y, Z: z1}, {X: a.X, Y: a.Y, Z: z1}},
			Shade: shade,
		}
	}
	c := [4]geom.Vec3{{X: -x, Y: -y, Z: 0}, {X: x, Y: -y, Z: 0}, {X: x, Y: y, Z: 0}, {X: -x, Y: y, Z: 0}}
	return []Face{
		side(c[0], c[1], 0.55),
		side(c[1], c[2], 0.7),
		side(c[2], c[3], 0.85),
		side(c[3], c[0], 0.7),
		top,
	}
}
