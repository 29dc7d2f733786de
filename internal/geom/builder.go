package geom

import "github.com/paulmach/orb"

// Geometry is what the builder produces for one region.
type Geometry struct {
	Fill   Mesh
	Border []Segment
	Mask   Mesh
	Anchor Vec3
}

// Builder turns region boundaries into scene meshes.
type Builder struct {
	Projector Projector
}

// Build triangulates every polygon of r into one fill mesh, collects border
// segments for every ring, and re-expresses the fill relative to anchor as a
// clip mask. Degenerate boundaries produce zero-area placeholders at the
// anchor; Build never fails.
func (b Builder) Build(r Region, anchor Vec3) Geometry {
	g := Geometry{Anchor: anchor}
	var flat Mesh
	for _, poly := range r.Boundary {
		flat = flat.Merge(b.polygon(poly))
		for _, ring := range poly {
			g.Border = append(g.Border, b.border(ring)...)
		}
	}
	if flat.Len() == 0 {
		flat = Placeholder(Vec3{X: anchor.X, Y: anchor.Y, Z: 0})
	}

	g.Fill = withZ(flat, FillZ)
	g.Mask = withZ(flat.Translate(Vec3{X: -anchor.X, Y: -anchor.Y, Z: 0}), MaskZ)
	return g
}

// polygon triangulates one outer ring and its holes at z = 0.
func (b Builder) polygon(poly orb.Polygon) Mesh {
	if len(poly) == 0 {
		return Mesh{}
	}
	outer := NormalizeRing(b.planar(poly[0]), true)
	var holes []orb.Ring
	for _, h := range poly[1:] {
		holes = append(holes, NormalizeRing(b.planar(h), false))
	}
	verts, tris := Triangulate(outer, holes)
	if len(tris) == 0 {
		return Mesh{}
	}
	m := Mesh{Vertices: make([]Vec3, len(verts)), Indices: tris}
	for i, v := range verts {
		m.Vertices[i] = Vec3{X: v[0], Y: v[1], Z: 0}
	}
	return m
}

// planar projects a ring onto the scene plane and trims its closing point.
func (b Builder) planar(r orb.Ring) orb.Ring {
	r = TrimClosing(r)
	out := make(orb.Ring, len(r))
	for i, p := range r {
		v := b.Projector.ProjectPoint(p, 0)
		out[i] = orb.Point{v.X, v.Y}
	}
	return out
}

func (b Builder) border(r orb.Ring) []Segment {
	r = TrimClosing(r)
	n := len(r)
	if n < 2 {
		return nil
	}
	pts := make([]Vec3, n)
	for i, p := range r {
		pts[i] = b.Projector.ProjectPoint(p, BorderZ)
	}
	if n == 2 {
		return []Segment{{pts[0], pts[1]}}
	}
	segs := make([]Segment, 0, n)
	for i := range pts {
		segs = append(segs, Segment{pts[i], pts[(i+1)%n]})
	}
	return segs
}

func withZ(m Mesh, z float64) Mesh {
	out := Mesh{Vertices: make([]Vec3, len(m.Vertices)), Indices: m.Indices}
	for i, v := range m.Vertices {
		out.Vertices[i] = Vec3{X: v.X, Y: v.Y, Z: z}
	}
	return out
}
