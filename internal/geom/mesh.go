package geom

import "math"

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vec3
	Indices  []int
}

// Placeholder is a zero-area triangle at p, used for degenerate regions.
func Placeholder(p Vec3) Mesh {
	return Mesh{Vertices: []Vec3{p, p, p}, Indices: []int{0, 1, 2}}
}

func (m Mesh) Len() int { return len(m.Indices) / 3 }

// Triangle returns the i-th triangle's corners.
func (m Mesh) Triangle(i int) (a, b, c Vec3) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

func (m Mesh) Bound() Box3 {
	b := EmptyBox()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	return b
}

// Area sums the planar (xy) area of all triangles.
func (m Mesh) Area() float64 {
	var a float64
	for i := 0; i < m.Len(); i++ {
		p, q, r := m.Triangle(i)
		a += math.Abs((q.X-p.X)*(r.Y-p.Y)-(q.Y-p.Y)*(r.X-p.X)) / 2
	}
	return a
}

// Merge appends o, offsetting its indices.
func (m Mesh) Merge(o Mesh) Mesh {
	base := len(m.Vertices)
	out := Mesh{
		Vertices: append(append([]Vec3(nil), m.Vertices...), o.Vertices...),
		Indices:  append([]int(nil), m.Indices...),
	}
	for _, i := range o.Indices {
		out.Indices = append(out.Indices, base+i)
	}
	return out
}

func (m Mesh) Translate(d Vec3) Mesh {
	out := Mesh{Vertices: make([]Vec3, len(m.Vertices)), Indices: m.Indices}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Add(d)
	}
	return out
}
