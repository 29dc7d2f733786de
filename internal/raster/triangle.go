package raster

import (
	"math"

	"choromap/internal/geom"
	"choromap/internal/stencil"
)

type vert struct {
	p    geom.Vec3
	bary [3]float64
	d    float64
}

// Triangle rasterises abc with the stencil state st and returns the number
// of fragments that passed the stencil test. The triangle is clipped
// against the near plane; both windings are drawn.
func (f *Frame) Triangle(cam Camera, a, b, c geom.Vec3, st stencil.State, sh Shader) int {
	poly := clipNear([]vert{
		{a, [3]float64{1, 0, 0}, cam.Depth(a)},
		{b, [3]float64{0, 1, 0}, cam.Depth(b)},
		{c, [3]float64{0, 0, 1}, cam.Depth(c)},
	}, cam.NearPlane()*1.0001)
	n := 0
	for i := 1; i+1 < len(poly); i++ {
		n += f.fill(cam, poly[0], poly[i], poly[i+1], st, sh)
	}
	return n
}

// Mesh draws every triangle of m, mapping vertices through xf when given.
func (f *Frame) Mesh(cam Camera, m geom.Mesh, xf func(geom.Vec3) geom.Vec3, st stencil.State, sh Shader) int {
	n := 0
	for i := 0; i < m.Len(); i++ {
		a, b, c := m.Triangle(i)
		if xf != nil {
			a, b, c = xf(a), xf(b), xf(c)
		}
		n += f.Triangle(cam, a, b, c, st, sh)
	}
	return n
}

// clipNear keeps the part of the polygon in front of the near plane.
func clipNear(in []vert, near float64) []vert {
	out := make([]vert, 0, 4)
	for i := range in {
		p, q := in[i], in[(i+1)%len(in)]
		pIn, qIn := p.d >= near, q.d >= near
		if pIn {
			out = append(out, p)
		}
		if pIn != qIn {
			t := (near - p.d) / (q.d - p.d)
			v := vert{p: geom.Lerp(p.p, q.p, t), d: near}
			for k := range v.bary {
				v.bary[k] = p.bary[k]*(1-t) + q.bary[k]*t
			}
			out = append(out, v)
		}
	}
	return out
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// owns breaks ties for pixel centres on an edge so that two triangles
// sharing the edge never both cover the pixel.
func owns(dx, dy float64) bool {
	return dy > 0 || (dy == 0 && dx > 0)
}

func covered(w, dx, dy float64) bool {
	return w > 0 || (w == 0 && owns(dx, dy))
}

func (f *Frame) fill(cam Camera, v0, v1, v2 vert, st stencil.State, sh Shader) int {
	x0, y0, z0, ok0 := cam.Project(v0.p)
	x1, y1, z1, ok1 := cam.Project(v1.p)
	x2, y2, z2, ok2 := cam.Project(v2.p)
	if !ok0 || !ok1 || !ok2 {
		return 0
	}
	area := edge(x0, y0, x1, y1, x2, y2)
	if area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return 0
	}
	if area < 0 {
		v1, v2 = v2, v1
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}

	minX := max(0, int(math.Floor(min(x0, x1, x2))))
	maxX := min(f.W-1, int(math.Ceil(max(x0, x1, x2))))
	minY := max(0, int(math.Floor(min(y0, y1, y2))))
	maxY := min(f.H-1, int(math.Ceil(max(y0, y1, y2))))

	n := 0
	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5
			w0 := edge(x1, y1, x2, y2, cx, cy)
			w1 := edge(x2, y2, x0, y0, cx, cy)
			w2 := edge(x0, y0, x1, y1, cx, cy)
			if !covered(w0, x2-x1, y2-y1) || !covered(w1, x0-x2, y0-y2) || !covered(w2, x1-x0, y1-y0) {
				continue
			}
			if !f.Stencil.Test(px, py, st) {
				continue
			}
			n++
			if !st.ColorWrite || sh == nil {
				continue
			}
			// perspective-correct weights
			q0, q1, q2 := w0/z0, w1/z1, w2/z2
			s := q0 + q1 + q2
			var bary [3]float64
			for k := range bary {
				bary[k] = (v0.bary[k]*q0 + v1.bary[k]*q1 + v2.bary[k]*q2) / s
			}
			c, alpha := sh(bary)
			f.Blend(px, py, c, alpha)
		}
	}
	return n
}
