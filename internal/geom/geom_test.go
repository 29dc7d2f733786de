package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unit = Projector{ScaleX: 1, ScaleY: 1}

func square(x0, y0, size float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0}}
}

func TestProjector(t *testing.T) {
	p := DefaultProjector()
	v := p.Project(20.5, 48.0, 0.25)
	assert.InDelta(t, 6.5, v.X, 1e-12)
	assert.InDelta(t, 9.5, v.Y, 1e-12)
	assert.Equal(t, 0.25, v.Z)

	lon, lat := p.Unproject(v.X, v.Y)
	assert.InDelta(t, 20.5, lon, 1e-12)
	assert.InDelta(t, 48.0, lat, 1e-12)
}

func TestRegionAnchor(t *testing.T) {
	p := DefaultProjector()
	tests := []struct {
		name   string
		region Region
		lon    float64
		lat    float64
	}{
		{
			name:   "stored centroid wins",
			region: Region{Centroid: &orb.Point{18, 46}, Boundary: orb.MultiPolygon{{square(0, 0, 2)}}},
			lon:    18,
			lat:    46,
		},
		{
			name:   "closing point is averaged in",
			region: Region{Boundary: orb.MultiPolygon{{square(0, 0, 2)}}},
			lon:    0.8,
			lat:    0.8,
		},
		{
			name:   "open ring",
			region: Region{Boundary: orb.MultiPolygon{{TrimClosing(square(0, 0, 2))}}},
			lon:    1,
			lat:    1,
		},
		{
			name:   "empty boundary falls back to origin",
			region: Region{},
			lon:    19.5,
			lat:    47.0,
		},
		{
			name:   "empty ring falls back to origin",
			region: Region{Boundary: orb.MultiPolygon{{orb.Ring{}}}},
			lon:    19.5,
			lat:    47.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lon, lat := p.RegionAnchor(tt.region)
			assert.InDelta(t, tt.lon, lon, 1e-12)
			assert.InDelta(t, tt.lat, lat, 1e-12)
		})
	}
}

func TestNormalizeRing(t *testing.T) {
	ccw := TrimClosing(square(0, 0, 1))
	cw := append(orb.Ring(nil), ccw...)
	cw.Reverse()

	tests := []struct {
		name  string
		in    orb.Ring
		outer bool
		want  orb.Orientation
	}{
		{"outer already ccw", ccw, true, orb.CCW},
		{"outer given cw", cw, true, orb.CCW},
		{"hole given ccw", ccw, false, orb.CW},
		{"hole already cw", cw, false, orb.CW},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := NormalizeRing(tt.in, tt.outer)
			twice := NormalizeRing(once, tt.outer)
			assert.Equal(t, tt.want, once.Orientation())
			assert.Equal(t, once, twice)
		})
	}

	t.Run("input untouched", func(t *testing.T) {
		in := append(orb.Ring(nil), cw...)
		NormalizeRing(in, true)
		assert.Equal(t, cw, in)
	})
}

func TestTrimClosing(t *testing.T) {
	assert.Len(t, TrimClosing(square(0, 0, 1)), 4)
	assert.Len(t, TrimClosing(orb.Ring{{0, 0}, {1, 0}, {1, 1}}), 3)
	assert.Len(t, TrimClosing(orb.Ring{{0, 0}}), 1)
	assert.Empty(t, TrimClosing(nil))
}

func triangulatedArea(verts []orb.Point, tris []int) float64 {
	var a float64
	for i := 0; i+2 < len(tris); i += 3 {
		p, q, r := verts[tris[i]], verts[tris[i+1]], verts[tris[i+2]]
		a += math.Abs((q[0]-p[0])*(r[1]-p[1])-(q[1]-p[1])*(r[0]-p[0])) / 2
	}
	return a
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name  string
		outer orb.Ring
		holes []orb.Ring
		area  float64
		tris  int
	}{
		{
			name:  "square",
			outer: square(0, 0, 1),
			area:  1,
			tris:  2,
		},
		{
			name:  "concave L",
			outer: orb.Ring{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}},
			area:  3,
			tris:  4,
		},
		{
			name:  "square with hole",
			outer: square(0, 0, 4),
			holes: []orb.Ring{NormalizeRing(TrimClosing(square(1, 1, 2)), false)},
			area:  12,
			tris:  8,
		},
		{
			name:  "two holes",
			outer: square(0, 0, 10),
			holes: []orb.Ring{
				NormalizeRing(square(1, 1, 2), false),
				NormalizeRing(square(6, 6, 3), false),
			},
			area: 100 - 4 - 9,
		},
		{
			name:  "two vertices",
			outer: orb.Ring{{0, 0}, {1, 1}},
		},
		{
			name:  "collinear",
			outer: orb.Ring{{0, 0}, {1, 0}, {2, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts, tris := Triangulate(tt.outer, tt.holes)
			assert.Zero(t, len(tris)%3)
			assert.InDelta(t, tt.area, triangulatedArea(verts, tris), 1e-9)
			if tt.tris > 0 {
				assert.Len(t, tris, tt.tris*3)
			}
			for _, i := range tris {
				assert.Less(t, i, len(verts))
			}
		})
	}
}

func TestTriangulateCCWOutput(t *testing.T) {
	outer := square(0, 0, 1)
	outer.Reverse()
	verts, tris := Triangulate(outer, nil)
	require.Len(t, tris, 6)
	for i := 0; i < len(tris); i += 3 {
		p, q, r := verts[tris[i]], verts[tris[i+1]], verts[tris[i+2]]
		assert.Greater(t, (q[0]-p[0])*(r[1]-p[1])-(q[1]-p[1])*(r[0]-p[0]), 0.0)
	}
}

func TestBuildCombWithHoles(t *testing.T) {
	comb := orb.Ring{{0, 0}, {11, 0}, {11, 9}, {10, 9}, {10, 6}, {6, 6}, {6, 9}, {5, 9}, {5, 6}, {1, 6}, {1, 9}, {0, 9}, {0, 0}}
	holes := []orb.Ring{rect(1, 2, 3, 4), rect(4.5, 2, 6.5, 4), rect(8, 2, 10, 4)}

	for _, reversed := range []bool{false, true} {
		outer := append(orb.Ring(nil), comb...)
		poly := orb.Polygon{outer}
		for _, h := range holes {
			poly = append(poly, append(orb.Ring(nil), h...))
		}
		if reversed {
			for _, r := range poly {
				r.Reverse()
			}
		}
		g := Builder{Projector: unit}.Build(Region{Boundary: orb.MultiPolygon{poly}}, Vec3{})
		assert.InDelta(t, 63, g.Fill.Area(), 1e-9, "reversed=%v", reversed)
		assert.InDelta(t, 63, g.Mask.Area(), 1e-9, "reversed=%v", reversed)
	}
}

func rect(x0, y0, x1, y1 float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func TestBuild(t *testing.T) {
	b := Builder{Projector: unit}
	anchor := Vec3{X: 1, Y: 1, Z: 0}

	t.Run("polygon with hole", func(t *testing.T) {
		r := Region{Boundary: orb.MultiPolygon{{square(0, 0, 4), square(1, 1, 2)}}}
		g := b.Build(r, anchor)
		assert.InDelta(t, 12, g.Fill.Area(), 1e-9)
		assert.InDelta(t, g.Fill.Area(), g.Mask.Area(), 1e-9)
		assert.Len(t, g.Border, 8)
		for _, v := range g.Fill.Vertices {
			assert.Equal(t, FillZ, v.Z)
		}
		for i, v := range g.Mask.Vertices {
			f := g.Fill.Vertices[i]
			assert.InDelta(t, f.X-anchor.X, v.X, 1e-12)
			assert.InDelta(t, f.Y-anchor.Y, v.Y, 1e-12)
			assert.Equal(t, MaskZ, v.Z)
		}
		for _, s := range g.Border {
			assert.Equal(t, BorderZ, s.A.Z)
		}
	})

	t.Run("multipolygon parts merge", func(t *testing.T) {
		r := Region{Boundary: orb.MultiPolygon{{square(0, 0, 1)}, {square(5, 5, 2)}}}
		g := b.Build(r, anchor)
		assert.InDelta(t, 5, g.Fill.Area(), 1e-9)
		assert.Equal(t, 4, g.Fill.Len())
		assert.Len(t, g.Border, 8)
		bound := g.Fill.Bound()
		assert.Equal(t, Vec3{X: 0, Y: 0, Z: FillZ}, bound.Min)
		assert.Equal(t, Vec3{X: 7, Y: 7, Z: FillZ}, bound.Max)
	})

	t.Run("clockwise outer is normalised", func(t *testing.T) {
		ring := square(0, 0, 2)
		ring.Reverse()
		g := b.Build(Region{Boundary: orb.MultiPolygon{{ring}}}, anchor)
		assert.InDelta(t, 4, g.Fill.Area(), 1e-9)
	})

	degenerate := []struct {
		name string
		r    Region
	}{
		{"empty boundary", Region{}},
		{"single vertex", Region{Boundary: orb.MultiPolygon{{orb.Ring{{3, 3}}}}}},
		{"no vertices", Region{Boundary: orb.MultiPolygon{{orb.Ring{}}}}},
	}
	for _, tt := range degenerate {
		t.Run(tt.name, func(t *testing.T) {
			g := b.Build(tt.r, anchor)
			assert.Zero(t, g.Fill.Area())
			assert.Zero(t, g.Mask.Area())
			assert.Equal(t, 1, g.Fill.Len())
			assert.Equal(t, Vec3{X: 1, Y: 1, Z: FillZ}, g.Fill.Vertices[0])
			assert.Equal(t, Vec3{X: 0, Y: 0, Z: MaskZ}, g.Mask.Vertices[0])
		})
	}

	t.Run("two vertex ring gives one border segment", func(t *testing.T) {
		g := b.Build(Region{Boundary: orb.MultiPolygon{{orb.Ring{{0, 0}, {1, 1}}}}}, anchor)
		assert.Len(t, g.Border, 1)
		assert.Zero(t, g.Fill.Area())
	})
}

func TestMeshMerge(t *testing.T) {
	a := Mesh{Vertices: []Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, Indices: []int{0, 1, 2}}
	m := a.Merge(a.Translate(Vec3{X: 2, Y: 0, Z: 0}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, m.Indices)
	assert.InDelta(t, 1.0, m.Area(), 1e-12)
	assert.Len(t, a.Vertices, 3)
}

func TestBox3(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, Vec3{}, b.Center())
	assert.Equal(t, Vec3{}, b.Size())

	b = b.Extend(Vec3{X: 1, Y: 2, Z: 3}).Extend(Vec3{X: -1, Y: 0, Z: 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3{X: 0, Y: 1, Z: 3}, b.Center())
	assert.Equal(t, Vec3{X: 2, Y: 2, Z: 0}, b.Size())
	assert.Equal(t, b, b.Union(EmptyBox()))
	assert.Equal(t, b, EmptyBox().Union(b))
}

func TestLerpEndpoints(t *testing.T) {
	a, b := Vec3{X: 0.1, Y: 0.2, Z: 0.3}, Vec3{X: 7.7, Y: -3.3, Z: 1e-4}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
}
