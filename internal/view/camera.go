// Package view holds the perspective camera and the controller that
// choreographs it between the nation overview and a single region.
package view

import (
	"math"

	"choromap/internal/geom"
)

// Camera is a perspective camera looking at Target. Projection lands in a
// W×H pixel frame with y growing downward.
type Camera struct {
	Position geom.Vec3
	Target   geom.Vec3
	Up       geom.Vec3
	FovDeg   float64
	Near     float64
	W, H     int
}

func NewCamera(fovDeg, near float64) *Camera {
	return &Camera{
		Position: geom.Vec3{Z: 10},
		Up:       geom.Vec3{Y: 1},
		FovDeg:   fovDeg,
		Near:     near,
		W:        1,
		H:        1,
	}
}

func (c *Camera) Aspect() float64 {
	if c.W <= 0 || c.H <= 0 {
		return 1
	}
	return float64(c.W) / float64(c.H)
}

func (c *Camera) halfTan() float64 {
	return math.Tan(c.FovDeg * math.Pi / 360)
}

// Basis returns the right, up and forward unit vectors. When looking
// straight along Up the map's +y stays screen-up.
func (c *Camera) Basis() (right, up, forward geom.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	if forward == (geom.Vec3{}) {
		forward = geom.Vec3{Z: -1}
	}
	upHint := c.Up
	if upHint == (geom.Vec3{}) {
		upHint = geom.Vec3{Y: 1}
	}
	right = forward.Cross(upHint).Normalize()
	if right == (geom.Vec3{}) {
		right = forward.Cross(geom.Vec3{Z: 1}).Normalize()
		if right == (geom.Vec3{}) {
			right = forward.Ortho()
		}
	}
	up = right.Cross(forward)
	return right, up, forward
}

func (c *Camera) Distance() float64 { return c.Position.Distance(c.Target) }

func (c *Camera) NearPlane() float64 { return c.Near }

func (c *Camera) Depth(p geom.Vec3) float64 {
	_, _, fwd := c.Basis()
	return p.Sub(c.Position).Dot(fwd)
}

// Project maps p to frame pixels. ok is false for points at or behind the
// near plane.
func (c *Camera) Project(p geom.Vec3) (sx, sy, depth float64, ok bool) {
	right, up, fwd := c.Basis()
	d := p.Sub(c.Position)
	depth = d.Dot(fwd)
	if !(depth > c.Near) {
		return 0, 0, depth, false
	}
	t := c.halfTan()
	ndcX := d.Dot(right) / (depth * t * c.Aspect())
	ndcY := d.Dot(up) / (depth * t)
	sx = (ndcX + 1) * 0.5 * float64(c.W)
	sy = (1 - ndcY) * 0.5 * float64(c.H)
	return sx, sy, depth, true
}

// Ray returns the world-space ray through frame pixel (sx, sy).
func (c *Camera) Ray(sx, sy float64) (origin, dir geom.Vec3) {
	right, up, fwd := c.Basis()
	t := c.halfTan()
	ndcX := 2*sx/float64(max(c.W, 1)) - 1
	ndcY := 1 - 2*sy/float64(max(c.H, 1))
	dir = fwd.Add(right.Mul(ndcX * t * c.Aspect())).Add(up.Mul(ndcY * t)).Normalize()
	return c.Position, dir
}

// PlaneHit intersects the ray through (sx, sy) with the plane z = h.
func (c *Camera) PlaneHit(sx, sy, h float64) (geom.Vec3, bool) {
	o, d := c.Ray(sx, sy)
	if math.Abs(d.Z) < 1e-12 {
		return geom.Vec3{}, false
	}
	t := (h - o.Z) / d.Z
	if t <= 0 {
		return geom.Vec3{}, false
	}
	return o.Add(d.Mul(t)), true
}

// IntersectTriangle is Möller-Trumbore; it returns the ray parameter of
// the hit. Both windings are hit.
func IntersectTriangle(o, d, a, b, c geom.Vec3) (float64, bool) {
	const eps = 1e-12
	e1, e2 := b.Sub(a), c.Sub(a)
	p := d.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := o.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= eps {
		return 0, false
	}
	return t, true
}

// Orbit rotates the position around the target by dAz (about +z) and
// dTilt (away from straight down), keeping the distance. The tilt is
// clamped to [0, maxTilt].
func (c *Camera) Orbit(dAz, dTilt, maxTilt float64) {
	v := c.Position.Sub(c.Target)
	dist := v.Norm()
	if dist == 0 {
		return
	}
	tilt := math.Acos(math.Max(-1, math.Min(1, v.Z/dist)))
	az := math.Atan2(v.Y, v.X)
	if tilt == 0 {
		az = -math.Pi / 2
	}
	tilt = math.Max(0, math.Min(maxTilt, tilt+dTilt))
	az += dAz
	s := math.Sin(tilt)
	c.Position = c.Target.Add(geom.Vec3{
		X: dist * math.Cos(az) * s,
		Y: dist * math.Sin(az) * s,
		Z: dist * math.Cos(tilt),
	})
}
