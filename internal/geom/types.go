package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is a point or direction in scene space (projected units, z up).
type Vec3 = r3.Vector

// Finite reports whether no component is NaN or infinite.
func Finite(v Vec3) bool { return finite(v.X) && finite(v.Y) && finite(v.Z) }

// Lerp interpolates from a to b. k == 1 yields b exactly.
func Lerp(a, b Vec3, k float64) Vec3 {
	return Vec3{X: a.X*(1-k) + b.X*k, Y: a.Y*(1-k) + b.Y*k, Z: a.Z*(1-k) + b.Z*k}

}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Box3 is an axis-aligned bounding box. The zero value is not empty;
// use EmptyBox to start accumulating.
type Box3 struct {
	Min, Max Vec3
}

func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{Min: Vec3{X: inf, Y: inf, Z: inf}, Max: Vec3{X: -inf, Y: -inf, Z: -inf}}
}

func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

func (b Box3) Extend(p Vec3) Box3 {
	b.Min = Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	return b
}

func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Size is zero for an empty box.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center is the origin for an empty box.
func (b Box3) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return Lerp(b.Min, b.Max, 0.5)
}

// Segment is one border line piece.
type Segment struct {
	A, B Vec3
}
