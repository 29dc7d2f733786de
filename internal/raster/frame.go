// Package raster is a small software rasteriser: a colour buffer, an ink
// layer for strokes, and a stencil buffer, filled by triangles and lines
// projected through a camera.
package raster

import (
	"choromap/internal/geom"
	"choromap/internal/stencil"

	"github.com/lucasb-eyer/go-colorful"
)

// Camera projects scene points into frame pixel coordinates.
type Camera interface {
	// Depth is the distance of p along the view axis.
	Depth(p geom.Vec3) float64
	Project(p geom.Vec3) (sx, sy, depth float64, ok bool)
	NearPlane() float64
}

// Frame holds one rendered image in micro pixels.
type Frame struct {
	W, H       int
	Background colorful.Color
	Color      []colorful.Color
	Ink        []bool
	InkColor   []colorful.Color
	Stencil    *stencil.Buffer
}

func NewFrame(w, h int, bg colorful.Color) *Frame {
	f := &Frame{Background: bg, Stencil: stencil.NewBuffer(0, 0)}
	f.Resize(w, h)
	return f
}

func (f *Frame) Resize(w, h int) {
	f.W, f.H = max(w, 0), max(h, 0)
	n := f.W * f.H
	f.Color = make([]colorful.Color, n)
	f.Ink = make([]bool, n)
	f.InkColor = make([]colorful.Color, n)
	f.Stencil.Resize(f.W, f.H)
	f.Clear()
}

// Clear paints the background and resets ink and stencil.
func (f *Frame) Clear() {
	for i := range f.Color {
		f.Color[i] = f.Background
	}
	clear(f.Ink)
	f.Stencil.Clear()
}

func (f *Frame) in(x, y int) bool { return x >= 0 && y >= 0 && x < f.W && y < f.H }

func (f *Frame) At(x, y int) colorful.Color {
	if !f.in(x, y) {
		return f.Background
	}
	return f.Color[y*f.W+x]
}

func (f *Frame) InkAt(x, y int) (colorful.Color, bool) {
	if !f.in(x, y) {
		return colorful.Color{}, false
	}
	i := y*f.W + x
	return f.InkColor[i], f.Ink[i]
}

// Blend mixes c over pixel (x, y) with the given opacity.
func (f *Frame) Blend(x, y int, c colorful.Color, alpha float64) {
	if alpha <= 0 || !f.in(x, y) {
		return
	}
	i := y*f.W + x
	f.Color[i] = f.Color[i].BlendRgb(c, min(alpha, 1))
}

// Shader colours a fragment from its barycentric weights in the source
// triangle.
type Shader func(bary [3]float64) (colorful.Color, float64)

func Solid(c colorful.Color, alpha float64) Shader {
	return func([3]float64) (colorful.Color, float64) { return c, alpha }
}
