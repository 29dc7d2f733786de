package scene

import (
	"choromap/internal/geom"
	"choromap/internal/icon"
	"choromap/internal/raster"
	"choromap/internal/stencil"

	"github.com/lucasb-eyer/go-colorful"
)

var black = colorful.Color{}

// Render draws the current frame: background, visible fills, borders and,
// when the mode shows them, the clipped icons.
func (s *Scene) Render(f *raster.Frame) {
	cam := s.ctrl.Camera()
	if f.W != cam.W || f.H != cam.H {
		s.Resize(f.W, f.H)
	}
	f.Background = s.background
	f.Clear()

	params := s.style.Params()
	for _, fl := range s.fills {
		if !s.coord.Visible(fl.Region.Cluster) || fl.Opacity <= 0 {
			continue
		}
		f.Mesh(cam, fl.Mesh, nil, stencil.Off, raster.Solid(fl.Color, fl.Opacity))
	}

	for _, seg := range s.borders {
		f.Line(cam, seg.A, seg.B, s.border, params.BorderOpacity, params.BorderWeight)
	}

	if !params.IconsVisible {
		return
	}
	for _, n := range s.layer.Nodes() {
		if !s.coord.Visible(n.Cluster) {
			continue
		}
		s.renderIcon(f, n, params.IconOpacity)
	}
}

// renderIcon writes the node's mask into the stencil, then draws its faces
// where the stencil holds the node's reference. Both follow the grow scale.
func (s *Scene) renderIcon(f *raster.Frame, n *icon.Node, opacity float64) {
	cam := s.ctrl.Camera()
	f.Mesh(cam, n.Mask, n.World, stencil.Mask(n.Ref), nil)

	clip := stencil.Clip(n.Ref)
	for _, face := range n.Faces() {
		q := [4]geom.Vec3{}
		for i, v := range face.Quad {
			q[i] = n.World(v)
		}
		for _, tri := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			f.Triangle(cam, q[tri[0]], q[tri[1]], q[tri[2]], clip, faceShader(n, face, tri, opacity))
		}
	}
}

func faceShader(n *icon.Node, face icon.Face, tri [3]int, opacity float64) raster.Shader {
	if !face.Top {
		c := n.Tint.BlendRgb(black, 1-face.Shade)
		return raster.Solid(c, opacity)
	}
	uv := [3][2]float64{face.UV[tri[0]], face.UV[tri[1]], face.UV[tri[2]]}
	return func(b [3]float64) (colorful.Color, float64) {
		u := b[0]*uv[0][0] + b[1]*uv[1][0] + b[2]*uv[2][0]
		v := b[0]*uv[0][1] + b[1]*uv[1][1] + b[2]*uv[2][1]
		c, a := n.Tex.Sample(u, v)
		return c, a * opacity
	}
}
