package raster

import (
	"math"

	"choromap/internal/geom"

	"github.com/lucasb-eyer/go-colorful"
)

// Line strokes ab onto the ink layer. The ink colour is c blended over
// whatever the colour buffer holds, so strokes keep the fill underneath.
// Weight 2 thickens the stroke by one pixel right and down.
func (f *Frame) Line(cam Camera, a, b geom.Vec3, c colorful.Color, alpha float64, weight int) {
	if alpha <= 0 {
		return
	}
	near := cam.NearPlane() * 1.0001
	da, db := cam.Depth(a), cam.Depth(b)
	if da < near && db < near {
		return
	}
	if da < near {
		a = geom.Lerp(a, b, (near-da)/(db-da))
	} else if db < near {
		b = geom.Lerp(b, a, (near-db)/(da-db))
	}
	x0, y0, _, ok0 := cam.Project(a)
	x1, y1, _, ok1 := cam.Project(b)
	if !ok0 || !ok1 {
		return
	}
	x0, y0, x1, y1, ok := clipRect(x0, y0, x1, y1, -1, -1, float64(f.W)+1, float64(f.H)+1)
	if !ok {
		return
	}
	f.bresenham(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), func(x, y int) {
		f.plot(x, y, c, alpha)
		if weight > 1 {
			f.plot(x+1, y, c, alpha)
			f.plot(x, y+1, c, alpha)
		}
	})
}

func (f *Frame) plot(x, y int, c colorful.Color, alpha float64) {
	if !f.in(x, y) {
		return
	}
	i := y*f.W + x
	f.Ink[i] = true
	f.InkColor[i] = f.Color[i].BlendRgb(c, min(alpha, 1))
}

func (f *Frame) bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipRect is Liang-Barsky clipping of a segment to [minX,maxX]×[minY,maxY].
func clipRect(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
