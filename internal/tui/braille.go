package tui

import (
	"choromap/internal/raster"

	"github.com/lucasb-eyer/go-colorful"
)

// brailleBit is the dot for micro pixel (rx, ry) inside a 2×4 cell.
var brailleBit = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// cellGlyph describes one terminal cell of the map.
type cellGlyph struct {
	r  rune
	fg colorful.Color
	bg colorful.Color
}

// brailleCell folds the 2×4 micro pixels of cell (cx, cy) into one glyph:
// the mean colour becomes the background and inked pixels become dots.
func brailleCell(f *raster.Frame, cx, cy int) cellGlyph {
	var mask uint8
	var bg, ink [3]float64
	inked := 0
	for rx := 0; rx < 2; rx++ {
		for ry := 0; ry < 4; ry++ {
			x, y := cx*2+rx, cy*4+ry
			c := f.At(x, y)
			bg[0], bg[1], bg[2] = bg[0]+c.R, bg[1]+c.G, bg[2]+c.B
			if ic, ok := f.InkAt(x, y); ok {
				mask |= brailleBit[rx][ry]
				ink[0], ink[1], ink[2] = ink[0]+ic.R, ink[1]+ic.G, ink[2]+ic.B
				inked++
			}
		}
	}
	g := cellGlyph{r: ' ', bg: colorful.Color{R: bg[0] / 8, G: bg[1] / 8, B: bg[2] / 8}}
	if inked > 0 {
		n := float64(inked)
		g.r = rune(0x2800 + int(mask))
		g.fg = colorful.Color{R: ink[0] / n, G: ink[1] / n, B: ink[2] / n}
	}
	return g
}

// blockCell renders two stacked pixels with an upper half block; ink wins
// over the fill colour.
func blockCell(f *raster.Frame, cx, cy int) cellGlyph {
	px := func(x, y int) colorful.Color {
		if c, ok := f.InkAt(x, y); ok {
			return c
		}
		return f.At(x, y)
	}
	return cellGlyph{r: '▀', fg: px(cx, cy*2), bg: px(cx, cy*2+1)}
}
