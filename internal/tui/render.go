package tui

import (
	"strings"

	"choromap/internal/raster"

	"github.com/charmbracelet/lipgloss"
)

// cellSize is how many frame pixels one terminal cell covers.
func cellSize(braille bool) (sx, sy int) {
	if braille {
		return 2, 4
	}
	return 1, 2
}

// renderFrame turns the frame into cols×rows styled cells. Neighbouring
// cells with the same colours share one style run.
func renderFrame(f *raster.Frame, cols, rows int, braille bool) string {
	cell := blockCell
	if braille {
		cell = brailleCell
	}
	lines := make([]string, rows)
	var sb, run strings.Builder
	for cy := 0; cy < rows; cy++ {
		sb.Reset()
		run.Reset()
		var cur cellGlyph
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(cur.fg.Clamped().Hex())).
				Background(lipgloss.Color(cur.bg.Clamped().Hex()))
			sb.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for cx := 0; cx < cols; cx++ {
			g := cell(f, cx, cy)
			if run.Len() > 0 && !sameColors(g, cur) {
				flush()
			}
			cur = g
			run.WriteRune(g.r)
		}
		flush()
		lines[cy] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func sameColors(a, b cellGlyph) bool {
	if a.bg.Clamped().Hex() != b.bg.Clamped().Hex() {
		return false
	}
	// a blank braille cell has no visible foreground
	if a.r == ' ' && b.r == ' ' {
		return true
	}
	return a.fg.Clamped().Hex() == b.fg.Clamped().Hex()
}
