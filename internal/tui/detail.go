package tui

import (
	"fmt"
	"strconv"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"choromap/internal/meta"
)

// renderPanel shows the locked region: cluster pill, score bar and its top
// features.
func (m Model) renderPanel(h int) string {
	d, ok := m.scene.Detail()
	if !ok {
		return ""
	}
	inner := panelWidth - 4
	lines := []string{
		titleStyle.Render(truncate(d.Name, inner)),
		swatch(d.Color) + " " + d.ClusterLabel,
		"",
		"score " + scoreText(d),
		scoreBar(d, inner),
		"",
	}

	tbl := m.tbl
	tbl.SetRows(featureRows(d))
	tbl.SetHeight(min(len(d.Features)+1, 5))
	lines = append(lines, tbl.View(), "", dimStyle.Render("esc close"))

	return boxStyle.Width(panelWidth).Height(max(3, h-2)).Render(strings.Join(lines, "\n"))
}

func scoreText(d meta.Detail) string {
	if d.Score == nil {
		return "–"
	}
	return strconv.FormatFloat(*d.Score, 'f', 3, 64)
}

// scoreBar maps the silhouette range [-1, 1] onto the bar width.
func scoreBar(d meta.Detail, w int) string {
	filled := 0
	if d.Score != nil {
		filled = int(d.Bar*float64(w) + 0.5)
	}
	filled = max(0, min(w, filled))
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", w-filled))
}

func featureRows(d meta.Detail) []table.Row {
	rows := make([]table.Row, 0, len(d.Features))
	for i, f := range d.Features {
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), f})
	}
	return rows
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
