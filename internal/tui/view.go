package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"choromap/internal/logging"
)

// layout is the map area in terminal cells.
type layout struct {
	mapX, mapY int
	mapW, mapH int
	contentH   int
	panel      bool
}

func (m Model) layout() layout {
	contentWidth := max(10, m.width)
	lay := layout{mapY: headerHeight, contentH: max(4, m.height-headerHeight-footerHeight)}
	w := contentWidth
	if m.showSidebar {
		lay.mapX = sidebarWidth + 1
		w -= sidebarWidth + 1
	}
	if _, ok := m.scene.Detail(); ok {
		lay.panel = true
		w -= panelWidth + 1
	}
	h := lay.contentH
	if m.showLegend {
		h--
	}
	lay.mapW, lay.mapH = max(8, w), max(3, h)
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" choromap ─ " + m.scene.Mode().String() + " ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Map viewport
	var mapView string
	if m.pasteMode {
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	} else {
		if m.frame.W > 0 && m.frame.H > 0 {
			m.scene.Render(m.frame)
		}
		mapView = renderFrame(m.frame, lay.mapW, lay.mapH, m.braille)
	}
	if m.showLegend {
		mapView = lipgloss.JoinVertical(lipgloss.Left, mapView, m.renderLegend(lay.mapW))
	}

	cols := []string{}
	if m.showSidebar {
		cols = append(cols, lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View()), " ")
	}
	cols = append(cols, mapView)
	if lay.panel {
		cols = append(cols, " ", m.renderPanel(lay.contentH))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer: status and help, then tooltip, coordinates and the last warning.
	status := dimStyle.Render(" " + m.status + " ")
	line1 := lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp()))

	var parts []string
	if tip, ok := m.scene.Tooltip(); ok {
		parts = append(parts, tipStyle.Render(tip))
	}
	if m.hoverHasGeo {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)))
	}
	if w := logging.Capture.LastLine(); w != "" {
		parts = append(parts, dimStyle.Render(w))
	}
	line2 := lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(" " + strings.Join(parts, "  "))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, line1, line2)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderLegend lists the clusters with their toggle keys; hidden clusters
// are struck through.
func (m Model) renderLegend(w int) string {
	f := m.scene.Filter()
	var items []string
	for i, id := range f.IDs() {
		label := m.cfg.Label(id)
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		st := dimStyle
		if !f.Has(id) {
			st = offStyle
		}
		items = append(items, swatch(m.cfg.ColorHex(id))+" "+st.Render(label))
	}
	items = append(items, dimStyle.Render("a all  n none  m "+m.scene.Mode().String()))
	return lipgloss.NewStyle().Width(w).MaxHeight(1).Render(strings.Join(items, "  "))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click detail",
		"esc close",
		"1-9 clusters",
		"m style",
		"+/- zoom",
		"←→↑↓ orbit",
		"Tab files",
		"p paste",
		"l legend",
		"b braille",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
