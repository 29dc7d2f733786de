package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"choromap/internal/geom"
	"choromap/internal/scene"
)

const (
	orbitStep = 0.08
	tiltStep  = 0.05
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(sidebarWidth-2, max(2, m.height-headerHeight-footerHeight-2))
	case tickMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.resizeScene()
		m.scene.Tick(dt, m.pointer)
		return m, m.tick()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				m.status = "view mode"
				return m, nil
			case "enter":
				m.addPasted(m.ta.Value())
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if cmd, handled := m.key(msg.String()); handled {
			m.resizeScene()
			return m, cmd
		}
	case tea.MouseMsg:
		m.mouse(msg)
	}
	m.resizeScene()
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// key handles the global bindings. Unhandled keys fall through to the
// sidebar list.
func (m *Model) key(k string) (tea.Cmd, bool) {
	switch k {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "esc":
		m.scene.Close()
		m.status = "nation view"
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		ids := m.scene.Filter().IDs()
		i := int(k[0] - '1')
		if i >= len(ids) {
			return nil, true
		}
		m.scene.Toggle(ids[i])
		m.status = fmt.Sprintf("%s: %v", m.cfg.Label(ids[i]), m.scene.Filter().Has(ids[i]))
	case "a":
		m.scene.SetAll(true)
		m.status = "all clusters shown"
	case "n":
		m.scene.SetAll(false)
		m.status = "all clusters hidden"
	case "m":
		m.scene.SetMode(m.scene.Mode().Next())
		m.status = "style: " + m.scene.Mode().String()
	case "+", "=":
		m.zoom(m.zoomStep())
	case "-", "_":
		m.zoom(1 / m.zoomStep())
	case "left", "right", "up", "down":
		if m.showSidebar && (k == "up" || k == "down") {
			return nil, false
		}
		var da, dt float64
		switch k {
		case "left":
			da = -orbitStep
		case "right":
			da = orbitStep
		case "up":
			dt = -tiltStep
		case "down":
			dt = tiltStep
		}
		if !m.scene.Orbit(da, dt) {
			m.status = "tilt is locked in the nation view"
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
	case "enter":
		if !m.showSidebar {
			return nil, true
		}
		if it, ok := m.l.SelectedItem().(fileItem); ok {
			m.loadPath(it.path)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	case "l":
		m.showLegend = !m.showLegend
	case "b":
		m.braille = !m.braille
		m.status = fmt.Sprintf("braille: %v", m.braille)
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) zoomStep() float64 {
	if m.cfg.UI.ZoomStep > 1 {
		return m.cfg.UI.ZoomStep
	}
	return 1.15
}

func (m *Model) zoom(f float64) {
	if m.scene.Zoom(f) {
		m.status = fmt.Sprintf("distance: %.2f", m.scene.Camera().Distance())
	}
}

// mouse maps a terminal cell to frame pixels: hover, click and wheel zoom.
func (m *Model) mouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	if cx < 0 || cy < 0 || cx >= lay.mapW || cy >= lay.mapH {
		m.pointer = scene.Input{}
		m.hoverHasGeo = false
		return
	}
	sx, sy := cellSize(m.braille)
	m.pointer = scene.Input{
		X:   float64(cx*sx) + float64(sx)/2,
		Y:   float64(cy*sy) + float64(sy)/2,
		Has: true,
	}
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.scene.PointerLonLat(m.pointer.X, m.pointer.Y)

	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.zoom(m.zoomStep())
	case tea.MouseButtonWheelDown:
		m.zoom(1 / m.zoomStep())
	case tea.MouseButtonLeft:
		m.scene.Click(m.pointer)
		if d, ok := m.scene.Detail(); ok {
			m.status = "detail: " + d.Name
		}
	}
}

// parsePaste reads bare WKT or name;cluster;WKT.
func parsePaste(text string) (geom.Region, error) {
	name, cluster, w := "pasted", 0, strings.TrimSpace(text)
	if parts := strings.SplitN(w, ";", 3); len(parts) == 3 {
		c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return geom.Region{}, fmt.Errorf("cluster %q: %w", parts[1], err)
		}
		name, cluster, w = strings.TrimSpace(parts[0]), c, parts[2]
	}
	return geom.ParseWKTRegion(name, cluster, w)
}

func (m *Model) addPasted(text string) {
	if strings.TrimSpace(text) == "" {
		m.status = "paste: empty"
		return
	}
	r, err := parsePaste(text)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	key := m.scene.Add(r)
	m.status = "added region " + key
	m.pasteMode = false
	m.ta.Blur()
}

// resizeScene keeps the frame matched to the map area.
func (m *Model) resizeScene() {
	if m.width == 0 || m.height == 0 {
		return
	}
	lay := m.layout()
	sx, sy := cellSize(m.braille)
	w, h := lay.mapW*sx, lay.mapH*sy
	if m.frame.W != w || m.frame.H != h {
		m.frame.Resize(w, h)
		m.scene.Resize(w, h)
	}
}
