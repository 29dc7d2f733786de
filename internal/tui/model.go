package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"choromap/internal/config"
	"choromap/internal/geom"
	"choromap/internal/raster"
	"choromap/internal/scene"
)

const (
	sidebarWidth = 28
	panelWidth   = 34
	headerHeight = 1
	footerHeight = 2
)

type tickMsg time.Time

type Model struct {
	cfg    *config.Config
	assets scene.Assets
	scene  *scene.Scene
	frame  *raster.Frame

	width  int
	height int

	showSidebar bool
	helpVisible bool
	showLegend  bool
	braille     bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// pointer in frame pixels, cleared when it leaves the map
	pointer            scene.Input
	hoverLon, hoverLat float64
	hoverHasGeo        bool

	// detail panel
	tbl table.Model

	lastTick time.Time
}

// New starts with an empty map.
func New(cfg *config.Config, assets scene.Assets) Model {
	m := Model{
		cfg:         cfg,
		assets:      assets,
		helpVisible: true,
		showLegend:  true,
		braille:     cfg.UI.Braille,
		status:      "choromap ready",
	}
	m.scene = scene.New(nil, cfg, assets)
	m.frame = raster.NewFrame(0, 0, m.scene.Background())
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Boundaries"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a POLYGON or MULTIPOLYGON, optionally as name;cluster;WKT. Enter adds it; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(
		table.WithColumns([]table.Column{{Title: "#", Width: 3}, {Title: "Top feature", Width: panelWidth - 10}}),
		table.WithFocused(false),
		table.WithHeight(5),
	)
	m.refreshDir()
	return m
}

// NewWithRegions shows already loaded regions.
func NewWithRegions(cfg *config.Config, assets scene.Assets, regions []geom.Region, path string) Model {
	m := New(cfg, assets)
	m.setRegions(regions, path)
	return m
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	d := m.cfg.UI.Tick.D()
	if d <= 0 {
		d = 33 * time.Millisecond
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}
