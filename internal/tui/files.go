package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"choromap/internal/geom"
	"choromap/internal/scene"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if geom.SupportedExt(ext) {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no boundary files in current directory"
	}
}

// loadPath replaces the map with the regions of a boundary file.
func (m *Model) loadPath(p string) {
	opts := geom.LoadOptions{NameProperty: m.cfg.Data.NameProperty, ClusterProperty: m.cfg.Data.ClusterProperty}
	regions, err := geom.LoadRegions(p, opts)
	if err != nil {
		slog.Error("load boundaries", "path", p, "error", err)
		m.status = "load error: " + err.Error()
		return
	}
	m.setRegions(regions, p)
}

func (m *Model) setRegions(regions []geom.Region, p string) {
	m.selPath = p
	m.scene = scene.New(regions, m.cfg, m.assets)
	m.pointer = scene.Input{}
	m.resizeScene()
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  regions=%d", len(regions))
}
