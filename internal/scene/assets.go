package scene

import (
	"log/slog"
	"path/filepath"

	"choromap/internal/config"
	"choromap/internal/icon"
	"choromap/internal/meta"
)

// Assets are the optional inputs next to the boundary file. Every one of
// them degrades to an empty value.
type Assets struct {
	Textures map[int]*icon.Texture
	Metrics  meta.Metrics
	Aliases  meta.Aliases
}

// LoadAssets reads the icon texture of every configured cluster plus the
// metrics table and feature aliases.
func LoadAssets(cfg *config.Config) Assets {
	a := Assets{
		Textures: map[int]*icon.Texture{},
		Metrics:  meta.LoadMetrics(cfg.Resolve(cfg.Data.Metrics)),
		Aliases:  meta.LoadAliases(cfg.Resolve(cfg.Data.Aliases)),
	}
	dir := cfg.Resolve(cfg.Data.IconDir)
	for _, cl := range cfg.Clusters {
		if cl.Icon == "" {
			a.Textures[cl.ID] = icon.Placeholder()
			continue
		}
		p := cl.Icon
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		a.Textures[cl.ID] = icon.LoadOrPlaceholder(p)
	}
	slog.Info("assets loaded", "textures", len(a.Textures), "metrics", len(a.Metrics), "aliases", len(a.Aliases))
	return a
}

func (a Assets) texture(cluster int) *icon.Texture {
	if t, ok := a.Textures[cluster]; ok && t != nil {
		return t
	}
	return icon.Placeholder()
}
