package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"choromap/internal/config"
	"choromap/internal/geom"
	"choromap/internal/logging"
	"choromap/internal/scene"
	"choromap/internal/tui"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	defaultConfig := "configs/choromap.yaml"
	if v := os.Getenv("CHOROMAP_CONFIG"); v != "" {
		defaultConfig = v
	}
	configPath := flag.String("config", defaultConfig, "path to the YAML configuration")
	dataPath := flag.String("data", "", "boundary file (GeoJSON, shapefile or WKT); overrides the config")
	flag.Parse()

	if err := run(*configPath, *dataPath, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "choromap:", err)
		os.Exit(1)
	}
}

func run(configPath, dataFlag, arg string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cleanup, err := logging.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer cleanup()

	boundaries := cfg.Resolve(cfg.Data.Boundaries)
	switch {
	case arg != "":
		boundaries = arg
	case dataFlag != "":
		boundaries = dataFlag
	}

	assets := scene.LoadAssets(cfg)
	opts := geom.LoadOptions{NameProperty: cfg.Data.NameProperty, ClusterProperty: cfg.Data.ClusterProperty}

	var m tui.Model
	regions, err := geom.LoadRegions(boundaries, opts)
	if err != nil {
		// the file browser can still open another file
		slog.Error("load boundaries", "path", boundaries, "error", err)
		m = tui.New(cfg, assets)
	} else {
		slog.Info("boundaries loaded", "path", boundaries, "regions", len(regions))
		m = tui.NewWithRegions(cfg, assets, regions, boundaries)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
