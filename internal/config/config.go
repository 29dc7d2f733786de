package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// FallbackColor is used for clusters without a configured colour.
const FallbackColor = "#888888"

// Config holds the application configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Projection ProjectionConfig `yaml:"projection"`
	Camera     CameraConfig     `yaml:"camera"`
	Icons      IconConfig       `yaml:"icons"`
	Style      StyleConfig      `yaml:"style"`
	UI         UIConfig         `yaml:"ui"`
	Clusters   []ClusterConfig  `yaml:"clusters"`
	Log        LogConfig        `yaml:"log"`

	dir string
}

// DataConfig points at the input files. Relative paths resolve against the
// directory of the config file.
type DataConfig struct {
	Boundaries      string `yaml:"boundaries"`
	Metrics         string `yaml:"metrics"`
	Aliases         string `yaml:"aliases"`
	IconDir         string `yaml:"icon_dir"`
	NameProperty    string `yaml:"name_property"`
	ClusterProperty string `yaml:"cluster_property"`
}

// ProjectionConfig is the equirectangular mapping into scene units.
type ProjectionConfig struct {
	OriginLon float64 `yaml:"origin_lon"`
	OriginLat float64 `yaml:"origin_lat"`
	ScaleX    float64 `yaml:"scale_x"`
	ScaleY    float64 `yaml:"scale_y"`
}

type CameraConfig struct {
	FovDeg         float64  `yaml:"fov_deg"`
	Near           float64  `yaml:"near"`
	NationPadding  float64  `yaml:"nation_padding"`
	DetailPadding  float64  `yaml:"detail_padding"`
	MinDistance    float64  `yaml:"min_distance"`
	MaxTiltDeg     float64  `yaml:"max_tilt_deg"`
	NationDuration Duration `yaml:"nation_duration"`
	DetailDuration Duration `yaml:"detail_duration"`
}

type IconConfig struct {
	Padding       float64 `yaml:"padding"`
	GrowScale     float64 `yaml:"grow_scale"`
	GrowRate      float64 `yaml:"grow_rate"`
	ExtrudeRatio  float64 `yaml:"extrude_ratio"`
	LODDistance   float64 `yaml:"lod_distance"`
	LODHysteresis float64 `yaml:"lod_hysteresis"`
}

type StyleConfig struct {
	Mode           string  `yaml:"mode"`
	WeakOpacity    float64 `yaml:"weak_opacity"`
	StrongOpacity  float64 `yaml:"strong_opacity"`
	HighlightBoost float64 `yaml:"highlight_boost"`
	Background     string  `yaml:"background"`
	Border         string  `yaml:"border"`
}

type UIConfig struct {
	Tick     Duration `yaml:"tick"`
	Braille  bool     `yaml:"braille"`
	ZoomStep float64  `yaml:"zoom_step"`
}

// ClusterConfig describes one cluster: its colour, icon file and legend
// label.
type ClusterConfig struct {
	ID    int    `yaml:"id"`
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Boundaries:      "data/regions.geojson",
			Metrics:         "data/metrics.csv",
			Aliases:         "data/aliases.json",
			IconDir:         "icons",
			NameProperty:    "NAME",
			ClusterProperty: "cluster",
		},
		Projection: ProjectionConfig{OriginLon: 19.5, OriginLat: 47.0, ScaleX: 6.5, ScaleY: 9.5},
		Camera: CameraConfig{
			FovDeg:         45,
			Near:           0.01,
			NationPadding:  1.01,
			DetailPadding:  1.05,
			MinDistance:    0.05,
			MaxTiltDeg:     21.6,
			NationDuration: Duration(700 * time.Millisecond),
			DetailDuration: Duration(900 * time.Millisecond),
		},
		Icons: IconConfig{
			Padding:      0.88,
			GrowScale:    1.35,
			GrowRate:     0.12,
			ExtrudeRatio: 0.15,
			LODDistance:  6.0,
		},
		Style: StyleConfig{
			Mode:           "icons",
			WeakOpacity:    0.28,
			StrongOpacity:  0.75,
			HighlightBoost: 0.25,
			Background:     "#ffffff",
			Border:         "#777777",
		},
		UI: UIConfig{Tick: Duration(33 * time.Millisecond), Braille: true, ZoomStep: 1.15},
		Clusters: []ClusterConfig{
			{ID: 0, Color: "#52b788", Icon: "fogaskerek.png"},
			{ID: 1, Color: "#bdbdbd", Icon: "ernyo.png"},
			{ID: 2, Color: "#e76f51", Icon: "aso.png"},
			{ID: 3, Color: "#8d6e63", Icon: "buza.png"},
			{ID: 4, Color: "#f4a261", Icon: "gazdag.png"},
		},
		Log: LogConfig{Path: "logs/choromap.log", Level: "INFO"},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it is created with default values.
// Environment overrides are applied last and never saved back.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.dir = filepath.Dir(path)

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := os.MkdirAll(cfg.dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
	}

	if v := os.Getenv("CHOROMAP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CHOROMAP_DATA"); v != "" {
		cfg.Data.Boundaries = v
	}
	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# choromap configuration
# Durations use Go syntax (700ms, 1s).
# Colours are #rrggbb.

`)
	data = append(header, data...)

	reMode := regexp.MustCompile(`(?m)^(\s+)mode:`)
	data = reMode.ReplaceAll(data, []byte("${1}# Options: icons, solid, outline\n${1}mode:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Resolve makes p absolute relative to the config file directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Cluster returns the configuration for id.
func (c *Config) Cluster(id int) (ClusterConfig, bool) {
	for _, cl := range c.Clusters {
		if cl.ID == id {
			return cl, true
		}
	}
	return ClusterConfig{}, false
}

// Label is the legend label of a cluster, C<id> when unset.
func (c *Config) Label(id int) string {
	if cl, ok := c.Cluster(id); ok && cl.Label != "" {
		return cl.Label
	}
	return "C" + strconv.Itoa(id)
}

// ColorHex is the configured colour of a cluster or FallbackColor.
func (c *Config) ColorHex(id int) string {
	if cl, ok := c.Cluster(id); ok {
		if _, err := colorful.Hex(cl.Color); err == nil {
			return cl.Color
		}
	}
	return FallbackColor
}

func (c *Config) Color(id int) colorful.Color {
	col, _ := colorful.Hex(c.ColorHex(id))
	return col
}

// HexOr parses s, falling back to def when s is not a valid colour.
func HexOr(s, def string) colorful.Color {
	if col, err := colorful.Hex(s); err == nil {
		return col
	}
	col, _ := colorful.Hex(def)
	return col
}
