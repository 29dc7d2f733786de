package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "choromap.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Clusters, cfg.Clusters)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Options: icons, solid, outline")
	assert.Contains(t, string(data), "nation_duration: 700ms")

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 700*time.Millisecond, again.Camera.NationDuration.D())
	assert.Equal(t, "icons", again.Style.Mode)
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choromap.yaml")
	body := `
style:
  mode: outline
camera:
  detail_duration: 1.5s
clusters:
  - id: 7
    color: "#102030"
    label: Seven
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "outline", cfg.Style.Mode)
	assert.Equal(t, 1500*time.Millisecond, cfg.Camera.DetailDuration.D())
	assert.Equal(t, 700*time.Millisecond, cfg.Camera.NationDuration.D(), "unset keys keep defaults")
	require.Len(t, cfg.Clusters, 1)
	assert.Equal(t, "Seven", cfg.Label(7))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("camera: [1, 2"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	dur := filepath.Join(dir, "dur.yaml")
	require.NoError(t, os.WriteFile(dur, []byte("ui:\n  tick: soon\n"), 0o644))
	_, err = Load(dur)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choromap.yaml")
	t.Setenv("CHOROMAP_LOG_LEVEL", "DEBUG")
	t.Setenv("CHOROMAP_DATA", "/tmp/other.shp")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, "/tmp/other.shp", cfg.Data.Boundaries)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(saved), "/tmp/other.shp")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "choromap.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "icons"), cfg.Resolve("icons"))
	assert.Equal(t, "/abs/x", cfg.Resolve("/abs/x"))
	assert.Equal(t, "", cfg.Resolve(""))
	assert.Equal(t, "rel", DefaultConfig().Resolve("rel"))
}

func TestClusterLookups(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clusters = append(cfg.Clusters, ClusterConfig{ID: 9, Color: "nope"})

	tests := []struct {
		name  string
		id    int
		label string
		hex   string
	}{
		{"configured", 0, "C0", "#52b788"},
		{"invalid colour", 9, "C9", FallbackColor},
		{"unknown", 42, "C42", FallbackColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, cfg.Label(tt.id))
			assert.Equal(t, tt.hex, cfg.ColorHex(tt.id))
			assert.Equal(t, tt.hex, cfg.Color(tt.id).Hex())
		})
	}
}

func TestHexOr(t *testing.T) {
	assert.Equal(t, "#102030", HexOr("#102030", "#ffffff").Hex())
	assert.Equal(t, "#ffffff", HexOr("", "#ffffff").Hex())
}
