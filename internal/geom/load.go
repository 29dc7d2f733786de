package geom

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadOptions names the attributes carrying region identity and cluster.
type LoadOptions struct {
	NameProperty    string
	ClusterProperty string
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{NameProperty: "NAME", ClusterProperty: "cluster"}
}

// SupportedExt reports whether LoadRegions can read files with this extension.
func SupportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".geojson", ".json", ".shp", ".wkt":
		return true
	}
	return false
}

// LoadRegions reads boundary data, choosing the reader by file extension.
// Every returned region carries a unique Key.
func LoadRegions(path string, opts LoadOptions) ([]Region, error) {
	if opts.NameProperty == "" && opts.ClusterProperty == "" {
		opts = DefaultLoadOptions()
	}
	var (
		regions []Region
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		regions, err = LoadGeoJSON(path, opts)
	case ".shp":
		regions, err = LoadShapefile(path, opts)
	case ".wkt":
		regions, err = LoadWKT(path)
	default:
		return nil, fmt.Errorf("unsupported boundary file: %s", filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	AssignKeys(regions)
	return regions, nil
}

// clusterOf reads a cluster id from a loosely typed attribute.
func clusterOf(v any) (int, bool) {
	switch c := v.(type) {
	case float64:
		return int(c), true
	case int:
		return c, true
	case int64:
		return int(c), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	}
	return 0, false
}

func floatOf(v any) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case int:
		return float64(c), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		return f, err == nil
	}
	return 0, false
}
