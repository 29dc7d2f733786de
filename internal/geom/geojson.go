package geom

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a FeatureCollection of Polygon/MultiPolygon features.
// Features without geometry are kept with an empty boundary so they still
// take part in filtering; other geometry types are skipped.
func LoadGeoJSON(path string, opts LoadOptions) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	regions := make([]Region, 0, len(fc.Features))
	for i, f := range fc.Features {
		r := Region{Properties: f.Properties}
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			r.Boundary = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			r.Boundary = g
		case nil:
			slog.Warn("geojson feature without geometry", "index", i)
		default:
			slog.Debug("skipping non-polygon feature", "index", i, "type", g.GeoJSONType())
			continue
		}
		r.Name = f.Properties.MustString(opts.NameProperty, "")
		if c, ok := clusterOf(f.Properties[opts.ClusterProperty]); ok {
			r.Cluster = c
		}
		cx, okx := floatOf(f.Properties["cx"])
		cy, oky := floatOf(f.Properties["cy"])
		if okx && oky {
			r.Centroid = &orb.Point{cx, cy}
		}
		regions = append(regions, r)
	}
	return regions, nil
}
