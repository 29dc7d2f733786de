package geom

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKTRegion builds a region from a POLYGON or MULTIPOLYGON.
func ParseWKTRegion(name string, cluster int, text string) (Region, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Region{}, fmt.Errorf("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Region{}, fmt.Errorf("parse wkt: %w", err)
	}
	r := Region{Name: name, Cluster: cluster}
	switch p := g.(type) {
	case orb.Polygon:
		r.Boundary = orb.MultiPolygon{p}
	case orb.MultiPolygon:
		r.Boundary = p
	default:
		return Region{}, fmt.Errorf("wkt: %s has no area", g.GeoJSONType())
	}
	return r, nil
}

// LoadWKT reads one region per line: name<TAB>cluster<TAB>WKT. A line that
// holds only WKT gets a name from the file and line number and cluster 0.
// Blank lines and lines starting with # are ignored.
func LoadWKT(path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wkt: %w", err)
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var regions []Region
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name, cluster := fmt.Sprintf("%s:%d", base, line), 0
		if parts := strings.SplitN(text, "\t", 3); len(parts) == 3 {
			name = strings.TrimSpace(parts[0])
			c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("wkt line %d: bad cluster %q", line, parts[1])
			}
			cluster = c
			text = parts[2]
		}
		r, err := ParseWKTRegion(name, cluster, text)
		if err != nil {
			return nil, fmt.Errorf("wkt line %d: %w", line, err)
		}
		regions = append(regions, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wkt: %w", err)
	}
	return regions, nil
}
