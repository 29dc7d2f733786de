package geom

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// LoadShapefile reads polygon shapes and their DBF attributes.
func LoadShapefile(path string, opts LoadOptions) ([]Region, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	names := make([]string, 0)
	nameIdx, clusterIdx := -1, -1
	for i, f := range r.Fields() {
		name := f.String()
		names = append(names, name)
		switch {
		case strings.EqualFold(name, opts.NameProperty):
			nameIdx = i
		case strings.EqualFold(name, opts.ClusterProperty):
			clusterIdx = i
		}
	}

	var regions []Region
	for r.Next() {
		n, s := r.Shape()
		region := Region{Properties: map[string]any{}}
		switch p := s.(type) {
		case *shp.Polygon:
			region.Boundary = polygonsFromParts(p)
		case *shp.Null:
		default:
			continue
		}
		for i, name := range names {
			region.Properties[name] = r.ReadAttribute(n, i)
		}
		if nameIdx >= 0 {
			region.Name = strings.TrimSpace(r.ReadAttribute(n, nameIdx))
		}
		if clusterIdx >= 0 {
			if c, ok := clusterOf(r.ReadAttribute(n, clusterIdx)); ok {
				region.Cluster = c
			}
		}
		regions = append(regions, region)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile: %w", err)
	}
	return regions, nil
}

// polygonsFromParts splits shapefile parts into rings. Clockwise rings are
// outers; every other ring is attached as a hole to the outer containing it.
func polygonsFromParts(s *shp.Polygon) orb.MultiPolygon {
	var outers orb.MultiPolygon
	var holes []orb.Ring
	for i := 0; i < int(s.NumParts); i++ {
		start := s.Parts[i]
		end := s.NumPoints
		if i < int(s.NumParts)-1 {
			end = s.Parts[i+1]
		}
		var ring orb.Ring
		for j := start; j < end; j++ {
			ring = append(ring, orb.Point{s.Points[j].X, s.Points[j].Y})
		}
		if len(ring) < 3 {
			continue
		}
		if ring.Orientation() == orb.CW {
			outers = append(outers, orb.Polygon{ring})
		} else {
			holes = append(holes, ring)
		}
	}

	for _, h := range holes {
		placed := false
		for i := range outers {
			if planar.RingContains(outers[i][0], h[0]) {
				outers[i] = append(outers[i], h)
				placed = true
				break
			}
		}
		if !placed {
			outers = append(outers, orb.Polygon{h})
		}
	}
	return outers
}
