package geom

import "github.com/paulmach/orb"

// Scene z offsets. Fills sit below the border, masks and icons float
// just above the plane.
const (
	FillZ   = -0.03
	BorderZ = -0.02
	MaskZ   = 0.0005
	IconZ   = 0.0008
)

// Projector maps lon/lat onto the scene plane with a fixed affine transform.
type Projector struct {
	OriginLon float64
	OriginLat float64
	ScaleX    float64
	ScaleY    float64
}

func DefaultProjector() Projector {
	return Projector{OriginLon: 19.5, OriginLat: 47.0, ScaleX: 6.5, ScaleY: 9.5}
}

func (p Projector) Project(lon, lat, z float64) Vec3 {
	return Vec3{X: (lon - p.OriginLon) * p.ScaleX, Y: (lat - p.OriginLat) * p.ScaleY, Z: z}
}

func (p Projector) ProjectPoint(pt orb.Point, z float64) Vec3 {
	return p.Project(pt.Lon(), pt.Lat(), z)
}

// Unproject inverts Project on the plane. A zero scale maps to the origin.
func (p Projector) Unproject(x, y float64) (lon, lat float64) {
	lon, lat = p.OriginLon, p.OriginLat
	if p.ScaleX != 0 {
		lon += x / p.ScaleX
	}
	if p.ScaleY != 0 {
		lat += y / p.ScaleY
	}
	return lon, lat
}

// RegionAnchor returns the lon/lat a region's icon is pinned to: the stored
// centroid, else the average of the first outer ring as stored (a closing
// point counts), else the origin.
func (p Projector) RegionAnchor(r Region) (lon, lat float64) {
	if r.Centroid != nil {
		return r.Centroid.Lon(), r.Centroid.Lat()
	}
	if len(r.Boundary) > 0 && len(r.Boundary[0]) > 0 {
		ring := r.Boundary[0][0]
		if len(ring) > 0 {
			var sx, sy float64
			for _, pt := range ring {
				sx += pt[0]
				sy += pt[1]
			}
			n := float64(len(ring))
			return sx / n, sy / n
		}
	}
	return p.OriginLon, p.OriginLat
}
