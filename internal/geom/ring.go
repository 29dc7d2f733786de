package geom

import "github.com/paulmach/orb"

// TrimClosing drops a repeated closing vertex. The input is not modified.
func TrimClosing(r orb.Ring) orb.Ring {
	if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
		return r[:len(r)-1]
	}
	return r
}

// NormalizeRing returns the ring wound counter-clockwise for outer rings
// and clockwise for holes. Rings with no area are returned unchanged.
func NormalizeRing(r orb.Ring, outer bool) orb.Ring {
	if len(r) < 3 {
		return r
	}
	want := orb.CW
	if outer {
		want = orb.CCW
	}
	o := r.Orientation()
	if o == 0 || o == want {
		return r
	}
	out := make(orb.Ring, len(r))
	copy(out, r)
	out.Reverse()
	return out
}

// signedArea is positive for counter-clockwise rings.
func signedArea(pts []orb.Point) float64 {
	var a float64
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a += pts[j][0]*pts[i][1] - pts[i][0]*pts[j][1]
	}
	return a / 2
}
