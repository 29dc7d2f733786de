package geom

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// node is a vertex in a circular doubly linked polygon ring.
type node struct {
	i          int
	x, y       float64
	prev, next *node
	steiner    bool
}

// Triangulate ear-clips an outer ring with holes. It returns the flattened
// vertex list (outer then holes, closing points trimmed) and counter-clockwise
// triangle indices into it. Rings with fewer than three vertices yield no
// triangles.
func Triangulate(outer orb.Ring, holes []orb.Ring) ([]orb.Point, []int) {
	outer = TrimClosing(outer)
	verts := append([]orb.Point(nil), outer...)
	if len(outer) < 3 {
		return verts, nil
	}
	outerNode := linkRing(outer, 0, true)
	if outerNode == nil || outerNode.next == outerNode.prev {
		return verts, nil
	}

	var queue []*node
	for _, h := range holes {
		h = TrimClosing(h)
		if len(h) == 0 {
			continue
		}
		list := linkRing(h, len(verts), false)
		verts = append(verts, h...)
		if list == nil {
			continue
		}
		if list == list.next {
			list.steiner = true
		}
		queue = append(queue, leftmost(list))
	}
	sort.SliceStable(queue, func(a, b int) bool {
		if queue[a].x != queue[b].x {
			return queue[a].x < queue[b].x
		}
		return queue[a].y < queue[b].y
	})
	for _, h := range queue {
		outerNode = eliminateHole(h, outerNode)
	}

	var tris []int
	earcutLinked(outerNode, &tris, 0)
	return verts, tris
}

// linkRing builds a circular list wound CCW (ccw) or CW.
func linkRing(pts []orb.Point, offset int, ccw bool) *node {
	var last *node
	if (signedArea(pts) > 0) == ccw {
		for i, p := range pts {
			last = insertNode(offset+i, p[0], p[1], last)
		}
	} else {
		for i := len(pts) - 1; i >= 0; i-- {
			last = insertNode(offset+i, pts[i][0], pts[i][1], last)
		}
	}
	if last != nil && equals(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

func earcutLinked(ear *node, tris *[]int, pass int) {
	if ear == nil {
		return
	}
	stop := ear
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next
		if isEar(ear) {
			*tris = append(*tris, prev.i, ear.i, next.i)
			removeNode(ear)
			ear = next.next
			stop = next.next
			continue
		}
		ear = next
		if ear == stop {
			switch pass {
			case 0:
				earcutLinked(filterPoints(ear, nil), tris, 1)
			case 1:
				ear = cureLocalIntersections(filterPoints(ear, nil), tris)
				earcutLinked(ear, tris, 2)
			case 2:
				splitEarcut(ear, tris)
			}
			return
		}
	}
}

func isEar(ear *node) bool {
	a, b, c := ear.prev, ear, ear.next
	if cross(a, b, c) <= 0 {
		return false
	}
	minX, maxX := math.Min(a.x, math.Min(b.x, c.x)), math.Max(a.x, math.Max(b.x, c.x))
	minY, maxY := math.Min(a.y, math.Min(b.y, c.y)), math.Max(a.y, math.Max(b.y, c.y))
	for p := c.next; p != a; p = p.next {
		if p.x < minX || p.x > maxX || p.y < minY || p.y > maxY {
			continue
		}
		if !(p.x == a.x && p.y == a.y) &&
			pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) &&
			cross(p.prev, p, p.next) <= 0 {
			return false
		}
	}
	return true
}

// cureLocalIntersections clips self-intersecting corners a-p-p.next-b.
func cureLocalIntersections(start *node, tris *[]int) *node {
	p := start
	for {
		a, b := p.prev, p.next.next
		if !equals(a, b) && intersects(a, p, p.next, b) && locallyInside(a, b) && locallyInside(b, a) {
			*tris = append(*tris, a.i, p.i, b.i)
			removeNode(p)
			removeNode(p.next)
			p, start = b, b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

// splitEarcut splits the polygon along a valid diagonal and recurses.
func splitEarcut(start *node, tris *[]int) {
	a := start
	for {
		for b := a.next.next; b != a.prev; b = b.next {
			if a.i != b.i && isValidDiagonal(a, b) {
				c := splitPolygon(a, b)
				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)
				earcutLinked(a, tris, 0)
				earcutLinked(c, tris, 0)
				return
			}
		}
		a = a.next
		if a == start {
			return
		}
	}
}

// filterPoints removes duplicate and collinear vertices.
func filterPoints(start, end *node) *node {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}
	p := start
	for {
		again := false
		if !p.steiner && (equals(p, p.next) || cross(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

func eliminateHole(hole, outer *node) *node {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		return outer
	}
	reverse := splitPolygon(bridge, hole)
	filterPoints(reverse, reverse.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds an outer vertex visible from the hole's leftmost point.
func findHoleBridge(hole, outer *node) *node {
	hx, hy := hole.x, hole.y
	qx := math.Inf(-1)
	var m *node

	p := outer
	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				m = p.next
				if p.x < p.next.x {
					m = p
				}
				if x == hx {
					return m
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if m == nil {
		return nil
	}

	stop := m
	mx, my := m.x, m.y
	tanMin := math.Inf(1)
	p = m
	for {
		if hx >= p.x && p.x >= mx && hx != p.x {
			ax, cx := qx, hx
			if hy < my {
				ax, cx = hx, qx
			}
			if pointInTriangle(ax, hy, mx, my, cx, hy, p.x, p.y) {
				tan := math.Abs(hy-p.y) / (hx - p.x)
				if locallyInside(p, hole) &&
					(tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContainsSector(m, p))))) {
					m = p
					tanMin = tan
				}
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

func sectorContainsSector(m, p *node) bool {
	return cross(m.prev, m, p.prev) > 0 && cross(p.next, m, m.next) > 0
}

func leftmost(start *node) *node {
	p, left := start, start
	for {
		if p.x < left.x || (p.x == left.x && p.y < left.y) {
			left = p
		}
		p = p.next
		if p == start {
			return left
		}
	}
}

func isValidDiagonal(a, b *node) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsPolygon(a, b) {
		return false
	}
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(cross(a.prev, a, b.prev) != 0 || cross(a, b.prev, b) != 0) {
		return true
	}
	return equals(a, b) && cross(a.prev, a, a.next) < 0 && cross(b.prev, b, b.next) < 0
}

// cross is twice the signed area of pqr, positive for a left turn.
func cross(p, q, r *node) float64 {
	return (q.x-p.x)*(r.y-p.y) - (q.y-p.y)*(r.x-p.x)
}

func equals(a, b *node) bool { return a.x == b.x && a.y == b.y }

// pointInTriangle is inclusive and expects abc counter-clockwise.
func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

func intersects(p1, q1, p2, q2 *node) bool {
	o1 := sign(cross(p1, q1, p2))
	o2 := sign(cross(p1, q1, q2))
	o3 := sign(cross(p2, q2, p1))
	o4 := sign(cross(p2, q2, q1))
	switch {
	case o1 != o2 && o3 != o4:
		return true
	case o1 == 0 && onSegment(p1, p2, q1):
		return true
	case o2 == 0 && onSegment(p1, q2, q1):
		return true
	case o3 == 0 && onSegment(p2, p1, q2):
		return true
	case o4 == 0 && onSegment(p2, q1, q2):
		return true
	}
	return false
}

// onSegment reports whether q lies within the box spanned by p and r.
func onSegment(p, q, r *node) bool {
	return q.x <= math.Max(p.x, r.x) && q.x >= math.Min(p.x, r.x) &&
		q.y <= math.Max(p.y, r.y) && q.y >= math.Min(p.y, r.y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func intersectsPolygon(a, b *node) bool {
	p := a
	for {
		if p.i != a.i && p.next.i != a.i && p.i != b.i && p.next.i != b.i && intersects(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			return false
		}
	}
}

func locallyInside(a, b *node) bool {
	if cross(a.prev, a, a.next) > 0 {
		return cross(a, b, a.next) <= 0 && cross(a, a.prev, b) <= 0
	}
	return cross(a, b, a.prev) > 0 || cross(a, a.next, b) > 0
}

// middleInside casts a ray from the midpoint of ab against the ring.
func middleInside(a, b *node) bool {
	px, py := (a.x+b.x)/2, (a.y+b.y)/2
	inside := false
	p := a
	for {
		if (p.y > py) != (p.next.y > py) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			return inside
		}
	}
}

// splitPolygon links a to b with a bridge, duplicating both vertices, and
// returns the node starting the second polygon.
func splitPolygon(a, b *node) *node {
	a2 := &node{i: a.i, x: a.x, y: a.y}
	b2 := &node{i: b.i, x: b.x, y: b.y}
	an, bp := a.next, b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp
	return b2
}

func insertNode(i int, x, y float64, last *node) *node {
	p := &node{i: i, x: x, y: y}
	if last == nil {
		p.prev, p.next = p, p
		return p
	}
	p.next = last.next
	p.prev = last
	last.next.prev = p
	last.next = p
	return p
}

func removeNode(p *node) {
	p.next.prev = p.prev
	p.prev.next = p.next
}
