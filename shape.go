package strand

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxRibbonPoints is the largest contour whose 2N outline still fits
// uint16 triangle indices.
const maxRibbonPoints = 1 << 15

// Centroid returns the centroid of a contour. Three or more points use the
// signed-area weighted polygon centroid; fewer use the arithmetic mean.
// ok is false when the result is not finite (zero-area or empty input).
func Centroid(points []Vec2) (c Vec2, ok bool) {
	n := len(points)
	if n < 3 {
		for _, p := range points {
			c.X += p.X
			c.Y += p.Y
		}
		c.X /= float64(n)
		c.Y /= float64(n)
		return c, c.IsFinite()
	}

	var x, y, k float64
	b := points[n-1]
	for i := 0; i < n; i++ {
		a := b
		b = points[i]
		cross := a.X*b.Y - b.X*a.Y
		k += cross
		x += (a.X + b.X) * cross
		y += (a.Y + b.Y) * cross
	}
	k *= 3
	c = Vec2{X: x / k, Y: y / k}
	return c, c.IsFinite()
}

// newNode builds a Node from input data. When no position is supplied the
// points are re-expressed relative to their centroid. degenerate reports
// that the centroid was not finite and the node fell back to the origin
// with its points untouched.
func newNode(d NodeData) (n *Node, degenerate bool) {
	n = &Node{ID: d.ID, shapeDirty: true}
	pts := make([]Vec2, len(d.Points))
	copy(pts, d.Points)
	n.points = pts

	if d.HasPosition() {
		n.pos = Vec2{X: *d.X, Y: *d.Y}
		return n, false
	}
	if len(pts) == 0 {
		return n, false
	}

	c, ok := Centroid(pts)
	if !ok {
		return n, true
	}
	n.pos = c
	for i := range pts {
		pts[i] = pts[i].Sub(c)
	}
	return n, false
}

// segmentNormal returns the unit left-normal (-dy, dx)/len of a->b.
// A zero-length segment uses len = 1, which yields a zero normal.
func segmentNormal(a, b Vec2) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Hypot(dx, dy)
	if ln == 0 {
		ln = 1
	}
	return Vec2{X: -dy / ln, Y: dx / ln}
}

// BuildThickOutline offsets a centerline by ±thickness/2 along per-vertex
// normals and returns left ++ reverse(right): a closed polygon of 2N points.
// End vertices use their segment's normal; interior vertices use the
// re-normalized average of the two adjacent segment normals.
func BuildThickOutline(points []Vec2, thickness float64) []Vec2 {
	n := len(points)
	out := make([]Vec2, 2*n)
	if n == 0 {
		return out
	}

	half := thickness / 2
	for i, p := range points {
		var nrm Vec2
		switch {
		case n == 1:
			// no segment, no direction
		case i == 0:
			nrm = segmentNormal(points[0], points[1])
		case i == n-1:
			nrm = segmentNormal(points[n-2], points[n-1])
		default:
			n0 := segmentNormal(points[i-1], points[i])
			n1 := segmentNormal(points[i], points[i+1])
			nrm = Vec2{X: n0.X + n1.X, Y: n0.Y + n1.Y}
			ln := math.Hypot(nrm.X, nrm.Y)
			if ln == 0 {
				ln = 1
			}
			nrm.X /= ln
			nrm.Y /= ln
		}
		out[i] = Vec2{X: p.X + nrm.X*half, Y: p.Y + nrm.Y*half}
		out[2*n-1-i] = Vec2{X: p.X - nrm.X*half, Y: p.Y - nrm.Y*half}
	}
	return out
}

// RibbonIndices triangulates a 2N-point thick outline as a strip of quads:
// two triangles per centerline segment, 6(N-1) indices. Returns nil when
// N < 2 or the outline exceeds uint16 indexing.
func RibbonIndices(n int) []uint16 {
	if n < 2 || n > maxRibbonPoints {
		return nil
	}
	last := uint16(2*n - 1)
	inds := make([]uint16, 0, (n-1)*6)
	for i := 0; i < n-1; i++ {
		l0 := uint16(i)
		l1 := uint16(i + 1)
		r0 := last - uint16(i)
		r1 := last - uint16(i+1)
		inds = append(inds, l0, l1, r0, l1, r1, r0)
	}
	return inds
}

// rebuildShape refreshes the outline, vertex and index caches.
func (n *Node) rebuildShape(thickness float64) {
	n.outline = BuildThickOutline(n.points, thickness)
	n.indices = RibbonIndices(len(n.points))

	if cap(n.vertices) < len(n.outline) {
		n.vertices = make([]ebiten.Vertex, len(n.outline))
	}
	n.vertices = n.vertices[:len(n.outline)]
	for i, p := range n.outline {
		n.vertices[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			// Untextured: sample the center of the white pixel.
			SrcX: 0.5, SrcY: 0.5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	n.shapeDirty = false
}

// containsLocal reports whether a node-local point falls inside the thick
// outline (even-odd rule; the ribbon is generally not convex).
func (n *Node) containsLocal(x, y float64) bool {
	return polygonContains(n.outline, x, y)
}

func polygonContains(poly []Vec2, x, y float64) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}
