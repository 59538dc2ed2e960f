package strand

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b Vec2) bool {
	return approxEqual(a.X, b.X, 1e-6) && approxEqual(a.Y, b.Y, 1e-6)
}

func pts(xy ...float64) []Vec2 {
	out := make([]Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Vec2{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func fptr(v float64) *float64 { return &v }

// mustNode builds a node from absolute contour points.
func mustNode(t *testing.T, id string, points []Vec2) *Node {
	t.Helper()
	n, degenerate := newNode(NodeData{ID: id, Points: points})
	if degenerate {
		t.Fatalf("node %s: unexpected degenerate geometry", id)
	}
	n.rebuildShape(DefaultNodeThickness)
	return n
}

// placedNode builds a node at (x, y) with node-local points.
func placedNode(id string, x, y float64, points []Vec2) NodeData {
	return NodeData{ID: id, Points: points, X: fptr(x), Y: fptr(y)}
}

func newTestDiagram(t *testing.T) *Diagram {
	t.Helper()
	s := DefaultSettings()
	s.ZoomDuration = 0
	d := NewDiagram(800, 600, s)
	d.ClearColor = Color{}
	return d
}

func mustLoad(t *testing.T, d *Diagram, g *GraphData) LoadReport {
	t.Helper()
	rep, err := d.Load(g)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return rep
}

// chainGraph is three horizontal segments end to end with 2-unit gaps.
func chainGraph() *GraphData {
	return &GraphData{Nodes: []NodeData{
		{ID: "A", Points: pts(0, 0, 10, 0)},
		{ID: "B", Points: pts(12, 0, 22, 0)},
		{ID: "C", Points: pts(24, 0, 34, 0)},
	}}
}

// pairGraph places two horizontal segments 200 units apart with one
// explicit link between them. "a" spans screen (100..200, 100) at scale 1.
func pairGraph() *GraphData {
	return &GraphData{
		Nodes: []NodeData{
			placedNode("a", 100, 100, pts(0, 0, 100, 0)),
			placedNode("b", 100, 300, pts(0, 0, 100, 0)),
		},
		Links:    []LinkData{{Source: "a", Target: "b"}},
		HasLinks: true,
	}
}
