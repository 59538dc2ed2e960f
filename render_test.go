package strand

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDrawReportsFrameStats(t *testing.T) {
	buf := captureDebug(t)
	d := newTestDiagram(t)
	mustLoad(t, d, chainGraph())
	d.SetDebugMode(true)

	screen := ebiten.NewImage(800, 600)
	d.Draw(screen)

	out := buf.String()
	if !strings.Contains(out, "shapes: 3 | links: 2") {
		t.Errorf("debug output = %q, want 3 shapes and 2 links", out)
	}
}

func TestDrawSkipsEmptyContours(t *testing.T) {
	buf := captureDebug(t)
	d := newTestDiagram(t)
	mustLoad(t, d, &GraphData{Nodes: []NodeData{
		{ID: "a", Points: pts(0, 0, 10, 0)},
		{ID: "ghost"},
	}})
	d.SetDebugMode(true)

	d.Draw(ebiten.NewImage(64, 64))

	if !strings.Contains(buf.String(), "shapes: 1 |") {
		t.Errorf("debug output = %q, want 1 shape", buf.String())
	}
}

func TestDrawRebuildsStaleShapes(t *testing.T) {
	d := newTestDiagram(t)
	mustLoad(t, d, chainGraph())
	n, _ := d.Registry().Get("A")
	before := len(n.vertices)

	s := d.Settings()
	s.NodeThickness = 30
	d.ApplySettings(s)
	d.Draw(ebiten.NewImage(64, 64))

	if len(n.vertices) != before {
		t.Fatalf("vertex count changed: %d -> %d", before, len(n.vertices))
	}
	if got := n.outline[0].Y - n.outline[len(n.outline)-1].Y; !approxEqual(absf(got), 30, 1e-6) {
		t.Errorf("ribbon width = %v, want 30", absf(got))
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
