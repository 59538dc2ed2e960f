package strand

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Model-space stroke widths; both scale with the viewport.
const (
	nodeStrokeWidth = 1.0
	linkStrokeWidth = 1.0
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Ribbon vertices sample its center, so their color comes from the tint.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Draw renders the diagram onto screen: background, node ribbons with their
// outlines, link lines on top, then labels and overlays. Stale artifacts are
// rebuilt first, so a frame never shows half-applied settings.
func (d *Diagram) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}
	d.refresh()

	if d.ClearColor.A > 0 {
		screen.Fill(d.ClearColor.toRGBA())
	}

	view := d.viewport.computeViewMatrix()
	k := float32(d.viewport.Scale)
	shapes := 0
	for _, n := range d.registry.Nodes() {
		if n.Empty() {
			continue
		}
		shapes++
		d.drawNode(screen, n, view, k)
	}

	linkColor := ColorLink.toRGBA()
	for i := range d.links {
		seg := &d.links[i].segment
		x0, y0 := transformPoint(view, seg.From.X, seg.From.Y)
		x1, y1 := transformPoint(view, seg.To.X, seg.To.Y)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1),
			linkStrokeWidth*k, linkColor, true)
	}

	if d.settings.ShowNodeLabels {
		d.drawLabels(screen)
	}
	if d.settings.ShowFPS {
		d.drawFPS(screen)
	}

	d.flushScreenshots(screen)

	if d.debug {
		d.stats.drawTime = time.Since(t0)
		d.stats.shapeCount = shapes
		d.stats.linkCount = len(d.links)
		d.debugLog()
	}
}

// drawNode fills the ribbon with DrawTriangles and strokes its closed outline.
func (d *Diagram) drawNode(screen *ebiten.Image, n *Node, view [6]float64, k float32) {
	world := multiplyAffine(view, translation(n.pos.X, n.pos.Y))

	if len(n.indices) > 0 {
		if cap(n.transformedVerts) < len(n.vertices) {
			n.transformedVerts = make([]ebiten.Vertex, len(n.vertices))
		}
		n.transformedVerts = n.transformedVerts[:len(n.vertices)]
		transformVertices(n.vertices, n.transformedVerts, world, d.fills[n.ID])

		var op ebiten.DrawTrianglesOptions
		op.AntiAlias = true
		screen.DrawTriangles(n.transformedVerts, n.indices, ensureWhitePixel(), &op)
	}

	stroke := ColorNodeStroke.toRGBA()
	m := len(n.outline)
	for i := 0; i < m; i++ {
		a := n.outline[i]
		b := n.outline[(i+1)%m]
		x0, y0 := transformPoint(world, a.X, a.Y)
		x1, y1 := transformPoint(world, b.X, b.Y)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1),
			nodeStrokeWidth*k, stroke, true)
	}
}
