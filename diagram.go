package strand

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrLoadInProgress is returned when Load is re-entered before the previous
// load finished.
var ErrLoadInProgress = errors.New("strand: graph load already in progress")

// LoadReport summarizes one graph load, including every recoverable data
// problem that was handled locally.
type LoadReport struct {
	Nodes      int  // nodes registered
	Renderable int  // nodes with a non-empty contour
	Links      int  // links kept
	Inferred   bool // links were derived from geometry

	EmptyContours      int // nodes excluded from rendering and inference
	DegenerateGeometry int // centroid fell back to the origin
	DuplicateIDs       int // later nodes with an already-seen id
	MissingIDs         int // nodes without an id
	DanglingLinks      int // links referencing unknown or empty nodes
}

// LinkSegment is a renderable link line between two cached anchors, in
// model space.
type LinkSegment struct {
	Source, Target       string
	From, To             Vec2
	FromOrient, ToOrient Orientation
}

// Shape is a renderable node outline in model space.
type Shape struct {
	ID           string
	Position     Vec2
	Outline      []Vec2
	Fill         Color
	Stroke       Color
	StrokeWidth  float64
	Label        string
	LabelVisible bool
}

type diagramLink struct {
	key        AnchorKey
	fromOrient Orientation
	toOrient   Orientation
	segment    LinkSegment
}

// Diagram owns one loaded graph: node registry, links, anchor cache, colors,
// the viewport, and the drag state machine. All methods must be called from
// the UI goroutine.
type Diagram struct {
	settings Settings
	registry *Registry
	links    []diagramLink
	incident map[string][]int // node id -> indices into links
	anchors  *AnchorCache
	colors   *colorCache
	fills    map[string]Color
	viewport *Viewport

	// Staleness of derived artifacts.
	shapesDirty   bool
	fillsDirty    bool
	segmentsDirty bool

	loading bool
	report  LoadReport
	debug   bool
	stats   debugStats

	// Interaction state.
	handlers    handlerRegistry
	pointer     pointerState
	drag        dragSession
	pan         panSession
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	// ClearColor fills the screen before drawing. Zero value means no fill.
	ClearColor Color

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string

	labelFont *LabelFont
	fps       fpsOverlay
}

// NewDiagram creates an empty diagram rendering into a width x height screen.
func NewDiagram(width, height int, s Settings) *Diagram {
	s = s.normalized()
	vp := NewViewport(Rect{Width: float64(width), Height: float64(height)})
	vp.MinScale = s.MinScale
	vp.MaxScale = s.MaxScale
	vp.ZoomDuration = s.ZoomDuration
	vp.Scale = vp.clampScale(s.ZoomLevel)

	return &Diagram{
		settings:      s,
		registry:      newRegistry(),
		incident:      make(map[string][]int),
		anchors:       NewAnchorCache(s.AnchorMode),
		colors:        newColorCache(rand.Uint64()),
		fills:         make(map[string]Color),
		viewport:      vp,
		ClearColor:    ColorBackground,
		ScreenshotDir: "screenshots",
	}
}

// SetColorSeed reseeds the random color generator. Assignments already made
// for the current load are kept.
func (d *Diagram) SetColorSeed(seed uint64) {
	kept := d.colors.colors
	d.colors = newColorCache(seed)
	d.colors.colors = kept
}

// Registry returns the node store for the current load.
func (d *Diagram) Registry() *Registry {
	return d.registry
}

// Anchors returns the anchor cache for the current load.
func (d *Diagram) Anchors() *AnchorCache {
	return d.anchors
}

// Viewport returns the pan/zoom controller.
func (d *Diagram) Viewport() *Viewport {
	return d.viewport
}

// ViewTransform returns the current viewport transform for overlay UI.
func (d *Diagram) ViewTransform() ViewTransform {
	return d.viewport.Transform()
}

// LastReport returns the report of the most recent load.
func (d *Diagram) LastReport() LoadReport {
	return d.report
}

// LoadJSON parses GraphData JSON and loads it.
func (d *Diagram) LoadJSON(data []byte) (LoadReport, error) {
	g, err := ParseGraph(data)
	if err != nil {
		return LoadReport{}, err
	}
	return d.Load(g)
}

// Load replaces the node, link, anchor and color state wholesale. The
// viewport is preserved. Any active drag or pan gesture is ended first. All
// derived artifacts are rebuilt before Load returns, so no partial state is
// ever drawn.
func (d *Diagram) Load(g *GraphData) (LoadReport, error) {
	if d.loading {
		return LoadReport{}, ErrLoadInProgress
	}
	d.loading = true
	defer func() { d.loading = false }()

	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}

	d.CancelPointer()

	var rep LoadReport
	reg := newRegistry()
	for i, nd := range g.Nodes {
		if nd.ID == "" {
			rep.MissingIDs++
			d.debugf("node %d has no id, ignored", i)
			continue
		}
		n, degenerate := newNode(nd)
		if !reg.add(n) {
			rep.DuplicateIDs++
			d.debugf("duplicate node id %q ignored", nd.ID)
			continue
		}
		if degenerate {
			rep.DegenerateGeometry++
			d.debugf("node %q: degenerate centroid, placed at origin", nd.ID)
		}
		if n.Empty() {
			rep.EmptyContours++
			d.debugf("node %q: empty contour, not rendered", nd.ID)
		}
	}

	if d.anchors.Mode() != d.settings.AnchorMode {
		d.anchors.SetMode(d.settings.AnchorMode)
	}
	d.anchors.Clear()
	d.colors.reset()
	clear(d.fills)
	d.registry = reg
	d.links = d.links[:0]
	d.incident = make(map[string][]int, reg.Len())

	if !g.HasLinks {
		rep.Inferred = true
		for _, il := range InferLinks(reg.Nodes(), d.settings.LinkThreshold) {
			a, _ := reg.Get(il.Source)
			b, _ := reg.Get(il.Target)
			d.anchors.Seed(a, b, il.SourceAnchor, il.TargetAnchor)
			d.addLink(a, b, OrientUnspecified, OrientUnspecified)
		}
	} else {
		for _, ld := range g.Links {
			a, okA := reg.Get(ld.Source)
			b, okB := reg.Get(ld.Target)
			if !okA || !okB {
				rep.DanglingLinks++
				d.debugf("link %s -> %s: unknown node, dropped", ld.Source, ld.Target)
				continue
			}
			if a.Empty() || b.Empty() {
				rep.DanglingLinks++
				d.debugf("link %s -> %s: endpoint has no contour, dropped", ld.Source, ld.Target)
				continue
			}
			d.anchors.GetOrCompute(a, b)
			d.addLink(a, b, ld.FromOrient, ld.ToOrient)
		}
	}

	rep.Nodes = reg.Len()
	rep.Renderable = reg.Len() - rep.EmptyContours
	rep.Links = len(d.links)
	d.report = rep

	d.shapesDirty = true
	d.fillsDirty = true
	d.segmentsDirty = true
	d.refresh()

	if d.debug {
		d.debugf("load: %d nodes, %d links (inferred=%v) in %v",
			rep.Nodes, rep.Links, rep.Inferred, time.Since(t0))
	}
	for _, h := range d.handlers.load {
		h.fn(rep)
	}
	return rep, nil
}

// LoadFile reads a GraphData JSON file and loads it.
func (d *Diagram) LoadFile(path string) (LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadReport{}, fmt.Errorf("load %s: %w", path, err)
	}
	rep, err := d.LoadJSON(data)
	if err != nil {
		return rep, fmt.Errorf("load %s: %w", path, err)
	}
	return rep, nil
}

func (d *Diagram) addLink(a, b *Node, fromOrient, toOrient Orientation) {
	idx := len(d.links)
	d.links = append(d.links, diagramLink{
		key:        AnchorKey{a.ID, b.ID},
		fromOrient: fromOrient,
		toOrient:   toOrient,
	})
	d.incident[a.ID] = append(d.incident[a.ID], idx)
	if b != a {
		d.incident[b.ID] = append(d.incident[b.ID], idx)
	}
}

// refresh recomputes whichever derived artifacts are stale.
func (d *Diagram) refresh() {
	if d.shapesDirty {
		for _, n := range d.registry.Nodes() {
			n.rebuildShape(d.settings.NodeThickness)
		}
		d.shapesDirty = false
	}
	if d.fillsDirty {
		clear(d.fills)
		for _, n := range d.registry.Nodes() {
			d.fills[n.ID] = d.fillFor(n.ID)
		}
		d.fillsDirty = false
	}
	if d.segmentsDirty {
		for i := range d.links {
			d.redrawLink(i)
		}
		d.segmentsDirty = false
	}
}

// redrawLink re-derives one link's endpoints from its cached offsets.
func (d *Diagram) redrawLink(i int) {
	l := &d.links[i]
	a, okA := d.registry.Get(l.key.Source)
	b, okB := d.registry.Get(l.key.Target)
	anc, okC := d.anchors.Lookup(l.key.Source, l.key.Target)
	if !okA || !okB || !okC {
		return
	}
	from, to := d.anchors.Resolve(a, b, anc)
	l.segment = LinkSegment{
		Source: l.key.Source, Target: l.key.Target,
		From: from, To: to,
		FromOrient: l.fromOrient, ToOrient: l.toOrient,
	}
	d.stats.linkRedraws++
}

// redrawIncident refreshes only the links touching id.
func (d *Diagram) redrawIncident(id string) {
	for _, i := range d.incident[id] {
		d.redrawLink(i)
	}
}

// LinkSegments returns the current link lines.
func (d *Diagram) LinkSegments() []LinkSegment {
	d.refresh()
	out := make([]LinkSegment, len(d.links))
	for i := range d.links {
		out[i] = d.links[i].segment
	}
	return out
}

// Shapes returns one outline per renderable node, in model space.
func (d *Diagram) Shapes() []Shape {
	d.refresh()
	nodes := d.registry.Nodes()
	out := make([]Shape, 0, len(nodes))
	for _, n := range nodes {
		if n.Empty() {
			continue
		}
		outline := make([]Vec2, len(n.outline))
		for i, p := range n.outline {
			outline[i] = n.pos.Add(p)
		}
		out = append(out, Shape{
			ID:           n.ID,
			Position:     n.pos,
			Outline:      outline,
			Fill:         d.fills[n.ID],
			Stroke:       ColorNodeStroke,
			StrokeWidth:  1,
			Label:        n.ID,
			LabelVisible: d.settings.ShowNodeLabels,
		})
	}
	return out
}

// NodeColor returns the fill currently assigned to id.
func (d *Diagram) NodeColor(id string) (Color, bool) {
	d.refresh()
	c, ok := d.fills[id]
	return c, ok
}

// Update processes input and advances the zoom animation. Call once per tick.
func (d *Diagram) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	d.update(dt)
}

func (d *Diagram) update(dt float32) {
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	d.viewport.update(dt)
	d.fps.tick(float64(dt))
	d.processInput()
	d.refresh()
	if d.debug {
		d.stats.updateTime = time.Since(t0)
	}
}
