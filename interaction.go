package strand

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// wheelZoomStep is the scale factor applied per wheel notch.
const wheelZoomStep = 1.2

// DragState is the state of the node drag state machine.
type DragState uint8

const (
	DragIdle     DragState = iota // no node is held
	DragDragging                  // a node follows the pointer
)

// DragContext carries drag event data. Positions are in model space.
type DragContext struct {
	NodeID string
	// Position is the node position after this event.
	Position Vec2
	// Origin is the node position when the drag started.
	Origin Vec2
	// DeltaX and DeltaY are the model-space movement applied by this event.
	DeltaX, DeltaY float64
	// Cancelled is set on EventDragEnd when the gesture was cut short.
	Cancelled bool
}

// dragSession exists only between pointer-down and pointer-up on a node.
type dragSession struct {
	active         bool
	nodeID         string
	originPointer  Vec2 // screen
	originPosition Vec2 // model
	last           Vec2 // screen
}

// panSession tracks a pointer-down on empty canvas.
type panSession struct {
	active bool
	last   Vec2
}

// pointerState is the single pointer the diagram listens to.
type pointerState struct {
	down         bool
	waitRelease  bool // a cancelled gesture ignores input until release
	lastX, lastY float64
}

// --- Handler registry ---

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type loadHandler struct {
	id uint32
	fn func(LoadReport)
}

type handlerRegistry struct {
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	load      []loadHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	reg    *handlerRegistry
	event  EventType
	onLoad bool
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.onLoad {
		for i := range h.reg.load {
			if h.reg.load[i].id == h.id {
				h.reg.load = append(h.reg.load[:i], h.reg.load[i+1:]...)
				return
			}
		}
		return
	}
	switch h.event {
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnDragStart registers a callback for the Idle -> Dragging transition.
func (d *Diagram) OnDragStart(fn func(DragContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.dragStart = append(d.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventDragStart}
}

// OnDrag registers a callback fired after each node move.
func (d *Diagram) OnDrag(fn func(DragContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.drag = append(d.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventDrag}
}

// OnDragEnd registers a callback for the Dragging -> Idle transition.
func (d *Diagram) OnDragEnd(fn func(DragContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.dragEnd = append(d.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventDragEnd}
}

// OnLoad registers a callback fired after every completed graph load.
func (d *Diagram) OnLoad(fn func(LoadReport)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.load = append(d.handlers.load, loadHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, onLoad: true}
}

func (d *Diagram) fireDrag(handlers []dragHandler, ctx DragContext) {
	for _, h := range handlers {
		h.fn(ctx)
	}
}

// --- Hit testing ---

// hitTest returns the topmost node whose outline contains the model-space
// point, or nil.
func (d *Diagram) hitTest(wx, wy float64) *Node {
	d.refresh()
	nodes := d.registry.Nodes()
	// Reverse draw order: last drawn is on top.
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Empty() {
			continue
		}
		if n.containsLocal(wx-n.pos.X, wy-n.pos.Y) {
			return n
		}
	}
	return nil
}

// --- State machine ---

// DragState returns the current state and, when dragging, the held node id.
func (d *Diagram) DragState() (DragState, string) {
	if d.drag.active {
		return DragDragging, d.drag.nodeID
	}
	return DragIdle, ""
}

// PointerDown starts a node drag when (sx, sy) hits a node, otherwise a
// canvas pan. Screen coordinates.
func (d *Diagram) PointerDown(sx, sy float64) {
	if d.drag.active || d.pan.active {
		return
	}
	wx, wy := d.viewport.ScreenToWorld(sx, sy)
	if n := d.hitTest(wx, wy); n != nil {
		d.beginDrag(n, sx, sy)
		return
	}
	if !d.viewport.Suspended() {
		d.pan = panSession{active: true, last: Vec2{sx, sy}}
	}
}

// PointerMove feeds a pointer position while a button is held.
func (d *Diagram) PointerMove(sx, sy float64) {
	switch {
	case d.drag.active:
		d.dragTo(sx, sy)
	case d.pan.active:
		d.viewport.Pan(sx-d.pan.last.X, sy-d.pan.last.Y)
		d.pan.last = Vec2{sx, sy}
	}
}

// PointerUp ends the current gesture at (sx, sy).
func (d *Diagram) PointerUp(sx, sy float64) {
	if d.drag.active {
		d.dragTo(sx, sy)
		d.endDrag(false)
	}
	if d.pan.active {
		d.PointerMove(sx, sy)
		d.pan = panSession{}
	}
}

// CancelPointer ends any gesture at the last known pointer position. Used
// when the pointer leaves the canvas or focus is lost.
func (d *Diagram) CancelPointer() {
	if d.drag.active {
		d.endDrag(true)
	}
	d.pan = panSession{}
	if d.pointer.down {
		d.pointer.down = false
		d.pointer.waitRelease = true
	}
}

// Wheel zooms by notches about screen position (sx, sy).
func (d *Diagram) Wheel(notches, sx, sy float64) {
	if notches == 0 {
		return
	}
	d.viewport.ZoomAt(math.Pow(wheelZoomStep, notches), sx, sy)
}

func (d *Diagram) beginDrag(n *Node, sx, sy float64) {
	if err := d.registry.acquire(n.ID); err != nil {
		d.debugf("drag %q: %v", n.ID, err)
		return
	}
	d.viewport.Suspend()
	d.drag = dragSession{
		active:         true,
		nodeID:         n.ID,
		originPointer:  Vec2{sx, sy},
		originPosition: n.pos,
		last:           Vec2{sx, sy},
	}
	d.fireDrag(d.handlers.dragStart, DragContext{
		NodeID: n.ID, Position: n.pos, Origin: n.pos,
	})
}

// dragTo moves the held node by the screen delta since the last event,
// divided by the current scale. Only the dragged node's incident links are
// re-derived, each from its cached offsets.
func (d *Diagram) dragTo(sx, sy float64) {
	dsx := sx - d.drag.last.X
	dsy := sy - d.drag.last.Y
	if dsx == 0 && dsy == 0 {
		return
	}
	d.drag.last = Vec2{sx, sy}

	k := d.viewport.Scale
	dx, dy := dsx/k, dsy/k
	id := d.drag.nodeID
	if err := d.registry.translate(id, dx, dy); err != nil {
		d.debugf("drag %q: %v", id, err)
		return
	}
	d.redrawIncident(id)

	n, _ := d.registry.Get(id)
	d.fireDrag(d.handlers.drag, DragContext{
		NodeID: id, Position: n.pos, Origin: d.drag.originPosition,
		DeltaX: dx, DeltaY: dy,
	})
}

func (d *Diagram) endDrag(cancelled bool) {
	id := d.drag.nodeID
	origin := d.drag.originPosition
	d.drag = dragSession{}
	d.registry.release()
	d.viewport.Resume()

	pos := origin
	if n, ok := d.registry.Get(id); ok {
		pos = n.pos
	}
	d.fireDrag(d.handlers.dragEnd, DragContext{
		NodeID: id, Position: pos, Origin: origin, Cancelled: cancelled,
	})
}

// --- Input processing ---

// processInput is called from Update to handle injected, mouse, touch and
// wheel input.
func (d *Diagram) processInput() {
	if d.processInjectedInput() {
		return
	}

	var sx, sy float64
	var pressed bool
	touches := ebiten.AppendTouchIDs(nil)
	if len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		sx, sy, pressed = float64(tx), float64(ty), true
	} else {
		mx, my := ebiten.CursorPosition()
		sx, sy = float64(mx), float64(my)
		pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	if d.pointer.down && (!ebiten.IsFocused() || !d.viewport.Bounds.Contains(sx, sy)) {
		d.CancelPointer()
		return
	}
	d.processPointer(sx, sy, pressed)

	if _, wy := ebiten.Wheel(); wy != 0 {
		d.Wheel(wy, sx, sy)
	}
}

// processPointer turns raw pressed/position samples into down/move/up calls.
func (d *Diagram) processPointer(sx, sy float64, pressed bool) {
	ps := &d.pointer
	if ps.waitRelease {
		if !pressed {
			ps.waitRelease = false
		}
		ps.lastX, ps.lastY = sx, sy
		return
	}
	switch {
	case pressed && !ps.down:
		ps.down = true
		d.PointerDown(sx, sy)
	case !pressed && ps.down:
		ps.down = false
		d.PointerUp(sx, sy)
	case pressed && ps.down:
		if sx != ps.lastX || sy != ps.lastY {
			d.PointerMove(sx, sy)
		}
	}
	ps.lastX = sx
	ps.lastY = sy
}
