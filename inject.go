package strand

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticCancel
)

// syntheticPointerEvent represents a single injected input event in screen
// coordinates, converted through the viewport exactly like real input.
type syntheticPointerEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	notches          float64
}

// InjectPress queues a pointer press at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (d *Diagram) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (d *Diagram) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: true,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (d *Diagram) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y, pressed: false,
	})
}

// InjectCancel queues a gesture cancellation (pointer left the canvas).
func (d *Diagram) InjectCancel() {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{kind: syntheticCancel})
}

// InjectWheel queues a wheel zoom of the given notches at (x, y).
func (d *Diagram) InjectWheel(x, y, notches float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		kind: syntheticWheel, screenX: x, screenY: y, notches: notches,
	})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (d *Diagram) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		d.InjectMove(x, y)
	}
	d.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine. Returns true if an event was consumed
// (real input is skipped that frame).
func (d *Diagram) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch evt.kind {
	case syntheticWheel:
		d.Wheel(evt.notches, evt.screenX, evt.screenY)
	case syntheticCancel:
		d.CancelPointer()
	default:
		d.processPointer(evt.screenX, evt.screenY, evt.pressed)
	}
	return true
}

// InjectClick queues a press then release at the same position.
func (d *Diagram) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}
