package strand

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default viewport limits.
const (
	DefaultMinScale     = 0.1
	DefaultMaxScale     = 10.0
	DefaultZoomDuration = 0.5 // seconds
)

// ViewTransform is the pan/zoom affine state: screen = model*Scale + Translate.
type ViewTransform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// GestureEvent is a live pan/zoom transform reported by an input device.
type GestureEvent struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Viewport owns the pan/zoom transform composited over the whole diagram.
// It persists across graph loads.
type Viewport struct {
	// Scale is clamped to [MinScale, MaxScale].
	Scale float64
	// TranslateX and TranslateY are the screen-space offset of the model origin.
	TranslateX, TranslateY float64
	// Bounds is the screen-space rectangle the diagram renders into.
	Bounds Rect

	MinScale, MaxScale float64
	// ZoomDuration is the SetScale animation length in seconds.
	ZoomDuration float32
	// ZoomEase is the SetScale easing function.
	ZoomEase ease.TweenFunc

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	zoomTween *gween.Tween
	suspended bool
}

// NewViewport creates a viewport at identity scale with default limits.
func NewViewport(bounds Rect) *Viewport {
	return &Viewport{
		Scale:        1,
		Bounds:       bounds,
		MinScale:     DefaultMinScale,
		MaxScale:     DefaultMaxScale,
		ZoomDuration: DefaultZoomDuration,
		ZoomEase:     ease.InOutCubic,
		dirty:        true,
	}
}

// clampScale restricts s to [MinScale, MaxScale].
func (v *Viewport) clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return v.Scale
	}
	return math.Max(v.MinScale, math.Min(s, v.MaxScale))
}

// Transform returns the current pan/zoom state.
func (v *Viewport) Transform() ViewTransform {
	return ViewTransform{Scale: v.Scale, TranslateX: v.TranslateX, TranslateY: v.TranslateY}
}

// SetScale animates toward scale over ZoomDuration, preserving translate.
func (v *Viewport) SetScale(scale float64) {
	target := v.clampScale(scale)
	if v.ZoomDuration <= 0 {
		v.zoomTween = nil
		v.Scale = target
		v.dirty = true
		return
	}
	fn := v.ZoomEase
	if fn == nil {
		fn = ease.InOutCubic
	}
	v.zoomTween = gween.New(float32(v.Scale), float32(target), v.ZoomDuration, fn)
}

// Animating reports whether a SetScale animation is running.
func (v *Viewport) Animating() bool {
	return v.zoomTween != nil
}

// OnGesture applies a live transform directly, without animation, clamping
// the scale. Ignored while suspended. Returns whether it was applied.
func (v *Viewport) OnGesture(e GestureEvent) bool {
	if v.suspended {
		return false
	}
	v.zoomTween = nil
	v.Scale = v.clampScale(e.Scale)
	v.TranslateX = e.TranslateX
	v.TranslateY = e.TranslateY
	v.dirty = true
	return true
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) bool {
	return v.OnGesture(GestureEvent{Scale: v.Scale, TranslateX: v.TranslateX + dx, TranslateY: v.TranslateY + dy})
}

// ZoomAt multiplies the scale by factor while keeping the model point under
// screen position (sx, sy) fixed.
func (v *Viewport) ZoomAt(factor, sx, sy float64) bool {
	k := v.clampScale(v.Scale * factor)
	lx := sx - v.Bounds.X
	ly := sy - v.Bounds.Y
	wx := (lx - v.TranslateX) / v.Scale
	wy := (ly - v.TranslateY) / v.Scale
	return v.OnGesture(GestureEvent{Scale: k, TranslateX: lx - wx*k, TranslateY: ly - wy*k})
}

// Suspend blocks gestures, so a node drag cannot pan the canvas at the same time.
func (v *Viewport) Suspend() {
	v.suspended = true
}

// Resume re-enables gestures.
func (v *Viewport) Resume() {
	v.suspended = false
}

// Suspended reports whether gestures are currently blocked.
func (v *Viewport) Suspended() bool {
	return v.suspended
}

// update advances the zoom animation. Called once per frame.
func (v *Viewport) update(dt float32) {
	if v.zoomTween == nil {
		return
	}
	val, done := v.zoomTween.Update(dt)
	v.Scale = v.clampScale(float64(val))
	v.dirty = true
	if done {
		v.zoomTween = nil
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(tx, ty) * Scale(k)
func (v *Viewport) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false
	k := v.Scale
	v.viewMatrix = [6]float64{k, 0, 0, k, v.Bounds.X + v.TranslateX, v.Bounds.Y + v.TranslateY}
	v.invViewMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// WorldToScreen converts model coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeViewMatrix()
	return transformPoint(v.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to model coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeViewMatrix()
	return transformPoint(v.invViewMatrix, sx, sy)
}

// VisibleBounds returns the model-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	x0, y0 := v.ScreenToWorld(v.Bounds.X, v.Bounds.Y)
	x1, y1 := v.ScreenToWorld(v.Bounds.X+v.Bounds.Width, v.Bounds.Y+v.Bounds.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MarkDirty forces a recomputation of the view matrix. Call after setting
// Scale or Translate fields directly.
func (v *Viewport) MarkDirty() {
	v.dirty = true
}
