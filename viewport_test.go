package strand

import (
	"math"
	"testing"
)

func TestViewportDefaults(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	if v.Scale != 1 {
		t.Errorf("Scale = %v, want 1", v.Scale)
	}
	if v.MinScale != DefaultMinScale || v.MaxScale != DefaultMaxScale {
		t.Errorf("limits = [%v,%v]", v.MinScale, v.MaxScale)
	}
	sx, sy := v.WorldToScreen(10, 20)
	if !approxEqual(sx, 10, epsilon) || !approxEqual(sy, 20, epsilon) {
		t.Errorf("identity WorldToScreen = (%v,%v)", sx, sy)
	}
}

func TestViewportSetScaleSnaps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 2, 2},
		{"above max", 50, DefaultMaxScale},
		{"below min", 0.001, DefaultMinScale},
		{"NaN keeps current", math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(Rect{Width: 800, Height: 600})
			v.ZoomDuration = 0
			v.SetScale(tt.in)
			if !approxEqual(v.Scale, tt.want, epsilon) {
				t.Errorf("Scale = %v, want %v", v.Scale, tt.want)
			}
			if v.Animating() {
				t.Error("Animating with zero duration")
			}
		})
	}
}

func TestViewportSetScaleAnimates(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.TranslateX, v.TranslateY = 30, 40
	v.SetScale(2)
	if !v.Animating() {
		t.Fatal("expected animation")
	}
	if v.Scale != 1 {
		t.Errorf("Scale changed before first update: %v", v.Scale)
	}

	v.update(0.25)
	if v.Scale <= 1 || v.Scale >= 2 {
		t.Errorf("mid-animation Scale = %v, want in (1,2)", v.Scale)
	}
	v.update(0.3)
	if !approxEqual(v.Scale, 2, 1e-6) {
		t.Errorf("final Scale = %v, want 2", v.Scale)
	}
	if v.Animating() {
		t.Error("still animating after duration")
	}
	if v.TranslateX != 30 || v.TranslateY != 40 {
		t.Errorf("translate changed: (%v,%v)", v.TranslateX, v.TranslateY)
	}
}

func TestViewportGestureCancelsAnimation(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.SetScale(4)
	v.OnGesture(GestureEvent{Scale: 1.5, TranslateX: 5, TranslateY: 6})
	if v.Animating() {
		t.Error("gesture should cancel the zoom animation")
	}
	if v.Transform() != (ViewTransform{Scale: 1.5, TranslateX: 5, TranslateY: 6}) {
		t.Errorf("Transform = %+v", v.Transform())
	}
}

func TestViewportSuspend(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.Suspend()
	if v.OnGesture(GestureEvent{Scale: 3}) {
		t.Error("gesture applied while suspended")
	}
	if v.Pan(10, 10) {
		t.Error("pan applied while suspended")
	}
	if v.Scale != 1 || v.TranslateX != 0 {
		t.Errorf("transform changed while suspended: %+v", v.Transform())
	}
	v.Resume()
	if !v.Pan(10, 0) || v.TranslateX != 10 {
		t.Errorf("pan after resume: TranslateX = %v", v.TranslateX)
	}
}

func TestViewportGestureClampsScale(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.OnGesture(GestureEvent{Scale: 100})
	if v.Scale != DefaultMaxScale {
		t.Errorf("Scale = %v, want %v", v.Scale, DefaultMaxScale)
	}
}

func TestViewportZoomAtKeepsPointFixed(t *testing.T) {
	v := NewViewport(Rect{X: 10, Y: 20, Width: 800, Height: 600})
	v.Pan(7, -3)
	wx, wy := v.ScreenToWorld(110, 120)

	v.ZoomAt(2, 110, 120)
	if !approxEqual(v.Scale, 2, epsilon) {
		t.Fatalf("Scale = %v, want 2", v.Scale)
	}
	gx, gy := v.ScreenToWorld(110, 120)
	if !approxEqual(gx, wx, 1e-9) || !approxEqual(gy, wy, 1e-9) {
		t.Errorf("point under cursor moved: (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
	}
}

func TestViewportScreenWorldRoundTrip(t *testing.T) {
	v := NewViewport(Rect{X: 50, Y: 25, Width: 800, Height: 600})
	v.OnGesture(GestureEvent{Scale: 2.5, TranslateX: -40, TranslateY: 12})

	sx, sy := v.WorldToScreen(10, 20)
	if !approxEqual(sx, 50-40+25, epsilon) || !approxEqual(sy, 25+12+50, epsilon) {
		t.Errorf("WorldToScreen = (%v,%v)", sx, sy)
	}
	wx, wy := v.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 10, 1e-9) || !approxEqual(wy, 20, 1e-9) {
		t.Errorf("round trip = (%v,%v), want (10,20)", wx, wy)
	}
}

func TestViewportVisibleBounds(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.OnGesture(GestureEvent{Scale: 2, TranslateX: 100, TranslateY: 0})
	b := v.VisibleBounds()
	want := Rect{X: -50, Y: 0, Width: 400, Height: 300}
	if !approxEqual(b.X, want.X, epsilon) || !approxEqual(b.Width, want.Width, epsilon) ||
		!approxEqual(b.Height, want.Height, epsilon) {
		t.Errorf("VisibleBounds = %+v, want %+v", b, want)
	}
}
