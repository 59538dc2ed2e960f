package strand

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestMultiplyAndInvertAffine(t *testing.T) {
	view := [6]float64{2, 0, 0, 2, 10, 20}
	m := multiplyAffine(view, translation(3, 4))
	x, y := transformPoint(m, 1, 1)
	// (1+3)*2+10, (1+4)*2+20
	if !approxEqual(x, 18, epsilon) || !approxEqual(y, 30, epsilon) {
		t.Errorf("transformPoint = (%v,%v), want (18,30)", x, y)
	}
	inv := invertAffine(m)
	bx, by := transformPoint(inv, x, y)
	if !approxEqual(bx, 1, epsilon) || !approxEqual(by, 1, epsilon) {
		t.Errorf("inverse = (%v,%v), want (1,1)", bx, by)
	}
	if invertAffine([6]float64{}) != identityTransform {
		t.Error("singular matrix should invert to identity")
	}
}

func TestTransformVerticesTint(t *testing.T) {
	src := []ebiten.Vertex{{DstX: 1, DstY: 2, SrcX: 0.5, SrcY: 0.5, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}}
	dst := make([]ebiten.Vertex, 1)
	transformVertices(src, dst, translation(10, 10), Color{R: 1, G: 0.5, B: 0, A: 0.5})
	v := dst[0]
	if v.DstX != 11 || v.DstY != 12 {
		t.Errorf("dst = (%v,%v), want (11,12)", v.DstX, v.DstY)
	}
	// Premultiplied.
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("color = %v %v %v %v", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
	if v.SrcX != 0.5 {
		t.Errorf("SrcX = %v", v.SrcX)
	}
}
