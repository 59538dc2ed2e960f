package strand

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultLabelSize is the label font size in screen pixels.
const DefaultLabelSize = 12

// labelOffset is the node-local position of a label's top-left corner.
var labelOffset = Vec2{X: 10, Y: 4}

// LabelFont wraps Ebitengine's text/v2 face used for node labels.
type LabelFont struct {
	face *text.GoTextFace
	lh   float64
}

// LoadLabelFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadLabelFont(ttfData []byte, size float64) (*LabelFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("strand: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &LabelFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *LabelFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// SetLabelFont replaces the font used for node labels. nil restores the
// built-in Go Regular face.
func (d *Diagram) SetLabelFont(f *LabelFont) {
	d.labelFont = f
}

func (d *Diagram) ensureLabelFont() *LabelFont {
	if d.labelFont == nil {
		f, err := LoadLabelFont(goregular.TTF, DefaultLabelSize)
		if err != nil {
			d.debugf("label font: %v", err)
			return nil
		}
		d.labelFont = f
	}
	return d.labelFont
}

// drawLabels renders each renderable node's id next to its position. The
// text keeps a fixed screen size; only its anchor follows the viewport.
func (d *Diagram) drawLabels(screen *ebiten.Image) {
	f := d.ensureLabelFont()
	if f == nil {
		return
	}
	view := d.viewport.computeViewMatrix()
	for _, n := range d.registry.Nodes() {
		if n.Empty() {
			continue
		}
		p := n.pos.Add(labelOffset)
		sx, sy := transformPoint(view, p.X, p.Y)
		op := &text.DrawOptions{}
		op.GeoM.Translate(sx, sy)
		op.ColorScale.Scale(
			float32(ColorLabel.R),
			float32(ColorLabel.G),
			float32(ColorLabel.B),
			float32(ColorLabel.A),
		)
		op.LineSpacing = f.lh
		text.Draw(screen, n.ID, f.face, op)
	}
}
