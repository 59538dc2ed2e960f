package strand

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS overlay text is redrawn.
const fpsRefresh = 0.5

// fpsOverlay caches the FPS/TPS readout between refreshes.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

// tick accumulates frame time; the image is redrawn on the next draw once
// fpsRefresh has elapsed.
func (o *fpsOverlay) tick(dt float64) {
	o.elapsed += dt
}

// drawFPS paints the FPS/TPS readout at the top-left of the viewport.
func (d *Diagram) drawFPS(screen *ebiten.Image) {
	o := &d.fps
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
		o.elapsed = fpsRefresh
	}
	if o.elapsed >= fpsRefresh {
		o.elapsed = 0
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(d.viewport.Bounds.X, d.viewport.Bounds.Y)
	screen.DrawImage(o.img, &op)
}
