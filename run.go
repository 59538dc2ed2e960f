package strand

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit may be returned from RunConfig.OnUpdate to close the window
// without reporting an error.
var ErrQuit = errors.New("strand: quit")

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the viewport follows.
	Resizable bool
	// OnUpdate runs once per tick after the diagram has updated.
	OnUpdate func() error
}

// game adapts a Diagram to ebiten.Game.
type game struct {
	d        *Diagram
	onUpdate func() error
}

func (g *game) Update() error {
	g.d.Update()
	if g.onUpdate != nil {
		if err := g.onUpdate(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	if r := g.d.testRunner; r != nil && r.Done() && len(g.d.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.d.Draw(screen)
}

// Layout keeps the viewport bounds in sync with the window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := &g.d.viewport.Bounds
	if b.Width != float64(outsideWidth) || b.Height != float64(outsideHeight) {
		b.Width = float64(outsideWidth)
		b.Height = float64(outsideHeight)
		g.d.viewport.MarkDirty()
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the diagram until it is closed. A finished
// test runner also ends the loop.
func Run(d *Diagram, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width = int(d.viewport.Bounds.Width)
		cfg.Height = int(d.viewport.Bounds.Height)
	}
	if cfg.Title == "" {
		cfg.Title = "strand"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&game{d: d, onUpdate: cfg.OnUpdate}); err != nil {
		return fmt.Errorf("strand: run: %w", err)
	}
	return nil
}
