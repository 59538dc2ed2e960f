package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/phanxgames/strand"
	"github.com/phanxgames/strand/internal/source"
	"github.com/phanxgames/strand/internal/watch"
)

var viewOpts struct {
	watch         bool
	script        string
	screenshotDir string
	width, height int
}

func addViewFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&viewOpts.watch, "watch", "w", false, "reload when the graph file changes")
	f.StringVar(&viewOpts.script, "script", "", "run a JSON interaction script, then exit")
	f.StringVar(&viewOpts.screenshotDir, "screenshots", "screenshots", "directory for script screenshots")
	f.IntVar(&viewOpts.width, "width", 0, "window width (overrides config)")
	f.IntVar(&viewOpts.height, "height", 0, "window height (overrides config)")
}

func runView(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, s, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if viewOpts.width > 0 {
		cfg.Window.Width = viewOpts.width
	}
	if viewOpts.height > 0 {
		cfg.Window.Height = viewOpts.height
	}
	src, err := graphSource(args)
	if err != nil {
		return err
	}
	d, err := newDiagram(ctx, cfg, s, src)
	if err != nil {
		return err
	}
	d.ScreenshotDir = viewOpts.screenshotDir

	if viewOpts.script != "" {
		data, err := os.ReadFile(viewOpts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := strand.LoadTestScript(data)
		if err != nil {
			return err
		}
		d.SetTestRunner(runner)
	}

	var changes <-chan string
	if viewOpts.watch {
		file, ok := src.(source.File)
		if !ok {
			return fmt.Errorf("--watch needs a graph file, not %s", src)
		}
		w, err := watch.New(file.Path, watch.DefaultDebounce)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Println(err)
			}
		}()
		changes = w.Changes()
	}

	return strand.Run(d, strand.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
		OnUpdate: func() error {
			if ctx.Err() != nil {
				return strand.ErrQuit
			}
			select {
			case _, ok := <-changes:
				if !ok {
					changes = nil
					return nil
				}
				// Reloads run on the update goroutine, so they never overlap.
				data, err := src.Fetch(ctx)
				if err != nil {
					log.Println(err)
					return nil
				}
				rep, err := d.LoadJSON(data)
				if err != nil {
					log.Println(err)
					return nil
				}
				reportProblems(rep)
			default:
			}
			return nil
		},
	})
}
