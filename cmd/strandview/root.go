package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/strand"
	"github.com/phanxgames/strand/internal/config"
	"github.com/phanxgames/strand/internal/source"
	"github.com/phanxgames/strand/internal/ui"
)

var version = "0.3.0"

// options are the flags shared by every command.
type options struct {
	configPath   string
	url          string
	zoom         float64
	thickness    float64
	randomColors bool
	labels       bool
	fps          bool
	threshold    float64
	anchorMode   string
	seed         uint64
	debug        bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "strandview [graph.json]",
	Short: "Interactive assembly graph viewer",
	Long: ui.Brand.Sprint("strandview") + ": draw genome assembly graphs as draggable ribbons\n" +
		ui.Subtle.Sprint("Links are inferred from contour endpoints when the graph has none"),
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

func init() {
	rootCmd.SetVersionTemplate("strandview {{ .Version }}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "settings file (.toml, .yaml)")
	pf.StringVar(&opts.url, "url", "", "fetch the graph from this endpoint instead of a file")
	pf.Float64Var(&opts.zoom, "zoom", strand.DefaultZoomLevel, "initial zoom level")
	pf.Float64Var(&opts.thickness, "thickness", strand.DefaultNodeThickness, "ribbon thickness")
	pf.BoolVar(&opts.randomColors, "random-colors", false, "give each node a random fill")
	pf.BoolVar(&opts.labels, "labels", false, "show node labels")
	pf.BoolVar(&opts.fps, "fps", false, "show the FPS overlay")
	pf.Float64Var(&opts.threshold, "threshold", strand.DefaultLinkThreshold, "link inference distance")
	pf.StringVar(&opts.anchorMode, "anchor-mode", "closest", "link anchoring: closest or centroid")
	pf.Uint64Var(&opts.seed, "seed", 0, "random color seed (0 picks one)")
	pf.BoolVar(&opts.debug, "debug", false, "log load problems and frame timing to stderr")

	addViewFlags(rootCmd)
	rootCmd.AddCommand(statsCmd(), linksCmd(), versionCmd())
}

// loadConfig reads --config when given and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, strand.Settings, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		c, err := config.Load(opts.configPath)
		if err != nil {
			return nil, strand.Settings{}, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("zoom") {
		cfg.Zoom.Level = opts.zoom
	}
	if flags.Changed("thickness") {
		cfg.Display.NodeThickness = opts.thickness
	}
	if flags.Changed("random-colors") {
		cfg.Display.RandomColors = opts.randomColors
	}
	if flags.Changed("labels") {
		cfg.Display.ShowNodeLabels = opts.labels
	}
	if flags.Changed("fps") {
		cfg.Display.ShowFPS = opts.fps
	}
	if flags.Changed("threshold") {
		cfg.Links.Threshold = opts.threshold
	}
	if flags.Changed("anchor-mode") {
		cfg.Links.AnchorMode = opts.anchorMode
	}

	s, err := cfg.Settings()
	if err != nil {
		return nil, strand.Settings{}, err
	}
	return cfg, s, nil
}

// graphSource resolves the graph location from --url or the argument.
func graphSource(args []string) (source.Source, error) {
	switch {
	case opts.url != "":
		return source.HTTP{URL: opts.url}, nil
	case len(args) == 1:
		return source.For(args[0]), nil
	}
	return nil, fmt.Errorf("no graph given: pass a file or --url")
}

// newDiagram builds a diagram and performs the first load.
func newDiagram(ctx context.Context, cfg *config.Config, s strand.Settings, src source.Source) (*strand.Diagram, error) {
	d := strand.NewDiagram(cfg.Window.Width, cfg.Window.Height, s)
	d.SetDebugMode(opts.debug)
	if opts.seed != 0 {
		d.SetColorSeed(opts.seed)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	d.ClearColor = bg

	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	rep, err := d.LoadJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	reportProblems(rep)
	return d, nil
}

func reportProblems(rep strand.LoadReport) {
	ui.Problem(os.Stderr, rep.EmptyContours, "nodes without a contour")
	ui.Problem(os.Stderr, rep.DegenerateGeometry, "nodes with degenerate geometry")
	ui.Problem(os.Stderr, rep.DuplicateIDs, "duplicate node ids")
	ui.Problem(os.Stderr, rep.MissingIDs, "nodes without an id")
	ui.Problem(os.Stderr, rep.DanglingLinks, "links to unknown or empty nodes")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "strandview %s\n", version)
		},
	}
}
