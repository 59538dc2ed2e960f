package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phanxgames/strand"
	"github.com/phanxgames/strand/internal/ui"
)

func statsCmd() *cobra.Command {
	var assembly string
	cmd := &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Print layout statistics without opening a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			src, err := graphSource(args)
			if err != nil {
				return err
			}
			d, err := newDiagram(cmd.Context(), cfg, s, src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, src.String())
			ls := d.LayoutStats()
			ui.KeyValues(out, [][2]string{
				{"Nodes", strconv.Itoa(ls.Nodes)},
				{"Renderable", strconv.Itoa(ls.Renderable)},
				{"Links", strconv.Itoa(ls.Links)},
				{"Inferred", ui.StatusIcon(ls.Inferred)},
				{"Components", strconv.Itoa(ls.Components)},
				{"Dead ends", strconv.Itoa(ls.DeadEnds)},
				{"Contour length", strconv.FormatFloat(ls.ContourLength, 'f', 1, 64)},
			})

			if assembly == "" {
				return nil
			}
			data, err := os.ReadFile(assembly)
			if err != nil {
				return fmt.Errorf("read assembly stats: %w", err)
			}
			gs, err := strand.ParseGraphStatsJSON(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			var rows [][]string
			for _, r := range gs.Rows() {
				rows = append(rows, []string{r.Label, r.Value})
			}
			ui.Table(out, []string{"Statistic", "Value"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&assembly, "assembly", "", "assembly summary JSON to print alongside")
	return cmd
}

func linksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links [graph.json]",
		Short: "List links with their anchor points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			src, err := graphSource(args)
			if err != nil {
				return err
			}
			d, err := newDiagram(cmd.Context(), cfg, s, src)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, seg := range d.LinkSegments() {
				rows = append(rows, []string{
					seg.Source + seg.FromOrient.String(),
					seg.Target + seg.ToOrient.String(),
					formatPoint(seg.From),
					formatPoint(seg.To),
				})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, ui.Subtle.Sprint("no links"))
				return nil
			}
			ui.Table(out, []string{"Source", "Target", "From", "To"}, rows)
			return nil
		},
	}
}

func formatPoint(p strand.Vec2) string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}
