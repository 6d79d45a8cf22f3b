package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"blanket_warmer/internal/chart"
	"blanket_warmer/internal/models"
	"blanket_warmer/internal/repository/db"
	"blanket_warmer/internal/service"
	"blanket_warmer/internal/view"

	"github.com/carlmjohnson/versioninfo"
	"github.com/spf13/cobra"
)

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a static snapshot of the dashboard",
	Long: `Render the dashboard as it looks on a fresh page load, without the
live websocket. The chart uses the seeded sample history.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("out", "", "page output file (default: stdout)")
	renderCmd.Flags().String("chart-out", "", "also write the chart SVG to this file")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	panels, err := service.NewPanelService(cfg.Dashboard, nil, nil)
	if err != nil {
		return err
	}
	st, err := panels.Create(ctx)
	if err != nil {
		return err
	}
	gauges, err := service.NewReadingService(cfg.Readings, nil, nil).Current(ctx)
	if err != nil {
		return err
	}
	renderer, err := view.New()
	if err != nil {
		return err
	}

	page := view.Page{Title: cfg.Dashboard.Title, Panel: st, Gauges: gauges}
	chartOut, _ := cmd.Flags().GetString("chart-out")
	if chartOut != "" {
		if err := writeFile(chartOut, func(w io.Writer) error {
			return chart.RenderSVG(w, seededSamples(time.Now().UTC()), chart.DefaultOptions())
		}); err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		page.ChartURL = chartOut
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return renderer.Render(cmd.OutOrStdout(), page)
	}
	return writeFile(out, func(w io.Writer) error { return renderer.Render(w, page) })
}

func seededSamples(now time.Time) []models.Sample {
	last := len(db.SeedBlanketAvgC) - 1
	out := make([]models.Sample, 0, len(db.SeedBlanketAvgC))
	for i := range db.SeedBlanketAvgC {
		out = append(out, models.Sample{
			Seq:         i + 1,
			TakenAt:     now.Add(-time.Duration(last-i) * db.SampleInterval),
			BlanketAvgC: db.SeedBlanketAvgC[i],
			BodyC:       db.SeedBodyC[i],
		})
	}
	return out
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blanketd %s\n", versioninfo.Short())
		fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", versioninfo.Revision)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:   %s\n", versioninfo.LastCommit.Format(time.RFC3339))
	},
}
