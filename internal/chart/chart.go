// Package chart draws the temperature history shown on the monitoring card.
package chart

import (
	"errors"
	"io"
	"strconv"

	"blanket_warmer/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 240

	blanketSeriesName = "Blanket Average Temperature (°C)"
	bodySeriesName    = "Body Temperature (°C)"
)

var ErrNotEnoughSamples = errors.New("chart needs at least two samples")

var (
	blanketStroke = drawing.ColorFromHex("3B82F6")
	bodyStroke    = drawing.ColorFromHex("F97316")
)

// Options controls the chart size and its Y range.
type Options struct {
	Width  int
	Height int
	MinC   float64
	MaxC   float64
}

// DefaultOptions matches the fixed 30..45 °C scale of the dashboard.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, MinC: 30, MaxC: 45}
}

// RenderSVG writes the blanket and body temperature lines as SVG. X positions
// are sample ordinals (1..n), one per sampling interval.
func RenderSVG(w io.Writer, samples []models.Sample, opts Options) error {
	if len(samples) < 2 {
		return ErrNotEnoughSamples
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	xs := make([]float64, len(samples))
	blanket := make([]float64, len(samples))
	body := make([]float64, len(samples))
	ticks := make([]chart.Tick, len(samples))
	for i, s := range samples {
		xs[i] = float64(i + 1)
		blanket[i] = s.BlanketAvgC
		body[i] = s.BodyC
		ticks[i] = chart.Tick{Value: xs[i], Label: strconv.Itoa(i + 1)}
	}

	var yRange chart.Range
	if opts.MaxC > opts.MinC {
		yRange = &chart.ContinuousRange{Min: opts.MinC, Max: opts.MaxC}
	}

	ch := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Time (every 5 minutes)",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Temperature (°C)",
			Range: yRange,
		},
		// nothing is plotted against the right-hand axis
		YAxisSecondary: chart.YAxis{Style: chart.Style{Hidden: true}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    blanketSeriesName,
				XValues: xs,
				YValues: blanket,
				Style:   lineStyle(blanketStroke),
			},
			chart.ContinuousSeries{
				Name:    bodySeriesName,
				XValues: xs,
				YValues: body,
				Style:   lineStyle(bodyStroke),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.SVG, w)
}

// lineStyle draws a solid line with a light fill of the same color.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		FillColor:   col.WithAlpha(51),
		DotColor:    col,
		DotWidth:    3,
	}
}
