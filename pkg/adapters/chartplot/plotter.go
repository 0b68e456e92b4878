// Package chartplot renders histograms as bar charts using go-chart.
package chartplot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/user/roiscope/pkg/ports"
)

// Default plot size
const (
	DefaultWidth  = 640
	DefaultHeight = 360
)

// Bins above this count hide the x-axis labels; they would overlap.
const maxLabeledBins = 32

// ErrNoBins is returned when a plot has nothing to draw.
var ErrNoBins = errors.New("histogram has no bins")

// Plotter implements ports.Plotter.
type Plotter struct {
	width  int
	height int
}

// New creates a new Plotter. Non-positive sizes select the defaults.
func New(width, height int) *Plotter {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Plotter{width: width, height: height}
}

// Plot renders one bar per bin in the plot colour.
func (p *Plotter) Plot(plot ports.HistogramPlot) (image.Image, error) {
	if len(plot.Counts) == 0 {
		return nil, ErrNoBins
	}
	if len(plot.Labels) != len(plot.Counts) {
		return nil, fmt.Errorf("%d labels for %d bins", len(plot.Labels), len(plot.Counts))
	}

	fill := drawing.Color{R: plot.Color[0], G: plot.Color[1], B: plot.Color[2], A: 255}
	style := chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1}

	peak := 1
	bars := make([]chart.Value, len(plot.Counts))
	for i, n := range plot.Counts {
		bars[i] = chart.Value{Label: plot.Labels[i], Value: float64(n), Style: style}
		if n > peak {
			peak = n
		}
	}

	// Leave room for the y-axis, then split the rest evenly between bars and gaps.
	barWidth := (p.width - 100) / (2 * len(bars))
	if barWidth < 1 {
		barWidth = 1
	}

	bc := chart.BarChart{
		Title:      plot.Title,
		Width:      p.width,
		Height:     p.height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{Hidden: len(bars) > maxLabeledBins},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

var _ ports.Plotter = (*Plotter)(nil)
