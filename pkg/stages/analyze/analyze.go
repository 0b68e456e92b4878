// Package analyze implements the single-frame analysis stage.
package analyze

import (
	"context"
	"fmt"

	"github.com/user/roiscope/pkg/display"
	"github.com/user/roiscope/pkg/histogram"
	"github.com/user/roiscope/pkg/overlay"
	"github.com/user/roiscope/pkg/pipeline"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

// Stage turns one frame and the current selection into the full set of
// views: annotated main frame, ROI, isolated channels, averaged result and
// histogram.
type Stage struct {
	annotator *overlay.Annotator
	plotter   ports.Plotter
	logger    ports.Logger
}

// NewStage creates a new analyze stage. plotter may be nil, in which case
// the histogram view is never produced.
func NewStage(annotator *overlay.Annotator, plotter ports.Plotter, logger ports.Logger) *Stage {
	return &Stage{
		annotator: annotator,
		plotter:   plotter,
		logger:    logger.WithComponent("analyze"),
	}
}

// Execute analyzes one frame. A missing or unusable selection is not an
// error: the result then only carries the main view.
func (s *Stage) Execute(ctx context.Context, input pipeline.AnalyzeInput) (pipeline.AnalyzeResult, error) {
	if input.Frame == nil {
		return pipeline.AnalyzeResult{}, roi.ErrNilFrame
	}
	if err := ctx.Err(); err != nil {
		return pipeline.AnalyzeResult{}, err
	}
	bins := input.Bins
	if bins == 0 {
		bins = histogram.DefaultBins
	}
	if !histogram.ValidBins(bins) {
		return pipeline.AnalyzeResult{}, fmt.Errorf("analyze: %w: %d", histogram.ErrBinCount, bins)
	}

	frame := roi.Clone(input.Frame)
	result := pipeline.AnalyzeResult{
		Working: frame,
		Result:  frame,
		Views:   ports.ViewSet{ports.ViewMain: frame},
	}
	if input.Selection == nil {
		return result, nil
	}

	sel := *input.Selection
	patch, err := roi.Extract(input.Frame, sel)
	if err != nil {
		s.logger.Debug("Selection %s ignored: %v", sel, err)
		return result, nil
	}

	result.Selected = true
	result.Region = sel.Clamp(input.Frame.Bounds())
	result.Counts = roi.CountNonZero(patch)
	result.Means = roi.ComputeMeans(patch)

	mode := display.Lookup(input.Mode)
	lines := overlay.CountLines(result.Counts)
	if mode.Histogram {
		h, ok, err := histogram.Build(patch, mode.Channel, bins)
		if err != nil {
			return pipeline.AnalyzeResult{}, fmt.Errorf("analyze: %w", err)
		}
		if ok {
			result.Histogram = h
			result.HasHistogram = true
			lines = append(lines, overlay.BinLines(h.Lines, mode.Channel)...)
		}
	}

	result.Working = s.annotator.Annotate(input.Frame, lines)
	result.Result = roi.CompositeSwatch(result.Working, sel, roi.BuildSwatch(patch, result.Means))

	views := ports.ViewSet{
		ports.ViewMain:   result.Working,
		ports.ViewROI:    patch,
		ports.ViewResult: result.Result,
	}
	for _, ch := range mode.Isolated {
		views[display.ChannelView(ch)] = roi.Isolate(patch, ch)
	}
	if result.HasHistogram && s.plotter != nil {
		img, err := s.plotter.Plot(plotFor(result.Histogram, mode))
		if err != nil {
			s.logger.Warn("Histogram plot failed: %v", err)
		} else {
			views[ports.ViewHistogram] = img
		}
	}
	result.Views = views

	s.logger.Debug("Analyzed region %v: B=%d G=%d R=%d", result.Region, result.Counts.Blue, result.Counts.Green, result.Counts.Red)
	return result, nil
}

func plotFor(h histogram.Result, mode display.Mode) ports.HistogramPlot {
	labels := make([]string, len(h.Counts))
	for i := range h.Counts {
		labels[i] = fmt.Sprintf("%d-%d", h.Edges[i], h.Edges[i+1]-1)
	}
	c := mode.Channel.Color()
	return ports.HistogramPlot{
		Title:  mode.LocalizedLabel(),
		Labels: labels,
		Counts: h.Counts,
		Color:  [3]uint8{c.R, c.G, c.B},
	}
}

var _ pipeline.Stage[pipeline.AnalyzeInput, pipeline.AnalyzeResult] = (*Stage)(nil)
