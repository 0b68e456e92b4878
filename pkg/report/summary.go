// Package report builds and writes inspection summaries.
package report

import (
	"fmt"
	"time"

	"github.com/user/roiscope/pkg/pipeline"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

// Summary contains everything collected while inspecting one frame, and
// optionally the outcome of an export.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source video
	Video VideoInfo

	// Inspected frame and settings
	Frame    int
	Mode     string
	Bins     int
	Selected bool
	Region   RegionInfo

	// Analysis results
	Counts    roi.Counts
	Means     roi.Means
	Histogram []Bin

	// Files written for the views, keyed by view name
	Views map[string]string

	// Export outcome, nil when no export ran
	Export *ExportInfo
}

// VideoInfo describes the source video.
type VideoInfo struct {
	Path       string
	Backend    string
	Codec      string
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// RegionInfo describes the clamped selection.
type RegionInfo struct {
	X, Y          int
	Width, Height int
}

// String formats the region as "x,y wxh".
func (r RegionInfo) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// Bin is one histogram bin.
type Bin struct {
	Lo, Hi int // inclusive range
	Count  int
}

// ExportInfo describes a finished export.
type ExportInfo struct {
	Output        string
	Codec         string
	FramesWritten int
	TotalFrames   int
	Status        string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
		Views:       make(map[string]string),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithVideo sets the source video information.
func (b *Builder) WithVideo(info ports.SourceInfo, backend string) *Builder {
	b.summary.Video = VideoInfo{
		Path:       info.Path,
		Backend:    backend,
		Codec:      info.Codec,
		Width:      info.Width,
		Height:     info.Height,
		FPS:        info.FPS,
		FrameCount: info.FrameCount,
	}
	return b
}

// WithSettings sets the inspected frame, mode and bin count.
func (b *Builder) WithSettings(frame int, mode roi.Channel, bins int) *Builder {
	b.summary.Frame = frame
	b.summary.Mode = mode.String()
	b.summary.Bins = bins
	return b
}

// WithAnalysis copies the results of one analysis.
func (b *Builder) WithAnalysis(result pipeline.AnalyzeResult) *Builder {
	b.summary.Selected = result.Selected
	if !result.Selected {
		return b
	}
	r := result.Region
	b.summary.Region = RegionInfo{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
	b.summary.Counts = result.Counts
	b.summary.Means = result.Means
	b.summary.Histogram = nil
	if result.HasHistogram {
		h := result.Histogram
		for i, n := range h.Counts {
			b.summary.Histogram = append(b.summary.Histogram, Bin{Lo: h.Edges[i], Hi: h.Edges[i+1] - 1, Count: n})
		}
	}
	return b
}

// WithView records the file a view was written to.
func (b *Builder) WithView(view ports.View, path string) *Builder {
	b.summary.Views[string(view)] = path
	return b
}

// WithExport sets the export outcome.
func (b *Builder) WithExport(output, codec string, result pipeline.ExportResult) *Builder {
	b.summary.Export = &ExportInfo{
		Output:        output,
		Codec:         codec,
		FramesWritten: result.FramesWritten,
		TotalFrames:   result.TotalFrames,
		Status:        result.Status.String(),
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
