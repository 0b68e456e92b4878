package pipeline

import (
	"image"

	"github.com/user/roiscope/pkg/histogram"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

// =============================================================================
// Analyze Stage Types
// =============================================================================

// AnalyzeInput is one frame to analyze.
type AnalyzeInput struct {
	Frame     *image.RGBA // Clean original frame, never modified
	Selection *roi.Rect   // nil when nothing is selected
	Mode      roi.Channel
	Bins      int
}

// AnalyzeResult holds everything derived from one frame.
type AnalyzeResult struct {
	// Selected is false when there was no usable selection; only the main
	// view is set in that case.
	Selected bool

	// Region is the clamped selection in frame coordinates.
	Region image.Rectangle

	Counts roi.Counts
	Means  roi.Means

	// Histogram is set when HasHistogram is true (single-channel modes).
	Histogram    histogram.Result
	HasHistogram bool

	// Working is the original frame with the analysis text burned in.
	Working *image.RGBA

	// Result is the working frame with the region replaced by its average.
	Result *image.RGBA

	// Views maps every visible view to its image.
	Views ports.ViewSet
}

// =============================================================================
// Export Stage Types
// =============================================================================

// ExportStatus tells how an export ended.
type ExportStatus int

const (
	// StatusCompleted means every frame the source reported was written.
	StatusCompleted ExportStatus = iota
	// StatusCancelled means the context was cancelled between frames.
	StatusCancelled
	// StatusTruncated means a frame could not be read before the end.
	StatusTruncated
)

// String returns the status name.
func (s ExportStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// ExportInput describes one export of a whole video.
type ExportInput struct {
	SourcePath string
	OutputPath string
	Codec      string    // FourCC tag; empty selects DefaultCodec
	Selection  *roi.Rect // nil copies frames unchanged
}

// DefaultCodec is the FourCC used when none is given.
const DefaultCodec = "XVID"

// ExportResult summarizes a finished export.
type ExportResult struct {
	FramesWritten int
	TotalFrames   int // As reported by the source; <= 0 when unknown
	Status        ExportStatus
	Source        ports.SourceInfo
}
