// Package orchestrator runs the headless workflows behind the CLI: inspecting
// one frame of a video and exporting a whole video, each with an optional
// Markdown report.
package orchestrator

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/user/roiscope/pkg/histogram"
	"github.com/user/roiscope/pkg/overlay"
	"github.com/user/roiscope/pkg/pipeline"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/report"
	"github.com/user/roiscope/pkg/roi"
	"github.com/user/roiscope/pkg/session"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	VideoPath string
	Frame     int
	Selection *roi.Rect

	// Analysis
	Mode roi.Channel
	Bins int

	// Overlay
	OutlineColor color.Color
	OutlineWidth float64

	// Output
	ViewDir    string // Where the display writes views; only used for the report
	ReportPath string // Empty skips the report
	OutputPath string // Export target
	Codec      string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Mode:         roi.All,
		Bins:         histogram.DefaultBins,
		OutlineColor: overlay.DefaultOutline,
		OutlineWidth: overlay.DefaultWidth,
		Codec:        pipeline.DefaultCodec,
	}
}

// Orchestrator coordinates the stages, the session and the report.
type Orchestrator struct {
	backend      ports.VideoBackend
	analyzeStage pipeline.Stage[pipeline.AnalyzeInput, pipeline.AnalyzeResult]
	exportStage  pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	annotator    *overlay.Annotator
	display      ports.Display
	fs           ports.FileSystem
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	backend ports.VideoBackend,
	analyzeStage pipeline.Stage[pipeline.AnalyzeInput, pipeline.AnalyzeResult],
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	annotator *overlay.Annotator,
	display ports.Display,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		backend:      backend,
		analyzeStage: analyzeStage,
		exportStage:  exportStage,
		annotator:    annotator,
		display:      display,
		fs:           fs,
		logger:       logger,
	}
}

// Inspect opens the video, shows frame config.Frame with the selection,
// mode and bins applied, and writes the report.
func (o *Orchestrator) Inspect(ctx context.Context, config Config) (*report.Summary, error) {
	player := session.New(o.backend, o.analyzeStage, o.annotator, o.display, o.logger, session.Options{
		Mode:         config.Mode,
		Bins:         config.Bins,
		OutlineColor: config.OutlineColor,
		OutlineWidth: config.OutlineWidth,
	})
	defer player.Close()

	if err := player.Open(ctx, config.VideoPath); err != nil {
		return nil, err
	}
	player.SetPaused(true)

	o.logger.Info("Inspecting frame %d", config.Frame)
	if err := player.Seek(ctx, config.Frame); err != nil {
		o.logger.Error("Failed to read frame %d: %s", config.Frame, err)
		return nil, fmt.Errorf("seek: %w", err)
	}
	if config.Selection != nil {
		if err := player.Select(ctx, *config.Selection); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
	}

	result, _ := player.Last()
	if config.Selection != nil && !result.Selected {
		o.logger.Warn("Selection %s does not overlap the frame", *config.Selection)
	}

	info, _ := player.Info()
	builder := report.NewBuilder().
		WithVideo(info, o.backend.Name()).
		WithSettings(player.Position(), player.Mode(), player.Bins()).
		WithAnalysis(result)
	if config.ViewDir != "" {
		for _, v := range result.Views.Names() {
			builder.WithView(v, filepath.Join(config.ViewDir, v.FileName()))
		}
	}
	summary := builder.Build()

	if err := o.writeReport(config.ReportPath, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// Export writes the whole video with the selection averaged to
// config.OutputPath. Cancellation ends the export early without an error.
func (o *Orchestrator) Export(ctx context.Context, config Config) (*report.Summary, error) {
	codec := config.Codec
	if codec == "" {
		codec = pipeline.DefaultCodec
	}

	o.logger.Info("Exporting %s to %s", config.VideoPath, config.OutputPath)
	result, err := o.exportStage.Execute(ctx, pipeline.ExportInput{
		SourcePath: config.VideoPath,
		OutputPath: config.OutputPath,
		Codec:      codec,
		Selection:  config.Selection,
	})
	if err != nil {
		o.logger.Error("Failed to export video: %s", err)
		return nil, fmt.Errorf("export stage: %w", err)
	}

	switch result.Status {
	case pipeline.StatusCancelled:
		o.logger.Warn("Export cancelled after %d frames", result.FramesWritten)
	case pipeline.StatusTruncated:
		o.logger.Warn("Export stopped at unreadable frame %d", result.FramesWritten)
	default:
		o.logger.Info("Output saved to %s (%d frames)", config.OutputPath, result.FramesWritten)
	}

	summary := report.NewBuilder().
		WithVideo(result.Source, o.backend.Name()).
		WithSettings(0, config.Mode, config.Bins).
		WithExport(config.OutputPath, codec, result).
		Build()
	if config.Selection != nil {
		r := config.Selection.Clamp(imageRect(result.Source))
		summary.Selected = !r.Empty()
		summary.Region = report.RegionInfo{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
	}

	if err := o.writeReport(config.ReportPath, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (o *Orchestrator) writeReport(path string, summary *report.Summary) error {
	if path == "" {
		return nil
	}
	writer := report.NewWriter(report.NewMarkdownFormatter(report.WithTranslator(translate)), o.fs)
	if err := writer.Write(path, summary); err != nil {
		o.logger.Error("Failed to write report: %s", err)
		return fmt.Errorf("write report: %w", err)
	}
	o.logger.Info("Report saved to %s", path)
	return nil
}

func translate(key string) string {
	return l10n.T(key)
}

func imageRect(info ports.SourceInfo) image.Rectangle {
	return image.Rect(0, 0, info.Width, info.Height)
}
