// Package export implements the whole-video export stage.
package export

import (
	"context"
	"fmt"

	"github.com/user/roiscope/pkg/pipeline"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

// Stage re-encodes a video with the selected region of every frame replaced
// by its average colour.
type Stage struct {
	backend  ports.VideoBackend
	progress ports.Progress
	logger   ports.Logger
}

// NewStage creates a new export stage. progress may be nil.
func NewStage(backend ports.VideoBackend, progress ports.Progress, logger ports.Logger) *Stage {
	return &Stage{
		backend:  backend,
		progress: progress,
		logger:   logger.WithComponent("export"),
	}
}

// Execute exports the whole video. Cancellation and an unreadable frame end
// the export early without an error; the result Status tells which. The
// source and the output are released on every path.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	result := pipeline.ExportResult{}

	src, err := s.backend.OpenSource(input.SourcePath)
	if err != nil {
		return result, fmt.Errorf("open source %s: %w", input.SourcePath, err)
	}
	defer s.release("source", src.Release)

	info := src.Info()
	result.Source = info
	result.TotalFrames = info.FrameCount

	codec := input.Codec
	if codec == "" {
		codec = pipeline.DefaultCodec
	}
	sink, err := s.backend.OpenSink(input.OutputPath, ports.SinkOptions{
		Codec:  codec,
		FPS:    info.FPS,
		Width:  info.Width,
		Height: info.Height,
	})
	if err != nil {
		return result, fmt.Errorf("open output %s: %w", input.OutputPath, err)
	}
	defer s.release("output", sink.Release)

	if err := src.Seek(0); err != nil {
		return result, fmt.Errorf("seek to start: %w", err)
	}

	s.logger.Debug("Exporting %d frames (%dx%d @ %.2f fps, %s) to %s",
		info.FrameCount, info.Width, info.Height, info.FPS, codec, input.OutputPath)

	if s.progress != nil {
		s.progress.Start(info.FrameCount)
		defer s.progress.Finish()
	}

	for i := 0; info.FrameCount <= 0 || i < info.FrameCount; i++ {
		frame, ok := src.Read()
		if !ok {
			if info.FrameCount > 0 {
				s.logger.Warn("Frame %d could not be read, stopping export", i)
				result.Status = pipeline.StatusTruncated
			}
			return result, nil
		}

		if s.progress != nil {
			s.progress.Set(i + 1)
		}
		if ctx.Err() != nil {
			s.logger.Debug("Export cancelled after %d frames", result.FramesWritten)
			result.Status = pipeline.StatusCancelled
			return result, nil
		}

		out := frame
		if input.Selection != nil {
			out, _ = roi.AverageRegion(frame, *input.Selection)
		}
		if err := sink.Write(out); err != nil {
			return result, fmt.Errorf("write frame %d: %w", i, err)
		}
		result.FramesWritten++
	}

	s.logger.Debug("Export completed: %d frames", result.FramesWritten)
	return result, nil
}

func (s *Stage) release(what string, fn func() error) {
	if err := fn(); err != nil {
		s.logger.Warn("Release %s: %v", what, err)
	}
}

var _ pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult] = (*Stage)(nil)
