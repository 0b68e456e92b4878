package ports

import (
	"image"
)

// SourceInfo describes an opened video source.
type SourceInfo struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	FrameCount int    // <= 0 when the container does not report it
	Codec      string // FourCC or codec name, informational only
}

// VideoSource abstracts sequential frame-by-frame reading of a video file.
type VideoSource interface {
	// Info returns the stream properties reported by the container.
	Info() SourceInfo

	// Read decodes the next frame. ok is false at end of stream or when the
	// frame cannot be decoded.
	Read() (frame *image.RGBA, ok bool)

	// Seek positions the source so that the next Read returns frame index.
	Seek(index int) error

	// Release closes the source. It is safe to call more than once.
	Release() error
}

// SinkOptions configures an output video.
type SinkOptions struct {
	Codec  string // FourCC tag, e.g. "XVID", "MP4V", "MJPG", "H264"
	FPS    float64
	Width  int
	Height int
}

// VideoSink abstracts sequential frame writing to a video file.
type VideoSink interface {
	// Write appends a frame. Frames must match the dimensions given at open.
	Write(frame *image.RGBA) error

	// Release finalizes the output. It is safe to call more than once.
	Release() error
}

// VideoBackend opens sources and sinks.
type VideoBackend interface {
	// Name identifies the backend in logs and reports.
	Name() string

	// OpenSource opens a video file for reading.
	OpenSource(path string) (VideoSource, error)

	// OpenSink opens a video file for writing.
	OpenSink(path string, opts SinkOptions) (VideoSink, error)
}
