// Package smartvideo selects the video backend: OpenCV when it was compiled
// in, otherwise an ffmpeg process.
package smartvideo

import (
	"errors"
	"fmt"

	"github.com/user/roiscope/pkg/adapters/cvvideo"
	"github.com/user/roiscope/pkg/adapters/ffvideo"
	"github.com/user/roiscope/pkg/ports"
)

// Kind names a backend.
type Kind string

const (
	// KindAuto tries OpenCV, then ffmpeg.
	KindAuto Kind = "auto"
	// KindOpenCV uses gocv.
	KindOpenCV Kind = "opencv"
	// KindFFmpeg uses an ffmpeg child process.
	KindFFmpeg Kind = "ffmpeg"
)

// Options configures backend selection.
type Options struct {
	Kind Kind

	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

var (
	// ErrUnknownBackend is returned for a Kind this package does not know.
	ErrUnknownBackend = errors.New("smartvideo: unknown backend")
	// ErrNoBackendAvailable is returned when auto selection finds nothing usable.
	ErrNoBackendAvailable = errors.New("smartvideo: no video backend available")
)

// Constructors, replaceable in tests.
var (
	newOpenCV = func() (ports.VideoBackend, error) {
		b, err := cvvideo.New()
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	newFFmpeg = func(path string) (ports.VideoBackend, error) {
		b, err := ffvideo.New(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
)

// New returns the backend selected by opts.
func New(opts Options) (ports.VideoBackend, error) {
	switch opts.Kind {
	case KindOpenCV:
		return newOpenCV()

	case KindFFmpeg:
		return newFFmpeg(opts.FFmpegPath)

	case KindAuto, "":
		cv, cvErr := newOpenCV()
		if cvErr == nil {
			return cv, nil
		}
		ff, ffErr := newFFmpeg(opts.FFmpegPath)
		if ffErr == nil {
			return ff, nil
		}
		return nil, fmt.Errorf("%w: opencv: %v; ffmpeg: %v", ErrNoBackendAvailable, cvErr, ffErr)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Kind)
	}
}
