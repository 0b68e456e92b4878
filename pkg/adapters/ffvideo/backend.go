package ffvideo

import "github.com/user/roiscope/pkg/ports"

// Backend implements ports.VideoBackend with ffmpeg.
type Backend struct {
	ffmpegPath string
}

// New locates ffmpeg (see FindFFmpeg) and returns a backend using it.
func New(ffmpegPath string) (*Backend, error) {
	path, err := FindFFmpeg(ffmpegPath)
	if err != nil {
		return nil, err
	}
	return &Backend{ffmpegPath: path}, nil
}

// Name returns "ffmpeg".
func (b *Backend) Name() string {
	return "ffmpeg"
}

// Path returns the ffmpeg binary in use.
func (b *Backend) Path() string {
	return b.ffmpegPath
}

func (b *Backend) OpenSource(path string) (ports.VideoSource, error) {
	src, err := OpenSource(b.ffmpegPath, path)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (b *Backend) OpenSink(path string, opts ports.SinkOptions) (ports.VideoSink, error) {
	sink, err := OpenSink(b.ffmpegPath, path, opts)
	if err != nil {
		return nil, err
	}
	return sink, nil
}

var _ ports.VideoBackend = (*Backend)(nil)
