//go:build nocv

package cvvideo

import "github.com/user/roiscope/pkg/ports"

// New reports that OpenCV support was not compiled in.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

func (b *Backend) OpenSource(path string) (ports.VideoSource, error) {
	return nil, ErrUnavailable
}

func (b *Backend) OpenSink(path string, opts ports.SinkOptions) (ports.VideoSink, error) {
	return nil, ErrUnavailable
}
