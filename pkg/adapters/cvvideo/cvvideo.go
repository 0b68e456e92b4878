// Package cvvideo reads and writes video with OpenCV through gocv.
//
// Build with -tags nocv to leave OpenCV out; New then returns ErrUnavailable.
package cvvideo

import (
	"errors"
	"strings"

	"github.com/user/roiscope/pkg/ports"
)

var (
	// ErrUnavailable is returned when the binary was built without OpenCV.
	ErrUnavailable = errors.New("cvvideo: built without OpenCV support")

	// ErrOpen is returned when OpenCV cannot open a file.
	ErrOpen = errors.New("cvvideo: cannot open")

	// ErrFrameSize is returned when a written frame does not match the sink size.
	ErrFrameSize = errors.New("cvvideo: frame size mismatch")
)

// Backend implements ports.VideoBackend with OpenCV.
type Backend struct{}

// Name returns "opencv".
func (b *Backend) Name() string {
	return "opencv"
}

// fourCC decodes the numeric FourCC reported by CAP_PROP_FOURCC.
func fourCC(v float64) string {
	n := uint32(v)
	b := []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	return strings.TrimRight(string(b), "\x00 ")
}

var _ ports.VideoBackend = (*Backend)(nil)
