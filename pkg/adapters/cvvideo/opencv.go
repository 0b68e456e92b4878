//go:build !nocv

package cvvideo

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"gocv.io/x/gocv"

	"github.com/user/roiscope/pkg/ports"
)

// New returns an OpenCV backend.
func New() (*Backend, error) {
	return &Backend{}, nil
}

func (b *Backend) OpenSource(path string) (ports.VideoSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w %s", ErrOpen, path)
	}

	info := ports.SourceInfo{
		Path:       path,
		Width:      int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(capture.Get(gocv.VideoCaptureFrameHeight)),
		FPS:        capture.Get(gocv.VideoCaptureFPS),
		FrameCount: int(capture.Get(gocv.VideoCaptureFrameCount)),
		Codec:      fourCC(capture.Get(gocv.VideoCaptureFOURCC)),
	}
	return &source{capture: capture, info: info, mat: gocv.NewMat()}, nil
}

func (b *Backend) OpenSink(path string, opts ports.SinkOptions) (ports.VideoSink, error) {
	codec := opts.Codec
	if codec == "" {
		codec = "XVID"
	}
	if len(codec) != 4 {
		return nil, fmt.Errorf("codec %q must be a four-character code", codec)
	}

	writer, err := gocv.VideoWriterFile(path, codec, opts.FPS, opts.Width, opts.Height, true)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("%w %s for writing (codec %s)", ErrOpen, path, codec)
	}
	return &sink{writer: writer, width: opts.Width, height: opts.Height}, nil
}

// source wraps gocv.VideoCapture.
type source struct {
	mu       sync.Mutex
	capture  *gocv.VideoCapture
	mat      gocv.Mat
	info     ports.SourceInfo
	released bool
}

func (s *source) Info() ports.SourceInfo {
	return s.info
}

func (s *source) Read() (*image.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, false
	}
	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, false
	}

	img, err := s.mat.ToImage()
	if err != nil {
		return nil, false
	}
	return toRGBA(img), true
}

func (s *source) Seek(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return fmt.Errorf("seek on released source")
	}
	if index < 0 {
		index = 0
	}
	s.capture.Set(gocv.VideoCapturePosFrames, float64(index))
	return nil
}

func (s *source) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}
	s.released = true
	s.mat.Close()
	return s.capture.Close()
}

// sink wraps gocv.VideoWriter.
type sink struct {
	mu       sync.Mutex
	writer   *gocv.VideoWriter
	width    int
	height   int
	released bool
}

func (s *sink) Write(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return fmt.Errorf("write on released sink")
	}
	b := frame.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), s.width, s.height)
	}

	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	return s.writer.Write(mat)
}

func (s *sink) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}
	s.released = true
	return s.writer.Close()
}

// toRGBA returns img as a 0-origin opaque RGBA frame.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		for i := 3; i < len(rgba.Pix); i += 4 {
			rgba.Pix[i] = 255
		}
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
