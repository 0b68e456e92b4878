package mocks

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/user/roiscope/pkg/ports"
)

// ErrMockOpen is returned by VideoBackend when told to fail.
var ErrMockOpen = errors.New("mock: cannot open")

// SolidFrames returns n frames of size w x h. Frame i has every channel set
// to i*10 so frames can be told apart.
func SolidFrames(n, w, h int) []*image.RGBA {
	frames := make([]*image.RGBA, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		v := uint8(i * 10)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
			}
		}
		frames[i] = img
	}
	return frames
}

// VideoSource is a mock implementation of ports.VideoSource backed by a
// slice of frames.
type VideoSource struct {
	mu       sync.Mutex
	Frames   []*image.RGBA
	FPS      float64
	Path     string
	Codec    string
	FailAt   int // Read fails at this index when >= 0
	HideSize bool

	SeekFunc func(index int) error

	// Recorded calls for verification
	pos          int
	ReadCalls    int
	SeekCalls    []int
	ReleaseCalls int
}

// NewVideoSource creates a source over frames with no read failure.
func NewVideoSource(frames []*image.RGBA, fps float64) *VideoSource {
	return &VideoSource{Frames: frames, FPS: fps, FailAt: -1, Codec: "mock"}
}

func (m *VideoSource) Info() ports.SourceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := ports.SourceInfo{Path: m.Path, FPS: m.FPS, FrameCount: len(m.Frames), Codec: m.Codec}
	if len(m.Frames) > 0 {
		info.Width = m.Frames[0].Bounds().Dx()
		info.Height = m.Frames[0].Bounds().Dy()
	}
	if m.HideSize {
		info.FrameCount = 0
	}
	return info
}

func (m *VideoSource) Read() (*image.RGBA, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.pos >= len(m.Frames) || (m.FailAt >= 0 && m.pos == m.FailAt) {
		return nil, false
	}
	f := m.Frames[m.pos]
	m.pos++
	return f, true
}

func (m *VideoSource) Seek(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeekCalls = append(m.SeekCalls, index)
	if m.SeekFunc != nil {
		if err := m.SeekFunc(index); err != nil {
			return err
		}
	}
	m.pos = index
	return nil
}

func (m *VideoSource) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseCalls++
	return nil
}

// Released reports whether Release was called at least once.
func (m *VideoSource) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReleaseCalls > 0
}

var _ ports.VideoSource = (*VideoSource)(nil)

// VideoSink is a mock implementation of ports.VideoSink that keeps the
// written frames.
type VideoSink struct {
	mu        sync.Mutex
	WriteFunc func(frame *image.RGBA) error

	// Recorded calls for verification
	Path         string
	Options      ports.SinkOptions
	Written      []*image.RGBA
	ReleaseCalls int
}

func (m *VideoSink) Write(frame *image.RGBA) error {
	if m.WriteFunc != nil {
		if err := m.WriteFunc(frame); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Written = append(m.Written, frame)
	return nil
}

func (m *VideoSink) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseCalls++
	return nil
}

// Released reports whether Release was called at least once.
func (m *VideoSink) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReleaseCalls > 0
}

// Count returns the number of frames written.
func (m *VideoSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Written)
}

var _ ports.VideoSink = (*VideoSink)(nil)

// VideoBackend is a mock implementation of ports.VideoBackend.
// Sources are looked up by path; every opened sink is recorded.
type VideoBackend struct {
	mu             sync.Mutex
	Sources        map[string]*VideoSource
	OpenSourceFunc func(path string) (ports.VideoSource, error)
	OpenSinkFunc   func(path string, opts ports.SinkOptions) (ports.VideoSink, error)
	NameValue      string // Defaults to "mock"

	// Recorded calls for verification
	OpenSourceCalls []string
	Sinks           []*VideoSink
}

// NewVideoBackend creates a backend serving the given sources.
func NewVideoBackend(sources map[string]*VideoSource) *VideoBackend {
	if sources == nil {
		sources = make(map[string]*VideoSource)
	}
	return &VideoBackend{Sources: sources}
}

func (m *VideoBackend) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *VideoBackend) OpenSource(path string) (ports.VideoSource, error) {
	m.mu.Lock()
	m.OpenSourceCalls = append(m.OpenSourceCalls, path)
	m.mu.Unlock()
	if m.OpenSourceFunc != nil {
		return m.OpenSourceFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.Sources[path]
	if !ok {
		return nil, ErrMockOpen
	}
	src.Path = path
	return src, nil
}

func (m *VideoBackend) OpenSink(path string, opts ports.SinkOptions) (ports.VideoSink, error) {
	if m.OpenSinkFunc != nil {
		return m.OpenSinkFunc(path, opts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sink := &VideoSink{Path: path, Options: opts}
	m.Sinks = append(m.Sinks, sink)
	return sink, nil
}

// LastSink returns the most recently opened sink, or nil.
func (m *VideoBackend) LastSink() *VideoSink {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sinks) == 0 {
		return nil
	}
	return m.Sinks[len(m.Sinks)-1]
}

var _ ports.VideoBackend = (*VideoBackend)(nil)
