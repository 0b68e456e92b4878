package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/roiscope/pkg/ports"
)

// Display is a mock implementation of ports.Display.
type Display struct {
	mu          sync.Mutex
	PresentFunc func(views ports.ViewSet) error

	// Recorded calls for verification
	Presented []ports.ViewSet
}

func (m *Display) Present(views ports.ViewSet) error {
	m.mu.Lock()
	m.Presented = append(m.Presented, views)
	m.mu.Unlock()
	if m.PresentFunc != nil {
		return m.PresentFunc(views)
	}
	return nil
}

// Last returns the most recently presented view set, or nil.
func (m *Display) Last() ports.ViewSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Presented) == 0 {
		return nil
	}
	return m.Presented[len(m.Presented)-1]
}

var _ ports.Display = (*Display)(nil)

// Plotter is a mock implementation of ports.Plotter.
type Plotter struct {
	PlotFunc func(plot ports.HistogramPlot) (image.Image, error)

	// Recorded calls for verification
	PlotCalls []ports.HistogramPlot
}

func (m *Plotter) Plot(plot ports.HistogramPlot) (image.Image, error) {
	m.PlotCalls = append(m.PlotCalls, plot)
	if m.PlotFunc != nil {
		return m.PlotFunc(plot)
	}
	return image.NewRGBA(image.Rect(0, 0, 64, 48)), nil
}

var _ ports.Plotter = (*Plotter)(nil)

// Progress is a mock implementation of ports.Progress.
type Progress struct {
	mu sync.Mutex

	// Recorded calls for verification
	Total       int
	Started     bool
	Sets        []int
	FinishCalls int
}

func (m *Progress) Start(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started = true
	m.Total = total
}

func (m *Progress) Set(current int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets = append(m.Sets, current)
}

func (m *Progress) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinishCalls++
}

var _ ports.Progress = (*Progress)(nil)

// Logger is a mock implementation of ports.Logger that keeps formatted
// messages per level.
type Logger struct {
	mu       sync.Mutex
	Messages map[ports.LogLevel][]string
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{Messages: make(map[ports.LogLevel][]string)}
}

func (m *Logger) record(level ports.LogLevel, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages[level] = append(m.Messages[level], fmt.Sprintf(msg, args...))
}

func (m *Logger) Debug(msg string, args ...interface{}) {
	m.record(ports.LevelDebug, msg, args...)
}

func (m *Logger) Info(msg string, args ...interface{}) {
	m.record(ports.LevelInfo, msg, args...)
}

func (m *Logger) Warn(msg string, args ...interface{}) {
	m.record(ports.LevelWarn, msg, args...)
}

func (m *Logger) Error(msg string, args ...interface{}) {
	m.record(ports.LevelError, msg, args...)
}

// WithComponent returns the same logger so all messages land in one place.
func (m *Logger) WithComponent(component string) ports.Logger {
	return m
}

// Count returns the number of messages logged at level.
func (m *Logger) Count(level ports.LogLevel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages[level])
}

var _ ports.Logger = (*Logger)(nil)
