// Package session implements the interactive player: playback, pause and
// seek, drag selection, display mode and bin count, and live recording of
// the averaged result frames. Every user action is a method; the views it
// produces are pushed to a ports.Display.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/user/roiscope/pkg/histogram"
	"github.com/user/roiscope/pkg/overlay"
	"github.com/user/roiscope/pkg/pipeline"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

var (
	// ErrNoSource is returned by actions that need an open video.
	ErrNoSource = errors.New("session: no video open")

	// ErrNotPaused is returned when a selection drag starts during playback.
	ErrNotPaused = errors.New("session: selection requires pause")

	// ErrRecording is returned when a recording is already running.
	ErrRecording = errors.New("session: already recording")

	// ErrReadFrame is returned when a seek lands on a frame that cannot be
	// decoded.
	ErrReadFrame = errors.New("session: frame could not be read")
)

// Options configures a Player.
type Options struct {
	Mode         roi.Channel
	Bins         int
	OutlineColor color.Color
	OutlineWidth float64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Mode:         roi.All,
		Bins:         histogram.DefaultBins,
		OutlineColor: overlay.DefaultOutline,
		OutlineWidth: overlay.DefaultWidth,
	}
}

// Player holds the playback state of one video.
type Player struct {
	mu sync.Mutex

	backend   ports.VideoBackend
	analyzer  pipeline.Stage[pipeline.AnalyzeInput, pipeline.AnalyzeResult]
	annotator *overlay.Annotator
	display   ports.Display
	logger    ports.Logger
	opts      Options

	src    ports.VideoSource
	info   ports.SourceInfo
	paused bool
	next   int // index of the frame the next Read returns
	frame  *image.RGBA

	selection *roi.Rect
	drag      *roi.Rect
	mode      roi.Channel
	bins      int

	recorder   ports.VideoSink
	recordPath string
	recorded   int

	last    pipeline.AnalyzeResult
	hasLast bool
}

// New creates a Player.
func New(
	backend ports.VideoBackend,
	analyzer pipeline.Stage[pipeline.AnalyzeInput, pipeline.AnalyzeResult],
	annotator *overlay.Annotator,
	display ports.Display,
	logger ports.Logger,
	opts Options,
) *Player {
	if !histogram.ValidBins(opts.Bins) {
		opts.Bins = histogram.DefaultBins
	}
	if opts.OutlineColor == nil {
		opts.OutlineColor = overlay.DefaultOutline
	}
	if opts.OutlineWidth <= 0 {
		opts.OutlineWidth = overlay.DefaultWidth
	}
	if !opts.Mode.Valid() {
		opts.Mode = roi.All
	}
	return &Player{
		backend:   backend,
		analyzer:  analyzer,
		annotator: annotator,
		display:   display,
		logger:    logger.WithComponent("session"),
		opts:      opts,
		mode:      opts.Mode,
		bins:      opts.Bins,
	}
}

// Open replaces the current video. On failure the previous video, if any,
// stays open and untouched.
func (p *Player) Open(ctx context.Context, path string) error {
	src, err := p.backend.OpenSource(path)
	if err != nil {
		p.logger.Error("Cannot open %s: %v", path, err)
		return fmt.Errorf("open %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.stopRecordingLocked(); err != nil {
		p.logger.Warn("%v", err)
	}
	if p.src != nil {
		if err := p.src.Release(); err != nil {
			p.logger.Warn("Release previous video: %v", err)
		}
	}

	p.src = src
	p.info = src.Info()
	p.paused = false
	p.next = 0
	p.frame = nil
	p.selection = nil
	p.drag = nil
	p.last = pipeline.AnalyzeResult{}
	p.hasLast = false

	p.logger.Info("Opened %s (%dx%d, %.2f fps, %d frames)", path, p.info.Width, p.info.Height, p.info.FPS, p.info.FrameCount)
	return nil
}

// Tick advances playback by one frame. It does nothing while paused or
// without a video and reports whether a frame was shown. At the end of the
// stream the video is rewound and a running recording is finished.
func (p *Player) Tick(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.src == nil || p.paused {
		return false, nil
	}

	frame, ok := p.src.Read()
	if !ok {
		p.logger.Debug("End of video at frame %d, rewinding", p.next)
		if err := p.src.Seek(0); err != nil {
			p.logger.Warn("Rewind failed: %v", err)
		}
		p.next = 0
		if err := p.stopRecordingLocked(); err != nil {
			p.logger.Warn("%v", err)
		}
		return false, nil
	}
	p.next++
	p.frame = frame

	if err := p.refreshLocked(ctx); err != nil {
		return false, err
	}
	if p.recorder != nil && p.last.Selected {
		if err := p.recorder.Write(p.last.Result); err != nil {
			p.logger.Warn("Recording write failed: %v", err)
		} else {
			p.recorded++
		}
	}
	return true, nil
}

// Run ticks at the video frame rate until ctx is done. With stopAtEnd it
// also returns after the last frame.
func (p *Player) Run(ctx context.Context, stopAtEnd bool) error {
	info, ok := p.Info()
	if !ok {
		return ErrNoSource
	}
	fps := info.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		shown, err := p.Tick(ctx)
		if err != nil {
			return err
		}
		if !shown && stopAtEnd && !p.Paused() {
			return nil
		}
	}
}

// TogglePause flips between playing and paused and returns the new state.
func (p *Player) TogglePause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = !p.paused
	p.drag = nil
	return p.paused
}

// SetPaused pauses or resumes playback.
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
	p.drag = nil
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Seek moves to frame index. While paused the frame is read and shown
// immediately; during playback the next Tick shows it.
func (p *Player) Seek(ctx context.Context, index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.src == nil {
		return ErrNoSource
	}
	if index < 0 {
		index = 0
	}
	if p.info.FrameCount > 0 && index >= p.info.FrameCount {
		index = p.info.FrameCount - 1
	}
	if err := p.src.Seek(index); err != nil {
		return fmt.Errorf("seek to %d: %w", index, err)
	}
	p.next = index
	if !p.paused {
		return nil
	}

	frame, ok := p.src.Read()
	if !ok {
		return fmt.Errorf("frame %d: %w", index, ErrReadFrame)
	}
	p.next++
	p.frame = frame
	return p.refreshLocked(ctx)
}

// BeginDrag starts a selection at pt. Selection is only possible while
// paused.
func (p *Player) BeginDrag(pt image.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		return ErrNotPaused
	}
	p.drag = &roi.Rect{Start: pt, End: pt}
	return nil
}

// DragTo moves the free corner of the selection and shows an outline
// preview on the main view.
func (p *Player) DragTo(ctx context.Context, pt image.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		return ErrNotPaused
	}
	if p.drag == nil {
		return nil
	}
	p.drag.End = pt
	if p.frame == nil {
		return nil
	}

	base := p.frame
	views := ports.ViewSet{}
	if p.hasLast {
		base = p.last.Working
		for k, v := range p.last.Views {
			views[k] = v
		}
	}
	views[ports.ViewMain] = p.annotator.Outline(base, *p.drag, p.opts.OutlineColor, p.opts.OutlineWidth)
	p.present(views)
	return nil
}

// EndDrag finishes the drag at pt and makes it the selection.
func (p *Player) EndDrag(ctx context.Context, pt image.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		return ErrNotPaused
	}
	if p.drag == nil {
		return nil
	}
	sel := roi.Rect{Start: p.drag.Start, End: pt}
	p.drag = nil
	p.selection = &sel
	p.logger.Debug("Selected %s", sel)
	return p.refreshLocked(ctx)
}

// Select sets the selection directly.
func (p *Player) Select(ctx context.Context, r roi.Rect) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection = &r
	return p.refreshLocked(ctx)
}

// ClearSelection removes the selection.
func (p *Player) ClearSelection(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection = nil
	return p.refreshLocked(ctx)
}

// Selection returns the current selection.
func (p *Player) Selection() (roi.Rect, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selection == nil {
		return roi.Rect{}, false
	}
	return *p.selection, true
}

// SetMode changes the display mode and refreshes the views.
func (p *Player) SetMode(ctx context.Context, ch roi.Channel) error {
	if !ch.Valid() {
		return fmt.Errorf("invalid mode %v", ch)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ch
	return p.refreshLocked(ctx)
}

// Mode returns the current display mode.
func (p *Player) Mode() roi.Channel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetBins changes the histogram bin count and refreshes the views.
func (p *Player) SetBins(ctx context.Context, n int) error {
	if !histogram.ValidBins(n) {
		return fmt.Errorf("%w: %d", histogram.ErrBinCount, n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bins = n
	return p.refreshLocked(ctx)
}

// Bins returns the current histogram bin count.
func (p *Player) Bins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bins
}

// StartRecording writes every subsequent result frame to path until
// StopRecording or the end of the video. Frames are written only while a
// selection exists.
func (p *Player) StartRecording(path, codec string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.src == nil {
		return ErrNoSource
	}
	if p.recorder != nil {
		return ErrRecording
	}
	if codec == "" {
		codec = pipeline.DefaultCodec
	}
	sink, err := p.backend.OpenSink(path, ports.SinkOptions{
		Codec:  codec,
		FPS:    p.info.FPS,
		Width:  p.info.Width,
		Height: p.info.Height,
	})
	if err != nil {
		return fmt.Errorf("open recording %s: %w", path, err)
	}
	p.recorder = sink
	p.recordPath = path
	p.recorded = 0
	p.logger.Info("Recording to %s", path)
	return nil
}

// StopRecording finishes a running recording. It is a no-op otherwise.
func (p *Player) StopRecording() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopRecordingLocked()
}

// Recording reports whether a recording is running.
func (p *Player) Recording() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recorder != nil
}

func (p *Player) stopRecordingLocked() error {
	if p.recorder == nil {
		return nil
	}
	err := p.recorder.Release()
	p.logger.Info("Recording saved to %s (%d frames)", p.recordPath, p.recorded)
	p.recorder = nil
	p.recordPath = ""
	if err != nil {
		return fmt.Errorf("finish recording: %w", err)
	}
	return nil
}

// Last returns the most recent analysis.
func (p *Player) Last() (pipeline.AnalyzeResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.hasLast
}

// Info returns the properties of the open video.
func (p *Player) Info() (ports.SourceInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info, p.src != nil
}

// Position returns the index of the frame on screen.
func (p *Player) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next == 0 {
		return 0
	}
	return p.next - 1
}

// Close finishes a recording and releases the video.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	errRec := p.stopRecordingLocked()
	var errSrc error
	if p.src != nil {
		errSrc = p.src.Release()
		p.src = nil
	}
	return errors.Join(errRec, errSrc)
}

// refreshLocked re-analyzes the current frame and presents the views.
func (p *Player) refreshLocked(ctx context.Context) error {
	if p.frame == nil {
		return nil
	}
	result, err := p.analyzer.Execute(ctx, pipeline.AnalyzeInput{
		Frame:     p.frame,
		Selection: p.selection,
		Mode:      p.mode,
		Bins:      p.bins,
	})
	if err != nil {
		return fmt.Errorf("analyze frame %d: %w", p.next-1, err)
	}
	p.last = result
	p.hasLast = true
	p.present(result.Views)
	return nil
}

func (p *Player) present(views ports.ViewSet) {
	if p.display == nil {
		return
	}
	if err := p.display.Present(views); err != nil {
		p.logger.Warn("Display failed: %v", err)
	}
}
