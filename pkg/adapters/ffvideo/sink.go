package ffvideo

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"

	"github.com/user/roiscope/pkg/ports"
)

// Sink encodes RGBA frames written to an ffmpeg child process.
type Sink struct {
	path string
	opts ports.SinkOptions

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	frames   int
	released bool
}

// OpenSink starts an ffmpeg process encoding to path.
func OpenSink(ffmpegPath, path string, opts ports.SinkOptions) (*Sink, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %.2f", opts.FPS)
	}
	codec, err := codecArgs(opts.Codec)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", fmt.Sprintf("%.3f", opts.FPS),
		"-i", "pipe:0",
	}
	args = append(args, codec...)
	args = append(args, path)

	s := &Sink{path: path, opts: opts}
	s.cmd = exec.Command(ffmpegPath, args...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	return s, nil
}

// Write appends a frame.
func (s *Sink) Write(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}
	b := frame.Bounds()
	if b.Dx() != s.opts.Width || b.Dy() != s.opts.Height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), s.opts.Width, s.opts.Height)
	}

	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		off := y * frame.Stride
		if _, err := s.stdin.Write(frame.Pix[off : off+rowLen]); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	}
	s.frames++
	return nil
}

// Release closes the input and waits for ffmpeg to finalize the file.
// It is safe to call more than once.
func (s *Sink) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}
	s.released = true

	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, s.stderr.String())
	}
	return nil
}

// Frames returns the number of frames written.
func (s *Sink) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

var _ ports.VideoSink = (*Sink)(nil)
