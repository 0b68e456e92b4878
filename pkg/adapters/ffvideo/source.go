package ffvideo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/roiscope/pkg/ports"
)

// Source decodes a video file to RGBA frames with an ffmpeg child process.
// Seeking restarts the process at the target time.
type Source struct {
	ffmpegPath string
	info       ports.SourceInfo

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	stderr   bytes.Buffer
	cancel   context.CancelFunc
	start    int // Frame index the next process starts at
	running  bool
	released bool
}

// OpenSource probes path and prepares to decode it from the first frame.
// The MP4 probe is tried first; other containers are identified from the
// ffmpeg banner.
func OpenSource(ffmpegPath, path string) (*Source, error) {
	info, err := Probe(path)
	if err != nil || info.Width == 0 || info.FPS == 0 {
		banner, berr := identify(ffmpegPath, path)
		if berr != nil {
			return nil, berr
		}
		info = banner
	}
	info.Path = path

	return &Source{ffmpegPath: ffmpegPath, info: info}, nil
}

// identify runs "ffmpeg -i path" and parses the stream banner.
func identify(ffmpegPath, path string) (ports.SourceInfo, error) {
	cmd := exec.Command(ffmpegPath, "-hide_banner", "-i", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// ffmpeg exits non-zero when no output is given; the banner is still printed.
	_ = cmd.Run()

	info, ok := parseStreamInfo(stderr.String())
	if !ok {
		msg := strings.TrimSpace(stderr.String())
		return ports.SourceInfo{}, fmt.Errorf("cannot open %s: %s", path, lastLine(msg))
	}
	return info, nil
}

// Info returns the stream properties.
func (s *Source) Info() ports.SourceInfo {
	return s.info
}

// Read returns the next frame, starting the decoder if needed.
func (s *Source) Read() (*image.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, false
	}
	if !s.running {
		if err := s.startLocked(); err != nil {
			return nil, false
		}
	}

	frame := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	if _, err := io.ReadFull(s.stdout, frame.Pix); err != nil {
		s.stopLocked()
		// Stay at end of stream until the next Seek.
		s.start = -1
		return nil, false
	}
	return frame, true
}

// Seek makes the next Read return frame index.
func (s *Source) Seek(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return fmt.Errorf("seek on released source")
	}
	if index < 0 {
		index = 0
	}
	s.stopLocked()
	s.start = index
	return nil
}

// Release stops the decoder. It is safe to call more than once.
func (s *Source) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.released = true
	return nil
}

func (s *Source) startLocked() error {
	if s.start < 0 {
		return io.EOF
	}

	args := []string{"-v", "error"}
	if s.start > 0 && s.info.FPS > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.6f", float64(s.start)/s.info.FPS))
	}
	args = append(args,
		"-i", s.info.Path,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", s.info.Width, s.info.Height),
		"pipe:1",
	)

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	s.running = true
	s.cancel = cancel
	return nil
}

func (s *Source) stopLocked() {
	if !s.running {
		return
	}
	s.cancel()
	_ = s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
	s.running = false
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}

var _ ports.VideoSource = (*Source)(nil)
