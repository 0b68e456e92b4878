// Package ffvideo reads and writes video through an external ffmpeg process,
// exchanging raw RGBA frames over pipes.
package ffvideo

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/user/roiscope/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffvideo: ffmpeg not found")

	// ErrUnsupportedCodec is returned for a FourCC tag with no ffmpeg encoder mapping.
	ErrUnsupportedCodec = errors.New("ffvideo: unsupported codec")

	// ErrFrameSize is returned when a written frame does not match the sink size.
	ErrFrameSize = errors.New("ffvideo: frame size mismatch")

	// ErrReleased is returned when writing to a released sink.
	ErrReleased = errors.New("ffvideo: sink released")
)

// FindFFmpeg locates ffmpeg.
// Priority: 1) custom, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// codecArgs maps a FourCC tag to ffmpeg encoder arguments.
func codecArgs(fourcc string) ([]string, error) {
	switch strings.ToUpper(fourcc) {
	case "", "XVID":
		return []string{"-c:v", "mpeg4", "-vtag", "xvid", "-q:v", "3"}, nil
	case "MP4V", "FMP4", "DIVX":
		return []string{"-c:v", "mpeg4", "-q:v", "3"}, nil
	case "H264", "X264", "AVC1":
		return []string{"-c:v", "libx264", "-preset", "fast", "-crf", "20", "-pix_fmt", "yuv420p"}, nil
	case "MJPG":
		return []string{"-c:v", "mjpeg", "-q:v", "3"}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, fourcc)
	}
}

var (
	streamSizeRe = regexp.MustCompile(`Video: ([^,\s]+).*?, (\d+)x(\d+)`)
	streamFPSRe  = regexp.MustCompile(`, ([\d.]+) (?:fps|tbr)`)
	durationRe   = regexp.MustCompile(`Duration: (\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)
)

// parseStreamInfo extracts the first video stream from the banner ffmpeg
// prints for "ffmpeg -i <file>". The frame count is estimated from the
// container duration.
func parseStreamInfo(stderr string) (ports.SourceInfo, bool) {
	var info ports.SourceInfo
	for _, line := range strings.Split(stderr, "\n") {
		m := streamSizeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		info.Codec = m[1]
		info.Width, _ = strconv.Atoi(m[2])
		info.Height, _ = strconv.Atoi(m[3])
		if f := streamFPSRe.FindStringSubmatch(line); f != nil {
			info.FPS, _ = strconv.ParseFloat(f[1], 64)
		}
		break
	}
	if info.Width == 0 || info.Height == 0 {
		return info, false
	}

	if d := durationRe.FindStringSubmatch(stderr); d != nil && info.FPS > 0 {
		h, _ := strconv.Atoi(d[1])
		m, _ := strconv.Atoi(d[2])
		s, _ := strconv.ParseFloat(d[3], 64)
		seconds := float64(h*3600+m*60) + s
		info.FrameCount = int(seconds*info.FPS + 0.5)
	}
	return info, true
}
