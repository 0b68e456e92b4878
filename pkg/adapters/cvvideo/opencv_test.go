//go:build !nocv

package cvvideo

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/roiscope/pkg/ports"
)

func solidFrame(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 255
	}
	return img
}

func TestBackend_RoundTrip(t *testing.T) {
	backend, err := New()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "clip.avi")

	sink, err := backend.OpenSink(path, ports.SinkOptions{Codec: "MJPG", FPS: 10, Width: 64, Height: 48})
	if err != nil {
		t.Skipf("MJPG writer not available: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := sink.Write(solidFrame(64, 48, 200, 100, 50)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := sink.Write(solidFrame(10, 10, 0, 0, 0)); !errors.Is(err, ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	src, err := backend.OpenSource(path)
	if err != nil {
		t.Fatalf("OpenSource failed: %v", err)
	}
	defer src.Release()

	info := src.Info()
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("unexpected size %dx%d", info.Width, info.Height)
	}

	frame, ok := src.Read()
	if !ok {
		t.Fatal("expected a frame")
	}
	if r := frame.Pix[0]; r < 180 || r > 220 {
		t.Errorf("red channel drifted too far: %d", r)
	}
	if frame.Pix[3] != 255 {
		t.Error("frames must be opaque")
	}

	read := 1
	for {
		if _, ok := src.Read(); !ok {
			break
		}
		read++
	}
	if read != 4 {
		t.Errorf("expected 4 frames, read %d", read)
	}

	if err := src.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	if _, ok := src.Read(); ok {
		t.Error("Read after Release must fail")
	}
}

func TestBackend_OpenSourceMissing(t *testing.T) {
	backend, _ := New()
	if _, err := backend.OpenSource(filepath.Join(t.TempDir(), "missing.mp4")); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}
