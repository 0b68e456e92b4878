package ffvideo

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/roiscope/pkg/ports"
)

func TestCodecArgs(t *testing.T) {
	tests := []struct {
		fourcc  string
		encoder string
		wantErr bool
	}{
		{"XVID", "mpeg4", false},
		{"", "mpeg4", false},
		{"mp4v", "mpeg4", false},
		{"H264", "libx264", false},
		{"MJPG", "mjpeg", false},
		{"WXYZ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.fourcc, func(t *testing.T) {
			args, err := codecArgs(tt.fourcc)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedCodec) {
					t.Errorf("expected ErrUnsupportedCodec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(args) < 2 || args[0] != "-c:v" || args[1] != tt.encoder {
				t.Errorf("unexpected args %v", args)
			}
		})
	}
}

func TestParseStreamInfo(t *testing.T) {
	banner := `Input #0, avi, from 'out.avi':
  Duration: 00:00:02.00, start: 0.000000, bitrate: 1024 kb/s
  Stream #0:0: Video: mpeg4 (Simple Profile) (XVID / 0x44495658), yuv420p, 320x240 [SAR 1:1 DAR 4:3], 1020 kb/s, 25 fps, 25 tbr, 25 tbn
At least one output file must be specified`

	info, ok := parseStreamInfo(banner)
	if !ok {
		t.Fatal("expected stream to be found")
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("unexpected size %dx%d", info.Width, info.Height)
	}
	if info.FPS != 25 || info.FrameCount != 50 || info.Codec != "mpeg4" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestParseStreamInfo_NoVideo(t *testing.T) {
	banner := `Input #0, wav, from 'a.wav':
  Stream #0:0: Audio: pcm_s16le, 44100 Hz, 2 channels`
	if _, ok := parseStreamInfo(banner); ok {
		t.Error("audio-only input must not be accepted")
	}
}

func buildFragmentedMP4(t *testing.T, width, height uint16, fps uint32, frames int) []byte {
	t.Helper()

	timescale := fps * 1000
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")

	trak := init.Moov.Trak
	avc1 := mp4.CreateVisualSampleEntryBox("avc1", width, height, &mp4.PaspBox{HSpacing: 1, VSpacing: 1})
	trak.Mdia.Minf.Stbl.Stsd.AddChild(avc1)
	trak.Tkhd.Width = mp4.Fixed32(uint32(width) << 16)
	trak.Tkhd.Height = mp4.Fixed32(uint32(height) << 16)

	frag, err := mp4.CreateFragment(1, 1)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	dur := timescale / fps
	for i := 0; i < frames; i++ {
		data := []byte{0, 0, 0, 1, 0x65}
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: mp4.SyncSampleFlags,
				Size:  uint32(len(data)),
				Dur:   dur,
			},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProbeReader_Fragmented(t *testing.T) {
	data := buildFragmentedMP4(t, 64, 48, 25, 10)

	info, err := ProbeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("unexpected size %dx%d", info.Width, info.Height)
	}
	if info.FrameCount != 10 {
		t.Errorf("expected 10 frames, got %d", info.FrameCount)
	}
	if info.FPS != 25 {
		t.Errorf("expected 25 fps, got %v", info.FPS)
	}
	if info.Codec != "avc1" {
		t.Errorf("expected avc1, got %q", info.Codec)
	}
}

func TestProbeReader_NotMP4(t *testing.T) {
	if _, err := ProbeReader(bytes.NewReader([]byte("RIFF....AVI LIST"))); err == nil {
		t.Error("expected error for non-MP4 data")
	}
}

func TestFindFFmpeg_CustomMissing(t *testing.T) {
	_, err := FindFFmpeg(filepath.Join(t.TempDir(), "no-ffmpeg"))
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func requireFFmpeg(t *testing.T) *Backend {
	t.Helper()
	b, err := New("")
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	return b
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestBackend_RoundTrip(t *testing.T) {
	b := requireFFmpeg(t)
	path := filepath.Join(t.TempDir(), "clip.avi")

	sink, err := b.OpenSink(path, ports.SinkOptions{Codec: "MJPG", FPS: 10, Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("OpenSink failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := sink.Write(solid(64, 48, color.RGBA{R: uint8(40 * i), G: 128, B: 200, A: 255})); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := sink.Write(solid(32, 32, color.RGBA{A: 255})); !errors.Is(err, ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got %v", err)
	}

	src, err := b.OpenSource(path)
	if err != nil {
		t.Fatalf("OpenSource failed: %v", err)
	}
	defer src.Release()

	info := src.Info()
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("unexpected size %dx%d", info.Width, info.Height)
	}

	read := 0
	for {
		frame, ok := src.Read()
		if !ok {
			break
		}
		if read == 0 {
			g := frame.Pix[1]
			if g < 110 || g > 146 {
				t.Errorf("green channel drifted too far: %d", g)
			}
		}
		read++
	}
	if read != 5 {
		t.Errorf("expected 5 frames, read %d", read)
	}

	if err := src.Seek(0); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if _, ok := src.Read(); !ok {
		t.Error("expected a frame after seeking to the start")
	}
}

func TestBackend_OpenSourceMissing(t *testing.T) {
	b := requireFFmpeg(t)
	if _, err := b.OpenSource(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}
