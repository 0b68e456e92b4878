package roi

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func filledFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// gradientFrame gives every pixel a distinct value so copies can be checked.
func gradientFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestExtract_DragDirectionInvariant(t *testing.T) {
	frame := gradientFrame(100, 80)

	tests := []struct {
		name string
		rect Rect
	}{
		{"top-left to bottom-right", NewRect(10, 20, 40, 50)},
		{"bottom-right to top-left", NewRect(40, 50, 10, 20)},
		{"top-right to bottom-left", NewRect(40, 20, 10, 50)},
		{"bottom-left to top-right", NewRect(10, 50, 40, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(frame, tt.rect)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Bounds().Dx() != 30 || got.Bounds().Dy() != 30 {
				t.Errorf("expected 30x30, got %dx%d", got.Bounds().Dx(), got.Bounds().Dy())
			}
			if c := got.RGBAAt(0, 0); c.R != 10 || c.G != 20 {
				t.Errorf("expected top-left pixel from (10,20), got %v", c)
			}
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	frame := gradientFrame(50, 50)

	if _, err := Extract(nil, NewRect(0, 0, 10, 10)); !errors.Is(err, ErrNilFrame) {
		t.Errorf("nil frame: expected ErrNilFrame, got %v", err)
	}
	if _, err := Extract(frame, NewRect(10, 10, 10, 30)); !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("zero width: expected ErrEmptyRegion, got %v", err)
	}
	if _, err := Extract(frame, NewRect(60, 60, 90, 90)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("outside: expected ErrOutOfBounds, got %v", err)
	}
}

func TestExtract_ClampsPartialOverlap(t *testing.T) {
	frame := gradientFrame(50, 40)

	got, err := Extract(frame, NewRect(-10, 30, 20, 70))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Errorf("expected clamped 20x10, got %v", got.Bounds())
	}
}

func TestExtract_DoesNotAliasFrame(t *testing.T) {
	frame := gradientFrame(20, 20)
	got, err := Extract(frame, NewRect(0, 0, 5, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.SetRGBA(0, 0, color.RGBA{R: 99, A: 255})
	if frame.RGBAAt(0, 0).R == 99 {
		t.Error("extract must return a copy")
	}
}

func TestComputeMeans_Uniform(t *testing.T) {
	for _, v := range []uint8{0, 1, 127, 200, 255} {
		roi := filledFrame(7, 3, color.RGBA{R: v, G: v, B: v, A: 255})
		m := ComputeMeans(roi)
		if m.Blue != v || m.Green != v || m.Red != v {
			t.Errorf("fill %d: expected (%d,%d,%d), got %+v", v, v, v, v, m)
		}
	}
}

func TestComputeMeans_Truncates(t *testing.T) {
	roi := image.NewRGBA(image.Rect(0, 0, 2, 1))
	roi.SetRGBA(0, 0, color.RGBA{R: 10, G: 0, B: 255, A: 255})
	roi.SetRGBA(1, 0, color.RGBA{R: 11, G: 1, B: 254, A: 255})

	m := ComputeMeans(roi)
	if m.Red != 10 || m.Green != 0 || m.Blue != 254 {
		t.Errorf("expected (B254,G0,R10), got %+v", m)
	}
}

func TestComputeMeans_NilAndEmpty(t *testing.T) {
	if m := ComputeMeans(nil); m != (Means{}) {
		t.Errorf("nil roi: expected zero means, got %+v", m)
	}
	if m := ComputeMeans(image.NewRGBA(image.Rect(0, 0, 0, 0))); m != (Means{}) {
		t.Errorf("empty roi: expected zero means, got %+v", m)
	}
}

func TestCountNonZero(t *testing.T) {
	roi := image.NewRGBA(image.Rect(0, 0, 3, 1))
	roi.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	roi.SetRGBA(1, 0, color.RGBA{G: 5, B: 5, A: 255})
	roi.SetRGBA(2, 0, color.RGBA{A: 255})

	c := CountNonZero(roi)
	if c.Red != 1 || c.Green != 1 || c.Blue != 1 {
		t.Errorf("expected 1/1/1, got %+v", c)
	}
	if c := CountNonZero(nil); c != (Counts{}) {
		t.Errorf("nil roi: expected zero counts, got %+v", c)
	}
}

func TestBuildSwatch(t *testing.T) {
	roi := gradientFrame(6, 4)
	means := Means{Blue: 30, Green: 20, Red: 10}

	sw := BuildSwatch(roi, means)
	if sw.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Fatalf("expected 6x4 swatch, got %v", sw.Bounds())
	}
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if got := sw.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
	if BuildSwatch(nil, means) != nil {
		t.Error("nil roi should give a nil swatch")
	}
}

func TestCompositeSwatch_OnlyRegionChanges(t *testing.T) {
	frame := gradientFrame(40, 30)
	r := NewRect(25, 20, 5, 10)
	want := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	sw := filledFrame(20, 10, want)

	out := CompositeSwatch(frame, r, sw)
	inside := r.Bounds()
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			got := out.RGBAAt(x, y)
			if image.Pt(x, y).In(inside) {
				if got != want {
					t.Fatalf("inside (%d,%d): expected %v, got %v", x, y, want, got)
				}
			} else if got != frame.RGBAAt(x, y) {
				t.Fatalf("outside (%d,%d): changed from %v to %v", x, y, frame.RGBAAt(x, y), got)
			}
		}
	}
	if frame.RGBAAt(10, 15) == want {
		t.Error("input frame must not be modified")
	}
}

func TestIsolate(t *testing.T) {
	roi := filledFrame(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	tests := []struct {
		ch   Channel
		want color.RGBA
	}{
		{Blue, color.RGBA{B: 30, A: 255}},
		{Green, color.RGBA{G: 20, A: 255}},
		{Red, color.RGBA{R: 10, A: 255}},
		{All, color.RGBA{R: 10, G: 20, B: 30, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.ch.String(), func(t *testing.T) {
			once := Isolate(roi, tt.ch)
			if got := once.RGBAAt(1, 1); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			twice := Isolate(once, tt.ch)
			if got := twice.RGBAAt(1, 1); got != tt.want {
				t.Errorf("isolate is not idempotent: %v", got)
			}
		})
	}
	if roi.RGBAAt(0, 0).R != 10 {
		t.Error("input roi must not be modified")
	}
}

func TestAverageRegion(t *testing.T) {
	frame := filledFrame(20, 20, color.RGBA{R: 100, A: 255})
	frame.SetRGBA(5, 5, color.RGBA{R: 200, A: 255})

	out, ok := AverageRegion(frame, NewRect(5, 5, 7, 6))
	if !ok {
		t.Fatal("expected region to be applied")
	}
	if got := out.RGBAAt(5, 5).R; got != 150 {
		t.Errorf("expected averaged red 150, got %d", got)
	}
	if got := out.RGBAAt(0, 0).R; got != 100 {
		t.Errorf("outside pixel changed: %d", got)
	}

	out, ok = AverageRegion(frame, NewRect(3, 3, 3, 3))
	if ok {
		t.Error("empty selection should not be applied")
	}
	if out.RGBAAt(5, 5).R != 200 {
		t.Error("frame should be unchanged when nothing is applied")
	}
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect("40, 50,10,20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "10,20,40,50" {
		t.Errorf("expected normalized 10,20,40,50, got %s", r.String())
	}
	for _, bad := range []string{"", "1,2,3", "a,b,c,d"} {
		if _, err := ParseRect(bad); err == nil {
			t.Errorf("ParseRect(%q): expected error", bad)
		}
	}
}

func TestParseChannel(t *testing.T) {
	tests := map[string]Channel{
		"all": All, "": All, "0": All,
		"Blue": Blue, "b": Blue, "1": Blue,
		"green": Green, "2": Green,
		"RED": Red, "3": Red,
	}
	for in, want := range tests {
		got, err := ParseChannel(in)
		if err != nil || got != want {
			t.Errorf("ParseChannel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseChannel("alpha"); err == nil {
		t.Error("expected error for unknown channel")
	}
}
