package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/roiscope/pkg/mocks"
	"github.com/user/roiscope/pkg/roi"
)

func TestCountLines(t *testing.T) {
	lines := CountLines(roi.Counts{Blue: 5, Green: 6, Red: 7})

	want := []struct {
		text  string
		y     int
		color color.RGBA
	}{
		{"B nonZero = 5", 30, color.RGBA{B: 255, A: 255}},
		{"G nonZero = 6", 50, color.RGBA{G: 255, A: 255}},
		{"R nonZero = 7", 70, color.RGBA{R: 255, A: 255}},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		l := lines[i]
		if l.Text != w.text || l.X != 10 || l.Y != w.y || l.Color != w.color {
			t.Errorf("line %d = %+v, want %q at (10,%d) in %v", i, l, w.text, w.y, w.color)
		}
	}
}

func TestBinLines(t *testing.T) {
	lines := BinLines([]string{"0-127: 3 px", "128-255: 1 px"}, roi.Green)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Y != 90 || lines[1].Y != 110 {
		t.Errorf("unexpected baselines %d, %d", lines[0].Y, lines[1].Y)
	}
	if lines[1].Color != roi.Green.Color() {
		t.Errorf("expected green text, got %v", lines[1].Color)
	}
}

func TestAnnotate_DrawsOnCopy(t *testing.T) {
	renderer := &mocks.Renderer{}
	a := NewAnnotator(renderer, "", 0)

	base := image.NewRGBA(image.Rect(0, 0, 40, 30))
	base.SetRGBA(3, 4, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	out := a.Annotate(base, CountLines(roi.Counts{Blue: 1}))
	if out == base {
		t.Fatal("annotate must return a new frame")
	}
	if out.Bounds() != base.Bounds() {
		t.Errorf("bounds changed: %v", out.Bounds())
	}
	if out.RGBAAt(3, 4) != base.RGBAAt(3, 4) {
		t.Errorf("base pixels not carried over")
	}

	texts := renderer.Texts()
	if len(texts) != 3 {
		t.Fatalf("expected 3 texts drawn, got %d", len(texts))
	}
	if texts[0].Text != "B nonZero = 1" || texts[0].Style.FontSize != 13 {
		t.Errorf("unexpected first text %+v", texts[0])
	}
}

func TestAnnotate_NoLines(t *testing.T) {
	renderer := &mocks.Renderer{}
	a := NewAnnotator(renderer, "", 12)

	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out := a.Annotate(base, nil)
	if out == nil || out == base {
		t.Fatal("expected a copy")
	}
	if len(renderer.Canvases) != 0 {
		t.Error("no canvas should be created without lines")
	}
	if a.Annotate(nil, nil) != nil {
		t.Error("nil base should give nil")
	}
}

func TestOutline(t *testing.T) {
	renderer := &mocks.Renderer{}
	a := NewAnnotator(renderer, "", 0)

	base := image.NewRGBA(image.Rect(0, 0, 50, 50))
	out := a.Outline(base, roi.NewRect(30, 40, 10, 20), DefaultOutline, 0)
	if out == nil {
		t.Fatal("expected frame")
	}

	if len(renderer.Canvases) != 1 || len(renderer.Canvases[0].RectCalls) != 1 {
		t.Fatal("expected one stroked rectangle")
	}
	rc := renderer.Canvases[0].RectCalls[0]
	if rc.X != 10 || rc.Y != 20 || rc.W != 20 || rc.H != 20 || rc.Width != DefaultWidth {
		t.Errorf("unexpected rect %+v", rc)
	}
	if rc.Color != DefaultOutline {
		t.Errorf("expected green outline, got %v", rc.Color)
	}
	if _, _, _, alpha := out.At(0, 0).RGBA(); alpha != 0xffff {
		t.Error("output frame must be opaque")
	}
}
