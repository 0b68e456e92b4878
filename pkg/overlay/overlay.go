// Package overlay burns analysis text and selection outlines into frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

// Text layout, in pixels from the top-left corner of the frame.
const (
	TextX        = 10
	CountsTop    = 30
	BinsTop      = 90
	LineSpacing  = 20
	DefaultWidth = 2
)

// DefaultOutline is the colour of the drag preview rectangle.
var DefaultOutline = color.RGBA{G: 255, A: 255}

// Line is one line of text placed at a baseline position.
type Line struct {
	Text  string
	X, Y  int
	Color color.RGBA
}

// CountLines returns the non-zero count lines for the blue, green and red
// channels, in that order, each in its channel colour.
func CountLines(c roi.Counts) []Line {
	values := map[roi.Channel]int{roi.Blue: c.Blue, roi.Green: c.Green, roi.Red: c.Red}
	lines := make([]Line, 0, len(roi.Channels))
	for i, ch := range roi.Channels {
		lines = append(lines, Line{
			Text:  fmt.Sprintf("%s nonZero = %d", channelLetter(ch), values[ch]),
			X:     TextX,
			Y:     CountsTop + i*LineSpacing,
			Color: ch.Color(),
		})
	}
	return lines
}

// BinLines places the histogram summary below the count lines.
func BinLines(summary []string, ch roi.Channel) []Line {
	lines := make([]Line, 0, len(summary))
	for i, s := range summary {
		lines = append(lines, Line{
			Text:  s,
			X:     TextX,
			Y:     BinsTop + i*LineSpacing,
			Color: ch.Color(),
		})
	}
	return lines
}

func channelLetter(ch roi.Channel) string {
	switch ch {
	case roi.Blue:
		return "B"
	case roi.Green:
		return "G"
	case roi.Red:
		return "R"
	default:
		return "?"
	}
}

// Annotator draws lines and outlines through a ports.Renderer.
type Annotator struct {
	renderer ports.Renderer
	fontPath string
	fontSize float64
}

// NewAnnotator creates an Annotator. An empty fontPath selects the
// renderer's built-in face.
func NewAnnotator(renderer ports.Renderer, fontPath string, fontSize float64) *Annotator {
	if fontSize <= 0 {
		fontSize = 13
	}
	return &Annotator{renderer: renderer, fontPath: fontPath, fontSize: fontSize}
}

// Annotate returns a copy of base with lines drawn on it. base itself is
// never modified, so annotating the same base twice gives the same result.
func (a *Annotator) Annotate(base *image.RGBA, lines []Line) *image.RGBA {
	if base == nil {
		return nil
	}
	if len(lines) == 0 {
		return roi.Clone(base)
	}
	canvas := a.canvasFrom(base)
	for _, l := range lines {
		canvas.DrawText(l.Text, l.X, l.Y, ports.TextStyle{
			FontSize: a.fontSize,
			FontPath: a.fontPath,
			Color:    l.Color,
		})
	}
	return toFrame(canvas.ToImage(), base.Bounds())
}

// Outline returns a copy of base with the rectangle r stroked in c.
func (a *Annotator) Outline(base *image.RGBA, r roi.Rect, c color.Color, width float64) *image.RGBA {
	if base == nil {
		return nil
	}
	b := r.Bounds()
	if width <= 0 {
		width = DefaultWidth
	}
	canvas := a.canvasFrom(base)
	canvas.DrawRectStroke(b.Min.X, b.Min.Y, b.Dx(), b.Dy(), c, width)
	return toFrame(canvas.ToImage(), base.Bounds())
}

func (a *Annotator) canvasFrom(base *image.RGBA) ports.Canvas {
	b := base.Bounds()
	canvas := a.renderer.CreateCanvas(b.Dx(), b.Dy(), color.Black)
	canvas.DrawImage(base, 0, 0)
	return canvas
}

// toFrame converts the canvas output to an opaque RGBA frame. Canvases are
// 0-origin, so the result is moved back to the bounds of the original.
func toFrame(img image.Image, bounds image.Rectangle) *image.RGBA {
	out := roi.Clone(img)
	if out.Bounds().Size() == bounds.Size() {
		out.Rect = bounds
	}
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}
