package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/roiscope/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Canvases it creates are real RGBA buffers that record drawing calls.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Canvases created so far, in order
	Canvases []*Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	if bg != nil {
		draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Texts returns every text drawn on any canvas, in order.
func (m *Renderer) Texts() []TextCall {
	var out []TextCall
	for _, c := range m.Canvases {
		out = append(out, c.TextCalls...)
	}
	return out
}

var _ ports.Renderer = (*Renderer)(nil)

// TextCall records a call to Canvas.DrawText.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// RectCall records a call to Canvas.DrawRectStroke.
type RectCall struct {
	X, Y, W, H int
	Color      color.Color
	Width      float64
}

// Canvas is a mock implementation of ports.Canvas.
// DrawImage really copies pixels; text and strokes are only recorded.
type Canvas struct {
	img *image.RGBA

	TextCalls []TextCall
	RectCalls []RectCall
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	r := img.Bounds().Sub(img.Bounds().Min).Add(image.Pt(x, y))
	draw.Draw(m.img, r, img, img.Bounds().Min, draw.Src)
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.RectCalls = append(m.RectCalls, RectCall{X: x, Y: y, W: w, H: h, Color: c, Width: strokeWidth})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.TextCalls = append(m.TextCalls, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
