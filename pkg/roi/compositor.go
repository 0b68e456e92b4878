// Package roi implements region-of-interest extraction and compositing over
// RGBA frames: per-channel non-zero counts and means, flat average swatches,
// channel isolation, and writing a swatch back into a copy of the frame.
//
// Every function returns a new buffer; inputs are never modified. A nil or
// empty ROI is tolerated and yields a zero value or a nil image.
package roi

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

var (
	// ErrNilFrame is returned when no frame is supplied.
	ErrNilFrame = errors.New("roi: nil frame")

	// ErrEmptyRegion is returned when the selection has zero width or height.
	ErrEmptyRegion = errors.New("roi: empty region")

	// ErrOutOfBounds is returned when the selection does not overlap the frame.
	ErrOutOfBounds = errors.New("roi: region outside frame")
)

// Counts holds the number of pixels with a non-zero value per channel.
type Counts struct {
	Blue  int
	Green int
	Red   int
}

// Means holds the truncated per-channel mean of a region.
type Means struct {
	Blue  uint8
	Green uint8
	Red   uint8
}

// RGBA returns the means as an opaque colour.
func (m Means) RGBA() color.RGBA {
	return color.RGBA{R: m.Red, G: m.Green, B: m.Blue, A: 255}
}

// Clone returns a copy of img as *image.RGBA with the same bounds.
func Clone(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Extract copies the selected region out of frame. The selection is
// normalized and clamped to the frame; the copy has its origin at (0,0).
func Extract(frame *image.RGBA, r Rect) (*image.RGBA, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}
	if r.Empty() {
		return nil, ErrEmptyRegion
	}
	b := r.Clamp(frame.Bounds())
	if b.Empty() {
		return nil, ErrOutOfBounds
	}

	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := frame.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+4*w], frame.Pix[src:src+4*w])
	}
	return out, nil
}

// CountNonZero counts, per channel, the pixels whose value is above zero.
func CountNonZero(roi *image.RGBA) Counts {
	var c Counts
	if roi == nil {
		return c
	}
	eachPixel(roi, func(p []uint8) {
		if p[0] > 0 {
			c.Red++
		}
		if p[1] > 0 {
			c.Green++
		}
		if p[2] > 0 {
			c.Blue++
		}
	})
	return c
}

// ComputeMeans returns the per-channel arithmetic mean of roi, truncated
// toward zero.
func ComputeMeans(roi *image.RGBA) Means {
	if roi == nil {
		return Means{}
	}
	n := uint64(roi.Bounds().Dx() * roi.Bounds().Dy())
	if n == 0 {
		return Means{}
	}
	var r, g, b uint64
	eachPixel(roi, func(p []uint8) {
		r += uint64(p[0])
		g += uint64(p[1])
		b += uint64(p[2])
	})
	return Means{Blue: uint8(b / n), Green: uint8(g / n), Red: uint8(r / n)}
}

// BuildSwatch returns a flat patch of the same size as roi filled with means.
func BuildSwatch(roi *image.RGBA, means Means) *image.RGBA {
	if roi == nil {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, roi.Bounds().Dx(), roi.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(means.RGBA()), image.Point{}, draw.Src)
	return out
}

// CompositeSwatch returns a copy of frame with the selected region replaced
// by swatch. Pixels outside the region are left unchanged.
func CompositeSwatch(frame *image.RGBA, r Rect, swatch *image.RGBA) *image.RGBA {
	out := Clone(frame)
	if out == nil || swatch == nil {
		return out
	}
	b := r.Clamp(out.Bounds())
	if b.Empty() {
		return out
	}
	draw.Draw(out, b, swatch, swatch.Bounds().Min, draw.Src)
	return out
}

// Isolate returns a copy of roi with every channel except ch set to zero.
// The result keeps the three-channel layout, so it renders as a tinted
// image. All returns an unmodified copy.
func Isolate(roi *image.RGBA, ch Channel) *image.RGBA {
	out := Clone(roi)
	if out == nil || ch == All {
		return out
	}
	keep := ch.offset()
	eachPixel(out, func(p []uint8) {
		for i := 0; i < 3; i++ {
			if i != keep {
				p[i] = 0
			}
		}
	})
	return out
}

// AverageRegion replaces the selected region of a copy of frame with its
// per-channel average colour. The bool is false, and the copy unchanged,
// when the selection does not yield a region.
func AverageRegion(frame *image.RGBA, r Rect) (*image.RGBA, bool) {
	patch, err := Extract(frame, r)
	if err != nil {
		return Clone(frame), false
	}
	return CompositeSwatch(frame, r, BuildSwatch(patch, ComputeMeans(patch))), true
}

// eachPixel calls fn with the 4-byte RGBA slice of every pixel in img.
func eachPixel(img *image.RGBA, fn func(p []uint8)) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			fn(img.Pix[i : i+4 : i+4])
			i += 4
		}
	}
}
