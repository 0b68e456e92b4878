package roi

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Rect is a selection given by the two corners of a drag gesture.
// The corners may come in any order; Bounds normalizes them.
type Rect struct {
	Start image.Point
	End   image.Point
}

// NewRect builds a Rect from start and end corner coordinates.
func NewRect(x1, y1, x2, y2 int) Rect {
	return Rect{Start: image.Pt(x1, y1), End: image.Pt(x2, y2)}
}

// Bounds returns the normalized rectangle with Min < Max on both axes
// (or an empty rectangle when a side has zero length).
func (r Rect) Bounds() image.Rectangle {
	return image.Rectangle{Min: r.Start, Max: r.End}.Canon()
}

// Clamp returns the normalized rectangle intersected with frame.
func (r Rect) Clamp(frame image.Rectangle) image.Rectangle {
	return r.Bounds().Intersect(frame)
}

// Empty reports whether the rectangle has zero width or height.
func (r Rect) Empty() bool {
	return r.Bounds().Empty()
}

// String formats the rectangle as "x1,y1,x2,y2" using normalized corners.
func (r Rect) String() string {
	b := r.Bounds()
	return fmt.Sprintf("%d,%d,%d,%d", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// ParseRect parses "x1,y1,x2,y2". Corners may be given in any order.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("rect %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = n
	}
	return NewRect(v[0], v[1], v[2], v[3]), nil
}
