// Package histogram bins the values of one colour channel of a region into
// equal-width ranges over [0, 256).
package histogram

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/roiscope/pkg/roi"
)

const (
	// MinBins is the smallest accepted bin count.
	MinBins = 1
	// MaxBins is the largest bin count that keeps every bin at least one
	// value wide.
	MaxBins = 256
	// DefaultBins is the bin count used when none is configured.
	DefaultBins = 8
)

// ErrBinCount is returned for a bin count outside [MinBins, MaxBins].
var ErrBinCount = errors.New("histogram: bin count out of range")

// Result is the histogram of one channel.
type Result struct {
	Channel roi.Channel
	Edges   []int    // len(Counts)+1 boundaries, first 0, last 256
	Counts  []int    // pixels per bin
	Lines   []string // human-readable summary, one per bin
}

// ValidBins reports whether n is an accepted bin count.
func ValidBins(n int) bool {
	return n >= MinBins && n <= MaxBins
}

// Edges returns bins+1 integer boundaries evenly spaced over [0, 256].
// Each edge is i*step computed in float64 and truncated, and the last edge
// is always 256.
func Edges(bins int) ([]int, error) {
	if !ValidBins(bins) {
		return nil, fmt.Errorf("%w: %d", ErrBinCount, bins)
	}
	step := 256.0 / float64(bins)
	edges := make([]int, bins+1)
	for i := 0; i < bins; i++ {
		edges[i] = int(float64(i) * step)
	}
	edges[bins] = 256
	return edges, nil
}

// Counts assigns each value to the bin [edges[i], edges[i+1]). The last bin
// also takes its upper edge. Values outside the edges are ignored.
func Counts(data []uint8, edges []int) []int {
	if len(edges) < 2 {
		return nil
	}
	bins := len(edges) - 1
	counts := make([]int, bins)

	var lut [256]int
	for v := range lut {
		lut[v] = -1
	}
	for i := 0; i < bins; i++ {
		lo, hi := edges[i], edges[i+1]
		if i == bins-1 {
			hi++
		}
		for v := max(lo, 0); v < hi && v < 256; v++ {
			lut[v] = i
		}
	}

	for _, v := range data {
		if b := lut[v]; b >= 0 {
			counts[b]++
		}
	}
	return counts
}

// Summary formats one "<lo>-<hi-1>: <n> px" line per bin.
func Summary(edges, counts []int) []string {
	lines := make([]string, 0, len(counts))
	for i, n := range counts {
		if i+1 >= len(edges) {
			break
		}
		lines = append(lines, fmt.Sprintf("%d-%d: %d px", edges[i], edges[i+1]-1, n))
	}
	return lines
}

// ChannelData returns the values of channel ch of every pixel of img in
// row-major order. It returns nil for roi.All or a nil image.
func ChannelData(img *image.RGBA, ch roi.Channel) []uint8 {
	if img == nil {
		return nil
	}
	var off int
	switch ch {
	case roi.Red:
		off = 0
	case roi.Green:
		off = 1
	case roi.Blue:
		off = 2
	default:
		return nil
	}

	b := img.Bounds()
	data := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			data = append(data, img.Pix[i+off])
			i += 4
		}
	}
	return data
}

// Build computes the histogram of channel ch of img. ok is false when ch is
// roi.All, in which case no histogram is shown.
func Build(img *image.RGBA, ch roi.Channel, bins int) (Result, bool, error) {
	edges, err := Edges(bins)
	if err != nil {
		return Result{}, false, err
	}
	if ch == roi.All || !ch.Valid() {
		return Result{}, false, nil
	}
	counts := Counts(ChannelData(img, ch), edges)
	return Result{
		Channel: ch,
		Edges:   edges,
		Counts:  counts,
		Lines:   Summary(edges, counts),
	}, true, nil
}

// Total returns the sum of all bin counts.
func (r Result) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}
