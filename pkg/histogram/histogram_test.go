package histogram

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"reflect"
	"testing"

	"github.com/user/roiscope/pkg/roi"
)

func TestEdges(t *testing.T) {
	tests := []struct {
		bins int
		want []int
	}{
		{1, []int{0, 256}},
		{4, []int{0, 64, 128, 192, 256}},
		{3, []int{0, 85, 170, 256}},
		{8, []int{0, 32, 64, 96, 128, 160, 192, 224, 256}},
	}
	for _, tt := range tests {
		got, err := Edges(tt.bins)
		if err != nil {
			t.Fatalf("Edges(%d): unexpected error: %v", tt.bins, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Edges(%d) = %v, want %v", tt.bins, got, tt.want)
		}
	}
}

func TestEdges_FloatTruncation(t *testing.T) {
	// 49 * (256/98) is just below 128 in float64.
	tests := []struct {
		bins, index, want int
	}{
		{98, 49, 127},
		{196, 98, 127},
		{7, 7, 256},
		{5, 1, 51},
	}
	for _, tt := range tests {
		edges, err := Edges(tt.bins)
		if err != nil {
			t.Fatalf("Edges(%d): %v", tt.bins, err)
		}
		if edges[tt.index] != tt.want {
			t.Errorf("Edges(%d)[%d] = %d, want %d", tt.bins, tt.index, edges[tt.index], tt.want)
		}
	}
}

func TestEdges_StrictlyIncreasing(t *testing.T) {
	for bins := MinBins; bins <= MaxBins; bins++ {
		edges, err := Edges(bins)
		if err != nil {
			t.Fatalf("Edges(%d): %v", bins, err)
		}
		if edges[0] != 0 || edges[len(edges)-1] != 256 {
			t.Fatalf("Edges(%d): bounds %d..%d", bins, edges[0], edges[len(edges)-1])
		}
		for i := 1; i < len(edges); i++ {
			if edges[i] <= edges[i-1] {
				t.Fatalf("Edges(%d): not strictly increasing at %d: %v", bins, i, edges)
			}
		}
	}
}

func TestEdges_OutOfRange(t *testing.T) {
	for _, bins := range []int{0, -1, 257} {
		if _, err := Edges(bins); !errors.Is(err, ErrBinCount) {
			t.Errorf("Edges(%d): expected ErrBinCount, got %v", bins, err)
		}
	}
}

func TestCounts_SmallValues(t *testing.T) {
	edges, _ := Edges(4)
	got := Counts([]uint8{10, 20, 30, 40}, edges)
	if !reflect.DeepEqual(got, []int{4, 0, 0, 0}) {
		t.Errorf("expected [4 0 0 0], got %v", got)
	}
}

func TestCounts_BoundaryValues(t *testing.T) {
	edges, _ := Edges(4)
	got := Counts([]uint8{0, 63, 64, 127, 128, 191, 192, 255}, edges)
	if !reflect.DeepEqual(got, []int{2, 2, 2, 2}) {
		t.Errorf("expected [2 2 2 2], got %v", got)
	}
}

func TestCounts_SumEqualsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]uint8, 5000)
	for i := range data {
		data[i] = uint8(rng.Intn(256))
	}
	for _, bins := range []int{1, 2, 7, 8, 100, 256} {
		edges, _ := Edges(bins)
		sum := 0
		for _, n := range Counts(data, edges) {
			sum += n
		}
		if sum != len(data) {
			t.Errorf("bins=%d: sum %d, want %d", bins, sum, len(data))
		}
	}
}

func TestCounts_Empty(t *testing.T) {
	edges, _ := Edges(8)
	got := Counts(nil, edges)
	if len(got) != 8 {
		t.Fatalf("expected 8 bins, got %d", len(got))
	}
	for i, n := range got {
		if n != 0 {
			t.Errorf("bin %d: expected 0, got %d", i, n)
		}
	}
	if Counts([]uint8{1}, []int{0}) != nil {
		t.Error("expected nil counts for fewer than two edges")
	}
}

func TestSummary(t *testing.T) {
	edges, _ := Edges(4)
	got := Summary(edges, []int{4, 0, 1, 2})
	want := []string{
		"0-63: 4 px",
		"64-127: 0 px",
		"128-191: 1 px",
		"192-255: 2 px",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summary = %v, want %v", got, want)
	}
}

func TestChannelData(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 255})

	if got := ChannelData(img, roi.Blue); !reflect.DeepEqual(got, []uint8{3, 6}) {
		t.Errorf("blue: got %v", got)
	}
	if got := ChannelData(img, roi.Green); !reflect.DeepEqual(got, []uint8{2, 5}) {
		t.Errorf("green: got %v", got)
	}
	if got := ChannelData(img, roi.Red); !reflect.DeepEqual(got, []uint8{1, 4}) {
		t.Errorf("red: got %v", got)
	}
	if got := ChannelData(img, roi.All); got != nil {
		t.Errorf("all: expected nil, got %v", got)
	}
}

func TestBuild(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{10, 20, 30, 40} {
		img.SetRGBA(x, 0, color.RGBA{G: v, A: 255})
	}

	res, ok, err := Build(img, roi.Green, 4)
	if err != nil || !ok {
		t.Fatalf("Build: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(res.Counts, []int{4, 0, 0, 0}) {
		t.Errorf("counts = %v", res.Counts)
	}
	if res.Total() != 4 {
		t.Errorf("total = %d, want 4", res.Total())
	}
	if len(res.Lines) != 4 || res.Lines[0] != "0-63: 4 px" {
		t.Errorf("lines = %v", res.Lines)
	}

	if _, ok, err := Build(img, roi.All, 4); ok || err != nil {
		t.Errorf("all: expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}
	if _, _, err := Build(img, roi.Red, 0); !errors.Is(err, ErrBinCount) {
		t.Errorf("expected ErrBinCount, got %v", err)
	}
}
