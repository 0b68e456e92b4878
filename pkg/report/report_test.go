package report

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/user/roiscope/pkg/histogram"
	"github.com/user/roiscope/pkg/mocks"
	"github.com/user/roiscope/pkg/pipeline"
	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
	if summary.Views == nil {
		t.Error("expected views map to be initialized")
	}
}

func TestBuilder(t *testing.T) {
	analysis := pipeline.AnalyzeResult{
		Selected: true,
		Region:   image.Rect(10, 20, 40, 30),
		Counts:   roi.Counts{Blue: 1, Green: 2, Red: 3},
		Means:    roi.Means{Blue: 4, Green: 5, Red: 6},
		Histogram: histogram.Result{
			Channel: roi.Red,
			Edges:   []int{0, 128, 256},
			Counts:  []int{250, 50},
		},
		HasHistogram: true,
	}

	summary := NewBuilder().
		WithVideo(ports.SourceInfo{Path: "clip.mp4", Width: 640, Height: 480, FPS: 30, FrameCount: 90, Codec: "avc1"}, "opencv").
		WithSettings(12, roi.Red, 2).
		WithAnalysis(analysis).
		WithView(ports.ViewMain, "views/main.png").
		WithExport("out.avi", "XVID", pipeline.ExportResult{FramesWritten: 3, TotalFrames: 5, Status: pipeline.StatusTruncated}).
		Build()

	if summary.Video.Path != "clip.mp4" || summary.Video.Backend != "opencv" {
		t.Errorf("unexpected video %+v", summary.Video)
	}
	if summary.Frame != 12 || summary.Mode != "red" || summary.Bins != 2 {
		t.Errorf("unexpected settings %d %s %d", summary.Frame, summary.Mode, summary.Bins)
	}
	if summary.Region != (RegionInfo{X: 10, Y: 20, Width: 30, Height: 10}) {
		t.Errorf("unexpected region %+v", summary.Region)
	}
	if len(summary.Histogram) != 2 || summary.Histogram[1] != (Bin{Lo: 128, Hi: 255, Count: 50}) {
		t.Errorf("unexpected histogram %+v", summary.Histogram)
	}
	if summary.Views["main"] != "views/main.png" {
		t.Errorf("unexpected views %v", summary.Views)
	}
	if summary.Export == nil || summary.Export.Status != "truncated" {
		t.Errorf("unexpected export %+v", summary.Export)
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Video:       VideoInfo{Path: "clip.mp4", Backend: "ffmpeg", Codec: "h264", Width: 640, Height: 480, FPS: 29.97, FrameCount: 300},
		Frame:       42,
		Mode:        "green",
		Bins:        2,
		Selected:    true,
		Region:      RegionInfo{X: 1, Y: 2, Width: 3, Height: 4},
		Counts:      roi.Counts{Blue: 7, Green: 8, Red: 9},
		Means:       roi.Means{Blue: 10, Green: 11, Red: 12},
		Histogram:   []Bin{{Lo: 0, Hi: 127, Count: 5}, {Lo: 128, Hi: 255, Count: 7}},
		Views:       map[string]string{"roi": "v/roi.png", "main": "v/main.png"},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Inspection Summary",
		"2024-01-15 10:30:00",
		"clip.mp4",
		"640x480",
		"29.97 fps",
		"| Mode | Green |",
		"1,2 3x4",
		"| B | 7 | 10 |",
		"| R | 9 | 12 |",
		"| 128-255 | 7 |",
		"- main: `v/main.png`",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Index(result, "- main") > strings.Index(result, "- roi") {
		t.Error("views should be sorted by name")
	}
	if strings.Contains(result, "## Export") {
		t.Error("export section should be omitted without an export")
	}
}

func TestMarkdownFormatter_NoSelection(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(&Summary{GeneratedAt: time.Now(), Mode: "all"})

	if !strings.Contains(result, "| Region | None |") {
		t.Error("expected no region")
	}
	if !strings.Contains(result, "| Frames | Unknown |") {
		t.Error("expected unknown frame count")
	}
	if strings.Contains(result, "## Histogram") {
		t.Error("histogram section should be omitted")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Inspection Summary": "檢查摘要",
			"Green":              "綠色",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	result := formatter.Format(&Summary{GeneratedAt: time.Now(), Mode: "green"})

	if !strings.Contains(result, "# 檢查摘要") {
		t.Error("expected translated title")
	}
	if !strings.Contains(result, "綠色") {
		t.Error("expected translated mode label")
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	writer := NewWriter(FormatFunc(func(*Summary) string { return "content" }), fs)

	if err := writer.Write("reports/out.md", NewSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := fs.GetFile("reports/out.md")
	if !ok || string(data) != "content" {
		t.Errorf("unexpected file %q", data)
	}
	if exists, _ := fs.Exists("reports"); !exists {
		t.Error("expected parent directory to be created")
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(string, []byte) error { return errors.New("read-only") }
	writer := NewWriter(NewMarkdownFormatter(), fs)

	if err := writer.Write("out.md", NewSummary()); err == nil {
		t.Error("expected error")
	}
}
