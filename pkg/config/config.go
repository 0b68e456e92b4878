// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/roiscope/pkg/histogram"
	"github.com/user/roiscope/pkg/orchestrator"
	"github.com/user/roiscope/pkg/roi"
)

// Config represents the full configuration for roiscope.
type Config struct {
	// Video IO
	Backend    string `yaml:"backend"`     // auto, opencv or ffmpeg
	FFmpegPath string `yaml:"ffmpeg_path"` // empty searches PATH
	Codec      string `yaml:"codec"`       // FourCC for exported video

	// Analysis
	Mode string `yaml:"mode"`
	Bins int    `yaml:"bins"`

	// Output
	ViewDir         string `yaml:"view_dir"`
	Report          string `yaml:"report"`
	DisplayMaxWidth int    `yaml:"display_max_width"` // 0 keeps the native size

	// Overlay
	Overlay OverlayConfig `yaml:"overlay"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// OverlayConfig controls text and outline rendering.
type OverlayConfig struct {
	OutlineColor string  `yaml:"outline_color"`
	OutlineWidth float64 `yaml:"outline_width"`
	FontPath     string  `yaml:"font_path"`
	FontSize     float64 `yaml:"font_size"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Backend: "auto",
		Codec:   "XVID",

		Mode: "all",
		Bins: histogram.DefaultBins,

		ViewDir: "./views",

		Overlay: OverlayConfig{
			OutlineColor: "#00ff00",
			OutlineWidth: 2,
			FontSize:     13,
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	switch c.Backend {
	case "", "auto", "opencv", "ffmpeg":
	default:
		return fmt.Errorf("unknown backend %q (want auto, opencv or ffmpeg)", c.Backend)
	}
	if _, err := roi.ParseChannel(c.Mode); err != nil {
		return err
	}
	if !histogram.ValidBins(c.Bins) {
		return fmt.Errorf("bins %d out of range %d-%d", c.Bins, histogram.MinBins, histogram.MaxBins)
	}
	if c.Codec != "" && len(c.Codec) != 4 {
		return fmt.Errorf("codec %q must be a four-character code", c.Codec)
	}
	if c.DisplayMaxWidth < 0 {
		return fmt.Errorf("display_max_width must not be negative")
	}
	return nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}

	return color.RGBA{
		R: hexByte(hex[0], hex[1]),
		G: hexByte(hex[2], hex[3]),
		B: hexByte(hex[4], hex[5]),
		A: 255,
	}
}

func hexByte(hi, lo byte) uint8 {
	return hexValue(hi)<<4 | hexValue(lo)
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config. The video,
// frame, selection and output paths come from the command line.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	mode, err := roi.ParseChannel(c.Mode)
	if err != nil {
		mode = roi.All
	}
	oc := orchestrator.DefaultConfig()
	oc.Mode = mode
	oc.Bins = c.Bins
	oc.Codec = c.Codec
	oc.ViewDir = c.ViewDir
	oc.ReportPath = c.Report
	oc.OutlineColor = ParseColor(c.Overlay.OutlineColor)
	oc.OutlineWidth = c.Overlay.OutlineWidth
	return oc
}
