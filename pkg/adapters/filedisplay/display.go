// Package filedisplay provides a display that saves every view as a PNG file.
package filedisplay

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/roiscope/pkg/ports"
)

// Display writes each presented view to <dir>/<view>.png, replacing the
// previous file. Views wider than maxWidth are scaled down first.
type Display struct {
	dir      string
	maxWidth int
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file display. maxWidth <= 0 keeps the native size.
func New(dir string, maxWidth int, fs ports.FileSystem, renderer ports.Renderer) *Display {
	return &Display{
		dir:      dir,
		maxWidth: maxWidth,
		fs:       fs,
		renderer: renderer,
	}
}

// Present saves the views in a stable order and stops at the first failure.
func (d *Display) Present(views ports.ViewSet) error {
	if err := d.fs.MkdirAll(d.dir); err != nil {
		return fmt.Errorf("create view dir: %w", err)
	}

	for _, v := range views.Names() {
		img := views[v]
		if img == nil {
			continue
		}

		data, err := d.renderer.EncodeImage(d.fit(img), ports.FormatPNG, 0)
		if err != nil {
			return fmt.Errorf("encode %s view: %w", v, err)
		}
		if err := d.fs.WriteFile(d.Path(v), data); err != nil {
			return fmt.Errorf("write %s view: %w", v, err)
		}
	}
	return nil
}

// Path returns the file a view is written to.
func (d *Display) Path(v ports.View) string {
	return filepath.Join(d.dir, v.FileName())
}

func (d *Display) fit(img image.Image) image.Image {
	b := img.Bounds()
	if d.maxWidth <= 0 || b.Dx() <= d.maxWidth {
		return img
	}
	h := b.Dy() * d.maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	return d.renderer.ResizeImage(img, d.maxWidth, h)
}

var _ ports.Display = (*Display)(nil)
