// Package nulldisplay provides a display that shows nothing.
package nulldisplay

import "github.com/user/roiscope/pkg/ports"

// Display discards every view set. Used by export and probe, which have
// nothing to show.
type Display struct{}

// New creates a new null display.
func New() *Display {
	return &Display{}
}

// Present does nothing.
func (d *Display) Present(views ports.ViewSet) error {
	return nil
}

var _ ports.Display = (*Display)(nil)
