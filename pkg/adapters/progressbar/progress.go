// Package progressbar reports export progress on a terminal using
// schollz/progressbar.
package progressbar

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/user/roiscope/pkg/ports"
)

// Bar implements ports.Progress. An unknown total shows a spinner.
type Bar struct {
	description string
	out         io.Writer
	bar         *progressbar.ProgressBar
}

// New creates a new Bar writing to out.
func New(description string, out io.Writer) *Bar {
	return &Bar{description: description, out: out}
}

// Start begins a new bar, replacing any previous one.
func (b *Bar) Start(total int) {
	if total <= 0 {
		total = -1
	}
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Set reports the number of frames processed so far.
func (b *Bar) Set(current int) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Set(current)
}

// Finish completes the bar and ends the line.
func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	io.WriteString(b.out, "\n")
	b.bar = nil
}

var _ ports.Progress = (*Bar)(nil)
