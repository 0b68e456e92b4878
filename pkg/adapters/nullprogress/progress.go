// Package nullprogress provides a progress reporter that reports nothing.
package nullprogress

import "github.com/user/roiscope/pkg/ports"

// Progress discards all progress updates. Used with --quiet.
type Progress struct{}

// New creates a new null progress reporter.
func New() *Progress {
	return &Progress{}
}

func (p *Progress) Start(total int) {}

func (p *Progress) Set(current int) {}

func (p *Progress) Finish() {}

var _ ports.Progress = (*Progress)(nil)
