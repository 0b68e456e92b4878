// Package display holds the lookup table that maps a display mode to the
// views it shows. Every caller that needs to know what a mode displays goes
// through Lookup.
package display

import (
	"github.com/ideamans/go-l10n"

	"github.com/user/roiscope/pkg/ports"
	"github.com/user/roiscope/pkg/roi"
)

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		"All":      "全部",
		"Blue":     "藍色",
		"Green":    "綠色",
		"Red":      "紅色",
		"Bins: %d": "區間數: %d",
		"Mode: %s": "模式: %s",
		"Frame %d": "第 %d 幀",
	})
}

// Mode describes what one display mode shows.
type Mode struct {
	Channel   roi.Channel
	Label     string        // Untranslated label, also the l10n key
	Isolated  []roi.Channel // Channels shown as their own isolated views
	Histogram bool          // Whether the histogram view is shown
}

var modes = map[roi.Channel]Mode{
	roi.All: {
		Channel: roi.All,
		Label:   "All",
	},
	roi.Blue: {
		Channel:   roi.Blue,
		Label:     "Blue",
		Isolated:  []roi.Channel{roi.Blue},
		Histogram: true,
	},
	roi.Green: {
		Channel:   roi.Green,
		Label:     "Green",
		Isolated:  []roi.Channel{roi.Green},
		Histogram: true,
	},
	roi.Red: {
		Channel:   roi.Red,
		Label:     "Red",
		Isolated:  []roi.Channel{roi.Red},
		Histogram: true,
	},
}

// Lookup returns the mode for ch. Unknown channels fall back to All.
func Lookup(ch roi.Channel) Mode {
	if m, ok := modes[ch]; ok {
		return m
	}
	return modes[roi.All]
}

// LocalizedLabel returns the label translated to the current language.
func (m Mode) LocalizedLabel() string {
	return l10n.T(m.Label)
}

// BinsLabel returns the translated bin-count label.
func BinsLabel(bins int) string {
	return l10n.F("Bins: %d", bins)
}

// Views returns the names of the views visible in this mode, in display
// order. The main, ROI and result views are always visible.
func (m Mode) Views() []ports.View {
	views := []ports.View{ports.ViewMain}
	for _, ch := range m.Isolated {
		views = append(views, ChannelView(ch))
	}
	views = append(views, ports.ViewROI, ports.ViewResult)
	if m.Histogram {
		views = append(views, ports.ViewHistogram)
	}
	return views
}

// Shows reports whether v is visible in this mode.
func (m Mode) Shows(v ports.View) bool {
	for _, have := range m.Views() {
		if have == v {
			return true
		}
	}
	return false
}

// ChannelView returns the isolated view for ch, or "" for roi.All.
func ChannelView(ch roi.Channel) ports.View {
	switch ch {
	case roi.Blue:
		return ports.ViewBlue
	case roi.Green:
		return ports.ViewGreen
	case roi.Red:
		return ports.ViewRed
	default:
		return ""
	}
}
