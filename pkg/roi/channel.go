package roi

import (
	"fmt"
	"image/color"
	"strings"
)

// Channel selects one colour component of a frame, or all of them.
type Channel int

const (
	All Channel = iota
	Blue
	Green
	Red
)

// Channels lists the single-channel selectors in B, G, R order.
var Channels = []Channel{Blue, Green, Red}

// String returns the lower-case channel name.
func (c Channel) String() string {
	switch c {
	case All:
		return "all"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Valid reports whether c is one of the four defined selectors.
func (c Channel) Valid() bool {
	return c >= All && c <= Red
}

// offset returns the byte offset of the channel inside an RGBA pixel.
func (c Channel) offset() int {
	switch c {
	case Red:
		return 0
	case Green:
		return 1
	case Blue:
		return 2
	default:
		return -1
	}
}

// Color returns the representative display colour of the channel.
func (c Channel) Color() color.RGBA {
	switch c {
	case Blue:
		return color.RGBA{B: 255, A: 255}
	case Green:
		return color.RGBA{G: 255, A: 255}
	case Red:
		return color.RGBA{R: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

// ParseChannel parses a channel name. The numeric forms 0-3 follow the
// order of the mode selector (all, blue, green, red).
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "a", "0", "":
		return All, nil
	case "blue", "b", "1":
		return Blue, nil
	case "green", "g", "2":
		return Green, nil
	case "red", "r", "3":
		return Red, nil
	}
	return All, fmt.Errorf("unknown channel %q", s)
}
