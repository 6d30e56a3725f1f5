package domain

import (
	"strconv"
	"strings"
)

// Channel selects which component of the displayed colour the viewer shows.
// Single components are shown as grey.
type Channel int

const (
	ChannelRGB Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
	ChannelAlpha
	ChannelLuminance
)

var channelNames = []string{"RGB", "Red", "Green", "Blue", "Alpha", "Luminance"}

// Channels returns the channel choices in menu order.
func Channels() []Channel {
	return []Channel{ChannelRGB, ChannelRed, ChannelGreen, ChannelBlue, ChannelAlpha, ChannelLuminance}
}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return "Channel(" + strconv.Itoa(int(c)) + ")"
	}
	return channelNames[c]
}

// ParseChannel accepts a channel name or its hotkey letter, case-insensitively.
func ParseChannel(s string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb", "c", "all":
		return ChannelRGB, true
	case "red", "r":
		return ChannelRed, true
	case "green", "g":
		return ChannelGreen, true
	case "blue", "b":
		return ChannelBlue, true
	case "alpha", "a":
		return ChannelAlpha, true
	case "luminance", "l", "luma":
		return ChannelLuminance, true
	}
	return ChannelRGB, false
}

// Isolate applies the channel selection to a display colour with alpha a.
// Alpha is shown opaque.
func (c Channel) Isolate(rgb RGB, a float64) (RGB, float64) {
	switch c {
	case ChannelRed:
		return RGB{rgb[0], rgb[0], rgb[0]}, a
	case ChannelGreen:
		return RGB{rgb[1], rgb[1], rgb[1]}, a
	case ChannelBlue:
		return RGB{rgb[2], rgb[2], rgb[2]}, a
	case ChannelAlpha:
		return RGB{a, a, a}, 1
	case ChannelLuminance:
		y := rgb[0]*LumaWeights[0] + rgb[1]*LumaWeights[1] + rgb[2]*LumaWeights[2]
		return RGB{y, y, y}, a
	default:
		return rgb, a
	}
}
