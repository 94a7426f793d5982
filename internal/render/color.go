package render

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses #rgb, #rrggbb and #rrggbbaa hex colors. Anything it
// cannot parse comes back as opaque black, so a bad document color still
// paints something visible.
func ParseColor(s string) color.RGBA {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{A: 0xff}
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r := hexNibble(hex[0])
		g := hexNibble(hex[1])
		b := hexNibble(hex[2])
		return color.RGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 0xff}
	case 6:
		return color.RGBA{R: hexByte(hex[0:2]), G: hexByte(hex[2:4]), B: hexByte(hex[4:6]), A: 0xff}
	case 8:
		return color.RGBA{R: hexByte(hex[0:2]), G: hexByte(hex[2:4]), B: hexByte(hex[4:6]), A: hexByte(hex[6:8])}
	default:
		return color.RGBA{A: 0xff}
	}
}

func hexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func hexNibble(b byte) uint8 {
	v, err := strconv.ParseUint(string(b), 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// WithOpacity scales a color's alpha by opacity in [0, 1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
