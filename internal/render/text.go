package render

import (
	"strings"

	"golang.org/x/image/font"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/geom"
)

// Wrap performs greedy word wrapping against maxWidth. A word wider than
// the line is placed on its own overflowing line rather than dropped.
// Explicit newlines in the text force breaks.
func Wrap(face font.Face, text string, maxWidth, letterSpacing float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if Measure(face, candidate, letterSpacing) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// Ellipsize shortens s with a trailing ellipsis until it fits maxWidth.
func Ellipsize(face font.Face, s string, maxWidth float64) string {
	if Measure(face, s, 0) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if Measure(face, candidate, 0) <= maxWidth {
			return candidate
		}
	}
	return "…"
}

// drawTextElement paints a text element into its device-space rect. scale
// converts page units to device pixels.
func (r *Renderer) drawTextElement(c *Canvas, el *document.Element, rect geom.Rect, scale, opacity float64) {
	t := el.Text
	if t == nil {
		return
	}
	fill := WithOpacity(ParseColor(t.Fill), opacity)
	fontSize := t.FontSize * scale
	padding := t.Padding * scale
	spacing := t.LetterSpacing * scale
	innerW := rect.Width - 2*padding
	innerH := rect.Height - 2*padding

	face := r.Fonts.Face(t.FontFamily, t.FontStyle, fontSize)

	// Degenerate boxes still draw a single unwrapped line near the top-left
	// so the element stays visible and selectable.
	if innerW <= 0 || innerH <= 0 || fontSize <= 0 {
		c.DrawText(face, t.Content, rect.X+2, rect.Y+Ascent(face)+2, spacing, fill)
		return
	}

	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.2
	}
	lineAdvance := fontSize * lineHeight

	lines := Wrap(face, t.Content, innerW, spacing)
	maxLines := int(innerH / lineAdvance)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	blockHeight := float64(len(lines)) * lineAdvance
	top := rect.Y + padding
	switch t.AlignV {
	case document.AlignMiddle:
		top += (innerH - blockHeight) / 2
	case document.AlignBottom:
		top += innerH - blockHeight
	}

	for i, line := range lines {
		lineWidth := Measure(face, line, spacing)
		x := rect.X + padding
		switch t.AlignH {
		case document.AlignCenter:
			x += (innerW - lineWidth) / 2
		case document.AlignRight:
			x += innerW - lineWidth
		}
		baseline := top + float64(i)*lineAdvance + Ascent(face)
		if t.Shadow != nil {
			shadowCol := WithOpacity(ParseColor(t.Shadow.Color), opacity)
			c.DrawText(face, line, x+t.Shadow.OffsetX*scale, baseline+t.Shadow.OffsetY*scale, spacing, shadowCol)
		}
		c.DrawText(face, line, x, baseline, spacing, fill)
	}
}
