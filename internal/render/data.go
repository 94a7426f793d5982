package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/geom"
)

// thumbFontFactor shrinks data-element fonts in thumbnail mode on top of
// the canvas scale.
const thumbFontFactor = 0.75

const dataPadding = 8.0

// drawDataElement paints a catalog-bound element: background, border, then
// type-specific content.
func (r *Renderer) drawDataElement(c *Canvas, el *document.Element, rect geom.Rect, scale, opacity float64, thumbnail bool) {
	d := el.Data
	if d == nil {
		return
	}

	// Background is skipped entirely at zero opacity.
	if d.Style.Background != "" && d.Style.BackgroundOpacity > 0 {
		col := WithOpacity(ParseColor(d.Style.Background), opacity*d.Style.BackgroundOpacity)
		radius := 0.0
		if d.Style.Border != nil {
			radius = d.Style.Border.Radius * scale
		}
		c.FillRoundedRect(rect, radius, col)
	}

	if b := d.Style.Border; b != nil && b.Width > 0 {
		col := WithOpacity(ParseColor(b.Color), opacity)
		width := b.Width * scale
		switch b.Style {
		case document.BorderDashed:
			c.DashedRect(rect, width, 6*scale, col)
		case document.BorderDotted:
			c.DashedRect(rect, width, width, col)
		default:
			c.StrokeRect(rect, width, col)
		}
	}

	switch d.DataType {
	case document.DataTypeCategory, document.DataTypeSubcategory:
		r.drawBoundName(c, d, rect, scale, opacity)
	case document.DataTypeMenuItem:
		r.drawMenuList(c, d, rect, scale, opacity, thumbnail)
	}
}

// drawBoundName renders the localized display name of a category or
// subcategory binding, or a bind prompt when unbound.
func (r *Renderer) drawBoundName(c *Canvas, d *document.DataElement, rect geom.Rect, scale, opacity float64) {
	name := ""
	if d.Snapshot != nil {
		name = document.Localized(d.Snapshot.Names)
	}
	if name == "" {
		if d.DataType == document.DataTypeCategory {
			name = "Select category"
		} else {
			name = "Select subcategory"
		}
	}
	face := r.Fonts.Face(d.Style.FontFamily, document.FontStyleNormal, styleFontSize(d)*scale)
	col := WithOpacity(textColor(d), opacity)
	c.DrawText(face, name, rect.X+dataPadding*scale, rect.Y+dataPadding*scale+Ascent(face), 0, col)
}

// drawMenuList renders a bound subcategory's menu items: optional title
// with divider, then each item's name, description and price. One renderer
// serves both the left and the justified layout; the strategy only changes
// where the price goes.
func (r *Renderer) drawMenuList(c *Canvas, d *document.DataElement, rect geom.Rect, scale, opacity float64, thumbnail bool) {
	fontScale := scale
	if thumbnail {
		fontScale *= thumbFontFactor
	}
	pad := dataPadding * scale
	left := rect.X + pad
	right := rect.X + rect.Width - pad
	bottom := rect.Y + rect.Height - pad
	innerW := rect.Width - 2*pad
	col := WithOpacity(textColor(d), opacity)

	if d.Snapshot == nil || len(d.Snapshot.Items) == 0 {
		face := r.Fonts.Face(d.Style.FontFamily, document.FontStyleNormal, styleFontSize(d)*fontScale)
		c.DrawText(face, "No items", left, rect.Y+pad+Ascent(face), 0, col)
		return
	}

	y := rect.Y + pad

	// Title + divider
	if d.List.ShowTitle {
		titleSize := d.List.TitleFontSize
		if titleSize <= 0 {
			titleSize = styleFontSize(d) * 1.25
		}
		titleFace := r.Fonts.Face(d.Style.FontFamily, document.FontStyleBold, titleSize*fontScale)
		title := document.Localized(d.Snapshot.Names)
		titleCol := col
		if d.List.TitleColor != "" {
			titleCol = WithOpacity(ParseColor(d.List.TitleColor), opacity)
		}
		y += d.List.TitleMarginTop * scale
		titleW := Measure(titleFace, title, 0)
		if thumbnail {
			title = Ellipsize(titleFace, title, innerW)
			titleW = Measure(titleFace, title, 0)
		}
		c.DrawText(titleFace, title, left, y+Ascent(titleFace), 0, titleCol)
		y += lineAdvance(titleSize * fontScale)

		if dv := d.List.Divider; dv != nil {
			width := innerW
			switch dv.Mode {
			case document.DividerTitle:
				width = titleW
			case document.DividerPercent:
				if dv.Percent > 0 {
					width = innerW * dv.Percent / 100
				}
			}
			thickness := dv.Thickness * scale
			if thickness <= 0 {
				thickness = 1
			}
			dvCol := titleCol
			if dv.Color != "" {
				dvCol = WithOpacity(ParseColor(dv.Color), opacity)
			}
			c.FillRect(geom.Rect{X: left, Y: y, Width: width, Height: thickness}, dvCol)
			y += thickness + 4*scale
		}
		y += d.List.TitleMarginBot * scale
	}

	itemSize := styleFontSize(d) * fontScale
	itemFace := r.Fonts.Face(d.Style.FontFamily, document.FontStyleNormal, itemSize)
	descFace := r.Fonts.Face(d.Style.FontFamily, document.FontStyleItalic, itemSize*0.85)
	advance := lineAdvance(itemSize)
	lineSpacing := d.List.LineSpacing * scale

	items := append([]document.SnapshotItem(nil), d.Snapshot.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	for idx, item := range items {
		if y+advance > bottom {
			// Out of vertical space; thumbnails flag that more items
			// exist.
			if thumbnail && idx < len(items) {
				c.DrawText(itemFace, "…", left, bottom, 0, col)
			}
			return
		}

		name := document.Localized(item.Names)
		price := ""
		if d.List.ShowPrice {
			price = FormatPrice(item.PriceCents, d.List.Currency, d.List.DecimalSeparator)
		}

		switch d.List.Layout {
		case document.ListLayoutJustified:
			avail := innerW
			if price != "" {
				priceW := Measure(itemFace, price, 0)
				c.DrawText(itemFace, price, right-priceW, y+Ascent(itemFace), 0, col)
				avail -= priceW + 8*scale
			}
			if thumbnail {
				name = Ellipsize(itemFace, name, avail)
			}
			c.DrawText(itemFace, name, left, y+Ascent(itemFace), 0, col)
		default:
			line := name
			if price != "" {
				line = name + "  " + price
			}
			if thumbnail {
				line = Ellipsize(itemFace, line, innerW)
			}
			c.DrawText(itemFace, line, left, y+Ascent(itemFace), 0, col)
		}
		y += advance

		if d.List.ShowDescription {
			desc := document.Localized(item.Descriptions)
			if desc != "" {
				threshold := d.List.DescriptionWrap
				if threshold <= 0 {
					threshold = 40
				}
				for _, dl := range WrapChars(desc, threshold) {
					if y+advance > bottom {
						return
					}
					if thumbnail {
						dl = Ellipsize(descFace, dl, innerW)
					}
					c.DrawText(descFace, dl, left, y+Ascent(descFace), 0, col)
					y += lineAdvance(itemSize*0.85) + lineSpacing
				}
			}
		}
	}
}

// WrapChars wraps text on word boundaries against a character-count
// threshold (the description wrap setting is character-based, not
// pixel-based).
func WrapChars(s string, limit int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) <= limit {
			line += " " + word
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

// FormatPrice renders integer cents with the configured decimal separator
// and currency symbol, e.g. 1250 → "12,50 €".
func FormatPrice(cents int, currency, decimalSeparator string) string {
	if currency == "" {
		currency = "€"
	}
	if decimalSeparator == "" {
		decimalSeparator = ","
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d%s%02d %s", sign, cents/100, decimalSeparator, cents%100, currency)
}

func styleFontSize(d *document.DataElement) float64 {
	if d.Style.FontSize > 0 {
		return d.Style.FontSize
	}
	return 16
}

func textColor(d *document.DataElement) color.RGBA {
	if d.Style.TextColor != "" {
		return ParseColor(d.Style.TextColor)
	}
	return color.RGBA{A: 0xff}
}

// lineAdvance is the vertical advance for a font size at the renderer's
// default list line height.
func lineAdvance(fontSize float64) float64 {
	return fontSize * 1.3
}
