package render

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/geom"
	"github.com/menucraft/menucraft/internal/imgcache"
)

// Renderer paints pages onto raster canvases: the full editor canvas, and
// reduced-fidelity thumbnails.
type Renderer struct {
	Fonts  *FontBank
	Images *imgcache.Cache
}

func NewRenderer(fonts *FontBank, images *imgcache.Cache) *Renderer {
	return &Renderer{Fonts: fonts, Images: images}
}

// Options selects what a frame shows beyond the committed document state.
type Options struct {
	// Scale converts page units to device pixels (the viewport zoom).
	Scale float64
	// Margin is blank space around the page, in device pixels; the page
	// drop shadow is drawn into it.
	Margin float64
	// Transient geometry (during a drag or resize) wins over committed
	// element geometry.
	Transient map[string]geom.Rect
	// Selection ids get dashed boxes and corner handles.
	Selection map[string]bool
	// HoverID gets a light outline when not selected.
	HoverID string
	// RubberBand is the in-progress selection box in page space.
	RubberBand *geom.Rect
	// Thumbnail switches image elements from placeholder boxes to real
	// bitmaps and enables text truncation.
	Thumbnail bool
}

const (
	handleSize    = 8.0
	selectionDash = 6.0
)

var (
	shadowColor    = color.RGBA{A: 0x50}
	selectionColor = color.RGBA{R: 0x2b, G: 0x6c, B: 0xff, A: 0xff}
	hoverColor     = color.RGBA{R: 0x2b, G: 0x6c, B: 0xff, A: 0x90}
	rubberFill     = color.RGBA{R: 0x2b, G: 0x6c, B: 0xff, A: 0x28}
	placeholderBg  = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	placeholderFg  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// RenderPage paints one page and its overlay state into a fresh canvas.
func (r *Renderer) RenderPage(page *document.Page, opts Options) *image.RGBA {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	scale := opts.Scale
	margin := opts.Margin
	pageRect := geom.Rect{
		X:      margin,
		Y:      margin,
		Width:  float64(page.Format.Width) * scale,
		Height: float64(page.Format.Height) * scale,
	}
	c := NewCanvas(int(pageRect.Width+2*margin), int(pageRect.Height+2*margin))

	// 1. page drop shadow
	if margin > 0 {
		shadow := pageRect
		shadow.X += 4
		shadow.Y += 4
		c.FillRect(shadow, shadowColor)
	}

	// 2. background color
	c.FillRect(pageRect, ParseColor(page.Background.Color))

	// 3. background image, scaled to the page box. A miss schedules the
	// load; the repaint after the load callback picks it up.
	if page.Background.Image != "" && r.Images != nil {
		if img, ok := r.Images.Get(page.Background.Image); ok {
			c.DrawImage(img, pageRect, page.Background.ImageOpacity)
		}
	}

	// 4. layered elements in paint order
	for li := range page.Layers {
		layer := &page.Layers[li]
		if !layer.Visible {
			continue
		}
		for ei := range layer.Elements {
			el := &layer.Elements[ei]
			if !el.Visible {
				continue
			}
			rect := deviceRect(effectiveRect(el, opts.Transient), scale, margin)
			r.paintElement(c, el, rect, scale, layer.Opacity*el.Opacity, opts.Thumbnail)
		}
	}

	if opts.Thumbnail {
		return c.Image()
	}

	// 5. selection decorations
	for li := range page.Layers {
		for ei := range page.Layers[li].Elements {
			el := &page.Layers[li].Elements[ei]
			if !opts.Selection[el.ID] {
				continue
			}
			rect := deviceRect(effectiveRect(el, opts.Transient), scale, margin)
			c.DashedRect(rect, 1, selectionDash, selectionColor)
			for _, h := range HandleRects(rect) {
				c.FillRect(h, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
				c.StrokeRect(h, 1, selectionColor)
			}
		}
	}

	// 6. hover decoration
	if opts.HoverID != "" && !opts.Selection[opts.HoverID] {
		if el := findElement(page, opts.HoverID); el != nil {
			rect := deviceRect(effectiveRect(el, opts.Transient), scale, margin)
			c.StrokeRect(rect, 1, hoverColor)
		}
	}

	// 7. rubber-band selection box
	if opts.RubberBand != nil {
		band := deviceRect(*opts.RubberBand, scale, margin)
		c.FillRect(band, rubberFill)
		c.StrokeRect(band, 1, selectionColor)
	}

	return c.Image()
}

// effectiveRect consults transient drag/resize geometry first, falling back
// to the element's committed geometry.
func effectiveRect(el *document.Element, transient map[string]geom.Rect) geom.Rect {
	if r, ok := transient[el.ID]; ok {
		return r
	}
	return geom.Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
}

func deviceRect(r geom.Rect, scale, margin float64) geom.Rect {
	return geom.Rect{
		X:      r.X*scale + margin,
		Y:      r.Y*scale + margin,
		Width:  r.Width * scale,
		Height: r.Height * scale,
	}
}

// HandleRects returns the four corner handle squares for a selection rect,
// in NW, NE, SW, SE order.
func HandleRects(r geom.Rect) [4]geom.Rect {
	half := handleSize / 2
	return [4]geom.Rect{
		{X: r.X - half, Y: r.Y - half, Width: handleSize, Height: handleSize},
		{X: r.X + r.Width - half, Y: r.Y - half, Width: handleSize, Height: handleSize},
		{X: r.X - half, Y: r.Y + r.Height - half, Width: handleSize, Height: handleSize},
		{X: r.X + r.Width - half, Y: r.Y + r.Height - half, Width: handleSize, Height: handleSize},
	}
}

// paintElement dispatches on element kind. A panic while painting one
// element is confined to that element: the canvas gets a fallback visual
// and rendering continues.
func (r *Renderer) paintElement(c *Canvas, el *document.Element, rect geom.Rect, scale, opacity float64, thumbnail bool) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("element render failed", "element", el.ID, "kind", el.Kind, "panic", rec)
			r.drawFallback(c, rect, scale)
		}
	}()

	switch el.Kind {
	case document.ElementKindText:
		r.drawTextElement(c, el, rect, scale, opacity)
	case document.ElementKindImage:
		r.drawImageElement(c, el, rect, opacity, thumbnail, scale)
	case document.ElementKindData:
		r.drawDataElement(c, el, rect, scale, opacity, thumbnail)
	}
}

// drawImageElement draws a placeholder box in the editor canvas; thumbnails
// draw the actual bitmap once it has loaded. The placeholder suffices for
// layout purposes while dragging.
func (r *Renderer) drawImageElement(c *Canvas, el *document.Element, rect geom.Rect, opacity float64, thumbnail bool, scale float64) {
	img := el.Image
	if img == nil {
		return
	}
	if thumbnail && r.Images != nil {
		if bitmap, ok := r.Images.Get(img.Source); ok {
			c.DrawImage(bitmap, rect, opacity)
			return
		}
	}
	c.FillRect(rect, WithOpacity(placeholderBg, opacity))
	c.StrokeRect(rect, 1, placeholderFg)
	face := r.Fonts.Face("sans", document.FontStyleNormal, 12*scale)
	label := "Image"
	w := Measure(face, label, 0)
	c.DrawText(face, label, rect.X+(rect.Width-w)/2, rect.Y+rect.Height/2+Ascent(face)/2, 0, WithOpacity(placeholderFg, opacity))
}

func (r *Renderer) drawFallback(c *Canvas, rect geom.Rect, scale float64) {
	c.FillRect(rect, placeholderBg)
	face := r.Fonts.Face("sans", document.FontStyleNormal, 12*scale)
	c.DrawText(face, "No items", rect.X+4, rect.Y+Ascent(face)+4, 0, placeholderFg)
}

func findElement(page *document.Page, id string) *document.Element {
	for li := range page.Layers {
		for ei := range page.Layers[li].Elements {
			if page.Layers[li].Elements[ei].ID == id {
				return &page.Layers[li].Elements[ei]
			}
		}
	}
	return nil
}
