package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/menucraft/menucraft/internal/geom"
)

// Canvas is a raster paint target over an RGBA buffer. All rect arguments
// are in device pixels; colors blend source-over using their alpha.
type Canvas struct {
	img *image.RGBA
}

func NewCanvas(w, h int) *Canvas {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Width() int  { return c.img.Rect.Dx() }
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Fill floods the whole canvas with an opaque color.
func (c *Canvas) Fill(col color.RGBA) {
	for y := c.img.Rect.Min.Y; y < c.img.Rect.Max.Y; y++ {
		for x := c.img.Rect.Min.X; x < c.img.Rect.Max.X; x++ {
			c.img.SetRGBA(x, y, col)
		}
	}
}

// FillRect paints a filled rectangle, blending by the color's alpha.
func (c *Canvas) FillRect(r geom.Rect, col color.RGBA) {
	x0, y0, x1, y1 := c.clip(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.blend(x, y, col)
		}
	}
}

// FillRoundedRect paints a filled rectangle with quarter-circle corners.
func (c *Canvas) FillRoundedRect(r geom.Rect, radius float64, col color.RGBA) {
	if radius <= 0 {
		c.FillRect(r, col)
		return
	}
	radius = min(radius, min(r.Width, r.Height)/2)
	x0, y0, x1, y1 := c.clip(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if insideRounded(float64(x)+0.5, float64(y)+0.5, r, radius) {
				c.blend(x, y, col)
			}
		}
	}
}

// StrokeRect outlines a rectangle with the given line width.
func (c *Canvas) StrokeRect(r geom.Rect, width float64, col color.RGBA) {
	w := max(width, 1)
	c.FillRect(geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: w}, col)
	c.FillRect(geom.Rect{X: r.X, Y: r.Y + r.Height - w, Width: r.Width, Height: w}, col)
	c.FillRect(geom.Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}, col)
	c.FillRect(geom.Rect{X: r.X + r.Width - w, Y: r.Y, Width: w, Height: r.Height}, col)
}

// DashedRect outlines a rectangle with dash segments, as used for selection
// boxes and dashed borders. dash is the segment length; the gap matches it.
func (c *Canvas) DashedRect(r geom.Rect, width, dash float64, col color.RGBA) {
	if dash <= 0 {
		c.StrokeRect(r, width, col)
		return
	}
	w := max(width, 1)
	c.dashedHLine(r.X, r.X+r.Width, r.Y, w, dash, col)
	c.dashedHLine(r.X, r.X+r.Width, r.Y+r.Height-w, w, dash, col)
	c.dashedVLine(r.Y, r.Y+r.Height, r.X, w, dash, col)
	c.dashedVLine(r.Y, r.Y+r.Height, r.X+r.Width-w, w, dash, col)
}

func (c *Canvas) dashedHLine(x0, x1, y, width, dash float64, col color.RGBA) {
	for x := x0; x < x1; x += dash * 2 {
		c.FillRect(geom.Rect{X: x, Y: y, Width: min(dash, x1-x), Height: width}, col)
	}
}

func (c *Canvas) dashedVLine(y0, y1, x, width, dash float64, col color.RGBA) {
	for y := y0; y < y1; y += dash * 2 {
		c.FillRect(geom.Rect{X: x, Y: y, Width: width, Height: min(dash, y1-y)}, col)
	}
}

// DrawImage scales src into the destination rect at the given opacity.
func (c *Canvas) DrawImage(src image.Image, dst geom.Rect, opacity float64) {
	if src == nil || dst.IsEmpty() || opacity <= 0 {
		return
	}
	dr := image.Rect(int(dst.X), int(dst.Y), int(dst.X+dst.Width), int(dst.Y+dst.Height))
	if opacity >= 1 {
		xdraw.ApproxBiLinear.Scale(c.img, dr, src, src.Bounds(), xdraw.Over, nil)
		return
	}
	// Scale into a scratch buffer, then blend with the opacity applied.
	scratch := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	xdraw.ApproxBiLinear.Scale(scratch, scratch.Rect, src, src.Bounds(), xdraw.Src, nil)
	for y := 0; y < dr.Dy(); y++ {
		for x := 0; x < dr.Dx(); x++ {
			px := scratch.RGBAAt(x, y)
			px.A = uint8(float64(px.A) * opacity)
			c.blend(dr.Min.X+x, dr.Min.Y+y, px)
		}
	}
}

// DrawText draws a single line with its baseline at (x, y). A non-zero
// letterSpacing advances each glyph by that many extra pixels.
func (c *Canvas) DrawText(face font.Face, text string, x, y, letterSpacing float64, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	if letterSpacing == 0 {
		d.DrawString(text)
		return
	}
	for _, r := range text {
		d.DrawString(string(r))
		d.Dot.X += floatToFixed(letterSpacing)
	}
}

func (c *Canvas) clip(r geom.Rect) (x0, y0, x1, y1 int) {
	x0 = max(int(math.Floor(r.X)), c.img.Rect.Min.X)
	y0 = max(int(math.Floor(r.Y)), c.img.Rect.Min.Y)
	x1 = min(int(math.Ceil(r.X+r.Width)), c.img.Rect.Max.X)
	y1 = min(int(math.Ceil(r.Y+r.Height)), c.img.Rect.Max.Y)
	return
}

func (c *Canvas) blend(x, y int, col color.RGBA) {
	if col.A == 0xff {
		c.img.SetRGBA(x, y, col)
		return
	}
	if col.A == 0 {
		return
	}
	dst := c.img.RGBAAt(x, y)
	a := uint32(col.A)
	inv := 255 - a
	c.img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(col.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(col.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(col.B)*a + uint32(dst.B)*inv) / 255),
		A: uint8(min(255, int(a)+int(uint32(dst.A)*inv/255))),
	})
}

func insideRounded(px, py float64, r geom.Rect, radius float64) bool {
	cx := math.Max(r.X+radius, math.Min(px, r.X+r.Width-radius))
	cy := math.Max(r.Y+radius, math.Min(py, r.Y+r.Height-radius))
	dx := px - cx
	dy := py - cy
	if dx == 0 && dy == 0 {
		return true
	}
	return dx*dx+dy*dy <= radius*radius
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
