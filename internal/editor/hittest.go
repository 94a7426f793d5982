package editor

import (
	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/geom"
)

// Handle identifies one of the four corner resize handles.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

// handleTolerance is the pick radius around a handle center, in screen
// pixels; callers divide by zoom to get page units.
const handleTolerance = 6.0

// elementRect is the element's committed geometry, untransformed.
func elementRect(el *document.Element) geom.Rect {
	return geom.Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
}

// elementBounds is the axis-aligned bounding box of the element after its
// scale and rotation are applied around its origin.
func elementBounds(el *document.Element) geom.Rect {
	if el.Rotation == 0 && el.ScaleX == 1 && el.ScaleY == 1 {
		return elementRect(el)
	}
	m := geom.ElementTransform(el.X, el.Y, el.ScaleX, el.ScaleY, el.Rotation)
	return m.ApplyRect(geom.Rect{Width: el.Width, Height: el.Height})
}

// hitTest returns the id of the topmost visible, unlocked element under the
// page-space point, or "". Layers are scanned top-down; locked or hidden
// layers are transparent to the pointer.
func (s *Session) hitTest(page *document.Page, px, py float64) string {
	for li := len(page.Layers) - 1; li >= 0; li-- {
		layer := &page.Layers[li]
		if !layer.Visible || layer.Locked {
			continue
		}
		for ei := len(layer.Elements) - 1; ei >= 0; ei-- {
			el := &layer.Elements[ei]
			if !el.Visible || el.Locked {
				continue
			}
			if elementBounds(el).Contains(px, py) {
				return el.ID
			}
		}
	}
	return ""
}

// handleAt returns which corner handle of bounds lies within tolerance of
// the point, or HandleNone.
func handleAt(bounds geom.Rect, px, py, tolerance float64) Handle {
	corners := [4]struct {
		h    Handle
		x, y float64
	}{
		{HandleNW, bounds.X, bounds.Y},
		{HandleNE, bounds.X + bounds.Width, bounds.Y},
		{HandleSW, bounds.X, bounds.Y + bounds.Height},
		{HandleSE, bounds.X + bounds.Width, bounds.Y + bounds.Height},
	}
	for _, c := range corners {
		if px >= c.x-tolerance && px <= c.x+tolerance &&
			py >= c.y-tolerance && py <= c.y+tolerance {
			return c.h
		}
	}
	return HandleNone
}

// resizeRect recomputes a rect being resized by one corner handle toward the
// page-space pointer. The opposite edge stays fixed; width and height are
// clamped at the minimums, with the x/y origin adjusted so the fixed edge
// does not move when clamping kicks in.
func resizeRect(start geom.Rect, h Handle, px, py, minW, minH float64) geom.Rect {
	left := start.X
	top := start.Y
	right := start.X + start.Width
	bottom := start.Y + start.Height

	switch h {
	case HandleNW:
		left, top = px, py
	case HandleNE:
		right, top = px, py
	case HandleSW:
		left, bottom = px, py
	case HandleSE:
		right, bottom = px, py
	}

	w := right - left
	if w < minW {
		w = minW
		if h == HandleNW || h == HandleSW {
			left = right - w
		}
	}
	hgt := bottom - top
	if hgt < minH {
		hgt = minH
		if h == HandleNW || h == HandleNE {
			top = bottom - hgt
		}
	}
	return geom.Rect{X: left, Y: top, Width: w, Height: hgt}
}
