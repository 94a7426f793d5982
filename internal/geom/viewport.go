package geom

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Viewport maps between screen (device) coordinates and page-space
// coordinates under the current pan/zoom.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

// NewViewport returns a viewport at 1:1 with no pan.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ToPage converts a screen point to page space.
func (v Viewport) ToPage(sx, sy float64) (float64, float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

// ToScreen converts a page-space point to screen coordinates.
func (v Viewport) ToScreen(px, py float64) (float64, float64) {
	return px*v.Zoom + v.PanX, py*v.Zoom + v.PanY
}

// ZoomAt multiplies the zoom by factor, clamped to [MinZoom, MaxZoom],
// keeping the page-space point under the screen pivot fixed.
func (v *Viewport) ZoomAt(sx, sy, factor float64) {
	next := v.Zoom * factor
	if next < MinZoom {
		next = MinZoom
	}
	if next > MaxZoom {
		next = MaxZoom
	}
	px, py := v.ToPage(sx, sy)
	v.Zoom = next
	v.PanX = sx - px*next
	v.PanY = sy - py*next
}

// Pan shifts the viewport by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}
