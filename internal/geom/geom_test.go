package geom

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestFromCornersNormalizes(t *testing.T) {
	r := FromCorners(100, 80, 20, 30)
	if r.X != 20 || r.Y != 30 || r.Width != 80 || r.Height != 50 {
		t.Fatalf("unexpected rect: %+v", r)
	}
	if got := FromCorners(5, 5, 5, 5); !got.IsEmpty() {
		t.Fatalf("degenerate corners should give an empty rect, got %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 10) || !r.Contains(30, 30) {
		t.Fatal("edges must count as inside")
	}
	if r.Contains(9.999, 10) || r.Contains(10, 30.001) {
		t.Fatal("points outside the rect reported inside")
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if !outer.ContainsRect(Rect{X: 10, Y: 10, Width: 80, Height: 80}) {
		t.Fatal("fully inner rect must be contained")
	}
	if !outer.ContainsRect(outer) {
		t.Fatal("a rect contains itself")
	}
	// Overlap is not containment.
	if outer.ContainsRect(Rect{X: 90, Y: 90, Width: 20, Height: 20}) {
		t.Fatal("partially overlapping rect reported contained")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Fatal("overlapping rects must intersect")
	}
	// Touching edges do not overlap.
	if a.Intersects(Rect{X: 10, Y: 0, Width: 10, Height: 10}) {
		t.Fatal("edge-adjacent rects reported intersecting")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 30, Width: 10, Height: 10}
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 40 {
		t.Fatalf("unexpected union: %+v", u)
	}
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("union with empty rect must be identity, got %+v", got)
	}
}

func TestMatrixApplyRectRotation(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 20}
	bounds := Rotate(90).ApplyRect(r)
	if !approx(bounds.Width, 20) || !approx(bounds.Height, 10) {
		t.Fatalf("90 degree bounds = %vx%v, want 20x10", bounds.Width, bounds.Height)
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := ElementTransform(35, -12, 1.5, 0.75, 30)
	inv := m.Invert()
	x, y := inv.Apply(m.Apply(17, 23))
	if !approx(x, 17) || !approx(y, 23) {
		t.Fatalf("round trip gave (%v, %v), want (17, 23)", x, y)
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	if got := Scale(0, 1).Invert(); got != Identity() {
		t.Fatalf("singular inverse must fall back to identity, got %v", got)
	}
}

func TestElementTransformOrder(t *testing.T) {
	// Translate, then rotate, then scale: the local origin lands on the
	// element position regardless of rotation or scale.
	m := ElementTransform(100, 50, 2, 3, 45)
	x, y := m.Apply(0, 0)
	if !approx(x, 100) || !approx(y, 50) {
		t.Fatalf("origin mapped to (%v, %v), want (100, 50)", x, y)
	}

	// Scale applies in local space before rotation.
	m = ElementTransform(0, 0, 2, 2, 90)
	x, y = m.Apply(10, 0)
	if !approx(x, 0) || !approx(y, 20) {
		t.Fatalf("point mapped to (%v, %v), want (0, 20)", x, y)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Zoom: 2, PanX: 30, PanY: -10}
	sx, sy := v.ToScreen(v.ToPage(123, 456))
	if !approx(sx, 123) || !approx(sy, 456) {
		t.Fatalf("round trip gave (%v, %v), want (123, 456)", sx, sy)
	}
}

func TestZoomAtKeepsPivotFixed(t *testing.T) {
	v := NewViewport()
	v.Pan(40, 25)
	px, py := v.ToPage(200, 150)

	v.ZoomAt(200, 150, 1.5)
	gx, gy := v.ToPage(200, 150)
	if !approx(gx, px) || !approx(gy, py) {
		t.Fatalf("pivot moved from (%v, %v) to (%v, %v)", px, py, gx, gy)
	}
}

func TestZoomAtClamped(t *testing.T) {
	v := NewViewport()
	v.ZoomAt(0, 0, 100)
	if v.Zoom != MaxZoom {
		t.Fatalf("expected zoom clamped to %v, got %v", MaxZoom, v.Zoom)
	}
	v.ZoomAt(0, 0, 1e-6)
	if v.Zoom != MinZoom {
		t.Fatalf("expected zoom clamped to %v, got %v", MinZoom, v.Zoom)
	}
}
