package geom

import "math"

// Matrix is a 2D affine transformation in the Canvas2D layout
// [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix for an angle in degrees.
func Rotate(degrees float64) Matrix {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply composes two matrices: the result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyRect transforms a rect and returns its axis-aligned bounding box.
func (m Matrix) ApplyRect(r Rect) Rect {
	x0, y0 := m.Apply(r.X, r.Y)
	x1, y1 := m.Apply(r.X+r.Width, r.Y)
	x2, y2 := m.Apply(r.X+r.Width, r.Y+r.Height)
	x3, y3 := m.Apply(r.X, r.Y+r.Height)

	minX := min(x0, min(x1, min(x2, x3)))
	minY := min(y0, min(y1, min(y2, y3)))
	maxX := max(x0, max(x1, max(x2, x3)))
	maxY := max(y0, max(y1, max(y2, y3)))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Invert returns the inverse, or Identity if the matrix is singular.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity()
	}
	inv := 1.0 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// ElementTransform composes the placement matrix for an element:
// Translate(x, y) * Rotate(r) * Scale(sx, sy). Rotation is modeled in the
// document even though the editor exposes no rotation handle.
func ElementTransform(x, y, sx, sy, rotationDegrees float64) Matrix {
	return Translate(x, y).Multiply(Rotate(rotationDegrees)).Multiply(Scale(sx, sy))
}
