package scene

import (
	"math"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// Affine is a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps (x, y) to (A*x + B*y + C, D*x + E*y + F).
//
// The zero value is not the identity; use [Identity].
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation returns a translation by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, C: dx, E: 1, F: dy}
}

// Rotation returns a rotation about the origin by deg degrees.
// Positive angles turn +x towards +y, which is clockwise on screen.
func Rotation(deg float64) Affine {
	sin, cos := sincos(deg)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// Scaling returns an axis-aligned scaling about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Reflection returns the reflection across the infinite line through a and b.
func Reflection(a, b Point) (Affine, error) {
	ax, ay := a.Abs()
	bx, by := b.Abs()
	dx, dy := bx-ax, by-ay
	n := math.Hypot(dx, dy)
	if n == 0 {
		return Affine{}, errors.GeometryError("mirror axis is degenerate: both points are (%g, %g)", ax, ay)
	}
	ux, uy := dx/n, dy/n
	c2 := ux*ux - uy*uy
	s2 := 2 * ux * uy
	return Affine{A: c2, B: s2, D: s2, E: -c2}.Around(Pt(ax, ay)), nil
}

// Multiply returns m * o: the map that applies o first, then m.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Around conjugates m so that it acts about c instead of the origin:
// T(c) * m * T(-c).
func (m Affine) Around(c Point) Affine {
	cx, cy := c.Abs()
	return Translation(cx, cy).Multiply(m).Multiply(Translation(-cx, -cy))
}

// Apply maps the coordinates (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ApplyVector maps (x, y) ignoring the translation part.
func (m Affine) ApplyVector(x, y float64) (float64, float64) {
	return m.A*x + m.B*y, m.D*x + m.E*y
}

// Det returns the determinant of the linear part.
func (m Affine) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse of m. The second result is false when m is
// singular.
func (m Affine) Invert() (Affine, bool) {
	det := m.Det()
	if det == 0 {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// IsSimilarity reports whether the linear part of m is a uniform scale
// combined with a rotation and possibly a reflection.
func (m Affine) IsSimilarity() bool {
	return similar(m.A, m.E) && similar(m.B, -m.D) ||
		similar(m.A, -m.E) && similar(m.B, m.D)
}

// similarity decomposes a similarity map into its scale factor and rotation
// angle in degrees. For reflections (negative determinant) the angle is
// that of the image of the +x axis.
func (m Affine) similarity() (k, rot float64, reflect bool) {
	k = math.Hypot(m.A, m.D)
	rot = atan2deg(m.D, m.A)
	return k, rot, m.Det() < 0
}

const epsilon = 1e-9

func similar(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// sincos returns the sine and cosine of deg degrees, exact for multiples of
// 90 so that quarter turns do not leave rounding residue in coordinates.
func sincos(deg float64) (sin, cos float64) {
	if r := math.Mod(deg, 90); r == 0 {
		switch q := int(math.Mod(deg/90, 4)); q {
		case 0:
			return 0, 1
		case 1, -3:
			return 1, 0
		case 2, -2:
			return 0, -1
		default:
			return -1, 0
		}
	}
	return math.Sincos(radians(deg))
}

// atan2deg returns the angle of (x, y) in degrees, exact on the axes.
func atan2deg(y, x float64) float64 {
	switch {
	case y == 0 && x >= 0:
		return 0
	case y == 0:
		return 180
	case x == 0 && y > 0:
		return 90
	case x == 0:
		return -90
	}
	return degrees(math.Atan2(y, x))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
