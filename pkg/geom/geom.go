package geom

import "math"

// Vec2 2D point or size in float64.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) MulVec(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec2) DivVec(o Vec2) Vec2 {
	return Vec2{v.X / o.X, v.Y / o.Y}
}

// ReflectY mirrors the point about the X axis (negates Y).
func (v Vec2) ReflectY() Vec2 {
	return Vec2{v.X, -v.Y}
}

func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)}
}

func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)}
}

func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return v.Max(lo).Min(hi)
}

// MaxElement returns the larger coordinate.
func (v Vec2) MaxElement() float64 {
	return math.Max(v.X, v.Y)
}

// Rect axis-aligned rectangle. Min and Max are opposite corners with
// Min <= Max on both axes when built by FromCorners.
type Rect struct {
	Min, Max Vec2
}

// FromCorners builds a rect from any two opposite corners.
func FromCorners(p0, p1 Vec2) Rect {
	return Rect{Min: p0.Min(p1), Max: p0.Max(p1)}
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Size() Vec2 {
	return Vec2{r.Width(), r.Height()}
}

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Intersect returns the overlapping region, empty when disjoint.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{Min: r.Min.Max(o.Min), Max: r.Max.Min(o.Max)}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y {
		return Rect{}
	}
	return out
}

func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
