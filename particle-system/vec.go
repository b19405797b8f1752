package particle

import "math"

// Vec is a point or a displacement in world space. The world is centered
// on {0, 0} with the y axis pointing up.
type Vec struct {
	X, Y float64
}

// Add returns v+u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v.X + u.X, v.Y + u.Y}
}

// Sub returns v-u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v.X - u.X, v.Y - u.Y}
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Dist2 returns the squared distance between v and u.
func (v Vec) Dist2(u Vec) float64 {
	dx, dy := v.X-u.X, v.Y-u.Y
	return dx*dx + dy*dy
}

// FromAngle returns the vector of length mag pointing deg degrees
// counter-clockwise from the positive x axis.
func FromAngle(deg, mag float64) Vec {
	rad := deg * math.Pi / 180
	return Vec{math.Cos(rad) * mag, math.Sin(rad) * mag}
}

// Rect is an axis aligned rectangle.
type Rect struct {
	Min, Max Vec
}

// NewRect returns a w*h rectangle centered on the world origin.
func NewRect(w, h float64) Rect {
	return Rect{
		Min: Vec{-w / 2, -h / 2},
		Max: Vec{w / 2, h / 2},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
