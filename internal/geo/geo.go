// Package geo holds the planar geometry used by the physics simulator.
// Positions and velocities are simplefeatures XY values in world yards.
package geo

import (
	"errors"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrInvalidRect is returned when a rectangle has min > max on either axis.
var ErrInvalidRect = errors.New("invalid rectangle bounds")

// Dist returns the euclidean distance between a and b.
func Dist(a, b geom.XY) float64 {
	return b.Sub(a).Length()
}

// Unit returns the unit vector from a toward b, and false when a == b.
func Unit(a, b geom.XY) (geom.XY, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 || math.IsNaN(l) {
		return geom.XY{}, false
	}
	return d.Scale(1 / l), true
}

// Rect is an axis aligned field boundary.
type Rect struct {
	Min geom.XY
	Max geom.XY
}

// NewRect validates and builds a rectangle.
func NewRect(min, max geom.XY) (Rect, error) {
	if min.X > max.X || min.Y > max.Y {
		return Rect{}, ErrInvalidRect
	}
	return Rect{Min: min, Max: max}, nil
}

// Clamp returns p moved into the rectangle.
func (r Rect) Clamp(p geom.XY) geom.XY {
	return geom.XY{
		X: Clamp(p.X, r.Min.X, r.Max.X),
		Y: Clamp(p.Y, r.Min.Y, r.Max.Y),
	}
}

// Contains reports whether p lies inside or on the boundary.
func (r Rect) Contains(p geom.XY) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
