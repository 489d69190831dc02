package geom

import "fmt"

// Rect is an axis-aligned rectangle in board space. Min is the top-left
// corner and Max the bottom-right corner; use [NewRect] to build one from
// two arbitrary corners.
type Rect struct {
	Min, Max Board
}

// NewRect normalizes two opposite corners into a Rect.
func NewRect(a, b Board) Rect {
	return Rect{Min: a.Min(b), Max: a.Max(b)}
}

// RectAround returns the rectangle of the given size centered on c.
func RectAround(c, size Board) Rect {
	half := size.Div(2)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// Width returns Max.X - Min.X.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns the width and height as a board vector.
func (r Rect) Size() Board { return r.Max.Sub(r.Min) }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Board { return r.Min.Add(r.Max).Div(2) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Board) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and o share at least one point. Touching
// edges count as overlapping.
func (r Rect) Overlaps(o Rect) bool {
	if r.Min.X > o.Max.X || o.Min.X > r.Max.X {
		return false
	}
	if r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y {
		return false
	}
	return true
}

func (r Rect) String() string {
	return fmt.Sprintf("rect(%g, %g, %g, %g)", r.Min.X, r.Min.Y, r.Width(), r.Height())
}

// Overlaps normalizes the corner pairs (a1, a2) and (b1, b2) and reports
// whether the resulting rectangles overlap.
func Overlaps(a1, a2, b1, b2 Board) bool {
	return NewRect(a1, a2).Overlaps(NewRect(b1, b2))
}
