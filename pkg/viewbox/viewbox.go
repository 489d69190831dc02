// Package viewbox maps viewport pixels to board coordinates.
//
// A [Viewbox] holds the board point shown at the viewport's top-left
// corner and an index into a fixed table of zoom factors. Zooming moves
// one table step at a time and keeps the board point under the cursor
// fixed on screen. A small two-state machine ([Basic] and [Dragged])
// tracks middle-button panning.
package viewbox

import (
	"fmt"

	"github.com/matzehuels/blockboard/pkg/geom"
)

// Scales is the discrete zoom table. Index DefaultScaleIndex is 1:1.
var Scales = [...]float64{0.25, 0.33, 0.5, 0.66, 0.75, 0.9, 1.0, 1.1, 1.2, 1.5, 2.0, 3.0, 4.0}

// DefaultScaleIndex is the index of the 1.0 entry in Scales.
const DefaultScaleIndex = 6

// Default viewport size in pixels, used until SetSize is called.
const (
	DefaultWidth  = 1280.0
	DefaultHeight = 800.0
)

// Mode is the panning sub-state of a viewbox.
type Mode int

const (
	// Basic is the idle mode.
	Basic Mode = iota
	// Dragged means the middle button is held and cursor moves pan.
	Dragged
)

func (m Mode) String() string {
	switch m {
	case Basic:
		return "Basic"
	case Dragged:
		return "Dragged"
	default:
		return "Unknown"
	}
}

// Viewbox is the board/viewport transform.
//
// The zero value is not usable; create viewboxes with [New].
type Viewbox struct {
	pos        geom.Board
	scaleIndex int
	width      float64
	height     float64
	mode       Mode
}

// New returns a viewbox at the board origin with 1:1 zoom and the
// default viewport size.
func New() *Viewbox {
	return &Viewbox{
		scaleIndex: DefaultScaleIndex,
		width:      DefaultWidth,
		height:     DefaultHeight,
	}
}

// Pos returns the board point at the top-left corner of the viewport.
func (v *Viewbox) Pos() geom.Board { return v.pos }

// ScaleIndex returns the current index into Scales.
func (v *Viewbox) ScaleIndex() int { return v.scaleIndex }

// Scale returns the current zoom factor (viewport pixels per board unit).
func (v *Viewbox) Scale() float64 { return Scales[v.scaleIndex] }

// Mode returns the panning sub-state.
func (v *Viewbox) Mode() Mode { return v.mode }

// SetSize records the viewport size in pixels. Non-positive values are
// ignored.
func (v *Viewbox) SetSize(width, height float64) {
	if width > 0 {
		v.width = width
	}
	if height > 0 {
		v.height = height
	}
}

// Size returns the viewport size in pixels.
func (v *Viewbox) Size() (width, height float64) { return v.width, v.height }

// ToBoard converts a viewport point to board space.
func (v *Viewbox) ToBoard(p geom.Viewport) geom.Board {
	return p.AtScale(v.Scale()).Add(v.pos)
}

// ToViewport converts a board point to viewport space.
func (v *Viewbox) ToViewport(b geom.Board) geom.Viewport {
	return b.Sub(v.pos).AtScale(v.Scale())
}

// Pan shifts the viewbox by delta board units.
func (v *Viewbox) Pan(delta geom.Board) {
	v.pos = v.pos.Add(delta)
}

// Zoom moves one step through Scales, anchored at cursor: a positive
// deltaY selects the next smaller factor, a negative one the next larger,
// and the step is clamped at both ends of the table. The board point under
// cursor is the same before and after. Zoom reports whether the factor
// changed.
func (v *Viewbox) Zoom(cursor geom.Viewport, deltaY float64) bool {
	before := v.ToBoard(cursor)
	switch {
	case deltaY > 0 && v.scaleIndex > 0:
		v.scaleIndex--
	case deltaY < 0 && v.scaleIndex < len(Scales)-1:
		v.scaleIndex++
	default:
		return false
	}
	after := v.ToBoard(cursor)
	v.pos = v.pos.Add(before.Sub(after))
	return true
}

// Rect returns the visible region in board space.
func (v *Viewbox) Rect() geom.Rect {
	return geom.NewRect(v.ToBoard(geom.V(0, 0)), v.ToBoard(geom.V(v.width, v.height)))
}

// String formats the visible region as an SVG viewBox attribute value.
func (v *Viewbox) String() string {
	r := v.Rect()
	return fmt.Sprintf("%g %g %g %g", r.Min.X, r.Min.Y, r.Width(), r.Height())
}
