package event

import (
	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
)

// Button identifies a mouse button.
type Button int

const (
	// Primary is the left mouse button.
	Primary Button = 0
	// Auxiliary is the middle mouse button.
	Auxiliary Button = 1
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Auxiliary:
		return "auxiliary"
	default:
		return "other"
	}
}

// Modifiers is a bit set of keyboard modifiers held during an event.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m is set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// Add reports whether the modifier that extends a selection is held.
// Both Ctrl and Meta (Cmd on macOS) count.
func (mods Modifiers) Add() bool { return mods&(ModCtrl|ModMeta) != 0 }

// Recognized keys. Other keys are passed through and ignored by the board.
const (
	KeyArrow  = "a"
	KeyNew    = "n"
	KeyDelete = "Delete"
	KeyEscape = "Escape"
)

// Kind names, shared with the wire form.
const (
	KindCursorMove      = "cursor_move"
	KindMouseDown       = "mouse_down"
	KindMouseUp         = "mouse_up"
	KindMouseWheel      = "mouse_wheel"
	KindKeyDown         = "key_down"
	KindBlockMouseDown  = "block_mouse_down"
	KindBlockMouseOver  = "block_mouse_over"
	KindBlockMouseLeave = "block_mouse_leave"
)

// Event is a normalized input event. The set of implementations is closed.
type Event interface {
	// Kind returns the wire type name of the event.
	Kind() string
	isEvent()
}

// CursorMove reports the pointer position.
type CursorMove struct {
	Pos geom.Viewport
}

// MouseDown is a button press on empty canvas.
type MouseDown struct {
	Button Button
	Pos    geom.Viewport
	Mods   Modifiers
}

// MouseUp is a button release anywhere.
type MouseUp struct {
	Button Button
}

// MouseWheel carries the vertical wheel delta. Negative values zoom in.
type MouseWheel struct {
	DeltaY float64
}

// KeyDown is a key press.
type KeyDown struct {
	Key  string
	Mods Modifiers
}

// BlockMouseDown is a button press on a block. It never also produces a
// canvas MouseDown.
type BlockMouseDown struct {
	Button Button
	Block  graph.VertexID
	Mods   Modifiers
}

// BlockMouseOver reports that the pointer entered a block.
type BlockMouseOver struct {
	Block graph.VertexID
}

// BlockMouseLeave reports that the pointer left the block it was over.
type BlockMouseLeave struct{}

func (CursorMove) Kind() string      { return KindCursorMove }
func (MouseDown) Kind() string       { return KindMouseDown }
func (MouseUp) Kind() string         { return KindMouseUp }
func (MouseWheel) Kind() string      { return KindMouseWheel }
func (KeyDown) Kind() string         { return KindKeyDown }
func (BlockMouseDown) Kind() string  { return KindBlockMouseDown }
func (BlockMouseOver) Kind() string  { return KindBlockMouseOver }
func (BlockMouseLeave) Kind() string { return KindBlockMouseLeave }

func (CursorMove) isEvent()      {}
func (MouseDown) isEvent()       {}
func (MouseUp) isEvent()         {}
func (MouseWheel) isEvent()      {}
func (KeyDown) isEvent()         {}
func (BlockMouseDown) isEvent()  {}
func (BlockMouseOver) isEvent()  {}
func (BlockMouseLeave) isEvent() {}
