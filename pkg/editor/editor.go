// Package editor wires the viewbox and the board state machine into a
// single event sink.
//
// An [Editor] receives normalized events from a front-end, routes each one
// to the viewbox, the board or both, and reports whether the display must
// be redrawn:
//
//	ed := editor.New(editor.WithLogger(logger))
//	if ed.Handle(event.KeyDown{Key: event.KeyNew}) {
//	    redraw(ed.Scene(), ed.Viewbox().Rect())
//	}
//
// Events are processed one at a time and each call runs to completion.
// An Editor is not safe for concurrent use; front-ends that receive input
// on several goroutines must serialize calls to Handle.
package editor

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockboard/pkg/board"
	"github.com/matzehuels/blockboard/pkg/event"
	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/observability"
	"github.com/matzehuels/blockboard/pkg/viewbox"
)

// Editor is a single editing session.
type Editor struct {
	viewbox *viewbox.Viewbox
	board   *board.Machine
	cursor  geom.Viewport
	logger  *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger for the editor and its board.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height float64) Option {
	return func(e *Editor) { e.viewbox.SetSize(width, height) }
}

// New returns an editor with an empty board.
func New(opts ...Option) *Editor {
	e := &Editor{
		viewbox: viewbox.New(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.board = board.New(board.WithLogger(e.logger))
	return e
}

// Board returns the board state machine.
func (e *Editor) Board() *board.Machine { return e.board }

// Viewbox returns the viewbox.
func (e *Editor) Viewbox() *viewbox.Viewbox { return e.viewbox }

// Cursor returns the last known pointer position.
func (e *Editor) Cursor() geom.Viewport { return e.cursor }

// CursorBoard returns the pointer position in board space.
func (e *Editor) CursorBoard() geom.Board { return e.viewbox.ToBoard(e.cursor) }

// State returns the active board state.
func (e *Editor) State() board.State { return e.board.State() }

// Scene returns a render snapshot of the board.
func (e *Editor) Scene() board.Scene { return e.board.Scene() }

// Resize updates the viewport size.
func (e *Editor) Resize(width, height float64) { e.viewbox.SetSize(width, height) }

// Handle processes one event and reports whether a redraw is needed.
func (e *Editor) Handle(ev event.Event) bool {
	redraw := e.dispatch(ev)
	e.logger.Debug("event", "kind", ev.Kind(), "redraw", redraw)
	observability.Editor().OnEvent(ev.Kind(), redraw)
	return redraw
}

func (e *Editor) dispatch(ev event.Event) bool {
	switch ev := ev.(type) {
	case event.CursorMove:
		return e.moveCursor(ev.Pos)
	case event.MouseDown:
		// A press carries its own position; record it without
		// treating it as movement.
		e.cursor = ev.Pos
		switch ev.Button {
		case event.Primary:
			return e.board.HandleLeftPress(e.CursorBoard())
		case event.Auxiliary:
			return e.viewbox.PressMiddle()
		}
	case event.MouseUp:
		switch ev.Button {
		case event.Primary:
			return e.board.HandleLeftRelease()
		case event.Auxiliary:
			return e.viewbox.ReleaseMiddle()
		}
	case event.MouseWheel:
		return e.viewbox.Zoom(e.cursor, ev.DeltaY)
	case event.KeyDown:
		return e.board.HandleKeyDown(ev.Key, e.CursorBoard())
	case event.BlockMouseDown:
		switch ev.Button {
		case event.Primary:
			return e.board.HandleBlockMouseDown(ev.Block, modifier(ev.Mods))
		case event.Auxiliary:
			// blocks only capture the primary button; a middle press
			// over a block pans like anywhere else
			return e.viewbox.PressMiddle()
		}
	case event.BlockMouseOver:
		return e.board.HandleBlockMouseOver(ev.Block)
	case event.BlockMouseLeave:
		return e.board.HandleBlockMouseLeave()
	}
	return false
}

// moveCursor offers the movement to the viewbox first. The board only
// sees it when the viewbox is not panning.
func (e *Editor) moveCursor(to geom.Viewport) bool {
	from := e.cursor
	e.cursor = to
	oldBoard, newBoard := e.viewbox.ToBoard(from), e.viewbox.ToBoard(to)
	if e.viewbox.Move(from, to) {
		return true
	}
	return e.board.HandleMouseMove(oldBoard, newBoard)
}

func modifier(m event.Modifiers) board.Modifier {
	if m.Add() {
		return board.ModifierAdd
	}
	return board.ModifierNone
}
