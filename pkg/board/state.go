package board

import (
	"fmt"

	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
)

// Modifier is the selection modifier attached to a block press.
type Modifier int

const (
	// ModifierNone replaces the selection.
	ModifierNone Modifier = iota
	// ModifierAdd extends the selection (Ctrl or Cmd held).
	ModifierAdd
)

func (m Modifier) String() string {
	if m == ModifierAdd {
		return "add"
	}
	return "none"
}

// State is one variant of the block interaction state. The set of
// implementations is closed.
type State interface {
	// Name returns a stable identifier, used in logs and metrics.
	Name() string
	fmt.Stringer
	isState()
}

// Basic is the idle state.
type Basic struct{}

// Predrag is entered when a block is pressed. The selection has been
// applied tentatively; whether it stands depends on whether the pointer
// moves before the button is released.
type Predrag struct {
	Clicked  graph.VertexID
	Modifier Modifier
}

// DraggingBlocks moves every selected block with the cursor.
type DraggingBlocks struct{}

// RectangleSelection tracks a marquee drag. Start is the press point and
// End follows the cursor.
type RectangleSelection struct {
	Start, End geom.Board
}

// Rect returns the normalized marquee.
func (s RectangleSelection) Rect() geom.Rect { return geom.NewRect(s.Start, s.End) }

// ArrowStart waits for the pointer to enter a target block.
type ArrowStart struct{}

// ArrowPreview shows ghost arrows from every selected block to Target.
type ArrowPreview struct {
	Target graph.VertexID
}

// ArrowFinish has locked Target and commits the arrows on release.
type ArrowFinish struct {
	Target graph.VertexID
}

func (Basic) Name() string              { return "basic" }
func (Predrag) Name() string            { return "predrag" }
func (DraggingBlocks) Name() string     { return "dragging_blocks" }
func (RectangleSelection) Name() string { return "rectangle_selection" }
func (ArrowStart) Name() string         { return "arrow_start" }
func (ArrowPreview) Name() string       { return "arrow_preview" }
func (ArrowFinish) Name() string        { return "arrow_finish" }

func (Basic) String() string { return "Basic" }
func (s Predrag) String() string {
	return fmt.Sprintf("Block %d pressed, preparing to drag (modifier %s)", s.Clicked, s.Modifier)
}
func (DraggingBlocks) String() string { return "Dragging blocks" }
func (s RectangleSelection) String() string {
	return fmt.Sprintf("Rectangle selection from %s to %s", s.Start, s.End)
}
func (ArrowStart) String() string { return "Arrow creation start" }
func (s ArrowPreview) String() string {
	return fmt.Sprintf("Arrow creation preview to block %d", s.Target)
}
func (s ArrowFinish) String() string {
	return fmt.Sprintf("Arrow creation finish to block %d", s.Target)
}

func (Basic) isState()              {}
func (Predrag) isState()            {}
func (DraggingBlocks) isState()     {}
func (RectangleSelection) isState() {}
func (ArrowStart) isState()         {}
func (ArrowPreview) isState()       {}
func (ArrowFinish) isState()        {}
