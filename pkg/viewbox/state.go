package viewbox

import "github.com/matzehuels/blockboard/pkg/geom"

// PressMiddle starts panning. It reports whether the mode changed.
func (v *Viewbox) PressMiddle() bool {
	if v.mode == Dragged {
		return false
	}
	v.mode = Dragged
	return true
}

// ReleaseMiddle stops panning. It reports whether the mode changed.
func (v *Viewbox) ReleaseMiddle() bool {
	if v.mode != Dragged {
		return false
	}
	v.mode = Basic
	return true
}

// Move handles a cursor move from one viewport point to another. While
// Dragged the board follows the cursor and Move returns true; in Basic it
// does nothing and returns false so the move can be handed to the board.
func (v *Viewbox) Move(from, to geom.Viewport) bool {
	if v.mode != Dragged {
		return false
	}
	v.Pan(v.ToBoard(from).Sub(v.ToBoard(to)))
	return true
}
