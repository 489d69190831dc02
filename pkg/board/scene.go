package board

import (
	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
)

// BlockView is the render-ready description of one block.
type BlockView struct {
	ID       graph.VertexID
	Center   geom.Board
	TopLeft  geom.Board
	Size     geom.Board
	Selected bool
}

// Arrow is a directed connection drawn as a cubic Bezier from Start.Point
// through Start.Handle() and End.Handle() to End.Point.
type Arrow struct {
	From, To graph.VertexID
	Start    ControlPoint
	End      ControlPoint
}

// NewArrow returns the arrow leaving the right edge of from and entering
// the left edge of to.
func NewArrow(fromID graph.VertexID, from Block, toID graph.VertexID, to Block) Arrow {
	return Arrow{From: fromID, To: toID, Start: from.out(), End: to.in()}
}

// Scene is a snapshot of what the board looks like. It shares no memory
// with the machine.
type Scene struct {
	// State is the name of the active state.
	State  string
	Blocks []BlockView
	Arrows []Arrow
	// Ghosts are the provisional arrows shown in ArrowPreview.
	Ghosts []Arrow
	// Marquee is set while rectangle-selecting.
	Marquee *geom.Rect
}

// Scene captures the current board for rendering.
func (m *Machine) Scene() Scene {
	sc := Scene{State: m.state.Name()}
	for id, b := range m.graph.Vertices() {
		sc.Blocks = append(sc.Blocks, BlockView{
			ID:       id,
			Center:   b.Center,
			TopLeft:  b.TopLeft(),
			Size:     b.Size(),
			Selected: b.Selected,
		})
	}
	for e := range m.graph.Edges() {
		if a, ok := m.arrow(e.From, e.To); ok {
			sc.Arrows = append(sc.Arrows, a)
		}
	}
	switch s := m.state.(type) {
	case RectangleSelection:
		r := s.Rect()
		sc.Marquee = &r
	case ArrowPreview:
		for id := range m.Selected() {
			if a, ok := m.arrow(id, s.Target); ok {
				sc.Ghosts = append(sc.Ghosts, a)
			}
		}
	}
	return sc
}

func (m *Machine) arrow(from, to graph.VertexID) (Arrow, bool) {
	fb, ok := m.graph.Entry(from)
	if !ok {
		return Arrow{}, false
	}
	tb, ok := m.graph.Entry(to)
	if !ok {
		return Arrow{}, false
	}
	return NewArrow(from, *fb, to, *tb), true
}
