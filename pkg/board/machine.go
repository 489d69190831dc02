package board

import (
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
	"github.com/matzehuels/blockboard/pkg/observability"
)

// Keys recognized by [Machine.HandleKeyDown].
const (
	KeyArrow  = "a"
	KeyNew    = "n"
	KeyDelete = "Delete"
	KeyEscape = "Escape"
)

// Machine is the block interaction state machine. It owns the board graph.
//
// Every Handle method processes one input to completion and reports
// whether the board changed in a way that needs a redraw. A Machine is
// not safe for concurrent use.
type Machine struct {
	graph  *graph.Graph[Block]
	state  State
	logger *log.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for transition and diagnostic messages.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns an empty board in the Basic state.
func New(opts ...Option) *Machine {
	m := &Machine{
		graph:  graph.New[Block](),
		state:  Basic{},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Block returns a copy of the block with the given id.
func (m *Machine) Block(id graph.VertexID) (Block, bool) {
	b, ok := m.graph.Entry(id)
	if !ok {
		return Block{}, false
	}
	return *b, true
}

// Blocks yields copies of all blocks in ascending id order.
func (m *Machine) Blocks() iter.Seq2[graph.VertexID, Block] {
	return func(yield func(graph.VertexID, Block) bool) {
		for id, b := range m.graph.Vertices() {
			if !yield(id, *b) {
				return
			}
		}
	}
}

// Edges yields every arrow as a (from, to) pair.
func (m *Machine) Edges() iter.Seq[graph.Edge] { return m.graph.Edges() }

// HasEdge reports whether the arrow from → to exists.
func (m *Machine) HasEdge(from, to graph.VertexID) bool { return m.graph.HasEdge(from, to) }

// Len returns the number of blocks.
func (m *Machine) Len() int { return m.graph.Len() }

// EdgeCount returns the number of arrows.
func (m *Machine) EdgeCount() int { return m.graph.EdgeCount() }

// BlockAt returns the topmost block whose bounds contain p. Blocks with
// higher ids are drawn later and therefore win.
func (m *Machine) BlockAt(p geom.Board) (graph.VertexID, bool) {
	var (
		hit   graph.VertexID
		found bool
	)
	for id, b := range m.graph.Vertices() {
		if b.Rect().Contains(p) {
			hit, found = id, true
		}
	}
	return hit, found
}

func (m *Machine) setState(next State) {
	prev := m.state
	m.state = next
	if prev.Name() == next.Name() {
		return
	}
	m.logger.Debug("board state", "from", prev.Name(), "to", next)
	observability.Editor().OnTransition(prev.Name(), next.Name())
}

func (m *Machine) graphChanged() {
	observability.Editor().OnGraphChange(m.graph.Len(), m.graph.EdgeCount())
}

func (m *Machine) ignore(input string) bool {
	m.logger.Debug("input ignored", "input", input, "state", m.state.Name())
	return false
}

// HandleMouseMove processes a cursor move from one board point to another.
//
// In Predrag the first movement starts a drag; the same movement is then
// applied as drag delta within this call so that no distance is lost.
func (m *Machine) HandleMouseMove(from, to geom.Board) bool {
	switch s := m.state.(type) {
	case Predrag:
		m.setState(DraggingBlocks{})
		return m.HandleMouseMove(from, to)
	case DraggingBlocks:
		delta := to.Sub(from)
		for _, b := range m.graph.Vertices() {
			if b.Selected {
				b.Center = b.Center.Add(delta)
			}
		}
		return true
	case RectangleSelection:
		s.End = to
		m.state = s
		m.selectOverlapping(s.Rect())
		return true
	default:
		return false
	}
}

// HandleLeftPress processes a left button press on empty canvas.
func (m *Machine) HandleLeftPress(pos geom.Board) bool {
	if _, ok := m.state.(Basic); !ok {
		return m.ignore("left press")
	}
	m.ClearSelection()
	m.setState(RectangleSelection{Start: pos, End: pos})
	return true
}

// HandleLeftRelease processes a left button release.
func (m *Machine) HandleLeftRelease() bool {
	switch s := m.state.(type) {
	case Predrag:
		// A press without movement settles the selection: with the
		// add modifier the block is toggled off, otherwise it becomes
		// the only selected block.
		switch s.Modifier {
		case ModifierAdd:
			if b, ok := m.graph.Entry(s.Clicked); ok {
				b.Selected = false
			}
		default:
			m.ClearSelection()
			m.selectBlock(s.Clicked)
		}
		m.setState(Basic{})
		return true
	case DraggingBlocks:
		m.setState(Basic{})
		return true
	case RectangleSelection:
		m.selectOverlapping(s.Rect())
		m.setState(Basic{})
		return true
	case ArrowFinish:
		m.commitArrows(s.Target)
		m.setState(Basic{})
		return true
	default:
		return m.ignore("left release")
	}
}

// HandleBlockMouseDown processes a left button press on a block.
func (m *Machine) HandleBlockMouseDown(id graph.VertexID, mod Modifier) bool {
	if !m.graph.Contains(id) {
		m.logger.Debug("press on missing block", "block", id)
		return false
	}
	switch s := m.state.(type) {
	case Basic:
		b, _ := m.graph.Entry(id)
		if b.Selected {
			m.setState(Predrag{Clicked: id, Modifier: mod})
			return true
		}
		if mod == ModifierNone {
			m.ClearSelection()
		}
		b.Selected = true
		if mod == ModifierNone {
			m.setState(Predrag{Clicked: id, Modifier: mod})
		}
		return true
	case ArrowPreview:
		m.setState(ArrowFinish{Target: s.Target})
		return true
	default:
		return m.ignore("block press")
	}
}

// HandleBlockMouseOver processes the pointer entering a block.
func (m *Machine) HandleBlockMouseOver(id graph.VertexID) bool {
	if _, ok := m.state.(ArrowStart); !ok {
		return false
	}
	if !m.graph.Contains(id) {
		m.logger.Debug("hover on missing block", "block", id)
		return false
	}
	m.setState(ArrowPreview{Target: id})
	return true
}

// HandleBlockMouseLeave processes the pointer leaving a block.
func (m *Machine) HandleBlockMouseLeave() bool {
	if _, ok := m.state.(ArrowPreview); !ok {
		return false
	}
	m.setState(ArrowStart{})
	return true
}

// HandleKeyDown processes a key press. pos is the board-space cursor
// position, used as the center of new blocks.
func (m *Machine) HandleKeyDown(key string, pos geom.Board) bool {
	switch m.state.(type) {
	case Basic:
		switch key {
		case KeyArrow:
			if !m.HasSelection() {
				m.logger.Info("cannot create arrow: no selected blocks")
				return false
			}
			m.setState(ArrowStart{})
			return true
		case KeyNew:
			m.createBlock(pos)
			return true
		case KeyDelete:
			return m.removeSelected() > 0
		case KeyEscape:
			return m.ClearSelection() > 0
		}
	case ArrowStart, ArrowPreview, ArrowFinish:
		if key == KeyEscape {
			m.setState(Basic{})
			return true
		}
	}
	return false
}

func (m *Machine) createBlock(pos geom.Board) graph.VertexID {
	m.ClearSelection()
	id := m.graph.NewVertex(Block{Center: pos, Selected: true})
	m.logger.Debug("block created", "block", id, "center", pos)
	m.graphChanged()
	return id
}

func (m *Machine) removeSelected() int {
	ids := m.SelectedIDs()
	for _, id := range ids {
		m.graph.RemoveVertex(id)
	}
	if len(ids) > 0 {
		m.logger.Debug("blocks removed", "count", len(ids))
		m.graphChanged()
	}
	return len(ids)
}

func (m *Machine) commitArrows(target graph.VertexID) {
	if !m.graph.Contains(target) {
		m.logger.Debug("arrow target missing", "block", target)
		return
	}
	for _, src := range m.SelectedIDs() {
		// both endpoints were checked above
		_ = m.graph.AddEdge(src, target)
	}
	m.graphChanged()
}
