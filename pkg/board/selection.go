package board

import (
	"iter"

	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
)

// ClearSelection deselects every block and returns how many were
// selected.
func (m *Machine) ClearSelection() int {
	n := 0
	for _, b := range m.graph.Vertices() {
		if b.Selected {
			b.Selected = false
			n++
		}
	}
	return n
}

// Selected yields the ids and copies of the selected blocks.
func (m *Machine) Selected() iter.Seq2[graph.VertexID, Block] {
	return func(yield func(graph.VertexID, Block) bool) {
		for id, b := range m.graph.Vertices() {
			if b.Selected && !yield(id, *b) {
				return
			}
		}
	}
}

// SelectedIDs returns the ids of the selected blocks in ascending order.
func (m *Machine) SelectedIDs() []graph.VertexID {
	var ids []graph.VertexID
	for id := range m.Selected() {
		ids = append(ids, id)
	}
	return ids
}

// HasSelection reports whether at least one block is selected.
func (m *Machine) HasSelection() bool {
	for range m.Selected() {
		return true
	}
	return false
}

func (m *Machine) selectBlock(id graph.VertexID) {
	if b, ok := m.graph.Entry(id); ok {
		b.Selected = true
	}
}

// selectOverlapping makes the selection exactly the blocks whose bounds
// overlap r.
func (m *Machine) selectOverlapping(r geom.Rect) {
	m.ClearSelection()
	for _, b := range m.graph.Vertices() {
		br := b.Rect()
		if geom.Overlaps(r.Min, r.Max, br.Min, br.Max) {
			b.Selected = true
		}
	}
}
