package board

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
)

var keys = []string{KeyArrow, KeyNew, KeyDelete, KeyEscape, "q"}

// drive feeds a random input program to m. Block ids are drawn from a
// small range so that stale ids come up regularly.
func drive(m *Machine, ops []uint8) {
	id := func(b uint8) graph.VertexID { return graph.VertexID(b%6) + 1 }
	pos := func(a, b uint8) geom.Board { return geom.B(float64(a)*8-500, float64(b)*8-500) }
	for i := 0; i+2 < len(ops); i += 3 {
		a, b := ops[i+1], ops[i+2]
		switch ops[i] % 8 {
		case 0:
			m.HandleMouseMove(pos(a, b), pos(b, a))
		case 1:
			m.HandleLeftPress(pos(a, b))
		case 2:
			m.HandleLeftRelease()
		case 3:
			m.HandleBlockMouseDown(id(a), Modifier(b%2))
		case 4:
			m.HandleBlockMouseOver(id(a))
		case 5:
			m.HandleBlockMouseLeave()
		default:
			m.HandleKeyDown(keys[int(a)%len(keys)], pos(a, b))
		}
	}
}

func TestMachineProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	program := gen.SliceOfN(90, gen.UInt8())

	properties.Property("graph stays consistent under any input", prop.ForAll(
		func(ops []uint8) bool {
			m := New()
			drive(m, ops)
			return m.graph.Validate() == nil
		},
		program,
	))

	properties.Property("clear selection leaves nothing selected", prop.ForAll(
		func(ops []uint8) bool {
			m := New()
			drive(m, ops)
			m.ClearSelection()
			for _, b := range m.Blocks() {
				if b.Selected {
					return false
				}
			}
			return !m.HasSelection()
		},
		program,
	))

	properties.Property("arrow targets stay live", prop.ForAll(
		func(ops []uint8) bool {
			m := New()
			drive(m, ops)
			switch s := m.State().(type) {
			case ArrowPreview:
				_, ok := m.Block(s.Target)
				return ok
			case ArrowFinish:
				_, ok := m.Block(s.Target)
				return ok
			}
			return true
		},
		program,
	))

	properties.TestingRun(t)
}
