package board

import (
	"testing"

	"github.com/matzehuels/blockboard/pkg/geom"
)

func TestScene_ArrowControlPoints(t *testing.T) {
	m := New()
	ids := place(t, m, geom.B(0, 0), geom.B(300, 50))
	_ = m.graph.AddEdge(ids[0], ids[1])

	sc := m.Scene()
	if sc.State != "basic" {
		t.Errorf("State = %q", sc.State)
	}
	if len(sc.Arrows) != 1 {
		t.Fatalf("len(Arrows) = %d, want 1", len(sc.Arrows))
	}
	a := sc.Arrows[0]
	if a.Start.Point != geom.B(75, 0) || a.Start.Vector != geom.B(75, 0) {
		t.Errorf("Start = %+v", a.Start)
	}
	if a.End.Point != geom.B(225, 50) || a.End.Vector != geom.B(-75, 0) {
		t.Errorf("End = %+v", a.End)
	}
	if a.Start.Handle() != geom.B(150, 0) || a.End.Handle() != geom.B(150, 50) {
		t.Errorf("handles = %s, %s", a.Start.Handle(), a.End.Handle())
	}
}

func TestScene_Blocks(t *testing.T) {
	m := New()
	m.HandleKeyDown(KeyNew, geom.B(100, 100))

	sc := m.Scene()
	if len(sc.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d", len(sc.Blocks))
	}
	b := sc.Blocks[0]
	if b.TopLeft != geom.B(25, 25) || b.Size != geom.B(BlockSize, BlockSize) || !b.Selected {
		t.Errorf("block = %+v", b)
	}
	if sc.Marquee != nil || sc.Ghosts != nil {
		t.Error("no marquee or ghosts expected in basic state")
	}
}

func TestScene_Marquee(t *testing.T) {
	m := New()
	m.HandleLeftPress(geom.B(50, 50))
	m.HandleMouseMove(geom.B(50, 50), geom.B(-10, 20))

	sc := m.Scene()
	if sc.Marquee == nil {
		t.Fatal("Marquee = nil")
	}
	want := geom.NewRect(geom.B(-10, 20), geom.B(50, 50))
	if *sc.Marquee != want {
		t.Errorf("Marquee = %s, want %s", sc.Marquee, want)
	}
}

func TestScene_IsASnapshot(t *testing.T) {
	m := New()
	m.HandleKeyDown(KeyNew, geom.B(0, 0))
	sc := m.Scene()
	sc.Blocks[0].Selected = false

	if !m.HasSelection() {
		t.Error("editing a scene must not change the board")
	}
}
