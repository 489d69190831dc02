package graph

import (
	"errors"
	"slices"
	"testing"
)

type payload struct {
	Name string
}

func collectEdges[T any](g *Graph[T]) []Edge {
	return slices.Collect(g.Edges())
}

func TestNewVertexIDs(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{"a"})
	b := g.NewVertex(payload{"b"})
	if a == 0 || b == 0 {
		t.Fatal("zero id issued")
	}
	if a == b {
		t.Fatal("duplicate id issued")
	}
	if b <= a {
		t.Errorf("ids not increasing: %d then %d", a, b)
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
	if got := g.Outgoing(a); got != nil {
		t.Errorf("new vertex has outgoing %v", got)
	}
}

func TestIDsNotReused(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	g.RemoveVertex(a)
	b := g.NewVertex(payload{})
	if a == b {
		t.Errorf("id %d reused after removal", a)
	}
}

func TestEntry(t *testing.T) {
	g := New[payload]()
	id := g.NewVertex(payload{"before"})

	p, ok := g.Entry(id)
	if !ok {
		t.Fatal("Entry missing for live vertex")
	}
	p.Name = "after"

	p2, _ := g.Entry(id)
	if p2.Name != "after" {
		t.Errorf("write through entry lost: %q", p2.Name)
	}

	if _, ok := g.Entry(id + 100); ok {
		t.Error("Entry returned ok for unknown id")
	}
}

func TestAddEdge(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	b := g.NewVertex(payload{})

	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if !g.HasEdge(a, b) || g.HasEdge(b, a) {
		t.Error("edge direction wrong")
	}
	if got := g.Incoming(b); !slices.Equal(got, []VertexID{a}) {
		t.Errorf("Incoming(b) = %v", got)
	}

	if err := g.AddEdge(a, 999); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("unknown target err = %v", err)
	}
	if err := g.AddEdge(999, a); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("unknown source err = %v", err)
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	b := g.NewVertex(payload{})

	_ = g.AddEdge(a, b)
	out1, in1 := g.Outgoing(a), g.Incoming(b)
	_ = g.AddEdge(a, b)

	if !slices.Equal(out1, g.Outgoing(a)) || !slices.Equal(in1, g.Incoming(b)) {
		t.Error("second AddEdge changed adjacency")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestRemoveVertexCascades(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	v := g.NewVertex(payload{})
	c := g.NewVertex(payload{})
	_ = g.AddEdge(a, v)
	_ = g.AddEdge(v, c)
	_ = g.AddEdge(c, v)
	_ = g.AddEdge(a, c)

	if !g.RemoveVertex(v) {
		t.Fatal("RemoveVertex returned false for live vertex")
	}
	for _, id := range g.IDs() {
		if slices.Contains(g.Outgoing(id), v) || slices.Contains(g.Incoming(id), v) {
			t.Errorf("vertex %d still references removed %d", id, v)
		}
	}
	if got := collectEdges(g); !slices.Equal(got, []Edge{{a, c}}) {
		t.Errorf("edges after removal = %v", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRemoveVertexSelfLoop(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	_ = g.AddEdge(a, a)
	g.RemoveVertex(a)
	if g.Len() != 0 || g.EdgeCount() != 0 {
		t.Errorf("Len=%d EdgeCount=%d after removing self-loop", g.Len(), g.EdgeCount())
	}
}

func TestRemoveVertexAbsent(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	if g.RemoveVertex(a + 1) {
		t.Error("RemoveVertex reported success for absent id")
	}
	if g.Len() != 1 {
		t.Error("absent removal changed graph")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	b := g.NewVertex(payload{})
	_ = g.AddEdge(a, b)

	if !g.RemoveEdge(a, b) {
		t.Fatal("RemoveEdge returned false")
	}
	if g.RemoveEdge(a, b) {
		t.Error("second RemoveEdge returned true")
	}
	if g.Incoming(b) != nil {
		t.Error("incoming entry left behind")
	}
}

func TestIterationOrder(t *testing.T) {
	g := New[payload]()
	ids := make([]VertexID, 5)
	for i := range ids {
		ids[i] = g.NewVertex(payload{})
	}
	g.RemoveVertex(ids[2])
	_ = g.AddEdge(ids[4], ids[0])
	_ = g.AddEdge(ids[0], ids[3])
	_ = g.AddEdge(ids[0], ids[1])

	var got []VertexID
	for id := range g.Vertices() {
		got = append(got, id)
	}
	want := []VertexID{ids[0], ids[1], ids[3], ids[4]}
	if !slices.Equal(got, want) {
		t.Errorf("Vertices order = %v, want %v", got, want)
	}

	wantEdges := []Edge{{ids[0], ids[1]}, {ids[0], ids[3]}, {ids[4], ids[0]}}
	if edges := collectEdges(g); !slices.Equal(edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", edges, wantEdges)
	}
}

func TestVerticesEarlyBreak(t *testing.T) {
	g := New[payload]()
	for range 3 {
		g.NewVertex(payload{})
	}
	n := 0
	for range g.Vertices() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("visited %d vertices after break", n)
	}
}

func TestVerticesMutatePayload(t *testing.T) {
	g := New[payload]()
	a := g.NewVertex(payload{})
	for _, p := range g.Vertices() {
		p.Name = "seen"
	}
	p, _ := g.Entry(a)
	if p.Name != "seen" {
		t.Error("payload write during iteration lost")
	}
}
