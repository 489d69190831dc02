package graph

import (
	"errors"
	"iter"
	"maps"
	"slices"
)

var (
	// ErrUnknownSource is returned by [Graph.AddEdge] when the from vertex
	// does not exist.
	ErrUnknownSource = errors.New("unknown source vertex")

	// ErrUnknownTarget is returned by [Graph.AddEdge] when the to vertex
	// does not exist.
	ErrUnknownTarget = errors.New("unknown target vertex")

	// ErrDanglingEdge is returned by [Graph.Validate] when an adjacency set
	// references a vertex that is not in the graph.
	ErrDanglingEdge = errors.New("adjacency references missing vertex")

	// ErrAsymmetricEdge is returned by [Graph.Validate] when an outgoing
	// entry has no matching incoming entry or vice versa.
	ErrAsymmetricEdge = errors.New("adjacency is not symmetric")
)

// VertexID identifies a vertex within one Graph. The zero value is never
// issued.
type VertexID uint64

// Edge is a directed pair of vertex ids.
type Edge struct {
	From VertexID
	To   VertexID
}

type set map[VertexID]struct{}

type vertex[T any] struct {
	data     T
	incoming set
	outgoing set
}

// Graph is a directed graph whose vertices carry a payload of type T.
//
// The zero value is not usable; create graphs with [New].
type Graph[T any] struct {
	last     VertexID
	vertices map[VertexID]*vertex[T]
	order    []VertexID // ascending, mirrors the keys of vertices
}

// New returns an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{vertices: make(map[VertexID]*vertex[T])}
}

// NewVertex stores data under a freshly issued id and returns the id.
// The new vertex has no edges.
func (g *Graph[T]) NewVertex(data T) VertexID {
	g.last++
	id := g.last
	g.vertices[id] = &vertex[T]{data: data, incoming: set{}, outgoing: set{}}
	g.order = append(g.order, id)
	return id
}

// RemoveVertex deletes the vertex and every edge touching it. It reports
// whether the vertex existed; removing an absent id is a no-op.
func (g *Graph[T]) RemoveVertex(id VertexID) bool {
	v, ok := g.vertices[id]
	if !ok {
		return false
	}
	delete(g.vertices, id)
	if i, found := slices.BinarySearch(g.order, id); found {
		g.order = slices.Delete(g.order, i, i+1)
	}

	for _, n := range slices.Collect(maps.Keys(v.incoming)) {
		if nb, ok := g.vertices[n]; ok {
			delete(nb.outgoing, id)
		}
	}
	for _, n := range slices.Collect(maps.Keys(v.outgoing)) {
		if nb, ok := g.vertices[n]; ok {
			delete(nb.incoming, id)
		}
	}
	return true
}

// AddEdge inserts the edge from→to. Both vertices must exist; adding an
// edge that is already present is a no-op. Self-loops are allowed.
func (g *Graph[T]) AddEdge(from, to VertexID) error {
	src, ok := g.vertices[from]
	if !ok {
		return ErrUnknownSource
	}
	dst, ok := g.vertices[to]
	if !ok {
		return ErrUnknownTarget
	}
	src.outgoing[to] = struct{}{}
	dst.incoming[from] = struct{}{}
	return nil
}

// RemoveEdge deletes the edge from→to and reports whether it existed.
func (g *Graph[T]) RemoveEdge(from, to VertexID) bool {
	if !g.HasEdge(from, to) {
		return false
	}
	delete(g.vertices[from].outgoing, to)
	delete(g.vertices[to].incoming, from)
	return true
}

// Entry returns a pointer to the payload of id, or nil and false if the
// vertex does not exist. The pointer stays valid until the vertex is
// removed; writes through it update the graph.
func (g *Graph[T]) Entry(id VertexID) (*T, bool) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, false
	}
	return &v.data, true
}

// Contains reports whether id is a vertex of the graph.
func (g *Graph[T]) Contains(id VertexID) bool {
	_, ok := g.vertices[id]
	return ok
}

// HasEdge reports whether the edge from→to exists.
func (g *Graph[T]) HasEdge(from, to VertexID) bool {
	v, ok := g.vertices[from]
	if !ok {
		return false
	}
	_, ok = v.outgoing[to]
	return ok
}

// Len returns the number of vertices.
func (g *Graph[T]) Len() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph[T]) EdgeCount() int {
	n := 0
	for _, v := range g.vertices {
		n += len(v.outgoing)
	}
	return n
}

// Outgoing returns the targets of edges leaving id in ascending order.
// Returns nil if the vertex has no outgoing edges or does not exist.
func (g *Graph[T]) Outgoing(id VertexID) []VertexID {
	v, ok := g.vertices[id]
	if !ok || len(v.outgoing) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(v.outgoing))
}

// Incoming returns the sources of edges entering id in ascending order.
// Returns nil if the vertex has no incoming edges or does not exist.
func (g *Graph[T]) Incoming(id VertexID) []VertexID {
	v, ok := g.vertices[id]
	if !ok || len(v.incoming) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(v.incoming))
}

// IDs returns a copy of all vertex ids in ascending order.
func (g *Graph[T]) IDs() []VertexID { return slices.Clone(g.order) }

// Vertices yields every vertex id with a pointer to its payload in
// ascending id order. Payloads may be modified during iteration, but
// vertices must not be added or removed until the loop ends; collect ids
// first with [Graph.IDs] when removal is needed.
func (g *Graph[T]) Vertices() iter.Seq2[VertexID, *T] {
	return func(yield func(VertexID, *T) bool) {
		for _, id := range g.order {
			v, ok := g.vertices[id]
			if !ok {
				continue
			}
			if !yield(id, &v.data) {
				return
			}
		}
	}
}

// Edges yields every edge ordered by source id, then target id. The
// graph must not be mutated during iteration.
func (g *Graph[T]) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, id := range g.order {
			v, ok := g.vertices[id]
			if !ok {
				continue
			}
			for _, to := range slices.Sorted(maps.Keys(v.outgoing)) {
				if !yield(Edge{From: id, To: to}) {
					return
				}
			}
		}
	}
}

// Validate checks that no adjacency set references a missing vertex and
// that every edge is recorded on both endpoints.
//
// Returns ErrDanglingEdge or ErrAsymmetricEdge on the first violation.
// A graph mutated only through its methods always validates.
func (g *Graph[T]) Validate() error {
	for id, v := range g.vertices {
		for to := range v.outgoing {
			dst, ok := g.vertices[to]
			if !ok {
				return ErrDanglingEdge
			}
			if _, ok := dst.incoming[id]; !ok {
				return ErrAsymmetricEdge
			}
		}
		for from := range v.incoming {
			src, ok := g.vertices[from]
			if !ok {
				return ErrDanglingEdge
			}
			if _, ok := src.outgoing[id]; !ok {
				return ErrAsymmetricEdge
			}
		}
	}
	return nil
}
