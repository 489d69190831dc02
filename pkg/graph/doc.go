// Package graph provides the directed graph that holds the blocks and
// arrows of a board.
//
// # Overview
//
// A [Graph] maps [VertexID] to a vertex carrying an arbitrary payload and
// two adjacency sets, incoming and outgoing. Edges are not stored as
// separate values: the edge a→b exists exactly when b is in a's outgoing
// set, and the graph keeps the mirror entry (a in b's incoming set) in
// step. [Edge] is only a transient (from, to) pair produced by iteration.
//
// # Basic Usage
//
//	g := graph.New[Block]()
//	a := g.NewVertex(Block{})
//	b := g.NewVertex(Block{})
//	_ = g.AddEdge(a, b)
//
//	if blk, ok := g.Entry(a); ok {
//	    blk.Selected = true
//	}
//
//	g.RemoveVertex(b) // also drops a→b
//
// # Identity
//
// Vertex ids are issued by a counter owned by the graph. The first id is
// 1, ids increase monotonically and are never reused after deletion, so a
// stale id can always be detected with [Graph.Contains] or [Graph.Entry].
//
// # Invariants
//
// After every exported mutation:
//
//   - adjacency is symmetric: b ∈ a.outgoing ⟺ a ∈ b.incoming
//   - no adjacency set names a vertex that is not in the graph
//   - at most one edge exists per ordered pair
//
// [Graph.Validate] checks both structural invariants and is used by the
// package tests after randomized operation sequences.
//
// # Ordering
//
// [Graph.Vertices] and [Graph.Edges] iterate in ascending id order so
// rendering and tests are deterministic.
//
// # Concurrency
//
// Graph is not safe for concurrent use. The editor processes one input
// event at a time and never mutates the graph from more than one
// goroutine.
package graph
