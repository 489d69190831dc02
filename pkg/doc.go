// Package pkg provides the core libraries for blockboard, a node-and-arrow
// diagram editor.
//
// # Overview
//
// A board is a directed graph of square blocks joined by arrows. Input
// arrives as normalized events, passes through a pannable, zoomable
// viewbox, and drives a state machine that selects, drags, creates,
// deletes and connects blocks. Renderers read an immutable scene.
//
//	raw input (terminal, HTTP, script)
//	         ↓
//	    [event] normalized events
//	         ↓
//	    [editor] routes each event
//	       ↙       ↘
//	[viewbox]     [board] state machine over [graph]
//	                 ↓
//	            board.Scene
//	       ↙       ↘
//	[render/svg]  [render/term]
//
// # Packages
//
// Core:
//   - [geom]: board and viewport vectors, rectangles, overlap tests
//   - [graph]: generic directed graph with stable vertex ids
//   - [viewbox]: pan offset and discrete zoom
//   - [board]: block interaction state machine and selection
//   - [editor]: glue between events, viewbox and board
//   - [event]: event vocabulary, JSON and TOML wire forms
//
// Output:
//   - [render/svg]: SVG documents
//   - [render/term]: terminal cells styled with lipgloss
//
// Serving:
//   - [session]: editor sessions with expiry
//   - [httputil]: JSON responses and request instrumentation
//   - [metrics]: Prometheus collectors
//   - [observability]: hooks the core reports through
//   - [errors]: coded errors and validation
//   - [buildinfo]: version metadata
//
// # Quick Start
//
//	ed := editor.New(editor.WithViewport(800, 600))
//	ed.Handle(event.CursorMove{Pos: geom.V(100, 100)})
//	ed.Handle(event.KeyDown{Key: event.KeyNew})
//	doc := svg.Render(ed.Scene(), ed.Viewbox().Rect())
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/geom
// [graph]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/graph
// [viewbox]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/viewbox
// [board]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/board
// [editor]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/editor
// [event]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/event
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/render/svg
// [render/term]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/render/term
// [session]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/session
// [httputil]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/httputil
// [metrics]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/metrics
// [observability]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/blockboard/pkg/buildinfo
package pkg
