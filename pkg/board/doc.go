// Package board implements the block interaction state machine.
//
// A [Machine] owns the graph of blocks and interprets board-level input
// (cursor movement in board space, left button press and release, block
// pointer events and key presses) against its current [State]. It is the
// only component that mutates blocks, arrows and the selection.
//
// # States
//
// Exactly one state is active at a time:
//
//	Basic ──block down──▶ Predrag ──move──▶ DraggingBlocks ──up──▶ Basic
//	  │                      └──────────────up──────────────────▶ Basic
//	  ├──canvas down──▶ RectangleSelection ──up──▶ Basic
//	  └──"a"──▶ ArrowStart ──over──▶ ArrowPreview ──block down──▶ ArrowFinish ──up──▶ Basic
//	                 ▲                    │
//	                 └──────leave─────────┘
//
// Escape abandons any arrow stage. Every state/input combination not
// shown is ignored: the machine does not change state, does not mutate
// the graph and reports that no redraw is needed.
//
// Each variant carries only the data of its own phase, for example
// [RectangleSelection] holds the marquee corners and [ArrowPreview] the
// provisional target. The graph itself stays on the machine.
//
// # Selection
//
// The Selected flag of a [Block] is the only record of the selection.
// Every change of the selected set goes through [Machine.ClearSelection]
// followed by explicit re-selection.
//
// # Stale Ids
//
// Block ids in pointer events may refer to blocks removed since the
// event was produced. Such events are logged at debug level and ignored.
//
// # Rendering
//
// [Machine.Scene] returns a snapshot of everything a renderer needs:
// blocks, arrows with Bezier control points, ghost arrows while
// previewing and the marquee while rectangle-selecting.
package board
