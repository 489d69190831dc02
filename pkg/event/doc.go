// Package event defines the normalized input vocabulary consumed by the
// editor.
//
// Raw input (browser DOM events, terminal mouse reports, HTTP requests,
// scripted replays) is decoded by a front-end into one of the [Event]
// variants below before it reaches the editor. Positions are in viewport
// pixels; block ids refer to vertices of the board graph and may be stale
// by the time the event is handled.
//
// # Variants
//
//   - [CursorMove]: the pointer moved to a viewport point
//   - [MouseDown], [MouseUp]: canvas button press and release
//   - [MouseWheel]: vertical wheel delta, used for zoom
//   - [KeyDown]: a key press, see the Key* constants
//   - [BlockMouseDown], [BlockMouseOver], [BlockMouseLeave]: pointer
//     events already attributed to a block's hit area
//
// # Wire Forms
//
// [Decode] reads a single event from its JSON form and [ReadScript] reads
// a TOML script of events. Both share the tagged [Wire] struct:
//
//	{"type": "block_mouse_down", "button": 0, "block": 3, "ctrl": true}
//
// Wire values are validated before conversion; failures carry the
// INVALID_EVENT or INVALID_SCRIPT error codes from pkg/errors.
package event
