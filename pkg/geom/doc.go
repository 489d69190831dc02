// Package geom provides the two coordinate spaces used by the editor.
//
// # Spaces
//
// [Board] is the logical coordinate system in which block positions,
// arrow control points and selection rectangles are stored. It does not
// change when the user pans or zooms.
//
// [Viewport] is the raw pixel coordinate system reported by input
// events. A viewport point only has a board meaning relative to the
// current pan offset and zoom level, which live in package viewbox.
//
// The two types are deliberately distinct so that a pixel position can
// never be added to a board position by accident:
//
//	var b geom.Board
//	var v geom.Viewport
//	b = b.Add(v) // does not compile
//
// The only bridges are [Viewport.AtScale] and [Board.AtScale], which the
// viewbox uses to implement its transform.
//
// # Rectangles
//
// [Rect] is an axis-aligned board-space rectangle normalized so that Min
// is the top-left and Max the bottom-right corner. [Overlaps] implements
// the inclusive overlap test used by rectangle selection.
package geom
