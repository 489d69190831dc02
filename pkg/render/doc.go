// Package render holds the renderers that turn a board scene into
// something a user can look at.
//
// Renderers are pure: they read a [board.Scene] snapshot and the viewbox
// rectangle and hold no state of their own.
//
//   - [svg]: standalone SVG documents, used by the replay command and the
//     HTTP server
//   - [term]: a character grid styled with lipgloss, used by the terminal
//     editor
//
// [board.Scene]: github.com/matzehuels/blockboard/pkg/board#Scene
// [svg]: github.com/matzehuels/blockboard/pkg/render/svg
// [term]: github.com/matzehuels/blockboard/pkg/render/term
package render
