// Package svg renders a board scene as an SVG document.
//
// The document's viewBox is the editor's viewbox rectangle, so board
// coordinates are written unchanged and the viewer applies pan and zoom:
//
//	out := svg.Render(ed.Scene(), ed.Viewbox().Rect(), svg.WithGrid())
//
// Layers are drawn bottom to top: grid, marquee, ghost arrows, arrows,
// blocks.
package svg

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/blockboard/pkg/board"
	"github.com/matzehuels/blockboard/pkg/geom"
)

const (
	// GridSize is the major grid spacing in board units.
	GridSize = 80.0

	arrowHeadDX = 7.0
	arrowHeadDY = arrowHeadDX * 0.5774
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	grid          bool
	width, height float64
}

// WithGrid draws a background grid over the visible area.
func WithGrid() Option { return func(r *renderer) { r.grid = true } }

// WithPixelSize sets the width and height attributes of the document.
// Without it the document has no intrinsic size.
func WithPixelSize(w, h float64) Option {
	return func(r *renderer) { r.width, r.height = w, h }
}

// Render writes sc as a complete SVG document viewing the board area view.
func Render(sc board.Scene, view geom.Rect, opts ...Option) []byte {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s"`,
		num(view.Min.X), num(view.Min.Y), num(view.Width()), num(view.Height()))
	if r.width > 0 && r.height > 0 {
		fmt.Fprintf(&buf, ` width="%s" height="%s"`, num(r.width), num(r.height))
	}
	fmt.Fprintf(&buf, ` data-state="%s">`+"\n", sc.State)

	if r.grid {
		renderGrid(&buf, view)
	}
	if sc.Marquee != nil {
		renderMarquee(&buf, *sc.Marquee)
	}
	for _, a := range sc.Ghosts {
		renderArrow(&buf, a, true)
	}
	for _, a := range sc.Arrows {
		renderArrow(&buf, a, false)
	}
	for _, b := range sc.Blocks {
		renderBlock(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, view geom.Rect) {
	small := GridSize / 10
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <pattern id="smallGrid" width="%s" height="%s" patternUnits="userSpaceOnUse">`+"\n", num(small), num(small))
	fmt.Fprintf(buf, `      <path d="M %s 0 L 0 0 0 %s" fill="none" stroke="gray" stroke-width="0.5"/>`+"\n", num(small), num(small))
	buf.WriteString("    </pattern>\n")
	fmt.Fprintf(buf, `    <pattern id="grid" width="%s" height="%s" patternUnits="userSpaceOnUse">`+"\n", num(GridSize), num(GridSize))
	fmt.Fprintf(buf, `      <rect width="%s" height="%s" fill="url(#smallGrid)"/>`+"\n", num(GridSize), num(GridSize))
	fmt.Fprintf(buf, `      <path d="M %s 0 L 0 0 0 %s" fill="none" stroke="gray" stroke-width="1"/>`+"\n", num(GridSize), num(GridSize))
	buf.WriteString("    </pattern>\n")
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(buf, `  <rect class="grid" x="%s" y="%s" width="%s" height="%s" fill="url(#grid)"/>`+"\n",
		num(view.Min.X), num(view.Min.Y), num(view.Width()), num(view.Height()))
}

func renderMarquee(buf *bytes.Buffer, r geom.Rect) {
	fmt.Fprintf(buf, `  <rect class="marquee" x="%s" y="%s" width="%s" height="%s" fill-opacity="0.1" stroke-opacity="0.5" style="fill:rgb(0,0,255);stroke-width:1;stroke:blue"/>`+"\n",
		num(r.Min.X), num(r.Min.Y), num(r.Width()), num(r.Height()))
}

func renderArrow(buf *bytes.Buffer, a board.Arrow, ghost bool) {
	stroke, extra, class := "black", "", "arrow"
	if ghost {
		stroke, extra, class = "grey", ` stroke-dasharray="8 4"`, "arrow ghost"
	}
	c1, c2 := a.Start.Handle(), a.End.Handle()
	fmt.Fprintf(buf, `  <path class="%s" data-from="%d" data-to="%d" d="M %s C %s, %s, %s" stroke="%s"%s fill="transparent"/>`+"\n",
		class, a.From, a.To, pt(a.Start.Point), pt(c1), pt(c2), pt(a.End.Point), stroke, extra)

	tip := a.End.Point
	p1 := tip.Sub(geom.B(arrowHeadDX, arrowHeadDY))
	p2 := tip.Sub(geom.B(arrowHeadDX, -arrowHeadDY))
	fmt.Fprintf(buf, `  <polygon points="%s,%s %s,%s %s,%s" fill="%s" stroke-linejoin="round"/>`+"\n",
		num(p1.X), num(p1.Y), num(p2.X), num(p2.Y), num(tip.X), num(tip.Y), stroke)
}

func renderBlock(buf *bytes.Buffer, b board.BlockView) {
	stroke, fill := "black", "red"
	if b.Selected {
		stroke, fill = "blue", "rgb(100, 100, 255)"
	}
	class := "block"
	if b.Selected {
		class = "block selected"
	}
	fmt.Fprintf(buf, `  <rect id="block-%d" class="%s" x="%s" y="%s" rx="%s" ry="%s" width="%s" height="%s" style="fill:%s;fill-opacity:0.5;stroke:%s;stroke-width:5;stroke-opacity:0.5"/>`+"\n",
		b.ID, class, num(b.TopLeft.X), num(b.TopLeft.Y), num(board.BlockRadius), num(board.BlockRadius),
		num(b.Size.X), num(b.Size.Y), fill, stroke)
}

func pt(p geom.Board) string { return num(p.X) + " " + num(p.Y) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
