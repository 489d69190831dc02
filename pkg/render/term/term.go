// Package term rasterizes a board scene into a grid of terminal cells.
//
// Each cell covers a fixed rectangle of viewport pixels (8x16 by default,
// roughly the aspect of a monospace glyph). Blocks become rounded boxes
// labelled with their id, arrows are sampled along their Bezier curve and
// end in an arrowhead, ghost arrows are dotted and grey, and the marquee
// is a dashed rectangle. Colors come from lipgloss styles.
//
//	out := term.Render(ed.Scene(), ed.Viewbox(), term.WithSize(w, h))
package term

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blockboard/pkg/board"
	"github.com/matzehuels/blockboard/pkg/geom"
)

// Default cell size in viewport pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Projector maps board points to viewport pixels. *viewbox.Viewbox
// satisfies it.
type Projector interface {
	ToViewport(geom.Board) geom.Viewport
}

type ink int

const (
	inkNone ink = iota
	inkBlock
	inkSelected
	inkArrow
	inkGhost
	inkMarquee
	inkLabel
)

// Styles maps each kind of mark to a lipgloss style.
type Styles struct {
	Block    lipgloss.Style
	Selected lipgloss.Style
	Arrow    lipgloss.Style
	Ghost    lipgloss.Style
	Marquee  lipgloss.Style
	Label    lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Block:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Arrow:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Ghost:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Marquee:  lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

func (s Styles) of(k ink) lipgloss.Style {
	switch k {
	case inkBlock:
		return s.Block
	case inkSelected:
		return s.Selected
	case inkArrow:
		return s.Arrow
	case inkGhost:
		return s.Ghost
	case inkMarquee:
		return s.Marquee
	case inkLabel:
		return s.Label
	default:
		return lipgloss.NewStyle()
	}
}

// Option configures terminal rendering.
type Option func(*renderer)

type renderer struct {
	cols, rows   int
	cellW, cellH float64
	styles       Styles
	plain        bool
}

// Largest grid WithSize accepts; bigger sizes are capped.
const (
	MaxCols = 1000
	MaxRows = 500
)

// WithSize sets the grid size in cells.
func WithSize(cols, rows int) Option {
	return func(r *renderer) {
		if cols > 0 && rows > 0 {
			r.cols, r.rows = min(cols, MaxCols), min(rows, MaxRows)
		}
	}
}

// WithCellSize sets how many viewport pixels one cell covers.
func WithCellSize(w, h float64) Option {
	return func(r *renderer) {
		if w > 0 && h > 0 {
			r.cellW, r.cellH = w, h
		}
	}
}

// WithStyles replaces the default palette.
func WithStyles(s Styles) Option { return func(r *renderer) { r.styles = s } }

// WithPlain disables styling; the output is bare runes.
func WithPlain() Option { return func(r *renderer) { r.plain = true } }

type cell struct {
	r rune
	k ink
}

// Grid is a rasterized scene.
type Grid struct {
	cols, rows int
	cells      []cell
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// At returns the rune drawn at column x, row y, or a space when out of
// bounds.
func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return ' '
	}
	return g.cells[y*g.cols+x].r
}

func (g *Grid) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y*g.cols+x] = cell{r: r, k: k}
}

// Rasterize draws sc into a grid without styling.
func Rasterize(sc board.Scene, p Projector, opts ...Option) *Grid {
	r := newRenderer(opts...)
	return r.rasterize(sc, p)
}

// Render draws sc and returns the styled rows joined by newlines.
func Render(sc board.Scene, p Projector, opts ...Option) string {
	r := newRenderer(opts...)
	g := r.rasterize(sc, p)

	var sb strings.Builder
	for y := range g.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := g.cells[y*g.cols : (y+1)*g.cols]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].k == row[start].k {
				end++
			}
			var run strings.Builder
			for _, c := range row[start:end] {
				run.WriteRune(c.r)
			}
			if r.plain || row[start].k == inkNone {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(r.styles.of(row[start].k).Render(run.String()))
			}
			start = end
		}
	}
	return sb.String()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		cols:   80,
		rows:   24,
		cellW:  DefaultCellWidth,
		cellH:  DefaultCellHeight,
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) rasterize(sc board.Scene, p Projector) *Grid {
	g := &Grid{cols: r.cols, rows: r.rows, cells: make([]cell, r.cols*r.rows)}
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
	// Cells are clamped one past each edge so outlines of far
	// off-screen shapes stay off-screen without walking every cell.
	toCell := func(b geom.Board) (int, int) {
		v := p.ToViewport(b)
		return clampCell(v.X/r.cellW, g.cols), clampCell(v.Y/r.cellH, g.rows)
	}

	if sc.Marquee != nil {
		x0, y0 := toCell(sc.Marquee.Min)
		x1, y1 := toCell(sc.Marquee.Max)
		box(g, x0, y0, x1, y1, [6]rune{'┌', '┐', '└', '┘', '╌', '╎'}, inkMarquee)
	}
	for _, a := range sc.Ghosts {
		curve(g, a, toCell, '·', inkGhost)
	}
	for _, a := range sc.Arrows {
		curve(g, a, toCell, '•', inkArrow)
	}
	for _, b := range sc.Blocks {
		k := inkBlock
		if b.Selected {
			k = inkSelected
		}
		x0, y0 := toCell(b.TopLeft)
		x1, y1 := toCell(b.TopLeft.Add(b.Size))
		for y := y0 + 1; y < y1; y++ {
			for x := x0 + 1; x < x1; x++ {
				g.set(x, y, ' ', k)
			}
		}
		box(g, x0, y0, x1, y1, [6]rune{'╭', '╮', '╰', '╯', '─', '│'}, k)
		label := strconv.FormatUint(uint64(b.ID), 10)
		cx, cy := toCell(b.Center)
		lx := cx - len(label)/2
		for i, ch := range label {
			if lx+i > x0 && lx+i < x1 {
				g.set(lx+i, cy, ch, inkLabel)
			}
		}
	}
	return g
}

func clampCell(v float64, n int) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Max(-1, math.Min(float64(n), math.Floor(v))))
}

// box draws a rectangle outline. Corners are top-left, top-right,
// bottom-left, bottom-right, then horizontal and vertical edges.
func box(g *Grid, x0, y0, x1, y1 int, glyphs [6]rune, k ink) {
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, glyphs[4], k)
		g.set(x, y1, glyphs[4], k)
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, glyphs[5], k)
		g.set(x1, y, glyphs[5], k)
	}
	g.set(x0, y0, glyphs[0], k)
	g.set(x1, y0, glyphs[1], k)
	g.set(x0, y1, glyphs[2], k)
	g.set(x1, y1, glyphs[3], k)
}

func curve(g *Grid, a board.Arrow, toCell func(geom.Board) (int, int), dot rune, k ink) {
	p0, p1, p2, p3 := a.Start.Point, a.Start.Handle(), a.End.Handle(), a.End.Point
	const steps = 64
	for i := range steps {
		t := float64(i) / steps
		x, y := toCell(bezier(p0, p1, p2, p3, t))
		g.set(x, y, dot, k)
	}
	x, y := toCell(p3)
	g.set(x-1, y, '▶', k)
}

func bezier(p0, p1, p2, p3 geom.Board, t float64) geom.Board {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * u * u * t)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}
