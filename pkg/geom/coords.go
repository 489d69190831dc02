package geom

import "fmt"

// Board is a point or vector in board space.
type Board struct {
	X, Y float64
}

// B is shorthand for Board{X: x, Y: y}.
func B(x, y float64) Board { return Board{X: x, Y: y} }

// Add returns b+o.
func (b Board) Add(o Board) Board { return Board{b.X + o.X, b.Y + o.Y} }

// Sub returns b-o.
func (b Board) Sub(o Board) Board { return Board{b.X - o.X, b.Y - o.Y} }

// Neg returns -b.
func (b Board) Neg() Board { return Board{-b.X, -b.Y} }

// Mul scales both components by f.
func (b Board) Mul(f float64) Board { return Board{b.X * f, b.Y * f} }

// Div divides both components by f.
func (b Board) Div(f float64) Board { return Board{b.X / f, b.Y / f} }

// AtScale converts a board-space vector into viewport pixels at zoom
// factor s. Only the viewbox should call this.
func (b Board) AtScale(s float64) Viewport { return Viewport{b.X * s, b.Y * s} }

// Min returns the componentwise minimum of b and o.
func (b Board) Min(o Board) Board { return Board{min(b.X, o.X), min(b.Y, o.Y)} }

// Max returns the componentwise maximum of b and o.
func (b Board) Max(o Board) Board { return Board{max(b.X, o.X), max(b.Y, o.Y)} }

func (b Board) String() string { return fmt.Sprintf("board(%g, %g)", b.X, b.Y) }

// Viewport is a point or vector in viewport (pixel) space.
type Viewport struct {
	X, Y float64
}

// V is shorthand for Viewport{X: x, Y: y}.
func V(x, y float64) Viewport { return Viewport{X: x, Y: y} }

// Add returns v+o.
func (v Viewport) Add(o Viewport) Viewport { return Viewport{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Viewport) Sub(o Viewport) Viewport { return Viewport{v.X - o.X, v.Y - o.Y} }

// Neg returns -v.
func (v Viewport) Neg() Viewport { return Viewport{-v.X, -v.Y} }

// AtScale converts a pixel vector into board space at zoom factor s.
// Only the viewbox should call this.
func (v Viewport) AtScale(s float64) Board { return Board{v.X / s, v.Y / s} }

func (v Viewport) String() string { return fmt.Sprintf("viewport(%g, %g)", v.X, v.Y) }
