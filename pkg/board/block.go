package board

import "github.com/matzehuels/blockboard/pkg/geom"

const (
	// BlockSize is the side length of a block in board units.
	BlockSize = 150.0
	// BlockRadius is the corner radius of a block in board units.
	BlockRadius = 20.0
)

// Block is the payload stored for every vertex of the board graph.
type Block struct {
	Center   geom.Board
	Selected bool
}

// Size returns the block extent.
func (b Block) Size() geom.Board { return geom.B(BlockSize, BlockSize) }

// Rect returns the block bounds.
func (b Block) Rect() geom.Rect { return geom.RectAround(b.Center, b.Size()) }

// TopLeft returns the top-left corner of the block.
func (b Block) TopLeft() geom.Board { return b.Rect().Min }

// ControlPoint is an end of an arrow curve: the attachment point on the
// block edge and the tangent vector leaving it.
type ControlPoint struct {
	Point  geom.Board
	Vector geom.Board
}

// Handle returns the point the tangent reaches, Point + Vector.
func (c ControlPoint) Handle() geom.Board { return c.Point.Add(c.Vector) }

// out is where arrows leave a block: the middle of its right edge.
func (b Block) out() ControlPoint {
	v := geom.B(b.Size().X*0.5, 0)
	return ControlPoint{Point: b.Center.Add(v), Vector: v}
}

// in is where arrows enter a block: the middle of its left edge.
func (b Block) in() ControlPoint {
	v := geom.B(-b.Size().X*0.5, 0)
	return ControlPoint{Point: b.Center.Add(v), Vector: v}
}
