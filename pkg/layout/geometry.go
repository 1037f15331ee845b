package layout

import (
	"math"

	"github.com/plokm5151/tracecraft/pkg/graph"
)

// DefaultArrowSize is the arrowhead side length in world units.
const DefaultArrowSize = 10.0

// EdgeAnchors returns the fixed attachment points for an edge: bottom-center
// of the source box and top-center of the destination box. The anchors never
// move to the nearest boundary point along the connecting line, so lines
// between horizontally adjacent nodes may enter a box at an odd angle.
func EdgeAnchors(from, to *graph.Node) (src, dst graph.Position) {
	src = graph.Position{X: from.Pos.X + from.W/2, Y: from.Pos.Y + from.H}
	dst = graph.Position{X: to.Pos.X + to.W/2, Y: to.Pos.Y}
	return src, dst
}

// ArrowHead returns the three corners of the arrowhead triangle for a line
// from src to dst: the apex at dst and two base points offset backward along
// the line angle ±30°.
func ArrowHead(src, dst graph.Position, size float64) [3]graph.Position {
	angle := math.Atan2(dst.Y-src.Y, dst.X-src.X)

	p1 := graph.Position{
		X: dst.X - math.Cos(angle-math.Pi/6)*size,
		Y: dst.Y - math.Sin(angle-math.Pi/6)*size,
	}
	p2 := graph.Position{
		X: dst.X - math.Cos(angle+math.Pi/6)*size,
		Y: dst.Y - math.Sin(angle+math.Pi/6)*size,
	}

	return [3]graph.Position{dst, p1, p2}
}
