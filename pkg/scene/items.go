package scene

import (
	"github.com/plokm5151/tracecraft/pkg/dot"
	"github.com/plokm5151/tracecraft/pkg/graph"
	"github.com/plokm5151/tracecraft/pkg/layout"
)

// Rect is a world-space rectangle.
type Rect struct {
	Min graph.Position
	Max graph.Position
}

// Item is anything the viewport can draw: a node box, an edge line, an
// arrowhead, or the placeholder text.
type Item interface {
	Bounds() Rect
	Draw(c *Canvas)
}

// NodeItem draws a node box with its truncated display label.
type NodeItem struct {
	Pos   graph.Position
	W     float64
	H     float64
	Label string
}

func (n NodeItem) Bounds() Rect {
	return Rect{
		Min: n.Pos,
		Max: graph.Position{X: n.Pos.X + n.W, Y: n.Pos.Y + n.H},
	}
}

func (n NodeItem) Draw(c *Canvas) {
	c.DrawWorldBox(n.Pos, n.W, n.H, n.Label)
}

// EdgeLineItem draws the line segment between two edge anchors.
type EdgeLineItem struct {
	From graph.Position
	To   graph.Position
}

func (e EdgeLineItem) Bounds() Rect {
	return Rect{
		Min: graph.Position{X: min(e.From.X, e.To.X), Y: min(e.From.Y, e.To.Y)},
		Max: graph.Position{X: max(e.From.X, e.To.X), Y: max(e.From.Y, e.To.Y)},
	}
}

func (e EdgeLineItem) Draw(c *Canvas) {
	c.DrawWorldLine(e.From, e.To, '·')
}

// ArrowHeadItem draws the triangle at an edge's destination anchor.
type ArrowHeadItem struct {
	Points [3]graph.Position
}

func (a ArrowHeadItem) Bounds() Rect {
	r := Rect{Min: a.Points[0], Max: a.Points[0]}
	for _, p := range a.Points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

func (a ArrowHeadItem) Draw(c *Canvas) {
	c.DrawWorldLine(a.Points[1], a.Points[0], '▾')
	c.DrawWorldLine(a.Points[2], a.Points[0], '▾')
	c.DrawWorldLine(a.Points[1], a.Points[2], '▾')
}

// PlaceholderText draws a centered message; it ignores the world transform.
type PlaceholderText struct {
	Text string
}

func (p PlaceholderText) Bounds() Rect { return Rect{} }

func (p PlaceholderText) Draw(c *Canvas) {
	c.DrawCenteredText(p.Text)
}

// Build converts a laid-out graph into draw-ordered items: edge lines and
// arrowheads first so node boxes paint over them.
func Build(g *graph.Graph) []Item {
	items := make([]Item, 0, g.EdgeCount()*2+g.Len())

	for _, e := range g.Edges() {
		from := g.Node(e.From)
		to := g.Node(e.To)
		src, dst := layout.EdgeAnchors(from, to)
		items = append(items,
			EdgeLineItem{From: src, To: dst},
			ArrowHeadItem{Points: layout.ArrowHead(src, dst, layout.DefaultArrowSize)},
		)
	}

	for _, n := range g.Nodes() {
		items = append(items, NodeItem{
			Pos:   n.Pos,
			W:     n.W,
			H:     n.H,
			Label: dot.DisplayLabel(n.Label),
		})
	}

	return items
}
