// Package layout assigns deterministic positions to graph nodes and computes
// the fixed anchor and arrowhead geometry for edges.
package layout

import (
	"github.com/plokm5151/tracecraft/pkg/graph"
)

// Default grid parameters.
const (
	DefaultColumns  = 5
	DefaultSpacingX = 200.0
	DefaultSpacingY = 120.0
)

// Engine computes node positions for a graph.
type Engine interface {
	Apply(g *graph.Graph)
}

// GridLayout places nodes on a fixed-width grid in insertion order. It is
// O(n), fully deterministic, and ignores edges entirely.
type GridLayout struct {
	Columns  int
	SpacingX float64
	SpacingY float64
}

// NewGridLayout creates a grid layout, filling zero parameters with the
// defaults.
func NewGridLayout(columns int, spacingX, spacingY float64) *GridLayout {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if spacingX <= 0 {
		spacingX = DefaultSpacingX
	}
	if spacingY <= 0 {
		spacingY = DefaultSpacingY
	}
	return &GridLayout{Columns: columns, SpacingX: spacingX, SpacingY: spacingY}
}

// Apply positions the i-th node (insertion order) at column i mod Columns,
// row i div Columns. Recomputed fully on every load; never incremental.
func (gl *GridLayout) Apply(g *graph.Graph) {
	for i, node := range g.Nodes() {
		col := i % gl.Columns
		row := i / gl.Columns
		node.Pos = graph.Position{
			X: float64(col) * gl.SpacingX,
			Y: float64(row) * gl.SpacingY,
		}
	}
}

// BoundingBox returns the world-space box enclosing every node box.
// ok is false for an empty graph.
func BoundingBox(g *graph.Graph) (min, max graph.Position, ok bool) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return graph.Position{}, graph.Position{}, false
	}

	min = nodes[0].Pos
	max = graph.Position{X: nodes[0].Pos.X + nodes[0].W, Y: nodes[0].Pos.Y + nodes[0].H}
	for _, n := range nodes[1:] {
		if n.Pos.X < min.X {
			min.X = n.Pos.X
		}
		if n.Pos.Y < min.Y {
			min.Y = n.Pos.Y
		}
		if n.Pos.X+n.W > max.X {
			max.X = n.Pos.X + n.W
		}
		if n.Pos.Y+n.H > max.Y {
			max.Y = n.Pos.Y + n.H
		}
	}
	return min, max, true
}
