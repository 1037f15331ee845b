// Package graph holds the in-memory call-graph model built from parsed
// artifact declarations. The model is rebuilt from scratch on every load and
// is only ever mutated by the single control goroutine.
package graph

import (
	"github.com/plokm5151/tracecraft/pkg/dot"
)

// Default node box dimensions in world units.
const (
	DefaultNodeWidth  = 120.0
	DefaultNodeHeight = 50.0
)

// Position is a 2D world coordinate assigned by the layout engine.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one call-graph vertex. Pos is mutable only during layout.
type Node struct {
	ID    string
	Label string
	Pos   Position
	W     float64
	H     float64
}

// Edge is an ordered pair of node identifiers. Both endpoints are guaranteed
// to exist in the owning Graph; duplicates are permitted and each one is
// rendered as its own line.
type Edge struct {
	From string
	To   string
}

// Graph is a deduplicated node store plus an edge list. Node iteration order
// is insertion order, which the layout engine depends on.
type Graph struct {
	nodes []*Node
	index map[string]*Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]*Node),
	}
}

// AddNode inserts a node if id is new and returns it. On a duplicate id the
// existing node is returned unchanged: the first insertion's label wins.
func (g *Graph) AddNode(id, label string) *Node {
	if existing, ok := g.index[id]; ok {
		return existing
	}

	node := &Node{
		ID:    id,
		Label: label,
		W:     DefaultNodeWidth,
		H:     DefaultNodeHeight,
	}
	g.nodes = append(g.nodes, node)
	g.index[id] = node
	return node
}

// AddEdge appends an edge when both endpoints exist. An edge referencing an
// unknown endpoint is silently dropped, not stored and not an error.
func (g *Graph) AddEdge(from, to string) {
	if _, ok := g.index[from]; !ok {
		return
	}
	if _, ok := g.index[to]; !ok {
		return
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.index[id]
}

// Nodes returns all nodes in insertion order. Callers must not reorder it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns the edge list, duplicates included.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the edge count.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Clear empties the node store and edge list.
func (g *Graph) Clear() {
	g.nodes = g.nodes[:0]
	g.edges = g.edges[:0]
	g.index = make(map[string]*Node)
}

// Populate fills the graph from a parsed document: all nodes first, then all
// edges, so edge declarations may precede their endpoints in the artifact.
func (g *Graph) Populate(doc dot.Document) {
	for _, n := range doc.Nodes {
		g.AddNode(n.ID, n.Label)
	}
	for _, e := range doc.Edges {
		g.AddEdge(e.From, e.To)
	}
}
