package scene

import (
	"strings"
	"testing"

	"github.com/plokm5151/tracecraft/pkg/graph"
)

func TestCanvasDimensions(t *testing.T) {
	c := NewCanvas(20, 5)
	if c.Width() != 20 || c.Height() != 5 {
		t.Errorf("Canvas = %dx%d, want 20x5", c.Width(), c.Height())
	}

	out := c.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 20 {
			t.Errorf("Line %d has %d cells, want 20", i, len([]rune(line)))
		}
	}
}

func TestCanvasSetClipped(t *testing.T) {
	c := NewCanvas(4, 4)

	// Out-of-bounds writes must be silently clipped
	c.Set(-1, 0, 'x')
	c.Set(0, -1, 'x')
	c.Set(4, 0, 'x')
	c.Set(0, 4, 'x')

	if strings.ContainsRune(c.String(), 'x') {
		t.Error("Out-of-bounds write leaked into the buffer")
	}
}

func TestCanvasProject(t *testing.T) {
	c := NewCanvas(40, 20)
	c.SetTransform(0.1, 0.05, 20, 10)

	x, y := c.Project(graph.Position{X: 100, Y: 100})
	if x != 30 || y != 15 {
		t.Errorf("Project = (%d, %d), want (30, 15)", x, y)
	}
}

func TestDrawWorldLineContinuous(t *testing.T) {
	c := NewCanvas(20, 20)
	c.DrawWorldLine(graph.Position{X: 0, Y: 0}, graph.Position{X: 10, Y: 10}, '·')

	// Every step along the longer axis must be painted
	count := strings.Count(c.String(), "·")
	if count != 11 {
		t.Errorf("Diagonal line painted %d cells, want 11", count)
	}
}

func TestDrawWorldBox(t *testing.T) {
	c := NewCanvas(30, 10)
	c.DrawWorldBox(graph.Position{X: 2, Y: 2}, 20, 6, "main@bin")

	out := c.String()
	for _, corner := range []string{"╭", "╮", "╰", "╯"} {
		if !strings.Contains(out, corner) {
			t.Errorf("Box output missing corner %q:\n%s", corner, out)
		}
	}
	if !strings.Contains(out, "main@bin") {
		t.Errorf("Box label missing:\n%s", out)
	}
}

func TestDrawWorldBoxCollapsesWhenTiny(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetTransform(0.01, 0.01, 0, 0) // zoomed far out

	c.DrawWorldBox(graph.Position{X: 0, Y: 0}, 120, 50, "label")

	out := c.String()
	if !strings.Contains(out, "▢") {
		t.Errorf("Tiny box should collapse to a marker:\n%s", out)
	}
	if strings.Contains(out, "label") {
		t.Error("Collapsed box must not render its label")
	}
}

func TestDrawWorldBoxLabelClipped(t *testing.T) {
	c := NewCanvas(12, 6)
	c.DrawWorldBox(graph.Position{X: 0, Y: 0}, 8, 4, "a_very_long_label")

	out := c.String()
	if strings.Contains(out, "a_very_long_label") {
		t.Errorf("Label should have been clipped to the box interior:\n%s", out)
	}
}

func TestDrawCenteredText(t *testing.T) {
	c := NewCanvas(30, 7)
	c.DrawCenteredText("No nodes found\nin the call graph")

	out := c.String()
	if !strings.Contains(out, "No nodes found") || !strings.Contains(out, "in the call graph") {
		t.Errorf("Centered text missing lines:\n%s", out)
	}
}

func TestBuildOrdering(t *testing.T) {
	g := graph.New()
	a := g.AddNode("a", "main@bin_demo")
	b := g.AddNode("b", "run_trait@bin_demo")
	a.Pos = graph.Position{X: 0, Y: 0}
	b.Pos = graph.Position{X: 0, Y: 120}
	g.AddEdge("a", "b")

	items := Build(g)

	// One line + one arrowhead per edge, then one item per node
	if len(items) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(items))
	}
	if _, ok := items[0].(EdgeLineItem); !ok {
		t.Errorf("Item 0 should be an EdgeLineItem, got %T", items[0])
	}
	if _, ok := items[1].(ArrowHeadItem); !ok {
		t.Errorf("Item 1 should be an ArrowHeadItem, got %T", items[1])
	}
	if _, ok := items[2].(NodeItem); !ok {
		t.Errorf("Item 2 should be a NodeItem, got %T", items[2])
	}
}

func TestBuildTruncatesLabels(t *testing.T) {
	g := graph.New()
	g.AddNode("a", "really_long_function_name@some_crate")

	items := Build(g)

	node := items[0].(NodeItem)
	if node.Label != "...tion_name@some_crate" {
		t.Errorf("Label = %q, want suffix-preserving truncation", node.Label)
	}
}

func TestBuildDuplicateEdges(t *testing.T) {
	g := graph.New()
	g.AddNode("a", "a")
	g.AddNode("b", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	items := Build(g)

	// Each duplicate edge produces its own line and arrowhead
	lines := 0
	for _, it := range items {
		if _, ok := it.(EdgeLineItem); ok {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("Expected 2 edge lines for duplicate edges, got %d", lines)
	}
}

func TestSpriteStaysInBounds(t *testing.T) {
	s := NewSprite('◆', 1)
	bounds := Rect{Min: graph.Position{X: 0, Y: 0}, Max: graph.Position{X: 100, Y: 100}}
	s.SetBounds(bounds)

	for i := 0; i < 1000; i++ {
		s.Step()
		if s.Pos.X < 0 || s.Pos.X > 100 || s.Pos.Y < 0 || s.Pos.Y > 100 {
			t.Fatalf("Sprite escaped bounds at step %d: %+v", i, s.Pos)
		}
	}
}

func TestSpriteDrawsOnTop(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Fill('·')

	s := NewSprite('◆', 1)
	s.Pos = graph.Position{X: 5, Y: 5}
	s.Draw(c)

	if c.At(5, 5) != '◆' {
		t.Errorf("Sprite glyph not drawn, cell = %q", c.At(5, 5))
	}
}
