package dot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseNodesAndEdges(t *testing.T) {
	text := `digraph callgraph {
"a" [label="main@bin_demo"]
"b" [label="run_trait@bin_demo"]
"a" -> "b"
}`

	doc := Parse(text)

	if len(doc.Nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(doc.Nodes))
	}
	if doc.Nodes[0].ID != "a" || doc.Nodes[0].Label != "main@bin_demo" {
		t.Errorf("Node 0 = %+v", doc.Nodes[0])
	}
	if doc.Nodes[1].ID != "b" || doc.Nodes[1].Label != "run_trait@bin_demo" {
		t.Errorf("Node 1 = %+v", doc.Nodes[1])
	}

	if len(doc.Edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(doc.Edges))
	}
	if doc.Edges[0].From != "a" || doc.Edges[0].To != "b" {
		t.Errorf("Edge 0 = %+v", doc.Edges[0])
	}
}

func TestParseIgnoresUnrecognizedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"graph header", "digraph {"},
		{"graph footer", "}"},
		{"subgraph", "subgraph cluster_0 {"},
		{"non-label attribute", `"a" [shape=box]`},
		{"unquoted edge", "a -> b"},
		{"comment", "// generated"},
		{"blank", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.line)
			if len(doc.Nodes) != 0 || len(doc.Edges) != 0 {
				t.Errorf("Parse(%q) = %+v, want empty document", tt.line, doc)
			}
		})
	}
}

func TestParseNodeOrderPreserved(t *testing.T) {
	text := `"z" [label="z@crate"]
"a" [label="a@crate"]
"m" [label="m@crate"]`

	doc := Parse(text)

	want := []string{"z", "a", "m"}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("Expected %d nodes, got %d", len(want), len(doc.Nodes))
	}
	for i, id := range want {
		if doc.Nodes[i].ID != id {
			t.Errorf("Node %d ID = %q, want %q", i, doc.Nodes[i].ID, id)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc := Parse("")
	if len(doc.Nodes) != 0 || len(doc.Edges) != 0 {
		t.Errorf("Parse of empty text should yield an empty document, got %+v", doc)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.dot")
	content := `"a" [label="main@bin_demo"]
"b" [label="run_trait@bin_demo"]
"a" -> "b"`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test artifact: %v", err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Errorf("Got %d nodes, %d edges, want 2 and 1", len(doc.Nodes), len(doc.Edges))
	}
}

func TestParseFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.dot")

	doc, err := ParseFile(path)
	if err == nil {
		t.Fatal("ParseFile of a missing file should error")
	}

	var ioErr *ArtifactIOError
	if !errors.As(err, &ioErr) {
		t.Errorf("Error should be an *ArtifactIOError, got %T", err)
	}
	if ioErr.Path != path {
		t.Errorf("ArtifactIOError.Path = %q, want %q", ioErr.Path, path)
	}
	if len(doc.Nodes) != 0 || len(doc.Edges) != 0 {
		t.Errorf("Failed read must not produce a partial document, got %+v", doc)
	}
}

func TestParseFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dot")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to write test artifact: %v", err)
	}

	// An empty file is a successful read with zero declarations, not an IO error
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("Empty artifact should parse cleanly: %v", err)
	}
	if len(doc.Nodes) != 0 {
		t.Errorf("Expected 0 nodes, got %d", len(doc.Nodes))
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"really_long_function_name@some_crate", "...tion_name@some_crate"},
		{"main@bin_demo", "main@bin_demo"},
		{"exactly_twenty_chars", "exactly_twenty_chars"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := DisplayLabel(tt.label); got != tt.expected {
				t.Errorf("DisplayLabel(%q) = %q, want %q", tt.label, got, tt.expected)
			}
		})
	}
}

func TestDisplayLabelLength(t *testing.T) {
	long := "really_long_function_name@some_crate" // 36 runes
	got := DisplayLabel(long)

	if len([]rune(got)) != 23 {
		t.Errorf("Truncated label should be ellipsis + 20 runes, got %d runes (%q)", len([]rune(got)), got)
	}
	suffix := string([]rune(long)[len([]rune(long))-20:])
	if got != "..."+suffix {
		t.Errorf("DisplayLabel must keep the suffix: got %q, want %q", got, "..."+suffix)
	}
}
