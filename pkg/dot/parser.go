// Package dot reads the graph-description artifact emitted by the analysis
// backend. Only a narrow node/edge subset of the grammar is understood: a
// quoted identifier with a label attribute declares a node, a quoted pair
// joined by "->" declares an edge. Every other line, including the graph
// header and footer, is ignored on purpose rather than rejected.
package dot

import (
	"os"
	"regexp"
	"strings"
)

var (
	nodeLineRe = regexp.MustCompile(`"([^"]+)"\s*\[label="([^"]+)"\]`)
	edgeLineRe = regexp.MustCompile(`"([^"]+)"\s*->\s*"([^"]+)"`)
)

// NodeDecl is a node declaration: identifier plus display label.
type NodeDecl struct {
	ID    string
	Label string
}

// EdgeDecl is a directed edge declaration between two node identifiers.
type EdgeDecl struct {
	From string
	To   string
}

// Document holds the declarations recovered from one artifact.
// Nodes keep their declaration order; edge order carries no meaning.
type Document struct {
	Nodes []NodeDecl
	Edges []EdgeDecl
}

// Parse scans text line by line and collects node and edge declarations.
// The node pattern is tried first on each line; a line never yields both.
// Parse is a pure function: identical input always yields identical output.
func Parse(text string) Document {
	var doc Document

	for _, line := range strings.Split(text, "\n") {
		if m := nodeLineRe.FindStringSubmatch(line); m != nil {
			doc.Nodes = append(doc.Nodes, NodeDecl{ID: m[1], Label: m[2]})
			continue
		}
		if m := edgeLineRe.FindStringSubmatch(line); m != nil {
			doc.Edges = append(doc.Edges, EdgeDecl{From: m[1], To: m[2]})
		}
	}

	return doc
}

// ParseFile reads the artifact at path in full and parses it. A file that
// cannot be read yields an ArtifactIOError and no partial document.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &ArtifactIOError{Path: path, Cause: err}
	}
	return Parse(string(data)), nil
}

// maxLabelRunes is the longest label rendered without truncation.
const maxLabelRunes = 20

// DisplayLabel shortens label for rendering. Labels commonly encode
// name@scope; the scope suffix is what disambiguates identical names, so
// truncation keeps the last 20 characters and drops the front.
func DisplayLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelRunes {
		return label
	}
	return "..." + string(runes[len(runes)-maxLabelRunes:])
}
