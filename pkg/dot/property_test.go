package dot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// identGen produces identifiers safe for the quoted grammar (no quotes, no newlines)
func identGen() gopter.Gen {
	return gen.RegexMatch(`[a-z][a-z0-9_]{0,15}`)
}

// TestParserInvariants uses property-based testing to verify parser invariants.
// These properties should ALWAYS hold true for any input text.
func TestParserInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: parsing is idempotent, the same text yields the same document
	properties.Property("parse is deterministic", prop.ForAll(
		func(ids []string) bool {
			var b strings.Builder
			b.WriteString("digraph {\n")
			for i, id := range ids {
				fmt.Fprintf(&b, "%q [label=%q]\n", id, id+"@crate")
				if i > 0 {
					fmt.Fprintf(&b, "%q -> %q\n", ids[i-1], id)
				}
			}
			b.WriteString("}\n")
			text := b.String()

			first := Parse(text)
			second := Parse(text)

			if len(first.Nodes) != len(second.Nodes) || len(first.Edges) != len(second.Edges) {
				return false
			}
			for i := range first.Nodes {
				if first.Nodes[i] != second.Nodes[i] {
					return false
				}
			}
			edges := make(map[EdgeDecl]int)
			for _, e := range first.Edges {
				edges[e]++
			}
			for _, e := range second.Edges {
				edges[e]--
			}
			for _, n := range edges {
				if n != 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(identGen()),
	))

	// Property 2: every declared node comes back, in declaration order
	properties.Property("node order follows declaration order", prop.ForAll(
		func(ids []string) bool {
			var b strings.Builder
			for _, id := range ids {
				fmt.Fprintf(&b, "%q [label=%q]\n", id, id)
			}

			doc := Parse(b.String())
			if len(doc.Nodes) != len(ids) {
				return false
			}
			for i, id := range ids {
				if doc.Nodes[i].ID != id {
					return false
				}
			}
			return true
		},
		gen.SliceOf(identGen()),
	))

	// Property 3: garbage lines never contribute declarations
	properties.Property("unmatched lines are ignored", prop.ForAll(
		func(junk string) bool {
			text := strings.ReplaceAll(junk, `"`, "")
			doc := Parse(text)
			return len(doc.Nodes) == 0 && len(doc.Edges) == 0
		},
		gen.AlphaString(),
	))

	// Property 4: truncation never exceeds the limit and always keeps the suffix
	properties.Property("display label bounded and suffix-preserving", prop.ForAll(
		func(label string) bool {
			display := DisplayLabel(label)
			runes := []rune(label)
			if len(runes) <= 20 {
				return display == label
			}
			return strings.HasPrefix(display, "...") &&
				strings.HasSuffix(display, string(runes[len(runes)-20:])) &&
				len([]rune(display)) == 23
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
