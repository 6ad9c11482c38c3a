package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractionOriginal = `digraph g {
  "A" [label = "METHOD" NAME = "foo" FULL_NAME = "foo" FILENAME = "main.c" IS_EXTERNAL = "false"];
  "B" [label = "METHOD" NAME = "printf" IS_EXTERNAL = "true"];
  "C" [label = "BLOCK" ORDER = "1"];
  "A" -> "C" [label = "CFG"];
  "C" -> "A" [label = "CFG"];
  "A" -> "B" [label = "CALL"];
  "A" -> "C" [label = "AST"];
}
`

const extractionGood = `digraph subgraph_CALL_CFG {
  // Nodes: 3, Edges: 3

  // Node definitions
  "A" [label = "METHOD" NAME = "foo" FULL_NAME = "foo" FILENAME = "main.c" IS_EXTERNAL = "false"];
  "B" [label = "METHOD" NAME = "printf" IS_EXTERNAL = "true"];
  "C" [label = "BLOCK" ORDER = "1"];

  // Edge definitions
  "A" -> "C" [label = "CFG"];
  "C" -> "A" [label = "CFG"];
  "A" -> "B" [label = "CALL"];
}
`

var bothTypes = []string{"CFG", "CALL"}

func requireCategory(t *testing.T, r *Report, name string) Category {
	t.Helper()
	results := r.Results()
	cat, ok := results[name]
	require.True(t, ok, "category %s missing from report", name)
	return cat
}

func TestCheckExtraction_Passes(t *testing.T) {
	r := CheckExtraction(extractionOriginal, extractionGood, bothTypes)
	assert.True(t, r.OverallPassed())
	assert.Equal(t, []string{"edges", "nodes", "attributes"}, r.Names())
	for name, cat := range r.Results() {
		assert.True(t, cat.Passed, "category %s", name)
		assert.Empty(t, cat.Issues, "category %s", name)
	}
}

func TestCheckExtraction_MissingEdge(t *testing.T) {
	extracted := `digraph subgraph_CALL_CFG {
  "A" [label = "METHOD" NAME = "foo" FULL_NAME = "foo" FILENAME = "main.c" IS_EXTERNAL = "false"];
  "B" [label = "METHOD" NAME = "printf" IS_EXTERNAL = "true"];
  "C" [label = "BLOCK" ORDER = "1"];
  "A" -> "C" [label = "CFG"];
  "A" -> "B" [label = "CALL"];
}
`
	r := CheckExtraction(extractionOriginal, extracted, bothTypes)
	assert.False(t, r.OverallPassed())

	edges := requireCategory(t, r, "edges")
	assert.False(t, edges.Passed)
	assert.Contains(t, edges.Issues, "CFG: count mismatch (2 original vs 1 extracted)")
	assert.Contains(t, edges.Issues, "missing edge: C->A:CFG")

	// The dropped edge also removes no node here, so the node check passes.
	assert.True(t, requireCategory(t, r, "nodes").Passed)
}

func TestCheckExtraction_UnwantedEdgeType(t *testing.T) {
	extracted := extractionGood[:len(extractionGood)-2] +
		`  "A" -> "C" [label = "AST"];` + "\n}\n"

	r := CheckExtraction(extractionOriginal, extracted, bothTypes)
	edges := requireCategory(t, r, "edges")
	assert.False(t, edges.Passed)
	assert.Contains(t, edges.Issues, "unwanted edge type in output: AST (1 edges)")
}

func TestCheckExtraction_ExtraNode(t *testing.T) {
	extracted := extractionGood[:len(extractionGood)-2] +
		`  "D" [label = "BLOCK"];` + "\n}\n"

	r := CheckExtraction(extractionOriginal, extracted, bothTypes)
	nodes := requireCategory(t, r, "nodes")
	assert.False(t, nodes.Passed)
	assert.Contains(t, nodes.Issues, "extra node: D")
}

func TestCheckExtraction_AttributeDrift(t *testing.T) {
	extracted := `digraph subgraph_CALL_CFG {
  "A" [label = "METHOD" NAME = "foo" FULL_NAME = "foo" FILENAME = "main.c" IS_EXTERNAL = "false"];
  "B" [label = "METHOD" NAME = "puts" IS_EXTERNAL = "true"];
  "C" [label = "BLOCK" EXTRA = "x"];
  "A" -> "C" [label = "CFG"];
  "C" -> "A" [label = "CFG"];
  "A" -> "B" [label = "CALL"];
}
`
	r := CheckExtraction(extractionOriginal, extracted, bothTypes)
	attrs := requireCategory(t, r, "attributes")
	assert.False(t, attrs.Passed)
	assert.Contains(t, attrs.Issues, "node B: value mismatch in NAME")
	assert.Contains(t, attrs.Issues, "node C: missing attribute ORDER")
	assert.Contains(t, attrs.Issues, "node C: unexpected attribute EXTRA")

	// Attribute drift must not bleed into the edge or node categories.
	assert.True(t, requireCategory(t, r, "edges").Passed)
	assert.True(t, requireCategory(t, r, "nodes").Passed)
}

func TestCheckExtraction_DetailCapBoundsIssueCount(t *testing.T) {
	// Ten wanted edges, none extracted: per-signature findings are capped
	// with a trailing remainder line.
	original := "digraph g {\n"
	for i := 0; i < 10; i++ {
		original += `  "a" -> "` + string(rune('b'+i)) + `" [label = "CFG"];` + "\n"
	}
	original += "}\n"

	r := CheckExtraction(original, "digraph s {\n}\n", []string{"CFG"})
	edges := requireCategory(t, r, "edges")
	assert.False(t, edges.Passed)
	assert.Contains(t, edges.Issues, "missing edge: 5 more")
}
