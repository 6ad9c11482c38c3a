package verify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Pre-filter subgraph: foo is the only UDF, printf is external, C is a body
// block reachable from foo over CFG.
const filterSubgraph = `digraph subgraph_CALL_CFG {
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

const filterGood = `digraph udf_example {
  // Node definitions
  "A" [label = "METHOD" NAME = "foo" FULL_NAME = "foo" FILENAME = "main.c" IS_EXTERNAL = "false"];
  "C" [label = "BLOCK" ORDER = "1"];

  // Edge definitions
  "A" -> "C" [label = "CFG"];
  "C" -> "A" [label = "CFG"];
}
`

func TestCheckUDFFilter_Passes(t *testing.T) {
	r := CheckUDFFilter(filterSubgraph, filterGood)
	assert.True(t, r.OverallPassed())
	assert.Equal(t, []string{
		"udf_identification",
		"cfg_reachability",
		"edge_filtering",
		"node_integrity",
	}, r.Names())
}

func TestCheckUDFFilter_MissingSeed(t *testing.T) {
	filtered := `digraph udf_example {
  "C" [label = "BLOCK" ORDER = "1"];
}
`
	r := CheckUDFFilter(filterSubgraph, filtered)
	cat := requireCategory(t, r, "udf_identification")
	assert.False(t, cat.Passed)
	assert.Contains(t, cat.Issues, "UDF method missing from output: A")
}

func TestCheckUDFFilter_LeakedExternalMethod(t *testing.T) {
	filtered := filterGood[:len(filterGood)-2] +
		`  "B" [label = "METHOD" NAME = "printf" IS_EXTERNAL = "true"];` + "\n}\n"

	r := CheckUDFFilter(filterSubgraph, filtered)
	cat := requireCategory(t, r, "udf_identification")
	assert.False(t, cat.Passed)
	assert.Contains(t, cat.Issues, "non-UDF method in output: B")

	// The leaked node is also outside the recomputed closure.
	reach := requireCategory(t, r, "cfg_reachability")
	assert.Contains(t, reach.Issues, "unreachable node in output: B")
}

func TestCheckUDFFilter_CallTargetNotSeed(t *testing.T) {
	filtered := filterGood[:len(filterGood)-2] +
		`  "A" -> "C" [label = "CALL"];` + "\n}\n"

	r := CheckUDFFilter(filterSubgraph, filtered)
	cat := requireCategory(t, r, "edge_filtering")
	assert.False(t, cat.Passed)
	assert.Contains(t, cat.Issues, "CALL edge target is not a UDF method: A->C:CALL")
}

func TestCheckUDFFilter_UnexpectedEdgeType(t *testing.T) {
	filtered := filterGood[:len(filterGood)-2] +
		`  "A" -> "C" [label = "AST"];` + "\n}\n"

	r := CheckUDFFilter(filterSubgraph, filtered)
	cat := requireCategory(t, r, "edge_filtering")
	assert.Contains(t, cat.Issues, "unexpected edge type in filtered output: A->C:AST")
}

func TestCheckUDFFilter_CorruptedRawText(t *testing.T) {
	// Flip one character inside C's ORDER value. Only node_integrity should
	// notice; the structural categories still pass.
	corrupted := strings.Replace(filterGood, `"C" [label = "BLOCK" ORDER = "1"];`, `"C" [label = "BLOCK" ORDER = "2"];`, 1)

	r := CheckUDFFilter(filterSubgraph, corrupted)
	assert.False(t, r.OverallPassed())

	integ := requireCategory(t, r, "node_integrity")
	assert.False(t, integ.Passed)
	assert.Len(t, integ.Issues, 1)
	assert.Contains(t, integ.Issues[0], "node C")

	assert.True(t, requireCategory(t, r, "udf_identification").Passed)
	assert.True(t, requireCategory(t, r, "cfg_reachability").Passed)
	assert.True(t, requireCategory(t, r, "edge_filtering").Passed)
}

func TestCheckUDFFilter_NodeNotInPreFilterGraph(t *testing.T) {
	filtered := filterGood[:len(filterGood)-2] +
		`  "Z" [label = "BLOCK"];` + "\n}\n"

	r := CheckUDFFilter(filterSubgraph, filtered)
	cat := requireCategory(t, r, "node_integrity")
	assert.Contains(t, cat.Issues, "node Z not found in pre-filter graph")
}
