package verify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_CategoryLifecycle(t *testing.T) {
	r := NewReport()
	cat := r.Category("edges")
	assert.True(t, cat.Passed)
	assert.Empty(t, cat.Issues)

	cat.Fail("missing edge: %s", "A->B:CFG")
	assert.False(t, r.Category("edges").Passed)
	assert.False(t, r.OverallPassed())

	// Same name returns the same category.
	assert.Same(t, cat, r.Category("edges"))
	assert.Equal(t, []string{"edges"}, r.Names())
}

func TestReport_Merge(t *testing.T) {
	a := NewReport()
	a.Category("edges")
	a.Category("nodes").Fail("missing node: X")

	b := NewReport()
	b.Category("nodes").Fail("extra node: Y")
	b.Category("attributes")

	a.Merge(b)
	assert.Equal(t, []string{"edges", "nodes", "attributes"}, a.Names())

	nodes := a.Results()["nodes"]
	assert.False(t, nodes.Passed)
	assert.Equal(t, []string{"missing node: X", "extra node: Y"}, nodes.Issues)
	assert.True(t, a.Results()["edges"].Passed)
	assert.False(t, a.OverallPassed())
}

func TestReport_DocumentJSONShape(t *testing.T) {
	r := NewReport()
	r.Category("edges")
	r.Category("node_integrity").Fail("node C raw text corrupted (original 10 bytes, filtered 9 bytes)")

	doc := r.Document(
		map[string]string{"original_dot": "in.dot"},
		Counts{OriginalNodes: 3, OriginalEdges: 4, FilteredNodes: 2, FilteredEdges: 2},
	)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "files")
	assert.Contains(t, decoded, "counts")
	assert.Contains(t, decoded, "verification_results")
	assert.Contains(t, decoded, "overall_passed")
	assert.Equal(t, false, decoded["overall_passed"])

	counts := decoded["counts"].(map[string]any)
	assert.Equal(t, float64(3), counts["original_nodes"])
	assert.Equal(t, float64(2), counts["filtered_edges"])

	results := decoded["verification_results"].(map[string]any)
	edges := results["edges"].(map[string]any)
	assert.Equal(t, true, edges["passed"])

	// A passing category still serializes an empty issues array, not null.
	assert.Equal(t, []any{}, edges["issues"])
}

func TestReport_DocumentNilFiles(t *testing.T) {
	doc := NewReport().Document(nil, Counts{})
	assert.NotNil(t, doc.Files)
	assert.True(t, doc.OverallPassed)
}
