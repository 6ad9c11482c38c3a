package dot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_NodeAndEdge(t *testing.T) {
	text := `digraph g {
  // header comment
  "111" [label = "METHOD" NAME = "main"];
  "111" -> "222"  [label = "CFG"];
}
`
	res := Scan(text)
	require.Len(t, res.Decls, 2)
	assert.Empty(t, res.Diagnostics)

	node := res.Decls[0]
	assert.Equal(t, DeclNode, node.Kind)
	assert.Equal(t, "111", node.ID)
	assert.Equal(t, `label = "METHOD" NAME = "main"`, node.AttrText)
	assert.Equal(t, `"111" [label = "METHOD" NAME = "main"];`, node.Raw)

	edge := res.Decls[1]
	assert.Equal(t, DeclEdge, edge.Kind)
	assert.Equal(t, "111", edge.ID)
	assert.Equal(t, "222", edge.Target)
	assert.Equal(t, `label = "CFG"`, edge.AttrText)
	assert.Equal(t, `"111" -> "222"  [label = "CFG"];`, edge.Raw)
}

func TestScan_MultiLineNodeBlock(t *testing.T) {
	// A quoted CODE value containing real newlines and a bracket that must
	// not terminate the block.
	text := "digraph g {\n" +
		"  \"10\" [label = \"METHOD\" CODE = \"int x[3];\n" +
		"line two\n" +
		"line three\"];\n" +
		"}\n"

	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Empty(t, res.Diagnostics)

	d := res.Decls[0]
	assert.Equal(t, DeclNode, d.Kind)
	assert.Equal(t, "10", d.ID)

	// The raw span keeps continuation lines byte-for-byte.
	want := "\"10\" [label = \"METHOD\" CODE = \"int x[3];\n" +
		"line two\n" +
		"line three\"];"
	assert.Equal(t, want, d.Raw)
	assert.Contains(t, d.AttrText, "line two")
}

func TestScan_QuoteStatePersistsAcrossLines(t *testing.T) {
	// The "];" on the second line is inside the quoted value, so the block
	// must continue to the real terminator on the third line.
	text := "\"5\" [CODE = \"a[0] = b\n" +
		"];\n" +
		"\" label = \"BLOCK\"];\n"

	res := Scan(text)
	require.Len(t, res.Decls, 1)
	d := res.Decls[0]
	assert.Equal(t, "5", d.ID)
	assert.True(t, strings.HasSuffix(d.Raw, `label = "BLOCK"];`))
}

func TestScan_EscapedQuote(t *testing.T) {
	text := `"7" [NAME = "say \"hi\" twice" label = "METHOD"];` + "\n"

	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, `NAME = "say \"hi\" twice" label = "METHOD"`, res.Decls[0].AttrText)
}

func TestScan_EscapedBackslashBeforeQuote(t *testing.T) {
	// \\ is an escaped backslash, so the following quote closes the string.
	text := `"8" [NAME = "path\\" label = "METHOD"];` + "\n"

	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "8", res.Decls[0].ID)
}

func TestScan_IgnoresNonDeclarationLines(t *testing.T) {
	text := `digraph subgraph_CFG {
  // Nodes: 1, Edges: 0

  // Node definitions
  "1" [label = "METHOD"];

  // Edge definitions
}
`
	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Equal(t, "1", res.Decls[0].ID)
}

func TestScan_UnterminatedBlockAtEOF(t *testing.T) {
	text := "\"9\" [label = \"METHOD\"\n" +
		"NAME = \"never closed\n"

	res := Scan(text)
	assert.Empty(t, res.Decls)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], `"9"`)
	assert.Contains(t, res.Diagnostics[0], "unterminated")
}

func TestScan_MalformedEdgeRecovered(t *testing.T) {
	text := `"1" -> ;
"2" -> "3" [label = "CFG"];
`
	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Equal(t, "2", res.Decls[0].ID)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "line 1")
}

func TestScan_BracketInsideEdgeIDs(t *testing.T) {
	// An arrow inside a quoted id must not be taken for the edge operator.
	text := `"a->b" [label = "BLOCK"];` + "\n"

	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Equal(t, DeclNode, res.Decls[0].Kind)
	assert.Equal(t, "a->b", res.Decls[0].ID)
}

func TestScan_TerminatorAllowsSpacesBeforeSemicolon(t *testing.T) {
	text := "\"4\" [label = \"BLOCK\"]  \t;\n"

	res := Scan(text)
	require.Len(t, res.Decls, 1)
	assert.Equal(t, "\"4\" [label = \"BLOCK\"]  \t;", res.Decls[0].Raw)
}
