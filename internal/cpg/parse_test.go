package cpg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NodesAndEdges(t *testing.T) {
	text := `digraph g {
  "1" [label = "METHOD" NAME = "main" FILENAME = "main.c"];
  "2" [label = "BLOCK"];
  "1" -> "2" [label = "CFG"];
  "1" -> "2" [label = "AST"];
}
`
	g := Parse(text)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 2)
	assert.Empty(t, g.Diagnostics)

	assert.Equal(t, "METHOD", g.Nodes["1"].Attrs[AttrLabel])
	assert.Equal(t, "main", g.Nodes["1"].Attrs[AttrName])
	assert.Equal(t, `"2" [label = "BLOCK"];`, g.Nodes["2"].Raw)

	assert.Equal(t, EdgeCFG, g.Edges[0].Type)
	assert.Equal(t, "AST", g.Edges[1].Type)
	assert.Equal(t, "1->2:CFG", g.Edges[0].Signature())
}

func TestParse_LaterNodeDeclarationWins(t *testing.T) {
	text := `"1" [label = "BLOCK"];
"1" [label = "METHOD"];
`
	g := Parse(text)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "METHOD", g.Nodes["1"].Attrs[AttrLabel])
}

func TestParse_EdgeWithoutLabel(t *testing.T) {
	g := Parse(`"1" -> "2" [ORDER = 1];` + "\n")
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "", g.Edges[0].Type)
}

func TestParse_CarriesDiagnostics(t *testing.T) {
	g := Parse(`"1" -> ;` + "\n")
	assert.NotEmpty(t, g.Diagnostics)
}
