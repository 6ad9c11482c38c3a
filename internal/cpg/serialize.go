package cpg

import (
	"sort"
	"strconv"
	"strings"
)

// Document is a renderable DOT output: a header comment block with counts,
// node declarations sorted by id, then edges in original relative order.
// Declarations are emitted byte-for-byte; the only modification is a fixed
// two-character indent prefixed to the first physical line of each
// declaration.
type Document struct {
	Name     string
	Comments []string
	Nodes    map[string]string // id → raw declaration span
	Edges    []string          // raw edge lines, original order
}

// Render produces the output text. Rendering the same document twice
// byte-matches.
func (d Document) Render() string {
	ids := make([]string, 0, len(d.Nodes))
	for id := range d.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("digraph ")
	b.WriteString(d.Name)
	b.WriteString(" {\n")
	for _, c := range d.Comments {
		b.WriteString("  // ")
		b.WriteString(c)
		b.WriteByte('\n')
	}
	b.WriteString("  // Nodes: ")
	b.WriteString(strconv.Itoa(len(d.Nodes)))
	b.WriteString(", Edges: ")
	b.WriteString(strconv.Itoa(len(d.Edges)))
	b.WriteString("\n\n")

	b.WriteString("  // Node definitions\n")
	for _, id := range ids {
		// Continuation lines of a multi-line declaration are embedded in the
		// raw span, so prefixing the span indents the first line only.
		b.WriteString("  ")
		b.WriteString(d.Nodes[id])
		b.WriteByte('\n')
	}

	b.WriteString("\n  // Edge definitions\n")
	for _, e := range d.Edges {
		b.WriteString("  ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

// NewSubgraphDocument builds the output document for an edge-type extraction.
// Wanted types are sorted so the graph name and header are deterministic
// regardless of how the caller ordered them. Node ids with no declaration are
// excluded; the extraction records them separately.
func NewSubgraphDocument(types []string, ex *Extraction, g *Graph) Document {
	sorted := append([]string(nil), types...)
	sort.Strings(sorted)

	nodes := make(map[string]string, len(ex.NodeIDs))
	for id := range ex.NodeIDs {
		if n, ok := g.Nodes[id]; ok {
			nodes[id] = n.Raw
		}
	}
	edges := make([]string, 0, len(ex.Edges))
	for _, e := range ex.Edges {
		edges = append(edges, e.Raw)
	}

	return Document{
		Name: "subgraph_" + strings.Join(sorted, "_"),
		Comments: []string{
			"Direct extraction from original DOT file",
			"Edge types: " + strings.Join(sorted, ", "),
		},
		Nodes: nodes,
		Edges: edges,
	}
}

// NewFilteredDocument builds the output document for a UDF slice of g.
func NewFilteredDocument(name string, sl *Slice, g *Graph) Document {
	nodes := make(map[string]string, len(sl.Kept))
	for id := range sl.Kept {
		if n, ok := g.Nodes[id]; ok {
			nodes[id] = n.Raw
		}
	}
	edges := make([]string, 0, len(sl.Edges))
	for _, e := range sl.Edges {
		edges = append(edges, e.Raw)
	}

	return Document{
		Name: "udf_" + name,
		Comments: []string{
			"UDF-filtered subgraph",
			"Only user-defined functions and their bodies",
		},
		Nodes: nodes,
		Edges: edges,
	}
}
