package cpg

import "github.com/dusk-indust/cpgslice/internal/dot"

// Parse builds a Graph from the complete text of one exported graph. Scanner
// and decoder recoveries are carried through as diagnostics; Parse itself
// cannot fail. An edge whose attribute block lacks a label decodes to an edge
// of type "" and is filtered out by every wanted-type set downstream.
func Parse(text string) *Graph {
	scanned := dot.Scan(text)

	g := &Graph{
		Nodes:       make(map[string]*Node),
		Diagnostics: scanned.Diagnostics,
	}

	for _, d := range scanned.Decls {
		switch d.Kind {
		case dot.DeclEdge:
			attrs := dot.DecodeAttrs(d.AttrText)
			g.Edges = append(g.Edges, Edge{
				Source: d.ID,
				Target: d.Target,
				Type:   attrs[AttrLabel],
				Raw:    d.Raw,
			})
		case dot.DeclNode:
			// Later declaration of the same id supersedes the earlier one.
			g.Nodes[d.ID] = &Node{
				ID:    d.ID,
				Attrs: dot.DecodeAttrs(d.AttrText),
				Raw:   d.Raw,
			}
		}
	}
	return g
}
