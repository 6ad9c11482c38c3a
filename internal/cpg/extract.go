package cpg

import "sort"

// Extraction is the result of filtering a graph down to a set of edge types.
type Extraction struct {
	// Edges are the kept edges in original order, raw text untouched.
	Edges []Edge

	// NodeIDs is the union of source and target ids over kept edges,
	// including ids with no matching node declaration.
	NodeIDs map[string]bool

	// Missing lists kept node ids that have no declaration in the graph,
	// sorted. They are excluded from output and reported as a diagnostic,
	// never treated as fatal.
	Missing []string
}

// ExtractSubgraph keeps every edge whose type is in wanted, plus the nodes
// those edges reference.
func ExtractSubgraph(g *Graph, wanted map[string]bool) *Extraction {
	ex := &Extraction{NodeIDs: make(map[string]bool)}

	for _, e := range g.Edges {
		if !wanted[e.Type] {
			continue
		}
		ex.Edges = append(ex.Edges, e)
		ex.NodeIDs[e.Source] = true
		ex.NodeIDs[e.Target] = true
	}

	for id := range ex.NodeIDs {
		if _, ok := g.Nodes[id]; !ok {
			ex.Missing = append(ex.Missing, id)
		}
	}
	sort.Strings(ex.Missing)
	return ex
}
