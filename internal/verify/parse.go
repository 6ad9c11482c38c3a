package verify

import (
	"sort"
	"strings"

	"github.com/dusk-indust/cpgslice/internal/dot"
)

// The verifier keeps its own graph model and classification logic rather than
// reusing the producer's. The duplication is deliberate: the oracle must
// recompute expected results from the raw text alone, so a bug in the
// producer's bookkeeping cannot silently agree with itself here.

type parsedNode struct {
	attrs map[string]string
	raw   string
}

type parsedEdge struct {
	source string
	target string
	etype  string
}

type parsedGraph struct {
	nodes map[string]*parsedNode
	edges []parsedEdge
}

func parseGraph(text string) *parsedGraph {
	scanned := dot.Scan(text)
	g := &parsedGraph{nodes: make(map[string]*parsedNode)}
	for _, d := range scanned.Decls {
		attrs := dot.DecodeAttrs(d.AttrText)
		switch d.Kind {
		case dot.DeclEdge:
			g.edges = append(g.edges, parsedEdge{
				source: d.ID,
				target: d.Target,
				etype:  attrs["label"],
			})
		case dot.DeclNode:
			g.nodes[d.ID] = &parsedNode{attrs: attrs, raw: d.Raw}
		}
	}
	return g
}

func (e parsedEdge) signature() string {
	return e.source + "->" + e.target + ":" + e.etype
}

func (g *parsedGraph) nodeIDs() map[string]bool {
	ids := make(map[string]bool, len(g.nodes))
	for id := range g.nodes {
		ids[id] = true
	}
	return ids
}

// isUserDefinedMethod is the verifier's own copy of the UDF predicate.
func isUserDefinedMethod(attrs map[string]string) bool {
	if attrs["label"] != "METHOD" {
		return false
	}
	if strings.EqualFold(attrs["IS_EXTERNAL"], "true") {
		return false
	}
	name := attrs["NAME"]
	if strings.HasPrefix(name, "<operator>") || strings.HasPrefix(attrs["FULL_NAME"], "<operator>") {
		return false
	}
	if name == "<clinit>" || name == "<global>" {
		return false
	}
	switch attrs["FILENAME"] {
	case "<includes>", "<empty>", "":
		return false
	}
	return !strings.Contains(attrs["AST_PARENT_FULL_NAME"], "<includes>")
}

// udfMethods classifies every node in g and returns the UDF id set.
func (g *parsedGraph) udfMethods() map[string]bool {
	udfs := make(map[string]bool)
	for id, n := range g.nodes {
		if isUserDefinedMethod(n.attrs) {
			udfs[id] = true
		}
	}
	return udfs
}

// cfgClosure is the verifier's own forward BFS over CFG edges.
func (g *parsedGraph) cfgClosure(seeds map[string]bool) map[string]bool {
	adjacency := make(map[string][]string)
	for _, e := range g.edges {
		if e.etype == "CFG" {
			adjacency[e.source] = append(adjacency[e.source], e.target)
		}
	}

	visited := make(map[string]bool, len(seeds))
	var queue []string
	for id := range seeds {
		visited[id] = true
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// setDiff returns the members of a that are not in b, sorted.
func setDiff(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// sortedKeys returns the keys of m, sorted.
func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
