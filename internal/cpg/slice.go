package cpg

// ReachableFromSeeds computes the forward closure over CFG edges: the
// smallest node set containing every seed and closed under following any CFG
// edge from a member. Breadth-first with a visited set shared across seeds;
// cycles terminate naturally and there is no depth bound. A seed with no
// outgoing CFG edges contributes itself only.
func ReachableFromSeeds(edges []Edge, seeds map[string]bool) map[string]bool {
	adjacency := make(map[string][]string)
	for _, e := range edges {
		if e.Type == EdgeCFG {
			adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		}
	}

	visited := make(map[string]bool, len(seeds))
	var queue []string
	for id := range seeds {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
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

// FilterEdges applies the retention rule to the full edge list:
//
//   - a CFG edge is retained iff both endpoints are in kept;
//   - a CALL edge is retained iff its source is in kept AND its target is in
//     seeds. The target test uses the seed set, not the kept set, so a call to
//     a non-UDF node that happens to be CFG-reachable is still dropped;
//   - every other edge type is dropped.
//
// Retained edges keep their original relative order.
func FilterEdges(edges []Edge, kept, seeds map[string]bool) []Edge {
	var out []Edge
	for _, e := range edges {
		switch e.Type {
		case EdgeCFG:
			if kept[e.Source] && kept[e.Target] {
				out = append(out, e)
			}
		case EdgeCALL:
			if kept[e.Source] && seeds[e.Target] {
				out = append(out, e)
			}
		}
	}
	return out
}

// ComputeSlice runs classification, reachability, and edge retention over a
// graph, producing the retained node/edge set.
func ComputeSlice(g *Graph) *Slice {
	seeds := SeedSet(g)
	kept := ReachableFromSeeds(g.Edges, seeds)
	return &Slice{
		Seeds: seeds,
		Kept:  kept,
		Edges: FilterEdges(g.Edges, kept, seeds),
	}
}
