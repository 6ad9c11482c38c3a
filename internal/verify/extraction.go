package verify

// detailCap bounds how many individual ids or signatures a single finding
// enumerates after its summary line.
const detailCap = 5

// CheckExtraction validates an edge-type subgraph extraction. It recomputes
// the expected edge and node sets directly from the original text and diffs
// them against the produced subgraph text. Every check runs; nothing stops at
// the first failure.
//
// Categories: "edges" (per-type counts, unwanted types, signature set
// equality), "nodes" (endpoint id set equality), "attributes" (full
// attribute-map equality for nodes present in both).
func CheckExtraction(originalDOT, extractedDOT string, edgeTypes []string) *Report {
	wanted := make(map[string]bool, len(edgeTypes))
	for _, t := range edgeTypes {
		wanted[t] = true
	}

	original := parseGraph(originalDOT)
	extracted := parseGraph(extractedDOT)

	report := NewReport()
	checkEdges(report, original, extracted, wanted)
	checkNodes(report, original, extracted, wanted)
	checkAttributes(report, original, extracted)
	return report
}

func checkEdges(report *Report, original, extracted *parsedGraph, wanted map[string]bool) {
	cat := report.Category("edges")

	originalByType := make(map[string]int)
	originalSigs := make(map[string]bool)
	for _, e := range original.edges {
		if wanted[e.etype] {
			originalByType[e.etype]++
			originalSigs[e.signature()] = true
		}
	}

	extractedByType := make(map[string]int)
	extractedSigs := make(map[string]bool)
	for _, e := range extracted.edges {
		extractedByType[e.etype]++
		extractedSigs[e.signature()] = true
	}

	for _, t := range sortedKeys(wanted) {
		if originalByType[t] != extractedByType[t] {
			cat.Fail("%s: count mismatch (%d original vs %d extracted)", t, originalByType[t], extractedByType[t])
		}
	}
	for _, t := range sortedKeys(extractedByType) {
		if !wanted[t] {
			cat.Fail("unwanted edge type in output: %s (%d edges)", t, extractedByType[t])
		}
	}

	reportSetDiff(cat, setDiff(originalSigs, extractedSigs), "missing edge")
	reportSetDiff(cat, setDiff(extractedSigs, originalSigs), "extra edge")
}

func checkNodes(report *Report, original, extracted *parsedGraph, wanted map[string]bool) {
	cat := report.Category("nodes")

	expected := make(map[string]bool)
	for _, e := range original.edges {
		if wanted[e.etype] {
			expected[e.source] = true
			expected[e.target] = true
		}
	}
	actual := extracted.nodeIDs()

	reportSetDiff(cat, setDiff(expected, actual), "missing node")
	reportSetDiff(cat, setDiff(actual, expected), "extra node")
}

func checkAttributes(report *Report, original, extracted *parsedGraph) {
	cat := report.Category("attributes")

	for _, id := range sortedKeys(extracted.nodes) {
		origNode, ok := original.nodes[id]
		if !ok {
			continue // the nodes category already covers extra nodes
		}
		extrNode := extracted.nodes[id]

		for _, key := range sortedKeys(origNode.attrs) {
			extrVal, ok := extrNode.attrs[key]
			if !ok {
				cat.Fail("node %s: missing attribute %s", id, key)
				continue
			}
			if extrVal != origNode.attrs[key] {
				cat.Fail("node %s: value mismatch in %s", id, key)
			}
		}
		for _, key := range sortedKeys(extrNode.attrs) {
			if _, ok := origNode.attrs[key]; !ok {
				cat.Fail("node %s: unexpected attribute %s", id, key)
			}
		}
	}
}

// reportSetDiff records one finding per differing member, bounded by
// detailCap with a trailing count when the diff is large.
func reportSetDiff(cat *Category, diff []string, label string) {
	if len(diff) == 0 {
		return
	}
	limit := len(diff)
	if limit > detailCap {
		limit = detailCap
	}
	for _, item := range diff[:limit] {
		cat.Fail("%s: %s", label, item)
	}
	if len(diff) > detailCap {
		cat.Fail("%s: %d more", label, len(diff)-detailCap)
	}
}
