package verify

import "strings"

// CheckUDFFilter validates a UDF-filtered graph against the pre-filter
// subgraph it was produced from. The seed set and the CFG-reachability
// closure are recomputed here from the pre-filter text; the produced output
// is then held to them.
//
// Categories: "udf_identification" (no seed missing, no non-UDF method
// leaked), "cfg_reachability" (output node set equals the recomputed
// closure), "edge_filtering" (CFG endpoints inside the output, CALL targets
// inside the seed set), "node_integrity" (raw declaration text is
// character-identical to the pre-filter graph).
func CheckUDFFilter(subgraphDOT, filteredDOT string) *Report {
	original := parseGraph(subgraphDOT)
	filtered := parseGraph(filteredDOT)

	seeds := original.udfMethods()
	outputIDs := filtered.nodeIDs()

	report := NewReport()
	checkUDFIdentification(report, filtered, seeds, outputIDs)
	checkCFGReachability(report, original, seeds, outputIDs)
	checkEdgeFiltering(report, filtered, seeds, outputIDs)
	checkNodeIntegrity(report, original, filtered)
	return report
}

func checkUDFIdentification(report *Report, filtered *parsedGraph, seeds, outputIDs map[string]bool) {
	cat := report.Category("udf_identification")

	reportSetDiff(cat, setDiff(seeds, outputIDs), "UDF method missing from output")

	// Every METHOD node in the output must itself be a UDF seed; anything
	// else is a leaked external or synthetic method.
	var leaked []string
	for _, id := range sortedKeys(filtered.nodes) {
		if filtered.nodes[id].attrs["label"] == "METHOD" && !seeds[id] {
			leaked = append(leaked, id)
		}
	}
	reportSetDiff(cat, leaked, "non-UDF method in output")
}

func checkCFGReachability(report *Report, original *parsedGraph, seeds, outputIDs map[string]bool) {
	cat := report.Category("cfg_reachability")

	expected := original.cfgClosure(seeds)
	reportSetDiff(cat, setDiff(expected, outputIDs), "missing CFG-reachable node")
	reportSetDiff(cat, setDiff(outputIDs, expected), "unreachable node in output")
}

func checkEdgeFiltering(report *Report, filtered *parsedGraph, seeds, outputIDs map[string]bool) {
	cat := report.Category("edge_filtering")

	for _, e := range filtered.edges {
		switch e.etype {
		case "CFG":
			if !outputIDs[e.source] || !outputIDs[e.target] {
				cat.Fail("CFG edge with endpoint outside output: %s", e.signature())
			}
		case "CALL":
			if !outputIDs[e.source] {
				cat.Fail("CALL edge source outside output: %s", e.signature())
			}
			if !seeds[e.target] {
				cat.Fail("CALL edge target is not a UDF method: %s", e.signature())
			}
		default:
			cat.Fail("unexpected edge type in filtered output: %s", e.signature())
		}
	}
}

func checkNodeIntegrity(report *Report, original, filtered *parsedGraph) {
	cat := report.Category("node_integrity")

	for _, id := range sortedKeys(filtered.nodes) {
		origNode, ok := original.nodes[id]
		if !ok {
			cat.Fail("node %s not found in pre-filter graph", id)
			continue
		}
		origRaw := strings.TrimSpace(origNode.raw)
		filtRaw := strings.TrimSpace(filtered.nodes[id].raw)
		if origRaw != filtRaw {
			cat.Fail("node %s raw text corrupted (original %d bytes, filtered %d bytes)", id, len(origRaw), len(filtRaw))
		}
	}
}
