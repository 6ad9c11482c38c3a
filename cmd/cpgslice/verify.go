package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/cpgslice/internal/cpg"
	"github.com/dusk-indust/cpgslice/internal/pipeline"
	"github.com/dusk-indust/cpgslice/internal/verify"
)

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	edgeTypesFlag := fs.String("edge-types", "", "comma-separated edge types the extraction was asked for (default CFG,CALL)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: cpgslice verify [flags] <original.dot> <extracted.dot> [filtered.dot]")
	}

	original, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("cannot read original graph: %w", err)
	}
	extracted, err := os.ReadFile(rest[1])
	if err != nil {
		return fmt.Errorf("cannot read extracted graph: %w", err)
	}

	edgeTypes := pipeline.DefaultEdgeTypes
	if *edgeTypesFlag != "" {
		edgeTypes = splitEdgeTypes(*edgeTypesFlag)
	}

	report := verify.NewReport()
	report.Merge(verify.CheckExtraction(string(original), string(extracted), edgeTypes))

	files := map[string]string{
		"original_dot": rest[0],
		"subgraph_dot": rest[1],
	}

	og := cpg.Parse(string(original))
	counts := verify.Counts{
		OriginalNodes: len(og.Nodes),
		OriginalEdges: len(og.Edges),
	}

	if len(rest) > 2 {
		filtered, err := os.ReadFile(rest[2])
		if err != nil {
			return fmt.Errorf("cannot read filtered graph: %w", err)
		}
		report.Merge(verify.CheckUDFFilter(string(extracted), string(filtered)))
		files["filtered_dot"] = rest[2]

		fg := cpg.Parse(string(filtered))
		counts.FilteredNodes = len(fg.Nodes)
		counts.FilteredEdges = len(fg.Edges)
	}

	doc := report.Document(files, counts)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(data))

	if !report.OverallPassed() {
		return fmt.Errorf("verification failed")
	}
	return nil
}
