package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/cpgslice/internal/config"
	"github.com/dusk-indust/cpgslice/internal/pipeline"
)

func runSlice(args []string) error {
	fs := flag.NewFlagSet("slice", flag.ContinueOnError)
	edgeTypesFlag := fs.String("edge-types", "", "comma-separated edge types to extract (default CFG,CALL)")
	verbose := fs.Bool("verbose", false, "print scanner diagnostics and missing node ids")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: cpgslice slice [flags] <input.dot> [output-dir]")
	}
	inputPath := rest[0]

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	outputDir := "cpg_output"
	if cfg.OutputDir != "" {
		outputDir = cfg.OutputDir
	}
	if len(rest) > 1 {
		outputDir = rest[1]
	}

	edgeTypes := cfg.EdgeTypes
	if *edgeTypesFlag != "" {
		edgeTypes = splitEdgeTypes(*edgeTypesFlag)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read input graph: %w", err)
	}

	res, err := pipeline.Run(context.Background(), string(raw), pipeline.Options{
		EdgeTypes: edgeTypes,
		GraphName: graphName(inputPath),
	})
	if err != nil {
		return err
	}

	art, err := pipeline.WriteArtifacts(inputPath, outputDir, res, edgeTypes)
	if err != nil {
		return err
	}

	fmt.Printf("original: %d nodes, %d edges\n", res.Counts.OriginalNodes, res.Counts.OriginalEdges)
	fmt.Printf("filtered: %d nodes, %d edges\n", res.Counts.FilteredNodes, res.Counts.FilteredEdges)
	fmt.Printf("wrote %s\n", art.SubgraphPath)
	fmt.Printf("wrote %s\n", art.FilteredPath)
	fmt.Printf("wrote %s\n", art.ReportPath)

	if *verbose || cfg.Verbose {
		for _, d := range res.Diagnostics {
			fmt.Printf("diagnostic: %s\n", d)
		}
		for _, id := range res.MissingNodes {
			fmt.Printf("missing node: %s\n", id)
		}
	}

	results := res.Report.Results()
	for _, name := range res.Report.Names() {
		cat := results[name]
		status := "ok"
		if !cat.Passed {
			status = "FAILED"
		}
		fmt.Printf("check %-20s %s\n", name, status)
		for _, issue := range cat.Issues {
			fmt.Printf("  %s\n", issue)
		}
	}

	if !res.Report.OverallPassed() {
		return fmt.Errorf("verification failed, see %s", art.ReportPath)
	}
	return nil
}

func splitEdgeTypes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func graphName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
