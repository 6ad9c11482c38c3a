// Package pipeline wires the slicing stages into the single-graph entry
// point the batch orchestrator calls: extract the wanted edge types, slice to
// user-defined functions, serialize both checkpoints, and verify the produced
// artifacts against the raw inputs.
package pipeline

import (
	"context"
	"fmt"

	"github.com/dusk-indust/cpgslice/internal/cpg"
	"github.com/dusk-indust/cpgslice/internal/verify"
	"golang.org/x/sync/errgroup"
)

// DefaultEdgeTypes is the edge-type set extracted when the caller does not
// choose one.
var DefaultEdgeTypes = []string{cpg.EdgeCFG, cpg.EdgeCALL}

// Options configures one pipeline run.
type Options struct {
	// EdgeTypes to extract; defaults to DefaultEdgeTypes.
	EdgeTypes []string

	// GraphName names the filtered digraph ("udf_<name>"); defaults to
	// "filtered".
	GraphName string
}

// Result holds everything one run produced. The verifier consumed only the
// raw input and the two serialized checkpoints, never the intermediate state
// used to produce them.
type Result struct {
	SubgraphDOT string
	FilteredDOT string
	Report      *verify.Report
	Counts      verify.Counts

	// MissingNodes are ids referenced by kept edges with no declaration in
	// the input. Non-fatal; they are excluded from the output.
	MissingNodes []string

	// Diagnostics are scanner/decoder recoveries from both parse passes.
	Diagnostics []string
}

// Document freezes the run into the persisted report shape.
func (r *Result) Document(files map[string]string) verify.Document {
	return r.Report.Document(files, r.Counts)
}

// Run processes one graph's text end to end. The core stages are sequential
// and purely in-memory; the two independent verification checks run
// concurrently. The only error returned is context cancellation; malformed
// input degrades into diagnostics and verification findings instead.
func Run(ctx context.Context, rawDOT string, opts Options) (*Result, error) {
	edgeTypes := opts.EdgeTypes
	if len(edgeTypes) == 0 {
		edgeTypes = DefaultEdgeTypes
	}
	wanted := make(map[string]bool, len(edgeTypes))
	for _, t := range edgeTypes {
		wanted[t] = true
	}
	name := opts.GraphName
	if name == "" {
		name = "filtered"
	}

	// Checkpoint 1: edge-type subgraph.
	g := cpg.Parse(rawDOT)
	ex := cpg.ExtractSubgraph(g, wanted)
	subText := cpg.NewSubgraphDocument(edgeTypes, ex, g).Render()

	// Checkpoint 2: UDF slice. The filter consumes the serialized subgraph,
	// not the first parse, so each stage owns its own graph.
	sg := cpg.Parse(subText)
	sl := cpg.ComputeSlice(sg)
	filtDoc := cpg.NewFilteredDocument(name, sl, sg)
	filtText := filtDoc.Render()

	var extractionReport, filterReport *verify.Report
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		extractionReport = verify.CheckExtraction(rawDOT, subText, edgeTypes)
		return nil
	})
	eg.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		filterReport = verify.CheckUDFFilter(subText, filtText)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := verify.NewReport()
	report.Merge(extractionReport)
	report.Merge(filterReport)

	diags := append([]string(nil), g.Diagnostics...)
	diags = append(diags, sg.Diagnostics...)
	if len(ex.Missing) > 0 {
		diags = append(diags, fmt.Sprintf("%d nodes referenced by kept edges have no declaration", len(ex.Missing)))
	}

	return &Result{
		SubgraphDOT: subText,
		FilteredDOT: filtText,
		Report:      report,
		Counts: verify.Counts{
			OriginalNodes: len(g.Nodes),
			OriginalEdges: len(g.Edges),
			FilteredNodes: len(filtDoc.Nodes),
			FilteredEdges: len(filtDoc.Edges),
		},
		MissingNodes: ex.Missing,
		Diagnostics:  diags,
	}, nil
}
