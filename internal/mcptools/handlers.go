package mcptools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dusk-indust/cpgslice/internal/cpg"
	"github.com/dusk-indust/cpgslice/internal/pipeline"
	"github.com/dusk-indust/cpgslice/internal/store"
	"github.com/dusk-indust/cpgslice/internal/verify"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SliceService backs the MCP tool handlers. Each run_slice call loads the
// resulting slice into a fresh store so query_methods always reflects the
// most recent run.
type SliceService struct {
	mu       sync.Mutex
	newStore func() store.Store
	current  store.Store
}

// NewSliceService creates a SliceService. newStore is called once per
// run_slice invocation to build the query backend for that slice.
func NewSliceService(newStore func() store.Store) *SliceService {
	return &SliceService{newStore: newStore}
}

// RunSlice executes the full pipeline on one graph file, writes the three
// artifacts, and loads the filtered slice into the service store.
func (s *SliceService) RunSlice(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunSliceInput,
) (*mcp.CallToolResult, RunSliceOutput, error) {
	if input.DotPath == "" {
		return nil, RunSliceOutput{}, fmt.Errorf("dotPath is required")
	}
	if input.OutputDir == "" {
		return nil, RunSliceOutput{}, fmt.Errorf("outputDir is required")
	}

	raw, err := os.ReadFile(input.DotPath)
	if err != nil {
		return nil, RunSliceOutput{}, fmt.Errorf("cannot read input graph: %w", err)
	}

	res, err := pipeline.Run(ctx, string(raw), pipeline.Options{
		EdgeTypes: input.EdgeTypes,
		GraphName: baseName(input.DotPath),
	})
	if err != nil {
		return nil, RunSliceOutput{}, err
	}

	art, err := pipeline.WriteArtifacts(input.DotPath, input.OutputDir, res, input.EdgeTypes)
	if err != nil {
		return nil, RunSliceOutput{}, err
	}

	if err := s.loadSlice(ctx, res.FilteredDOT); err != nil {
		return nil, RunSliceOutput{}, fmt.Errorf("load slice: %w", err)
	}

	return nil, RunSliceOutput{
		SubgraphFile:  art.SubgraphPath,
		FilteredFile:  art.FilteredPath,
		ReportFile:    art.ReportPath,
		Counts:        res.Counts,
		OverallPassed: res.Report.OverallPassed(),
	}, nil
}

// VerifySlice reruns verification over already-produced artifacts.
func (s *SliceService) VerifySlice(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input VerifySliceInput,
) (*mcp.CallToolResult, VerifySliceOutput, error) {
	if input.OriginalPath == "" || input.ExtractedPath == "" {
		return nil, VerifySliceOutput{}, fmt.Errorf("originalPath and extractedPath are required")
	}

	original, err := os.ReadFile(input.OriginalPath)
	if err != nil {
		return nil, VerifySliceOutput{}, fmt.Errorf("cannot read original graph: %w", err)
	}
	extracted, err := os.ReadFile(input.ExtractedPath)
	if err != nil {
		return nil, VerifySliceOutput{}, fmt.Errorf("cannot read extracted graph: %w", err)
	}

	edgeTypes := input.EdgeTypes
	if len(edgeTypes) == 0 {
		edgeTypes = pipeline.DefaultEdgeTypes
	}

	report := verify.NewReport()
	report.Merge(verify.CheckExtraction(string(original), string(extracted), edgeTypes))

	files := map[string]string{
		"original_dot": input.OriginalPath,
		"subgraph_dot": input.ExtractedPath,
	}

	og := cpg.Parse(string(original))
	counts := verify.Counts{
		OriginalNodes: len(og.Nodes),
		OriginalEdges: len(og.Edges),
	}

	if input.FilteredPath != "" {
		filtered, err := os.ReadFile(input.FilteredPath)
		if err != nil {
			return nil, VerifySliceOutput{}, fmt.Errorf("cannot read filtered graph: %w", err)
		}
		report.Merge(verify.CheckUDFFilter(string(extracted), string(filtered)))
		files["filtered_dot"] = input.FilteredPath

		fg := cpg.Parse(string(filtered))
		counts.FilteredNodes = len(fg.Nodes)
		counts.FilteredEdges = len(fg.Edges)
	}

	return nil, VerifySliceOutput{Report: report.Document(files, counts)}, nil
}

// QueryMethods searches the most recently loaded slice for METHOD nodes.
func (s *SliceService) QueryMethods(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryMethodsInput,
) (*mcp.CallToolResult, QueryMethodsOutput, error) {
	s.mu.Lock()
	st := s.current
	s.mu.Unlock()
	if st == nil {
		return nil, QueryMethodsOutput{}, fmt.Errorf("no slice loaded; call run_slice first")
	}

	methods, err := st.QueryMethods(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, QueryMethodsOutput{}, fmt.Errorf("query methods: %w", err)
	}
	return nil, QueryMethodsOutput{Methods: methods, Total: len(methods)}, nil
}

// loadSlice replaces the current store with a fresh one holding the slice.
func (s *SliceService) loadSlice(ctx context.Context, filteredDOT string) error {
	st := s.newStore()
	if err := store.LoadSlice(ctx, st, cpg.Parse(filteredDOT)); err != nil {
		st.Close()
		return err
	}

	s.mu.Lock()
	old := s.current
	s.current = st
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Close releases the current store, if any.
func (s *SliceService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
