package mcptools

import (
	"github.com/dusk-indust/cpgslice/internal/store"
	"github.com/dusk-indust/cpgslice/internal/verify"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// RunSliceInput is the input for the run_slice MCP tool.
type RunSliceInput struct {
	DotPath   string   `json:"dotPath" jsonschema:"path to the exported code property graph in DOT format"`
	OutputDir string   `json:"outputDir" jsonschema:"directory where the subgraph, filtered graph, and report are written"`
	EdgeTypes []string `json:"edgeTypes,omitempty" jsonschema:"edge types to extract (default: CFG CALL)"`
}

// RunSliceOutput is the result of the run_slice MCP tool.
type RunSliceOutput struct {
	SubgraphFile  string        `json:"subgraphFile"`
	FilteredFile  string        `json:"filteredFile"`
	ReportFile    string        `json:"reportFile"`
	Counts        verify.Counts `json:"counts"`
	OverallPassed bool          `json:"overallPassed"`
}

// VerifySliceInput is the input for the verify_slice MCP tool.
type VerifySliceInput struct {
	OriginalPath  string   `json:"originalPath" jsonschema:"path to the original full graph"`
	ExtractedPath string   `json:"extractedPath" jsonschema:"path to the extracted subgraph"`
	FilteredPath  string   `json:"filteredPath,omitempty" jsonschema:"path to the UDF-filtered graph; omit to run only the extraction check"`
	EdgeTypes     []string `json:"edgeTypes,omitempty" jsonschema:"edge types the extraction was asked for (default: CFG CALL)"`
}

// VerifySliceOutput is the result of the verify_slice MCP tool.
type VerifySliceOutput struct {
	Report verify.Document `json:"report"`
}

// QueryMethodsInput is the input for the query_methods MCP tool.
type QueryMethodsInput struct {
	Query string `json:"query,omitempty" jsonschema:"substring match on method names; empty matches all"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryMethodsOutput is the result of the query_methods MCP tool.
type QueryMethodsOutput struct {
	Methods []store.NodeRow `json:"methods"`
	Total   int             `json:"total"`
}
