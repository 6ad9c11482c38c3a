package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/cpgslice/internal/verify"
)

// Artifacts are the on-disk outputs of one run plus the persisted document.
type Artifacts struct {
	SubgraphPath string
	FilteredPath string
	ReportPath   string
	Document     verify.Document
}

// WriteArtifacts writes the subgraph, the filtered graph, and the
// verification report into dir, creating it if needed. File names follow the
// wanted edge types, e.g. CFG_CALL_original.dot and
// CFG_CALL_original_udf_filtered.dot. A write failure is fatal for this
// invocation.
func WriteArtifacts(inputPath, dir string, res *Result, edgeTypes []string) (*Artifacts, error) {
	if len(edgeTypes) == 0 {
		edgeTypes = DefaultEdgeTypes
	}
	sorted := append([]string(nil), edgeTypes...)
	sort.Strings(sorted)
	base := strings.Join(sorted, "_")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	art := &Artifacts{
		SubgraphPath: filepath.Join(dir, base+"_original.dot"),
		FilteredPath: filepath.Join(dir, base+"_original_udf_filtered.dot"),
		ReportPath:   filepath.Join(dir, "verification_report.json"),
	}

	if err := os.WriteFile(art.SubgraphPath, []byte(res.SubgraphDOT), 0o644); err != nil {
		return nil, fmt.Errorf("write subgraph: %w", err)
	}
	if err := os.WriteFile(art.FilteredPath, []byte(res.FilteredDOT), 0o644); err != nil {
		return nil, fmt.Errorf("write filtered graph: %w", err)
	}

	art.Document = res.Document(map[string]string{
		"original_dot": inputPath,
		"subgraph_dot": art.SubgraphPath,
		"filtered_dot": art.FilteredPath,
	})
	data, err := json.MarshalIndent(art.Document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(art.ReportPath, append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return art, nil
}
