// Package cpg models the code property graph exported by the analysis
// backend and implements the slicing pipeline over it: edge-type subgraph
// extraction, user-defined-function classification, control-flow reachability,
// and deterministic byte-preserving serialization.
package cpg

// --- Enums ---

// Well-known edge types in the exported graph.
const (
	EdgeCFG  = "CFG"
	EdgeCALL = "CALL"
)

// LabelMethod is the node label marking method nodes.
const LabelMethod = "METHOD"

// Attribute keys the pipeline depends on.
const (
	AttrLabel             = "label"
	AttrName              = "NAME"
	AttrFullName          = "FULL_NAME"
	AttrFilename          = "FILENAME"
	AttrASTParentFullName = "AST_PARENT_FULL_NAME"
	AttrIsExternal        = "IS_EXTERNAL"
)

// --- Models ---

// Node is one node declaration. Raw holds the exact original span of the
// declaration and is immutable once parsed; output stages byte-copy it, never
// rebuild it from Attrs.
type Node struct {
	ID    string
	Attrs map[string]string
	Raw   string
}

// Edge is one edge declaration. Endpoints are not required to resolve to a
// Node; a dangling reference is legal. Parallel edges between the same pair
// are distinct records.
type Edge struct {
	Source string
	Target string
	Type   string // derived from the edge's label attribute
	Raw    string
}

// Graph is an ordered edge sequence plus an id→node table. Node ids are
// unique: when the same id is declared twice, the later declaration wins.
type Graph struct {
	Nodes map[string]*Node
	Edges []Edge

	// Diagnostics carries non-fatal scan/decode recoveries.
	Diagnostics []string
}

// Signature is the (source, target, type) identity of an edge, used for set
// comparisons that ignore raw text.
func (e Edge) Signature() string {
	return e.Source + "->" + e.Target + ":" + e.Type
}

// Slice is the retained portion of a graph after UDF classification,
// CFG reachability, and edge retention filtering. Immutable once computed.
type Slice struct {
	// Seeds are the node ids classified as user-defined methods.
	Seeds map[string]bool

	// Kept is the CFG-reachability closure over Seeds.
	Kept map[string]bool

	// Edges are the retained edges in original relative order.
	Edges []Edge
}
