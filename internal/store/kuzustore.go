//go:build cgo

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given path, so a loaded slice survives across sessions. KuzuDB creates the
// leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// The node table must precede the relationship tables. The CALL edge kind is
// stored in a table named CALLS because CALL is a Cypher keyword.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS CpgNode(
		id STRING,
		label STRING,
		name STRING,
		full_name STRING,
		filename STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS CFG(FROM CpgNode TO CpgNode)`,
	`CREATE REL TABLE IF NOT EXISTS CALLS(FROM CpgNode TO CpgNode)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddNode inserts a CpgNode row.
func (s *KuzuStore) AddNode(_ context.Context, node NodeRow) error {
	return s.exec(
		`CREATE (n:CpgNode {
			id: $id,
			label: $label,
			name: $name,
			full_name: $fn,
			filename: $file
		})`,
		map[string]any{
			"id":    node.ID,
			"label": node.Label,
			"name":  node.Name,
			"fn":    node.FullName,
			"file":  node.Filename,
		},
	)
}

// AddEdge inserts a relationship edge between two nodes.
func (s *KuzuStore) AddEdge(_ context.Context, edge EdgeRow) error {
	table, err := relTable(edge.Kind)
	if err != nil {
		return err
	}
	cypher := fmt.Sprintf(
		`MATCH (a:CpgNode {id: $src}), (b:CpgNode {id: $dst})
		 CREATE (a)-[:%s]->(b)`, table)
	return s.exec(cypher, map[string]any{
		"src": edge.Source,
		"dst": edge.Target,
	})
}

// relTable maps an edge kind to its relationship table name.
func relTable(kind string) (string, error) {
	switch kind {
	case "CFG":
		return "CFG", nil
	case "CALL":
		return "CALLS", nil
	default:
		return "", fmt.Errorf("kuzu: unsupported edge kind: %s", kind)
	}
}

// ---------- Read operations ----------

// GetNode retrieves a single node by id, or returns nil if not found.
func (s *KuzuStore) GetNode(_ context.Context, id string) (*NodeRow, error) {
	rows, err := s.query(
		"MATCH (n:CpgNode {id: $id}) RETURN n.id, n.label, n.name, n.full_name, n.filename",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToNode(rows[0]), nil
}

// QueryMethods returns METHOD nodes whose name contains the query string.
func (s *KuzuStore) QueryMethods(_ context.Context, queryStr string, limit int) ([]NodeRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.query(
		`MATCH (n:CpgNode) WHERE n.label = "METHOD" AND n.name CONTAINS $q
		 RETURN n.id, n.label, n.name, n.full_name, n.filename
		 ORDER BY n.id
		 LIMIT $lim`,
		map[string]any{
			"q":   queryStr,
			"lim": int64(limit),
		},
	)
	if err != nil {
		return nil, err
	}
	out := make([]NodeRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToNode(r))
	}
	return out, nil
}

// Successors returns the targets of edges of the given kind leaving id.
func (s *KuzuStore) Successors(_ context.Context, id, kind string) ([]string, error) {
	table, err := relTable(kind)
	if err != nil {
		return nil, err
	}
	cypher := fmt.Sprintf(
		"MATCH (a:CpgNode {id: $id})-[:%s]->(b:CpgNode) RETURN DISTINCT b.id ORDER BY b.id", table)
	rows, err := s.query(cypher, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, toString(r[0]))
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of the node table and both relationship tables.
func (s *KuzuStore) Stats(_ context.Context) (*Stats, error) {
	nodes, err := s.countRows("MATCH (n:CpgNode) RETURN count(n)")
	if err != nil {
		return nil, err
	}
	methods, err := s.countRows(`MATCH (n:CpgNode) WHERE n.label = "METHOD" RETURN count(n)`)
	if err != nil {
		return nil, err
	}
	cfg, err := s.countRows("MATCH ()-[r:CFG]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	calls, err := s.countRows("MATCH ()-[r:CALLS]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	return &Stats{
		NodeCount:   nodes,
		MethodCount: methods,
		CFGEdges:    cfg,
		CallEdges:   calls,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func (s *KuzuStore) countRows(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// rowToNode converts a 5-column result row into a NodeRow.
// Column order: id, label, name, full_name, filename.
func rowToNode(r []any) *NodeRow {
	return &NodeRow{
		ID:       toString(r[0]),
		Label:    toString(r[1]),
		Name:     toString(r[2]),
		FullName: toString(r[3]),
		Filename: toString(r[4]),
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
