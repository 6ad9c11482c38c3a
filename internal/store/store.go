// Package store persists a filtered slice into a queryable graph backend so
// downstream tooling can ask questions of the slice without re-parsing DOT
// text.
package store

import (
	"context"
	"io"
)

// NodeRow is the queryable projection of a sliced graph node. It carries the
// attribute subset the query surface needs, not the raw declaration text.
type NodeRow struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// EdgeRow is one retained edge of the slice.
type EdgeRow struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"` // CFG or CALL
}

// Stats summarizes a loaded slice.
type Stats struct {
	NodeCount   int `json:"nodeCount"`
	MethodCount int `json:"methodCount"`
	CFGEdges    int `json:"cfgEdges"`
	CallEdges   int `json:"callEdges"`
}

// Store is the interface for the sliced-graph backend.
// Implementations: KuzuStore (cgo, persistent), MemStore (default, testing).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddNode(ctx context.Context, node NodeRow) error
	AddEdge(ctx context.Context, edge EdgeRow) error

	// Read operations.
	GetNode(ctx context.Context, id string) (*NodeRow, error)
	QueryMethods(ctx context.Context, query string, limit int) ([]NodeRow, error)
	Successors(ctx context.Context, id, kind string) ([]string, error)

	// Stats.
	Stats(ctx context.Context) (*Stats, error)
}
