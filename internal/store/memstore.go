package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	nodes map[string]NodeRow
	edges []EdgeRow
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{nodes: make(map[string]NodeRow)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddNode stores a node keyed by its id, replacing any previous row.
func (m *MemStore) AddNode(_ context.Context, node NodeRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes[node.ID] = node
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge EdgeRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetNode returns the node for the given id, or nil if not found.
func (m *MemStore) GetNode(_ context.Context, id string) (*NodeRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// QueryMethods returns METHOD nodes whose name contains the query string,
// sorted by id. An empty query matches every method.
func (m *MemStore) QueryMethods(_ context.Context, query string, limit int) ([]NodeRow, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []NodeRow
	for _, n := range m.nodes {
		if n.Label != "METHOD" {
			continue
		}
		if query != "" && !strings.Contains(n.Name, query) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Successors returns the targets of edges of the given kind leaving id,
// sorted and deduplicated.
func (m *MemStore) Successors(_ context.Context, id, kind string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, e := range m.edges {
		if e.Source == id && e.Kind == kind && !seen[e.Target] {
			seen[e.Target] = true
			out = append(out, e.Target)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Stats returns node and edge counts for the loaded slice.
func (m *MemStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &Stats{NodeCount: len(m.nodes)}
	for _, n := range m.nodes {
		if n.Label == "METHOD" {
			s.MethodCount++
		}
	}
	for _, e := range m.edges {
		switch e.Kind {
		case "CFG":
			s.CFGEdges++
		case "CALL":
			s.CallEdges++
		}
	}
	return s, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
