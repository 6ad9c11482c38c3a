package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dusk-indust/cpgslice/internal/cpg"
)

// LoadSlice writes every declared node and every CFG/CALL edge of a parsed
// filtered graph into st. Nodes are inserted in id order so file-backed
// stores produce stable layouts; edges keep their original order.
func LoadSlice(ctx context.Context, st Store, g *cpg.Graph) error {
	if err := st.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := g.Nodes[id]
		row := NodeRow{
			ID:       id,
			Label:    n.Attrs[cpg.AttrLabel],
			Name:     n.Attrs[cpg.AttrName],
			FullName: n.Attrs[cpg.AttrFullName],
			Filename: n.Attrs[cpg.AttrFilename],
		}
		if err := st.AddNode(ctx, row); err != nil {
			return fmt.Errorf("add node %s: %w", id, err)
		}
	}

	for _, e := range g.Edges {
		if e.Type != cpg.EdgeCFG && e.Type != cpg.EdgeCALL {
			continue
		}
		row := EdgeRow{Source: e.Source, Target: e.Target, Kind: e.Type}
		if err := st.AddEdge(ctx, row); err != nil {
			return fmt.Errorf("add %s edge %s->%s: %w", e.Type, e.Source, e.Target, err)
		}
	}
	return nil
}
