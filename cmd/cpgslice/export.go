//go:build cgo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/cpgslice/internal/cpg"
	"github.com/dusk-indust/cpgslice/internal/store"
)

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: cpgslice export <filtered.dot> <db-path>")
	}
	dotPath, dbPath := rest[0], rest[1]

	raw, err := os.ReadFile(dotPath)
	if err != nil {
		return fmt.Errorf("cannot read graph: %w", err)
	}
	g := cpg.Parse(string(raw))

	st, err := store.NewKuzuFileStore(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := store.LoadSlice(ctx, st, g); err != nil {
		return fmt.Errorf("load slice: %w", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	fmt.Printf("exported %d nodes (%d methods), %d CFG edges, %d CALL edges to %s\n",
		stats.NodeCount, stats.MethodCount, stats.CFGEdges, stats.CallEdges, dbPath)
	return nil
}
