package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/cpgslice/internal/mcptools"
	"github.com/dusk-indust/cpgslice/internal/store"
)

func runServeMCP(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := mcptools.NewSliceService(func() store.Store { return store.NewMemStore() })
	defer svc.Close()

	fmt.Printf("cpgslice MCP server listening on %s\n", addr)
	return mcptools.RunMCPServer(ctx, svc, addr)
}
