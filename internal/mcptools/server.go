package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewSliceMCPServer creates an MCP server with the slicing tools registered.
func NewSliceMCPServer(svc *SliceService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cpgslice",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_slice",
		Description: "Slice an exported code property graph down to user-defined functions. Extracts the wanted edge types, computes the CFG-reachable UDF slice, writes subgraph/filtered/report files, and verifies the outputs.",
	}, svc.RunSlice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify_slice",
		Description: "Independently verify previously produced slice artifacts. Recomputes expected edges, nodes, UDF seeds, and reachability from the raw files and reports every mismatch.",
	}, svc.VerifySlice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_methods",
		Description: "Search the most recently sliced graph for user-defined METHOD nodes by name substring.",
	}, svc.QueryMethods)

	return server
}

// RunMCPServer starts an HTTP server exposing the slicing MCP tools.
func RunMCPServer(ctx context.Context, svc *SliceService, addr string) error {
	server := NewSliceMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
