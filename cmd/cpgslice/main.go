package main

import (
	"flag"
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("cpgslice", flag.ContinueOnError)
	serveMCP := fs.Bool("serve-mcp", false, "run as MCP server exposing the slicing tools")
	addr := fs.String("addr", "localhost:8191", "listen address for -serve-mcp")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Println(version)
		return nil
	}
	if *serveMCP {
		return runServeMCP(*addr)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: cpgslice [flags] <slice|verify|export> ...")
	}

	switch rest[0] {
	case "slice":
		return runSlice(rest[1:])
	case "verify":
		return runVerify(rest[1:])
	case "export":
		return runExport(rest[1:])
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}
