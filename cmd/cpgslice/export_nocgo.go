//go:build !cgo

package main

import "fmt"

func runExport(args []string) error {
	return fmt.Errorf("export requires a cgo-enabled build (KuzuDB backend)")
}
