// Command probe scans a directory of NDJSON files and prints the fields
// found, with inferred types and normalized column names. Useful when
// checking a new data drop against the expected input contract.
package main

import (
	"flag"
	"fmt"
	"os"

	"sparkify/internal/probe"
)

func main() {
	dir := flag.String("dir", "", "directory to scan for *.json files")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: probe -dir <path>")
		os.Exit(2)
	}

	rep, err := probe.Scan(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		os.Exit(1)
	}
	rep.Print(os.Stdout)
}
