// Package main provides the CLI entrypoint for shapeshift.
//
// shapeshift runs data transformation pipelines declared in YAML or HCL
// definition files:
//   - run: feeds JSON or YAML input through a named transformer
//   - check: validates and compiles every transformer of a file
//   - functions: lists the bundled function names
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
