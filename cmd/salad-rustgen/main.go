// Package main provides the CLI entrypoint for salad-rustgen.
//
// salad-rustgen compiles normalized Schema Salad documents into a Rust crate:
//   - gen: generate the crate sources (and the project skeleton)
//   - tree: print the module tree without writing anything
//   - watch: regenerate whenever a schema file changes
//   - init: write a default salad-rustgen.yaml
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		logger.Error().Err(err).Msg("salad-rustgen failed")
		os.Exit(1)
	}
}
