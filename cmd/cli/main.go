// Package main is the entry point for the runtimectl CLI.
// The CLI is the developer terminal tool for interacting with the
// runtimeplane daemon API.
package main

import (
	"os"

	"runtimeplane/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
