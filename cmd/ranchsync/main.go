// Package main is the entry point for the ranchsync CLI.
//
// ranchsync reconciles Rancher clusters, node pools, node templates and node
// drivers against a desired-state document, and reads registration tokens,
// cluster info and kubeconfigs. Each run is a single
// lookup, decide, act and report cycle against the Rancher v3 API.
//
// For detailed usage information, run:
//
//	ranchsync --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/ranchsync/cmd/ranchsync/commands"
	"github.com/imamik/ranchsync/cmd/ranchsync/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		if !handlers.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
