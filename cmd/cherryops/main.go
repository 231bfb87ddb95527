// Package main is the entry point for the cherryops CLI.
//
// cherryops manages Cherry Servers resources declaratively: bare-metal
// servers, floating IPs, SSH keys and storage volumes. Each subcommand reads
// a YAML task file describing the desired state and converges the project
// towards it with the minimum number of API calls.
//
// For detailed usage information, run:
//
//	cherryops --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/cherryops/cmd/cherryops/commands"
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
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
