package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cherryops/cmd/cherryops/handlers"
)

// Server returns the command for converging bare-metal servers.
//
// The task file describes the desired state. present and active deploy
// servers (active waits for them to come up), absent terminates them, and
// running, stopped and rebooted control power.
//
// Examples:
//
//	# Deploy three web servers and wait for them
//	cherryops server -f web.yaml
//
//	# Validate the task file without touching the project
//	cherryops server -f web.yaml --check
func Server(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Converge bare-metal servers to a desired state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Server(cmd.Context(), *opts)
		},
	}
}
