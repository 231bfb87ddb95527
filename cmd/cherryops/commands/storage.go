package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cherryops/cmd/cherryops/handlers"
)

// Storage returns the command for converging storage volumes.
func Storage(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Converge elastic block storage volumes to a desired state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Storage(cmd.Context(), *opts)
		},
	}
}
