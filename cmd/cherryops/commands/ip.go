package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cherryops/cmd/cherryops/handlers"
)

// IP returns the command for converging floating IP addresses.
func IP(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ip",
		Short: "Converge floating IP addresses to a desired state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.IP(cmd.Context(), *opts)
		},
	}
}
