package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cherryops/cmd/cherryops/handlers"
)

// SSHKey returns the command for converging account SSH keys.
func SSHKey(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sshkey",
		Short: "Converge SSH keys to a desired state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SSHKey(cmd.Context(), *opts)
		},
	}
}
