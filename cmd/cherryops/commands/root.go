// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cherryops/cmd/cherryops/handlers"
)

// Root returns the root command for the cherryops CLI.
func Root() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "cherryops",
		Short: "Manage Cherry Servers resources declaratively",
	}

	cmd.PersistentFlags().StringVar(&opts.AuthToken, "auth-token", "", "Cherry Servers API token (default: CHERRY_AUTH_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "Path to the task file")
	cmd.PersistentFlags().BoolVar(&opts.Check, "check", false, "Validate the task file without calling the API")

	cmd.AddCommand(Server(&opts))
	cmd.AddCommand(IP(&opts))
	cmd.AddCommand(SSHKey(&opts))
	cmd.AddCommand(Storage(&opts))
	cmd.AddCommand(Version())

	return cmd
}
