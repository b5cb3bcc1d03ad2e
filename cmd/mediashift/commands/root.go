// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the mediashift CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mediashift",
		Short: "Migrate user accounts from Plex to Emby",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Convert())
	cmd.AddCommand(Migrate())
	cmd.AddCommand(Welcome())

	// Inspection commands
	cmd.AddCommand(Libraries())
	cmd.AddCommand(Doctor())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
