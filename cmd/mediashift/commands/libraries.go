package commands

import (
	"github.com/spf13/cobra"

	"github.com/mediashift/mediashift/cmd/mediashift/handlers"
)

// Libraries returns the command for listing the target server's
// libraries.
func Libraries() *cobra.Command {
	opts := handlers.LibrariesOptions{}

	cmd := &cobra.Command{
		Use:   "libraries",
		Short: "List the target server's libraries",
		Long: `List the target server's libraries with their ids.

Use the ids in the 'libraries' config field to grant specific
libraries instead of all of them. With --select, pick the libraries
interactively and print the selector string to paste into the config.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Libraries(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: mediashift.yaml)")
	cmd.Flags().BoolVar(&opts.Select, "select", false, "Pick libraries interactively and print the selector string")

	return cmd
}
