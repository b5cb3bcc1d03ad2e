package commands

import (
	"github.com/spf13/cobra"

	"github.com/mediashift/mediashift/cmd/mediashift/handlers"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "mediashift.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a configuration file.

This command guides you through configuring a migration step by step.
It will ask about:

  - Target server address
  - Library access for migrated users
  - Account permissions
  - Pacing and avatar options

The API key is never written to the file; set the EMBY_API_KEY
environment variable instead. If EMBY_API_KEY is already set, the
wizard lists the server's libraries for selection by name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "mediashift.yaml", "Output file path")

	return cmd
}
