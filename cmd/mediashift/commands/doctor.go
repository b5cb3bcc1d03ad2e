package commands

import (
	"github.com/spf13/cobra"

	"github.com/mediashift/mediashift/cmd/mediashift/handlers"
)

// Doctor returns the command for checking server connectivity and
// configuration.
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check server connectivity and configuration",
		Long: `Check server connectivity and configuration.

Validates the configuration file, probes the target server with the
configured API key, and reports version quirks that affect the
migration (e.g. broken avatar upload on some server versions).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: mediashift.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
