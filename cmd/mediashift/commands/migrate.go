package commands

import (
	"github.com/spf13/cobra"

	"github.com/mediashift/mediashift/cmd/mediashift/handlers"
)

// Migrate returns the command for provisioning accounts on the target
// server.
//
// Required flags:
//
//	--csv: Path to the user CSV (Username, Email, Passphrase, Thumb)
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect mediashift.yaml)
//	--dry-run: Report what would happen without creating anything
//	--skip-libraries: Do not grant library access
//	--skip-images: Do not upload avatars
//	--libraries: Override the configured library selector
//	--roles: Override the configured account roles
//	--delay: Override the inter-user pause in seconds
//
// Environment variables:
//
//	EMBY_API_KEY: Admin API key for the target server (required)
func Migrate() *cobra.Command {
	opts := handlers.MigrateOptions{DelaySeconds: -1}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create accounts on the target server from a user CSV",
		Long: `Create accounts on the target server from a user CSV.

For each user this creates the account, grants the configured roles and
library access, and uploads an avatar. Users whose accounts already
exist are skipped, so re-running a partially completed migration is
safe.

Examples:
  # Migrate users from users.csv using mediashift.yaml in current directory
  mediashift migrate --csv users.csv

  # See what would happen without touching the server
  mediashift migrate --csv users.csv --dry-run

  # Migrate without avatars
  mediashift migrate --csv users.csv --skip-images`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Migrate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "Path to the user CSV file")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: mediashift.yaml)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would happen without creating anything")
	cmd.Flags().BoolVar(&opts.SkipLibraries, "skip-libraries", false, "Do not grant library access")
	cmd.Flags().BoolVar(&opts.SkipImages, "skip-images", false, "Do not upload avatars")
	cmd.Flags().StringVar(&opts.Libraries, "libraries", "", "Override the configured library selector (\"all\" or comma-separated ids)")
	cmd.Flags().StringSliceVar(&opts.Roles, "roles", nil, "Override the configured account roles")
	cmd.Flags().IntVar(&opts.DelaySeconds, "delay", -1, "Override the pause between users in seconds")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}
