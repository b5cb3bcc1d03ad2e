package commands

import (
	"github.com/spf13/cobra"

	"github.com/mediashift/mediashift/cmd/mediashift/handlers"
)

// Welcome returns the command for generating welcome emails.
//
// Required flags:
//
//	--csv: Path to the user CSV
//
// Optional flags:
//
//	--output, -o: Path to the email CSV to write (default "welcome_emails.csv")
//	--config, -c: Path to configuration YAML file
//	--template: Path to a custom email template
//	--preview: Print the first email instead of writing a file
func Welcome() *cobra.Command {
	opts := handlers.WelcomeOptions{}

	cmd := &cobra.Command{
		Use:   "welcome",
		Short: "Generate welcome emails for migrated users",
		Long: `Generate welcome emails for migrated users.

Renders one email per user into a CSV with Email, Subject, and Message
columns, ready for a mail-merge tool. The server address and admin
contact come from the configuration file.

The output contains each user's passphrase; treat the file like a
credential and delete it after sending.

Examples:
  mediashift welcome --csv users.csv
  mediashift welcome --csv users.csv --template custom.tmpl -o emails.csv`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Welcome(opts)
		},
	}

	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "Path to the user CSV file")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "welcome_emails.csv", "Path to the email CSV to write")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: mediashift.yaml)")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "Path to a custom email template")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Print the first email instead of writing a file")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}
