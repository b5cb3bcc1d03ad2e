package commands

import (
	"github.com/spf13/cobra"

	"github.com/mediashift/mediashift/cmd/mediashift/handlers"
)

// Convert returns the command for turning a Plex user export into the
// migration CSV.
//
// Flags:
//
//	--input, -i: Path to the Plex user export XML (required)
//	--output, -o: Path to the CSV to write (default "users.csv")
func Convert() *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a Plex user export to the migration CSV",
		Long: `Convert a Plex user export to the migration CSV.

Reads the XML user list exported from Plex and writes the CSV that
'mediashift migrate' consumes. Users without a passphrase get a fresh
generated one.

Examples:
  mediashift convert -i plex_users.xml
  mediashift convert -i plex_users.xml -o family.csv`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Convert(inputPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the Plex user export XML")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "users.csv", "Path to the CSV to write")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
