package handlers

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mediashift/mediashift/internal/records"
	"github.com/mediashift/mediashift/internal/util/secret"
)

// Convert turns a Plex user export XML into the migration CSV.
//
// Users without credentials of their own get a generated passphrase so
// the CSV is immediately usable by migrate and welcome.
func Convert(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	batch, err := records.ParsePlexExport(bytes.NewReader(data), secret.Generate)
	if err != nil {
		return fmt.Errorf("failed to parse Plex export: %w", err)
	}
	if len(batch) == 0 {
		return fmt.Errorf("no users found in %s", inputPath)
	}

	var out bytes.Buffer
	if err := records.WriteCSV(&out, batch); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	// The CSV holds passphrases, so keep it owner-readable only.
	if err := writeFile(outputPath, out.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Printf("Converted %d users to %s\n", len(batch), outputPath)
	return nil
}
