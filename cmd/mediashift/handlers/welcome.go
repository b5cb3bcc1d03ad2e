package handlers

import (
	"bytes"
	"fmt"

	"github.com/mediashift/mediashift/internal/records"
	"github.com/mediashift/mediashift/internal/welcome"
)

// WelcomeOptions are the flag values for the welcome command.
type WelcomeOptions struct {
	CSVPath      string
	OutputPath   string
	ConfigPath   string
	TemplatePath string
	// Preview prints the first rendered email instead of writing a file.
	Preview bool
}

// Welcome renders welcome emails for the users in the CSV and writes
// them as an Email,Subject,Message CSV for a mail-merge tool.
func Welcome(opts WelcomeOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	batch, err := records.LoadCSV(opts.CSVPath)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	params := welcome.Params{
		ServerURL:  cfg.ServerURL,
		ServerName: cfg.Welcome.ServerName,
		AdminName:  cfg.Welcome.AdminName,
		AdminEmail: cfg.Welcome.AdminEmail,
	}

	generator := welcome.NewGenerator(params)
	if opts.TemplatePath != "" {
		generator, err = welcome.NewGeneratorFromFile(params, opts.TemplatePath)
		if err != nil {
			return err
		}
	}

	if opts.Preview {
		return previewEmail(generator, batch)
	}

	var out bytes.Buffer
	count, err := generator.WriteCSV(&out, batch)
	if err != nil {
		return fmt.Errorf("failed to generate emails: %w", err)
	}

	// The emails contain passphrases, so keep the file owner-readable only.
	if err := writeFile(opts.OutputPath, out.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
	}

	fmt.Printf("Generated %d welcome emails in %s\n", count, opts.OutputPath)
	fmt.Println("The file contains passphrases; delete it after sending.")
	return nil
}

// previewEmail renders the first renderable record to stdout so the
// operator can check the wording before generating the full batch.
func previewEmail(generator *welcome.Generator, batch []records.UserRecord) error {
	for _, record := range batch {
		email, err := generator.Render(record)
		if err != nil {
			continue
		}
		fmt.Printf("To: %s\nSubject: %s\n\n%s\n", email.To, email.Subject, email.Body)
		return nil
	}
	return fmt.Errorf("no renderable users in the CSV")
}
