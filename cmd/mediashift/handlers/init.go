package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mediashift/mediashift/internal/config"
	"github.com/mediashift/mediashift/internal/config/wizard"
	"github.com/mediashift/mediashift/internal/platform/emby"
)

// Function variables for dependency injection in tests.
var (
	runWizard      = wizard.Run
	writeConfig    = wizard.WriteConfig
	fileExists     = wizard.FileExists
	confirmReplace = wizard.ConfirmOverwrite
)

// Init interactively creates a configuration file.
//
// When EMBY_API_KEY is already set, the wizard lists the server's
// libraries so they can be picked by name instead of id.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		ok, err := confirmReplace(outputPath)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	result, err := runWizard(ctx, liveCatalog)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := writeConfig(cfg, outputPath); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", outputPath)
	fmt.Printf("Set %s and run 'mediashift migrate --csv users.csv -c %s'.\n", config.EnvAPIKey, outputPath)
	return nil
}

// liveCatalog builds a library catalog for the chosen server when an
// API key is available in the environment.
func liveCatalog(serverURL string) emby.LibraryCatalog {
	apiKey := os.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		return nil
	}
	return newClient(serverURL, apiKey)
}
