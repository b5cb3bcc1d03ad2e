package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mediashift/mediashift/internal/config"
	"github.com/mediashift/mediashift/internal/platform/emby"
)

// LibrariesOptions are the flag values for the libraries command.
type LibrariesOptions struct {
	ConfigPath string
	// Select runs an interactive multi-select and prints the resulting
	// selector string instead of just listing.
	Select bool
}

// Swapped out in tests.
var selectLibraries = promptLibraries

// Libraries lists the target server's libraries with their ids. With
// Select it prompts for a subset and prints the selector string to put
// in the 'libraries' config field.
func Libraries(ctx context.Context, opts LibrariesOptions) error {
	cfg, client, err := connectedClient(opts.ConfigPath)
	if err != nil {
		return err
	}

	libraries, err := client.ListLibraries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}

	if len(libraries) == 0 {
		fmt.Println("No libraries found on the server.")
		return nil
	}

	if opts.Select {
		ids, err := selectLibraries(ctx, libraries)
		if err != nil {
			return fmt.Errorf("selection cancelled: %w", err)
		}
		fmt.Printf("libraries: %q\n", strings.Join(ids, ","))
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-12s %s\n", "ID", "Name")
	fmt.Println("  " + strings.Repeat("─", 35))
	for _, library := range libraries {
		fmt.Printf("  %-12s %s\n", library.ID, library.Name)
	}
	fmt.Println()

	granted, err := resolveSelector(cfg, libraries)
	switch {
	case err != nil:
		fmt.Printf("  Configured selector %q does not resolve: %v\n", cfg.Libraries, err)
	case granted != nil:
		fmt.Printf("  Configured selector grants %d of %d libraries.\n", len(granted), len(libraries))
	}
	fmt.Println()

	return nil
}

// promptLibraries runs the interactive library multi-select.
func promptLibraries(ctx context.Context, libraries []emby.Library) ([]string, error) {
	options := make([]huh.Option[string], 0, len(libraries))
	for _, library := range libraries {
		options = append(options, huh.NewOption(library.Name, library.ID))
	}

	var ids []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Libraries").
				Description("Select the libraries to grant").
				Options(options...).
				Value(&ids),
		).Title("Library Selection"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// resolveSelector resolves the configured library selector against a
// live catalog. A nil result with nil error means library assignment
// is not configured.
func resolveSelector(cfg *config.Config, catalog []emby.Library) ([]string, error) {
	selector := emby.ParseSelector(cfg.Libraries)
	if selector.IsEmpty() {
		return nil, nil
	}
	return selector.Resolve(catalog)
}
