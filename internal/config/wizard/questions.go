package wizard

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mediashift/mediashift/internal/platform/emby"
)

// runServerGroup prompts for the target server address and name.
func runServerGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Description("Address of the target media server").
				Placeholder("https://media.example.com").
				Value(&result.ServerURL).
				Validate(validateServerURL),
			huh.NewInput().
				Title("Server Name (Optional)").
				Description("Shown in welcome emails. Leave empty for a generic name.").
				Placeholder("Family Media").
				Value(&result.ServerName),
		).Title("Target Server"),
	).RunWithContext(ctx)
}

// runLibrariesGroup prompts for the library selector. When a catalog
// is available the specific libraries are chosen by name; the wizard
// maps names back to ids so the config stays id-based.
func runLibrariesGroup(ctx context.Context, result *Result, catalog emby.LibraryCatalog) error {
	result.LibraryMode = LibraryModeAll

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Library Access").
				Description("Which libraries should migrated users see?").
				Options(LibraryModeOptions...).
				Value(&result.LibraryMode),
		).Title("Libraries"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.LibraryMode != LibraryModeChoose {
		return nil
	}

	var libraries []emby.Library
	if catalog != nil {
		libraries, _ = catalog.ListLibraries(ctx)
	}
	if len(libraries) == 0 {
		return runLibraryIDsInput(ctx, result)
	}

	options := make([]huh.Option[string], len(libraries))
	for i, library := range libraries {
		options[i] = huh.NewOption(library.Name, library.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Libraries").
				Description("Select the libraries to grant").
				Options(options...).
				Value(&result.LibraryIDs),
		).Title("Library Selection"),
	).RunWithContext(ctx)
}

// runLibraryIDsInput is the manual fallback when the catalog cannot be
// listed, e.g. no API key is configured yet.
func runLibraryIDsInput(ctx context.Context, result *Result) error {
	var idsInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Library IDs").
				Description("Comma-separated library ids (server not reachable for listing)").
				Placeholder("1001, 1002").
				Value(&idsInput),
		).Title("Library Selection"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.LibraryIDs = splitIDs(idsInput)
	return nil
}

// runRolesGroup prompts for the permissions granted to every account.
func runRolesGroup(ctx context.Context, result *Result) error {
	result.Roles = defaultRoleKeys()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Account Permissions").
				Description("Granted to every migrated account").
				Options(roleOptionsToHuh()...).
				Value(&result.Roles),
		).Title("Permissions"),
	).RunWithContext(ctx)
}

// runOptionsGroup prompts for pacing and avatar options.
func runOptionsGroup(ctx context.Context, result *Result) error {
	result.DelaySeconds = 1

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Pause Between Users").
				Description("Keeps the server's rate limits happy").
				Options(DelayOptions...).
				Value(&result.DelaySeconds),
			huh.NewConfirm().
				Title("Skip Avatar Upload?").
				Description("Accounts are created without profile images").
				Value(&result.SkipImages),
		).Title("Run Options"),
	).RunWithContext(ctx)
}

// validateServerURL checks the server address shape.
func validateServerURL(s string) error {
	if s == "" {
		return errServerURLRequired
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return errServerURLInvalid
	}
	return nil
}

// splitIDs parses a comma-separated list of library ids.
func splitIDs(input string) []string {
	parts := strings.Split(input, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
