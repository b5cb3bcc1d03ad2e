package wizard

import (
	"context"

	"github.com/mediashift/mediashift/internal/platform/emby"
)

// CatalogFactory builds a library catalog for the server chosen during
// the wizard. It may return nil when no catalog is available, e.g. no
// API key is configured yet.
type CatalogFactory func(serverURL string) emby.LibraryCatalog

// Result holds the answers collected by the wizard.
type Result struct {
	ServerURL    string
	ServerName   string
	LibraryMode  string
	LibraryIDs   []string
	Roles        []string
	DelaySeconds int
	SkipImages   bool
}

// Run walks the user through the question groups and returns the
// collected answers. catalogFor supplies the library list for
// interactive selection once the server URL is known; it may be nil,
// in which case library ids are entered by hand.
func Run(ctx context.Context, catalogFor CatalogFactory) (*Result, error) {
	result := &Result{}

	if err := runServerGroup(ctx, result); err != nil {
		return nil, err
	}

	var catalog emby.LibraryCatalog
	if catalogFor != nil {
		catalog = catalogFor(result.ServerURL)
	}
	if err := runLibrariesGroup(ctx, result, catalog); err != nil {
		return nil, err
	}
	if err := runRolesGroup(ctx, result); err != nil {
		return nil, err
	}
	if err := runOptionsGroup(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}
