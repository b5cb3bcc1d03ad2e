package wizard

import (
	"strings"

	"github.com/mediashift/mediashift/internal/config"
)

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *Result) *config.Config {
	cfg := &config.Config{
		ServerURL:    result.ServerURL,
		DelaySeconds: result.DelaySeconds,
		SkipImages:   result.SkipImages,
	}

	switch result.LibraryMode {
	case LibraryModeAll:
		cfg.Libraries = "all"
	case LibraryModeChoose:
		cfg.Libraries = strings.Join(result.LibraryIDs, ",")
	case LibraryModeNone:
		cfg.Libraries = ""
		cfg.SkipLibraries = true
	}

	if len(result.Roles) > 0 {
		cfg.Roles = result.Roles
	} else {
		cfg.Roles = config.DefaultRoles
	}

	if result.ServerName != "" {
		cfg.Welcome.ServerName = result.ServerName
	}

	return cfg
}
