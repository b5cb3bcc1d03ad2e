// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mediashift/mediashift/internal/avatar"
	"github.com/mediashift/mediashift/internal/config"
	"github.com/mediashift/mediashift/internal/platform/emby"
	"github.com/mediashift/mediashift/internal/provisioning"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newClient creates a client for the target server.
	newClient = func(serverURL, apiKey string) emby.Client {
		return emby.NewRealClient(serverURL, apiKey)
	}

	// newAvatarResolver creates the avatar resolver.
	newAvatarResolver = func() provisioning.AvatarResolver {
		return avatar.NewResolver()
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds the config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile
)

// loadConfig resolves and loads the configuration file.
func loadConfig(configPath string) (*config.Config, error) {
	resolved := findConfigFile(configPath)
	if resolved == "" {
		return nil, fmt.Errorf("no configuration file found; run 'mediashift init' or pass --config")
	}
	return loadConfigFile(resolved)
}

// connectedClient loads config and builds an authenticated client.
func connectedClient(configPath string) (*config.Config, emby.Client, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, nil, fmt.Errorf("no API key configured; set %s", config.EnvAPIKey)
	}

	return cfg, newClient(cfg.ServerURL, apiKey), nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
