// Package config defines the mediashift configuration schema and loading.
//
// Configuration lives in a small YAML file (mediashift.yaml by default)
// plus a handful of environment variables for secrets and tuning. Flags
// on individual commands override file values.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// EnvAPIKey is the environment variable holding the admin API key.
// Preferred over the api_key file field so the key stays out of config
// files checked into dotfile repos.
const EnvAPIKey = "EMBY_API_KEY"

// DefaultRoles is the role set granted to every migrated account unless
// overridden. Treated as immutable; callers copy before modifying.
var DefaultRoles = []string{
	"EnablePlayback",
	"EnableMediaPlayback",
	"EnableSharedDeviceControl",
	"EnableVideoPlayback",
	"EnableAudioPlayback",
}

// Config is the mediashift configuration.
type Config struct {
	// ServerURL is the base URL of the target Emby server,
	// e.g. "http://localhost:8096".
	ServerURL string `yaml:"server_url"`

	// APIKey is the admin API key. The EMBY_API_KEY environment variable
	// takes precedence; see ResolveAPIKey.
	APIKey string `yaml:"api_key,omitempty"`

	// Libraries selects which libraries migrated accounts may access:
	// "all", a comma-separated list of library IDs, or empty to skip
	// library grants.
	Libraries string `yaml:"libraries,omitempty"`

	// Roles overrides DefaultRoles when non-empty.
	Roles []string `yaml:"roles,omitempty"`

	// DelaySeconds is the pause between users during migration. The
	// target API enforces undocumented per-window request quotas, so
	// this is the run's rate limiter. Default 1.
	DelaySeconds int `yaml:"delay_seconds,omitempty"`

	// SkipLibraries disables library grants regardless of server
	// capabilities.
	SkipLibraries bool `yaml:"skip_libraries,omitempty"`

	// SkipImages disables avatar uploads regardless of server
	// capabilities.
	SkipImages bool `yaml:"skip_images,omitempty"`

	// Welcome holds defaults for welcome-email generation.
	Welcome WelcomeConfig `yaml:"welcome,omitempty"`
}

// WelcomeConfig holds the welcome-email identity fields.
type WelcomeConfig struct {
	ServerName string `yaml:"server_name,omitempty"`
	AdminName  string `yaml:"admin_name,omitempty"`
	AdminEmail string `yaml:"admin_email,omitempty"`
}

// Delay returns the inter-user pause as a duration.
func (c *Config) Delay() time.Duration {
	if c.DelaySeconds < 0 {
		return 0
	}
	return time.Duration(c.DelaySeconds) * time.Second
}

// RoleSet returns the roles to grant, falling back to DefaultRoles.
func (c *Config) RoleSet() []string {
	if len(c.Roles) > 0 {
		return c.Roles
	}
	return DefaultRoles
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerURL == "" {
		errs = append(errs, errors.New("server_url is required"))
	} else {
		u, err := url.Parse(c.ServerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("server_url %q is not a valid http(s) URL", c.ServerURL))
		}
	}

	if c.DelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("delay_seconds must not be negative, got %d", c.DelaySeconds))
	}

	for _, role := range c.Roles {
		if strings.TrimSpace(role) == "" {
			errs = append(errs, errors.New("roles must not contain empty entries"))
			break
		}
	}

	return errors.Join(errs...)
}
