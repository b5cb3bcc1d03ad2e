package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes(t *testing.T) {
	content := `
server_url: "http://emby.local:8096"
libraries: "all"
roles:
  - EnablePlayback
delay_seconds: 2
skip_images: true
welcome:
  server_name: "Home Media"
  admin_name: "Alex"
  admin_email: "alex@example.com"
`
	cfg, err := LoadFromBytes([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "http://emby.local:8096", cfg.ServerURL)
	assert.Equal(t, "all", cfg.Libraries)
	assert.Equal(t, []string{"EnablePlayback"}, cfg.RoleSet())
	assert.Equal(t, 2*time.Second, cfg.Delay())
	assert.True(t, cfg.SkipImages)
	assert.False(t, cfg.SkipLibraries)
	assert.Equal(t, "Home Media", cfg.Welcome.ServerName)
}

func TestLoadFromBytes_Defaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`server_url: "http://emby.local:8096"`))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.DelaySeconds)
	assert.Equal(t, DefaultRoles, cfg.RoleSet())
	assert.Empty(t, cfg.Libraries)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing server_url", `libraries: "all"`},
		{"bad scheme", `server_url: "ftp://emby.local"`},
		{"negative delay", "server_url: \"http://emby.local\"\ndelay_seconds: -1"},
		{"empty role", "server_url: \"http://emby.local\"\nroles: [\"\"]"},
		{"malformed yaml", `server_url: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)

	_, err = tmpfile.WriteString(`server_url: "http://emby.local:8096"`)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "http://emby.local:8096", cfg.ServerURL)
}

func TestResolveAPIKey_EnvWins(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	cfg := &Config{APIKey: "file-key"}
	assert.Equal(t, "env-key", cfg.ResolveAPIKey())
}

func TestResolveAPIKey_FileFallback(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	cfg := &Config{APIKey: "file-key"}
	assert.Equal(t, "file-key", cfg.ResolveAPIKey())
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("MEDIASHIFT_TIMEOUT_REQUEST", "5s")
	t.Setenv("MEDIASHIFT_RETRY_MAX_ATTEMPTS", "7")

	timeouts := LoadTimeouts()
	assert.Equal(t, 5*time.Second, timeouts.Request)
	assert.Equal(t, 7, timeouts.RetryMaxAttempts)
	assert.Equal(t, 10*time.Second, timeouts.AvatarFetch)
}

func TestLoadTimeouts_InvalidFallsBack(t *testing.T) {
	t.Setenv("MEDIASHIFT_TIMEOUT_REQUEST", "soon")

	timeouts := LoadTimeouts()
	assert.Equal(t, 30*time.Second, timeouts.Request)
}
