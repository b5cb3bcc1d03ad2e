package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediashift/mediashift/internal/config"
	"github.com/mediashift/mediashift/internal/config/wizard"
)

// withInitStubs swaps the wizard entry points for the duration of the test.
func withInitStubs(t *testing.T, result *wizard.Result, wizardErr error) (written *config.Config) {
	t.Helper()
	origRun := runWizard
	origWrite := writeConfig
	origExists := fileExists
	origConfirm := confirmReplace
	t.Cleanup(func() {
		runWizard = origRun
		writeConfig = origWrite
		fileExists = origExists
		confirmReplace = origConfirm
	})

	written = &config.Config{}
	runWizard = func(context.Context, wizard.CatalogFactory) (*wizard.Result, error) {
		return result, wizardErr
	}
	writeConfig = func(cfg *config.Config, _ string) error {
		*written = *cfg
		return nil
	}
	fileExists = func(string) bool { return false }
	confirmReplace = func(string) (bool, error) { return true, nil }
	return written
}

func TestInit(t *testing.T) {
	written := withInitStubs(t, &wizard.Result{
		ServerURL:    "https://media.example.com",
		LibraryMode:  wizard.LibraryModeAll,
		DelaySeconds: 1,
	}, nil)

	require.NoError(t, Init(context.Background(), "mediashift.yaml"))

	assert.Equal(t, "https://media.example.com", written.ServerURL)
	assert.Equal(t, "all", written.Libraries)
}

func TestInit_WizardCancelled(t *testing.T) {
	withInitStubs(t, nil, errors.New("user aborted"))

	err := Init(context.Background(), "mediashift.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestInit_DeclinedOverwrite(t *testing.T) {
	written := withInitStubs(t, &wizard.Result{ServerURL: "https://x", LibraryMode: wizard.LibraryModeAll}, nil)

	origExists := fileExists
	origConfirm := confirmReplace
	t.Cleanup(func() {
		fileExists = origExists
		confirmReplace = origConfirm
	})
	fileExists = func(string) bool { return true }
	confirmReplace = func(string) (bool, error) { return false, nil }

	require.NoError(t, Init(context.Background(), "mediashift.yaml"))
	assert.Empty(t, written.ServerURL, "declining overwrite should not write config")
}

func TestLiveCatalog_NoAPIKey(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	assert.Nil(t, liveCatalog("https://media.example.com"))
}
