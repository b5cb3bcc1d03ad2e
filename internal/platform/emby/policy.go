package emby

import (
	"context"
	"fmt"
)

// basePolicy is the standard non-admin user policy, matching what the
// server's own UI creates for a fresh user. Role names from the role set
// toggle individual entries on top of it.
func basePolicy() map[string]any {
	return map[string]any{
		"IsAdministrator":                  false,
		"IsHidden":                         false,
		"IsDisabled":                       false,
		"BlockedTags":                      []string{},
		"EnableUserPreferenceAccess":       true,
		"AccessSchedules":                  []string{},
		"BlockUnratedItems":                []string{},
		"EnableRemoteControlOfOtherUsers":  false,
		"EnableSharedDeviceControl":        true,
		"EnableRemoteAccess":               true,
		"EnableLiveTvManagement":           false,
		"EnableLiveTvAccess":               true,
		"EnableMediaPlayback":              true,
		"EnableAudioPlaybackTranscoding":   true,
		"EnableVideoPlaybackTranscoding":   true,
		"EnablePlaybackRemuxing":           true,
		"EnablePublicSharing":              false,
		"EnableDownloading":                true,
		"EnableSubtitleDownloading":        true,
		"EnableSubtitleManagement":         false,
		"EnableSyncTranscoding":            true,
		"EnableMediaConversion":            true,
		"EnableAllDevices":                 true,
		"EnableAllChannels":                false,
		"EnableRemoteControllers":          true,
	}
}

// roleToggles maps role names onto the policy fields they enable.
// Unknown role names are sent through as policy flags directly, which
// matches how the server ignores fields it does not know.
var roleToggles = map[string]string{
	"EnablePlayback":      "EnableMediaPlayback",
	"EnableVideoPlayback": "EnableVideoPlaybackTranscoding",
	"EnableAudioPlayback": "EnableAudioPlaybackTranscoding",
}

// AssignRoles implements AccountProvisioner.
func (c *RealClient) AssignRoles(ctx context.Context, accountID string, roles []string) error {
	policy := basePolicy()
	for _, role := range roles {
		if field, ok := roleToggles[role]; ok {
			policy[field] = true
			continue
		}
		policy[role] = true
	}

	err := c.withRetry(ctx, func() error {
		_, opErr := c.postJSON(ctx, fmt.Sprintf("/emby/Users/%s/Policy", accountID), policy)
		return opErr
	})
	if err != nil {
		return &PolicyError{AccountID: accountID, Err: err}
	}
	return nil
}

// AssignLibraries implements AccountProvisioner. The current policy is
// fetched first so unrelated fields survive the update, then the folder
// grants are replaced with exactly the given IDs.
func (c *RealClient) AssignLibraries(ctx context.Context, accountID string, libraryIDs []string) error {
	path := fmt.Sprintf("/emby/Users/%s/Policy", accountID)

	var policy map[string]any
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, path, &policy)
	})
	if err != nil {
		return &PolicyError{AccountID: accountID, Err: fmt.Errorf("failed to fetch current policy: %w", err)}
	}

	policy["EnableAllFolders"] = false
	policy["EnabledFolders"] = libraryIDs

	err = c.withRetry(ctx, func() error {
		_, opErr := c.postJSON(ctx, path, policy)
		return opErr
	})
	if err != nil {
		return &PolicyError{AccountID: accountID, Err: err}
	}
	return nil
}
