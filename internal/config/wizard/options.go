package wizard

import "github.com/charmbracelet/huh"

// Library assignment modes offered by the wizard.
const (
	// LibraryModeAll grants every library on the server.
	LibraryModeAll = "all"
	// LibraryModeChoose lets the user pick specific libraries.
	LibraryModeChoose = "choose"
	// LibraryModeNone skips library assignment.
	LibraryModeNone = "none"
)

// LibraryModeOptions are the selector choices shown to the user.
var LibraryModeOptions = []huh.Option[string]{
	huh.NewOption("All libraries", LibraryModeAll),
	huh.NewOption("Choose specific libraries", LibraryModeChoose),
	huh.NewOption("None (skip library assignment)", LibraryModeNone),
}

// RoleOption describes one selectable permission.
type RoleOption struct {
	Key     string
	Label   string
	Default bool
}

// RoleOptions are the permissions offered during setup. Defaults match
// a plain viewing account.
var RoleOptions = []RoleOption{
	{Key: "EnablePlayback", Label: "Play media", Default: true},
	{Key: "EnableMediaPlayback", Label: "Stream media", Default: true},
	{Key: "EnableSharedDeviceControl", Label: "Control shared devices", Default: true},
	{Key: "EnableVideoPlayback", Label: "Video transcoding", Default: true},
	{Key: "EnableAudioPlayback", Label: "Audio transcoding", Default: true},
	{Key: "EnableLiveTvAccess", Label: "Live TV access", Default: false},
	{Key: "EnableContentDownloading", Label: "Download content", Default: false},
}

// DelayOptions are the offered inter-user pauses in seconds.
var DelayOptions = []huh.Option[int]{
	huh.NewOption("1 second (recommended)", 1),
	huh.NewOption("2 seconds", 2),
	huh.NewOption("5 seconds", 5),
	huh.NewOption("No delay", 0),
}

// roleOptionsToHuh converts RoleOptions into huh multi-select options.
func roleOptionsToHuh() []huh.Option[string] {
	options := make([]huh.Option[string], len(RoleOptions))
	for i, role := range RoleOptions {
		options[i] = huh.NewOption(role.Label, role.Key)
	}
	return options
}

// defaultRoleKeys returns the keys selected by default.
func defaultRoleKeys() []string {
	keys := []string{}
	for _, role := range RoleOptions {
		if role.Default {
			keys = append(keys, role.Key)
		}
	}
	return keys
}
