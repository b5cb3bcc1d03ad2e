package emby

import "strings"

// ServerCapabilities are runtime-probed facts about the target server.
// Fetched once per run and never mutated afterwards.
type ServerCapabilities struct {
	// Version is the server's reported version string, e.g. "4.8.11.0".
	Version string

	// ServerName is the operator-chosen display name.
	ServerName string

	// OperatingSystem is the host OS as reported by the server.
	OperatingSystem string

	// BrokenImageUpload is set for versions whose primary image endpoint
	// is known to reject uploads. Avatar uploads are skipped entirely.
	BrokenImageUpload bool

	// SupportsLibraryAccess is cleared for versions without working
	// per-user folder policy endpoints.
	SupportsLibraryAccess bool
}

// versionQuirk describes a known defect of a server version line.
// Quirks are data so new broken versions are a one-line addition.
type versionQuirk struct {
	versionPrefix     string
	brokenImageUpload bool
	noLibraryAccess   bool
}

var knownQuirks = []versionQuirk{
	// 4.8.11 rejects multipart and raw uploads on Users/{id}/Images/Primary.
	{versionPrefix: "4.8.11", brokenImageUpload: true},
}

// capabilitiesFor derives the capability flags for a reported version.
func capabilitiesFor(version, serverName, operatingSystem string) *ServerCapabilities {
	caps := &ServerCapabilities{
		Version:               version,
		ServerName:            serverName,
		OperatingSystem:       operatingSystem,
		SupportsLibraryAccess: true,
	}

	for _, quirk := range knownQuirks {
		if strings.HasPrefix(version, quirk.versionPrefix) {
			if quirk.brokenImageUpload {
				caps.BrokenImageUpload = true
			}
			if quirk.noLibraryAccess {
				caps.SupportsLibraryAccess = false
			}
		}
	}

	return caps
}
