package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mediashift/mediashift/internal/config"
)

// DoctorStatus represents the connectivity diagnostic result.
type DoctorStatus struct {
	ServerURL         string `json:"serverURL"`
	Reachable         bool   `json:"reachable"`
	Error             string `json:"error,omitempty"`
	Version           string `json:"version,omitempty"`
	ServerName        string `json:"serverName,omitempty"`
	OperatingSystem   string `json:"operatingSystem,omitempty"`
	AvatarUpload      bool   `json:"avatarUpload"`
	LibraryAccess     bool   `json:"libraryAccess"`
	Libraries         int    `json:"libraries"`
	LibrariesResolved bool   `json:"librariesResolved"`
}

// Doctor validates the configuration and probes the target server.
//
// It reports the server version, version quirks that affect the
// migration, and whether the configured library selector resolves
// against the live catalog.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, client, err := connectedClient(configPath)
	if err != nil {
		return err
	}

	status := &DoctorStatus{ServerURL: cfg.ServerURL}

	caps, err := client.ProbeCapabilities(ctx)
	if err != nil {
		status.Error = err.Error()
		return printDoctor(status, jsonOutput)
	}

	status.Reachable = true
	status.Version = caps.Version
	status.ServerName = caps.ServerName
	status.OperatingSystem = caps.OperatingSystem
	status.AvatarUpload = !caps.BrokenImageUpload
	status.LibraryAccess = caps.SupportsLibraryAccess

	if libraries, err := client.ListLibraries(ctx); err == nil {
		status.Libraries = len(libraries)
		if _, err := resolveSelector(cfg, libraries); err == nil {
			status.LibrariesResolved = true
		}
	}

	return printDoctor(status, jsonOutput)
}

func printDoctor(status *DoctorStatus, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
		if !status.Reachable {
			return fmt.Errorf("server unreachable")
		}
		return nil
	}

	fmt.Println()
	title := fmt.Sprintf("mediashift doctor: %s", status.ServerURL)
	fmt.Printf("  %s\n", title)
	fmt.Println("  " + strings.Repeat("═", len(title)))
	fmt.Println()

	printRow("Server reachable", status.Reachable, status.Error)
	if !status.Reachable {
		fmt.Println()
		fmt.Printf("  Check the server URL and the %s environment variable.\n", config.EnvAPIKey)
		fmt.Println()
		return fmt.Errorf("server unreachable")
	}

	fmt.Printf("      %s on %s (version %s)\n", status.ServerName, status.OperatingSystem, status.Version)
	fmt.Println()
	printRow("Avatar upload", status.AvatarUpload, avatarNote(status))
	printRow("Library access", status.LibraryAccess, "")
	printRow("Library selector", status.LibrariesResolved, fmt.Sprintf("%d libraries on server", status.Libraries))
	fmt.Println()

	return nil
}

func avatarNote(status *DoctorStatus) string {
	if status.AvatarUpload {
		return ""
	}
	return fmt.Sprintf("broken in server version %s; avatars will be skipped", status.Version)
}

func printRow(name string, ok bool, extra string) {
	indicator := "✅" // green check
	if !ok {
		indicator = "❌" // red X
	}

	if extra != "" {
		fmt.Printf("  %s  %-20s %s\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s  %s\n", indicator, name)
	}
}
