// Package main is the entry point for the mediashift CLI.
//
// mediashift migrates user accounts from a Plex server export onto an
// Emby server: it creates accounts, grants roles and library access,
// and uploads avatars, then generates welcome emails for the migrated
// users.
//
// Commands: init, convert, migrate, libraries, welcome, doctor.
//
// For detailed usage information, run:
//
//	mediashift --help
package main

import (
	"fmt"
	"os"

	"github.com/mediashift/mediashift/cmd/mediashift/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
