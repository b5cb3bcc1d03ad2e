package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediashift/mediashift/internal/platform/emby"
	"github.com/mediashift/mediashift/internal/provisioning"
	"github.com/mediashift/mediashift/internal/records"
	"github.com/mediashift/mediashift/internal/util/secret"
)

// MigrateOptions are the flag values for the migrate command.
type MigrateOptions struct {
	CSVPath       string
	ConfigPath    string
	DryRun        bool
	SkipLibraries bool
	SkipImages    bool
	// Libraries overrides the configured library selector when non-empty.
	Libraries string
	// Roles overrides the configured role set when non-empty.
	Roles []string
	// DelaySeconds overrides the configured pause; -1 means use config.
	DelaySeconds int
}

// Migrate runs a batch migration from a user CSV.
//
// The run is idempotent with respect to existing accounts: usernames
// that already exist on the server are skipped, so a partially
// completed migration can simply be re-run.
func Migrate(ctx context.Context, opts MigrateOptions) error {
	cfg, client, err := connectedClient(opts.ConfigPath)
	if err != nil {
		return err
	}

	batch, err := records.LoadCSV(opts.CSVPath, records.WithGeneratedPassphrases(secret.Generate))
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if len(batch) == 0 {
		return fmt.Errorf("no users found in %s", opts.CSVPath)
	}

	delay := cfg.Delay()
	if opts.DelaySeconds >= 0 {
		delay = time.Duration(opts.DelaySeconds) * time.Second
	}
	selector := cfg.Libraries
	if opts.Libraries != "" {
		selector = opts.Libraries
	}
	roles := cfg.RoleSet()
	if len(opts.Roles) > 0 {
		roles = opts.Roles
	}

	orchestrator := provisioning.New(
		client,
		newAvatarResolver(),
		provisioning.NewLogObserver(migrateLogger()),
		provisioning.Options{
			Roles:         roles,
			Selector:      emby.ParseSelector(selector),
			Delay:         delay,
			SkipLibraries: opts.SkipLibraries || cfg.SkipLibraries,
			SkipAvatars:   opts.SkipImages || cfg.SkipImages,
			DryRun:        opts.DryRun,
		},
	)

	report, runErr := orchestrator.Run(ctx, batch)

	if isInteractiveTTY() {
		fmt.Println(renderReport(report, opts.DryRun))
	} else {
		printReportPlain(report, opts.DryRun)
	}

	if runErr != nil {
		return fmt.Errorf("migration aborted: %w", runErr)
	}
	return nil
}

// migrateLogger builds the run logger: human-readable on a TTY,
// structured JSON otherwise.
func migrateLogger() zerolog.Logger {
	if isInteractiveTTY() {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
