package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/mediashift/mediashift/internal/avatar"
	"github.com/mediashift/mediashift/internal/platform/emby"
	"github.com/mediashift/mediashift/internal/records"
)

// AvatarResolver resolves an avatar image for a user, falling back to
// a generated image when the source is unavailable.
type AvatarResolver interface {
	Resolve(ctx context.Context, username, sourceURL string) (*avatar.Image, error)
}

// Options control a run.
type Options struct {
	// Roles granted to every created or existing account.
	Roles []string
	// Selector names the libraries to grant. An empty selector skips
	// library assignment entirely.
	Selector emby.LibrarySelector
	// Delay is the unconditional pause between users.
	Delay time.Duration
	// SkipLibraries disables library assignment regardless of the selector.
	SkipLibraries bool
	// SkipAvatars disables avatar upload regardless of capabilities.
	SkipAvatars bool
	// DryRun performs read-only calls only and reports what would happen.
	DryRun bool
}

// Orchestrator runs a batch migration. Users are processed strictly
// sequentially; at most one user's API calls are in flight at a time.
type Orchestrator struct {
	client   emby.Client
	avatars  AvatarResolver
	observer Observer
	opts     Options

	// pause is swapped out in tests.
	pause func(ctx context.Context, d time.Duration)
}

// New creates an Orchestrator. A nil observer discards events.
func New(client emby.Client, avatars AvatarResolver, observer Observer, opts Options) *Orchestrator {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Orchestrator{
		client:   client,
		avatars:  avatars,
		observer: observer,
		opts:     opts,
		pause:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Run processes batch in input order and returns a report containing
// one Outcome per processed record. Probe and library resolution
// failures abort the run before any user is touched; cancellation is
// honored between users only, so a user in flight completes first.
func (o *Orchestrator) Run(ctx context.Context, batch []records.UserRecord) (*Report, error) {
	start := time.Now()
	report := &Report{Outcomes: make([]Outcome, 0, len(batch))}

	o.observer.Event(Event{
		Type:    EventRunStarted,
		Message: fmt.Sprintf("migrating %d users", len(batch)),
		Fields:  map[string]string{"dry_run": fmt.Sprintf("%t", o.opts.DryRun)},
	})

	caps, err := o.client.ProbeCapabilities(ctx)
	if err != nil {
		return o.abort(report, start, fmt.Errorf("server probe failed: %w", err))
	}
	report.Capabilities = caps
	o.observer.Event(Event{
		Type:    EventCapabilitiesProbed,
		Message: "server reachable",
		Fields: map[string]string{
			"version": caps.Version,
			"name":    caps.ServerName,
		},
	})

	libraryIDs, err := o.resolveLibraries(ctx, caps)
	if err != nil {
		return o.abort(report, start, fmt.Errorf("library resolution failed: %w", err))
	}

	avatarsEnabled := !o.opts.SkipAvatars && !caps.BrokenImageUpload

	seen := make(map[string]bool, len(batch))
	for i, record := range batch {
		if i > 0 {
			o.pause(ctx, o.opts.Delay)
		}
		if ctx.Err() != nil {
			return o.abort(report, start, fmt.Errorf("run cancelled: %w", ctx.Err()))
		}

		var outcome Outcome
		switch {
		case seen[record.Username]:
			outcome = Outcome{
				Username:      record.Username,
				Status:        StatusFailed,
				FailureReason: "duplicate username in input",
				Roles:         StepSkippedByPolicy,
				Libraries:     StepSkippedByPolicy,
				Avatar:        AvatarSkipped,
			}
			o.observer.Event(Event{
				Type:     EventAccountFailed,
				Username: record.Username,
				Message:  "duplicate username in input",
			})
		default:
			seen[record.Username] = true
			outcome = o.provisionUser(ctx, record, libraryIDs, avatarsEnabled)
		}

		report.Outcomes = append(report.Outcomes, outcome)
		o.observer.Progress(i+1, len(batch))
	}

	report.Status = RunSucceeded
	for _, outcome := range report.Outcomes {
		if outcome.Degraded() {
			report.Status = RunPartialFailure
			break
		}
	}
	report.Duration = time.Since(start)

	created, skipped, failed := report.Counts()
	o.observer.Event(Event{
		Type:    EventRunCompleted,
		Message: "run finished",
		Fields: map[string]string{
			"created": fmt.Sprintf("%d", created),
			"skipped": fmt.Sprintf("%d", skipped),
			"failed":  fmt.Sprintf("%d", failed),
		},
	})
	return report, nil
}

func (o *Orchestrator) abort(report *Report, start time.Time, err error) (*Report, error) {
	report.Status = RunAborted
	report.FatalReason = err.Error()
	report.Duration = time.Since(start)
	o.observer.Event(Event{Type: EventRunAborted, Message: err.Error()})
	return report, err
}

// resolveLibraries resolves the selector against the catalog exactly
// once, before any per-user work. Returns nil when library assignment
// is disabled or unsupported.
func (o *Orchestrator) resolveLibraries(ctx context.Context, caps *emby.ServerCapabilities) ([]string, error) {
	if o.opts.SkipLibraries || o.opts.Selector.IsEmpty() || !caps.SupportsLibraryAccess {
		return nil, nil
	}

	catalog, err := o.client.ListLibraries(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := o.opts.Selector.Resolve(catalog)
	if err != nil {
		return nil, err
	}
	o.observer.Event(Event{
		Type:    EventLibrariesResolved,
		Message: fmt.Sprintf("granting %d libraries per user", len(ids)),
	})
	return ids, nil
}

// provisionUser runs the per-user state machine. Everything after
// account creation is best-effort: a failed role grant or avatar
// upload is recorded in the outcome and never stops the run.
func (o *Orchestrator) provisionUser(ctx context.Context, record records.UserRecord, libraryIDs []string, avatarsEnabled bool) Outcome {
	outcome := Outcome{
		Username:  record.Username,
		Roles:     StepSkippedByPolicy,
		Libraries: StepSkippedByPolicy,
		Avatar:    AvatarSkipped,
	}

	if err := record.Validate(); err != nil {
		outcome.Status = StatusFailed
		outcome.FailureReason = err.Error()
		o.observer.Event(Event{Type: EventAccountFailed, Username: record.Username, Message: err.Error()})
		return outcome
	}

	if o.opts.DryRun {
		return o.previewUser(ctx, record, libraryIDs, avatarsEnabled, outcome)
	}

	o.observer.Event(Event{Type: EventAccountCreating, Username: record.Username, Message: "creating account"})

	accountID, err := o.client.CreateAccount(ctx, record)
	switch {
	case err == nil:
		outcome.Status = StatusCreated
		outcome.AccountID = accountID
		o.observer.Event(Event{
			Type:     EventAccountCreated,
			Username: record.Username,
			Message:  "account created",
			Fields:   map[string]string{"id": accountID},
		})
	case emby.IsConflict(err):
		outcome.Status = StatusSkipped
		o.observer.Event(Event{Type: EventAccountExists, Username: record.Username, Message: "account already exists"})
		existingID, lookupErr := o.client.LookupAccount(ctx, record.Username)
		if lookupErr != nil {
			// Existing account cannot be resolved; leave the remaining
			// steps untouched rather than guessing.
			return outcome
		}
		outcome.AccountID = existingID
	default:
		outcome.Status = StatusFailed
		outcome.FailureReason = err.Error()
		o.observer.Event(Event{Type: EventAccountFailed, Username: record.Username, Message: err.Error()})
		return outcome
	}

	o.assignRoles(ctx, &outcome)
	o.assignLibraries(ctx, &outcome, libraryIDs)
	o.uploadAvatar(ctx, record, &outcome, avatarsEnabled)
	return outcome
}

// previewUser reports what a real run would do using read-only calls only.
func (o *Orchestrator) previewUser(ctx context.Context, record records.UserRecord, libraryIDs []string, avatarsEnabled bool, outcome Outcome) Outcome {
	if _, err := o.client.LookupAccount(ctx, record.Username); err == nil {
		outcome.Status = StatusSkipped
		o.observer.Event(Event{Type: EventAccountExists, Username: record.Username, Message: "account already exists"})
	} else {
		outcome.Status = StatusCreated
		o.observer.Event(Event{Type: EventAccountCreated, Username: record.Username, Message: "would create account"})
	}

	if len(o.opts.Roles) > 0 {
		outcome.Roles = StepDone
	}
	if len(libraryIDs) > 0 {
		outcome.Libraries = StepDone
		outcome.LibrariesGranted = libraryIDs
	}

	if avatarsEnabled && o.avatars != nil {
		image, err := o.avatars.Resolve(ctx, record.Username, record.AvatarSourceURL)
		switch {
		case err != nil:
			outcome.Avatar = AvatarFailed
		case image.Fallback:
			outcome.Avatar = AvatarFallbackUsed
		default:
			outcome.Avatar = AvatarUploaded
		}
	}
	return outcome
}

func (o *Orchestrator) assignRoles(ctx context.Context, outcome *Outcome) {
	if len(o.opts.Roles) == 0 || outcome.AccountID == "" {
		return
	}
	if err := o.client.AssignRoles(ctx, outcome.AccountID, o.opts.Roles); err != nil {
		outcome.Roles = StepFailed
		o.observer.Event(Event{
			Type:     EventStepFailed,
			Username: outcome.Username,
			Message:  fmt.Sprintf("role assignment failed: %v", err),
		})
		return
	}
	outcome.Roles = StepDone
}

func (o *Orchestrator) assignLibraries(ctx context.Context, outcome *Outcome, libraryIDs []string) {
	if len(libraryIDs) == 0 || outcome.AccountID == "" {
		return
	}
	if err := o.client.AssignLibraries(ctx, outcome.AccountID, libraryIDs); err != nil {
		outcome.Libraries = StepFailed
		o.observer.Event(Event{
			Type:     EventStepFailed,
			Username: outcome.Username,
			Message:  fmt.Sprintf("library assignment failed: %v", err),
		})
		return
	}
	outcome.Libraries = StepDone
	outcome.LibrariesGranted = libraryIDs
}

func (o *Orchestrator) uploadAvatar(ctx context.Context, record records.UserRecord, outcome *Outcome, enabled bool) {
	if !enabled || o.avatars == nil || outcome.AccountID == "" {
		return
	}

	image, err := o.avatars.Resolve(ctx, record.Username, record.AvatarSourceURL)
	if err != nil {
		outcome.Avatar = AvatarFailed
		o.observer.Event(Event{
			Type:     EventStepFailed,
			Username: outcome.Username,
			Message:  fmt.Sprintf("avatar resolution failed: %v", err),
		})
		return
	}
	if image.Fallback {
		o.observer.Event(Event{
			Type:     EventAvatarFallback,
			Username: outcome.Username,
			Message:  "using generated avatar",
		})
	}

	if err := o.client.UploadAvatar(ctx, outcome.AccountID, image.Data, image.ContentType); err != nil {
		outcome.Avatar = AvatarFailed
		o.observer.Event(Event{
			Type:     EventStepFailed,
			Username: outcome.Username,
			Message:  fmt.Sprintf("avatar upload failed: %v", err),
		})
		return
	}
	if image.Fallback {
		outcome.Avatar = AvatarFallbackUsed
	} else {
		outcome.Avatar = AvatarUploaded
	}
}
