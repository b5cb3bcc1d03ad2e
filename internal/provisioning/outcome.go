package provisioning

import (
	"time"

	"github.com/mediashift/mediashift/internal/platform/emby"
)

// Status is a user's terminal account state.
type Status string

const (
	// StatusCreated means a new account was created for the user.
	StatusCreated Status = "created"
	// StatusSkipped means an account with the username already existed.
	StatusSkipped Status = "skipped"
	// StatusFailed means account creation failed.
	StatusFailed Status = "failed"
)

// StepState is the terminal state of one post-creation step.
type StepState string

const (
	// StepDone means the step completed successfully.
	StepDone StepState = "done"
	// StepFailed means the step was attempted and rejected.
	StepFailed StepState = "failed"
	// StepSkippedByPolicy means no call was issued, either because the
	// step is disabled, the server does not support it, or the account
	// could not be resolved.
	StepSkippedByPolicy StepState = "skipped"
)

// AvatarOutcome is the terminal state of the avatar step.
type AvatarOutcome string

const (
	// AvatarUploaded means the record's own avatar was uploaded.
	AvatarUploaded AvatarOutcome = "uploaded"
	// AvatarFallbackUsed means a generated avatar was uploaded instead.
	AvatarFallbackUsed AvatarOutcome = "fallback"
	// AvatarSkipped means no upload was attempted.
	AvatarSkipped AvatarOutcome = "skipped"
	// AvatarFailed means resolution or upload failed.
	AvatarFailed AvatarOutcome = "failed"
)

// Outcome is the result of processing one user record. Exactly one is
// produced per processed record, in input order.
type Outcome struct {
	Username      string
	Status        Status
	FailureReason string
	AccountID     string

	Roles            StepState
	Libraries        StepState
	LibrariesGranted []string
	Avatar           AvatarOutcome
}

// Degraded reports whether any step for this user ended in a failure.
func (o Outcome) Degraded() bool {
	return o.Status == StatusFailed ||
		o.Roles == StepFailed ||
		o.Libraries == StepFailed ||
		o.Avatar == AvatarFailed
}

// RunStatus is the terminal state of a whole run.
type RunStatus string

const (
	// RunSucceeded means every user was fully provisioned or skipped clean.
	RunSucceeded RunStatus = "succeeded"
	// RunPartialFailure means the run completed but at least one user
	// or step failed.
	RunPartialFailure RunStatus = "partial-failure"
	// RunAborted means a fatal error or cancellation stopped the run
	// before all users were processed.
	RunAborted RunStatus = "aborted"
)

// Report is the aggregate result of a run. Outcomes already produced
// are retained even when the run aborts.
type Report struct {
	Status       RunStatus
	FatalReason  string
	Outcomes     []Outcome
	Capabilities *emby.ServerCapabilities
	Duration     time.Duration
}

// Counts returns how many users were created, skipped, and failed.
func (r *Report) Counts() (created, skipped, failed int) {
	for _, outcome := range r.Outcomes {
		switch outcome.Status {
		case StatusCreated:
			created++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return created, skipped, failed
}
