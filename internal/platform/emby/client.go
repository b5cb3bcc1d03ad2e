// Package emby provides a wrapper around the Emby server administrative API.
package emby

import (
	"context"

	"github.com/mediashift/mediashift/internal/records"
)

// Library is one content library on the target server.
type Library struct {
	ID   string
	Name string
}

// CapabilityProber establishes version and feature facts about the target
// server before any mutation is attempted.
type CapabilityProber interface {
	// ProbeCapabilities issues a system info request and derives the
	// capability flags for the installed server version. It returns a
	// ConnectivityError when the server is unreachable or rejects the
	// API key.
	ProbeCapabilities(ctx context.Context) (*ServerCapabilities, error)
}

// LibraryCatalog lists the content libraries accounts can be granted
// access to.
type LibraryCatalog interface {
	// ListLibraries returns the server's libraries in server order.
	ListLibraries(ctx context.Context) ([]Library, error)
}

// AccountProvisioner performs the per-account operations of a migration.
// Each operation is independently failable; sequencing is the
// orchestrator's job.
type AccountProvisioner interface {
	// CreateAccount creates a new account and returns its ID.
	// It returns a ConflictError when the username is already taken and
	// a ValidationError when the server rejects the record's fields.
	CreateAccount(ctx context.Context, record records.UserRecord) (string, error)

	// LookupAccount returns the ID of an existing account by username,
	// or a NotFoundError.
	LookupAccount(ctx context.Context, username string) (string, error)

	// AssignRoles applies the role set onto the account's policy.
	// Failures are reported as PolicyError.
	AssignRoles(ctx context.Context, accountID string, roles []string) error

	// AssignLibraries grants the account access to exactly the given
	// library IDs.
	AssignLibraries(ctx context.Context, accountID string, libraryIDs []string) error

	// UploadAvatar sets the account's primary profile image.
	UploadAvatar(ctx context.Context, accountID string, data []byte, contentType string) error
}

// Client is the full administrative surface the migration needs.
type Client interface {
	CapabilityProber
	LibraryCatalog
	AccountProvisioner
}
