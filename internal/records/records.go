// Package records defines the user record model consumed by the
// provisioning pipeline and the loaders that produce it: migration CSV
// files and Plex shared-user XML exports.
package records

import (
	"errors"
	"fmt"
)

// UserRecord is one unit of migration work: an account to create on the
// target server plus the attachments it should receive. Records are
// immutable once loaded; the pipeline only derives outcomes from them.
type UserRecord struct {
	// Username is the account name on the target server. Required and
	// unique within a batch.
	Username string

	// Email is optional; it is stored on the account but never parsed.
	Email string

	// Passphrase is the account credential. It must never appear in
	// logs or rendered output.
	Passphrase string

	// AvatarSourceURL optionally points at the user's profile image on
	// the source server (a Plex thumb URL).
	AvatarSourceURL string
}

// ErrEmptyUsername is returned for records without a username.
var ErrEmptyUsername = errors.New("record has empty username")

// Validate checks the fields a record must carry before provisioning.
func (r UserRecord) Validate() error {
	if r.Username == "" {
		return ErrEmptyUsername
	}
	if r.Passphrase == "" {
		return fmt.Errorf("record %q has empty passphrase", r.Username)
	}
	return nil
}
