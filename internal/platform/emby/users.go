package emby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mediashift/mediashift/internal/records"
)

// newUserRequest is the /emby/Users/New payload.
type newUserRequest struct {
	Name     string `json:"Name"`
	Email    string `json:"Email,omitempty"`
	Password string `json:"Password"`
}

// userResponse is the subset of the user document the migration reads.
type userResponse struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// CreateAccount implements AccountProvisioner.
//
// The create endpoint answers 200 with the new user document on current
// servers but 204 with an empty body on some versions; in the latter case
// the ID is recovered by a lookup. A rejected create for a name that is
// already taken is reported as ConflictError so re-runs stay idempotent.
func (c *RealClient) CreateAccount(ctx context.Context, record records.UserRecord) (string, error) {
	payload := newUserRequest{
		Name:     record.Username,
		Email:    record.Email,
		Password: record.Passphrase,
	}

	var body []byte
	err := c.withRetry(ctx, func() error {
		var opErr error
		body, opErr = c.postJSON(ctx, "/emby/Users/New", payload)
		return opErr
	})
	if err != nil {
		var api *apiError
		if errors.As(err, &api) && api.StatusCode == http.StatusBadRequest {
			// The server does not distinguish "name taken" from bad
			// input in its status code; an existing account decides it.
			if _, lookupErr := c.LookupAccount(ctx, record.Username); lookupErr == nil {
				return "", &ConflictError{Username: record.Username}
			}
			return "", &ValidationError{Username: record.Username, Reason: api.Body}
		}
		return "", err
	}

	var user userResponse
	if len(body) > 0 && json.Unmarshal(body, &user) == nil && user.ID != "" {
		return user.ID, nil
	}

	id, err := c.LookupAccount(ctx, record.Username)
	if err != nil {
		return "", fmt.Errorf("account created but ID could not be determined: %w", err)
	}
	return id, nil
}

// LookupAccount implements AccountProvisioner.
func (c *RealClient) LookupAccount(ctx context.Context, username string) (string, error) {
	var users []userResponse
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/emby/Users", &users)
	})
	if err != nil {
		return "", err
	}

	for _, user := range users {
		if user.Name == username {
			return user.ID, nil
		}
	}
	return "", &NotFoundError{Username: username}
}
