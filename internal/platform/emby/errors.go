package emby

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ConnectivityError indicates the server is unreachable or the API key
// was rejected. The orchestrator treats it as fatal for the whole run.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("server unreachable or credentials rejected: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// ConflictError indicates an account with the username already exists.
// Treated as Skipped by the orchestrator, making re-runs idempotent.
type ConflictError struct {
	Username string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("account %q already exists", e.Username)
}

// ValidationError indicates the server rejected the record's fields.
type ValidationError struct {
	Username string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("server rejected account %q: %s", e.Username, e.Reason)
}

// PolicyError indicates a role or policy assignment was rejected.
type PolicyError struct {
	AccountID string
	Err       error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy update for account %s rejected: %v", e.AccountID, e.Err)
}

func (e *PolicyError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates an account lookup found no match.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no account named %q", e.Username)
}

// ResolutionError indicates a library selector could not be resolved
// against the catalog. Fatal for the whole run.
type ResolutionError struct {
	Missing []string
	Reason  string
}

func (e *ResolutionError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("unknown library IDs: %v", e.Missing)
	}
	return fmt.Sprintf("library selection failed: %s", e.Reason)
}

// apiError is a non-2xx response from the server.
type apiError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// IsConnectivity reports whether err is a ConnectivityError.
func IsConnectivity(err error) bool {
	var conn *ConnectivityError
	return errors.As(err, &conn)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// isTransient reports whether err is worth a bounded retry: a 5xx
// response or a network timeout. Everything else is final.
func isTransient(err error) bool {
	var api *apiError
	if errors.As(err, &api) {
		return api.StatusCode >= http.StatusInternalServerError
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isAuthRejected reports whether err is an authentication failure.
func isAuthRejected(err error) bool {
	var api *apiError
	if !errors.As(err, &api) {
		return false
	}
	return api.StatusCode == http.StatusUnauthorized || api.StatusCode == http.StatusForbidden
}
