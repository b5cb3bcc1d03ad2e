package emby

import (
	"context"

	"github.com/mediashift/mediashift/internal/records"
)

// MockClient is a function-field mock of Client for tests.
// Unset fields answer with zero values and no error.
type MockClient struct {
	ProbeCapabilitiesFunc func(ctx context.Context) (*ServerCapabilities, error)
	ListLibrariesFunc     func(ctx context.Context) ([]Library, error)
	CreateAccountFunc     func(ctx context.Context, record records.UserRecord) (string, error)
	LookupAccountFunc     func(ctx context.Context, username string) (string, error)
	AssignRolesFunc       func(ctx context.Context, accountID string, roles []string) error
	AssignLibrariesFunc   func(ctx context.Context, accountID string, libraryIDs []string) error
	UploadAvatarFunc      func(ctx context.Context, accountID string, data []byte, contentType string) error
}

// ProbeCapabilities implements CapabilityProber.
func (m *MockClient) ProbeCapabilities(ctx context.Context) (*ServerCapabilities, error) {
	if m.ProbeCapabilitiesFunc != nil {
		return m.ProbeCapabilitiesFunc(ctx)
	}
	return &ServerCapabilities{Version: "4.9.0.0", SupportsLibraryAccess: true}, nil
}

// ListLibraries implements LibraryCatalog.
func (m *MockClient) ListLibraries(ctx context.Context) ([]Library, error) {
	if m.ListLibrariesFunc != nil {
		return m.ListLibrariesFunc(ctx)
	}
	return nil, nil
}

// CreateAccount implements AccountProvisioner.
func (m *MockClient) CreateAccount(ctx context.Context, record records.UserRecord) (string, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, record)
	}
	return "", nil
}

// LookupAccount implements AccountProvisioner.
func (m *MockClient) LookupAccount(ctx context.Context, username string) (string, error) {
	if m.LookupAccountFunc != nil {
		return m.LookupAccountFunc(ctx, username)
	}
	return "", &NotFoundError{Username: username}
}

// AssignRoles implements AccountProvisioner.
func (m *MockClient) AssignRoles(ctx context.Context, accountID string, roles []string) error {
	if m.AssignRolesFunc != nil {
		return m.AssignRolesFunc(ctx, accountID, roles)
	}
	return nil
}

// AssignLibraries implements AccountProvisioner.
func (m *MockClient) AssignLibraries(ctx context.Context, accountID string, libraryIDs []string) error {
	if m.AssignLibrariesFunc != nil {
		return m.AssignLibrariesFunc(ctx, accountID, libraryIDs)
	}
	return nil
}

// UploadAvatar implements AccountProvisioner.
func (m *MockClient) UploadAvatar(ctx context.Context, accountID string, data []byte, contentType string) error {
	if m.UploadAvatarFunc != nil {
		return m.UploadAvatarFunc(ctx, accountID, data, contentType)
	}
	return nil
}
