package emby

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediashift/mediashift/internal/config"
	"github.com/mediashift/mediashift/internal/records"
)

// testTimeouts keeps retries fast in tests.
func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		Request:           2 * time.Second,
		AvatarFetch:       2 * time.Second,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
	}
}

func newTestClient(t *testing.T, handler http.Handler) *RealClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRealClient(srv.URL, "test-key", WithTimeouts(testTimeouts()))
}

func TestProbeCapabilities(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emby/System/Info", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Emby-Token"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"Version":         "4.8.11.0",
			"ServerName":      "Home",
			"OperatingSystem": "Linux",
		})
	}))

	caps, err := client.ProbeCapabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.8.11.0", caps.Version)
	assert.True(t, caps.BrokenImageUpload)
	assert.Equal(t, "Home", caps.ServerName)
}

func TestProbeCapabilities_AuthRejected(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ProbeCapabilities(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivity(err))
}

func TestProbeCapabilities_Unreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewRealClient(srv.URL, "test-key", WithTimeouts(testTimeouts()))

	_, err := client.ProbeCapabilities(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivity(err))
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emby/Users/New", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "alice", payload["Name"])
		assert.Equal(t, "secret-words-12", payload["Password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"Id": "user-1"})
	}))

	id, err := client.CreateAccount(context.Background(), records.UserRecord{
		Username: "alice", Email: "alice@example.com", Passphrase: "secret-words-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestCreateAccount_EmptyBodyFallsBackToLookup(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/emby/Users/New", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/emby/Users", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"Id": "user-7", "Name": "alice"},
		})
	})
	client := newTestClient(t, mux)

	id, err := client.CreateAccount(context.Background(), records.UserRecord{Username: "alice", Passphrase: "pw-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-7", id)
}

func TestCreateAccount_Conflict(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/emby/Users/New", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "A user with this name already exists", http.StatusBadRequest)
	})
	mux.HandleFunc("/emby/Users", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"Id": "user-7", "Name": "alice"},
		})
	})
	client := newTestClient(t, mux)

	_, err := client.CreateAccount(context.Background(), records.UserRecord{Username: "alice", Passphrase: "pw-1"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestCreateAccount_Validation(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/emby/Users/New", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Name contains invalid characters", http.StatusBadRequest)
	})
	mux.HandleFunc("/emby/Users", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{})
	})
	client := newTestClient(t, mux)

	_, err := client.CreateAccount(context.Background(), records.UserRecord{Username: "bad/name", Passphrase: "pw-1"})
	require.Error(t, err)

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestLookupAccount_NotFound(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{{"Id": "1", "Name": "bob"}})
	}))

	_, err := client.LookupAccount(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestListLibraries(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emby/Library/MediaFolders", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Items": []map[string]string{
				{"Id": "lib1", "Name": "Movies"},
				{"Id": "lib2", "Name": "Shows"},
			},
		})
	}))

	libraries, err := client.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Library{{ID: "lib1", Name: "Movies"}, {ID: "lib2", Name: "Shows"}}, libraries)
}

func TestListLibraries_VirtualFoldersFallback(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/emby/Library/MediaFolders", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	})
	mux.HandleFunc("/emby/Library/VirtualFolders", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"ItemId": "lib9", "Name": "Music"},
		})
	})
	client := newTestClient(t, mux)

	libraries, err := client.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Library{{ID: "lib9", Name: "Music"}}, libraries)
}

func TestAssignRoles(t *testing.T) {
	t.Parallel()
	var posted map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emby/Users/user-1/Policy", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.AssignRoles(context.Background(), "user-1", []string{"EnablePlayback", "EnableVideoPlayback"})
	require.NoError(t, err)

	assert.Equal(t, true, posted["EnableMediaPlayback"])
	assert.Equal(t, true, posted["EnableVideoPlaybackTranscoding"])
	assert.Equal(t, false, posted["IsAdministrator"])
}

func TestAssignRoles_Rejected(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))

	err := client.AssignRoles(context.Background(), "user-1", []string{"EnablePlayback"})
	require.Error(t, err)

	var policyErr *PolicyError
	assert.ErrorAs(t, err, &policyErr)
}

func TestAssignLibraries_PreservesPolicy(t *testing.T) {
	t.Parallel()
	var posted map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emby/Users/user-1/Policy", r.URL.Path)
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"EnableAllFolders": true,
				"EnableRemoteAccess": true,
			})
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.AssignLibraries(context.Background(), "user-1", []string{"lib1", "lib2"})
	require.NoError(t, err)

	assert.Equal(t, false, posted["EnableAllFolders"])
	assert.Equal(t, []any{"lib1", "lib2"}, posted["EnabledFolders"])
	assert.Equal(t, true, posted["EnableRemoteAccess"], "unrelated policy fields survive")
}

func TestUploadAvatar(t *testing.T) {
	t.Parallel()
	image := []byte{0x89, 0x50, 0x4e, 0x47}
	var posted map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emby/Users/user-1/Images/Primary", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UploadAvatar(context.Background(), "user-1", image, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "png", posted["Format"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), posted["Data"])
}

func TestUploadAvatar_EmptyImage(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.NotFoundHandler())

	err := client.UploadAvatar(context.Background(), "user-1", nil, "image/png")
	require.Error(t, err)
}

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	t.Parallel()
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"Version": "4.9.0.0"})
	}))

	_, err := client.ProbeCapabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, "bad", http.StatusBadRequest)
	}))

	err := client.AssignRoles(context.Background(), "user-1", nil)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestImageFormat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "png", imageFormat("image/png"))
	assert.Equal(t, "svg+xml", imageFormat("image/svg+xml"))
	assert.Equal(t, "jpeg", imageFormat("image/jpeg; charset=binary"))
	assert.Equal(t, "jpeg", imageFormat(""))
}
