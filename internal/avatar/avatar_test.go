package avatar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_SourceURL(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(srv.Close)

	resolver := NewResolver(WithFetchTimeout(time.Second))
	img, err := resolver.Resolve(context.Background(), "alice", srv.URL+"/avatar.jpg")
	require.NoError(t, err)

	assert.Equal(t, []byte("jpeg-bytes"), img.Data)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.False(t, img.Fallback)
}

func TestResolve_SourceFailureFallsBack(t *testing.T) {
	t.Parallel()
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(source.Close)

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", r.URL.Query().Get("seed"))
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte("<svg/>"))
	}))
	t.Cleanup(fallback.Close)

	resolver := NewResolver(
		WithFetchTimeout(time.Second),
		WithFallbackBase(fallback.URL),
	)
	img, err := resolver.Resolve(context.Background(), "alice", source.URL+"/avatar.jpg")
	require.NoError(t, err)

	assert.True(t, img.Fallback)
	assert.Equal(t, "image/svg+xml", img.ContentType)
}

func TestResolve_NoSourceUsesFallback(t *testing.T) {
	t.Parallel()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<svg/>"))
	}))
	t.Cleanup(fallback.Close)

	resolver := NewResolver(
		WithFetchTimeout(time.Second),
		WithFallbackBase(fallback.URL),
	)
	img, err := resolver.Resolve(context.Background(), "bob", "")
	require.NoError(t, err)
	assert.True(t, img.Fallback)
}

func TestResolve_BothSourcesFail(t *testing.T) {
	t.Parallel()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(down.Close)

	resolver := NewResolver(
		WithFetchTimeout(time.Second),
		WithFallbackBase(down.URL),
	)
	_, err := resolver.Resolve(context.Background(), "carol", down.URL+"/avatar.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carol")
}

func TestFallbackURL_Deterministic(t *testing.T) {
	t.Parallel()
	resolver := NewResolver()

	first := resolver.FallbackURL("alice")
	assert.Equal(t, first, resolver.FallbackURL("alice"))
	assert.Contains(t, first, "seed=alice")

	styled := false
	for _, style := range fallbackStyles {
		if strings.Contains(first, "/"+style+"/") {
			styled = true
		}
	}
	assert.True(t, styled, "URL should use one of the known styles")
}

func TestFallbackURL_EscapesSeed(t *testing.T) {
	t.Parallel()
	resolver := NewResolver()
	assert.Contains(t, resolver.FallbackURL("a b&c"), "seed=a+b%26c")
}
