// Package avatar fetches profile images for migrated accounts.
//
// Each record may carry an avatar source URL from the old platform. When
// that URL is missing or the fetch fails, a deterministic generated
// avatar is used instead so re-runs pick the same image for the same
// username. Avatar failures are never fatal; callers report them and
// move on.
package avatar

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mediashift/mediashift/internal/config"
)

// fetchUserAgent mimics a browser; some image hosts reject requests
// with a default Go client User-Agent.
const fetchUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// defaultFallbackBase is the DiceBear avatar generation endpoint.
const defaultFallbackBase = "https://api.dicebear.com/7.x"

// fallbackStyles are the generated avatar styles. The style for a given
// username is picked by hash so it is stable across runs.
var fallbackStyles = []string{"adventurer", "bottts", "fun-emoji", "pixel-art"}

// maxImageSize caps avatar downloads at 5 MiB.
const maxImageSize = 5 << 20

// Image is a fetched avatar ready for upload.
type Image struct {
	Data        []byte
	ContentType string
	// Fallback reports whether the image came from the generated
	// avatar service rather than the record's source URL.
	Fallback bool
}

// Resolver fetches avatars with a bounded per-fetch timeout.
type Resolver struct {
	httpClient   *http.Client
	fetchTimeout time.Duration
	fallbackBase string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = hc
	}
}

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.fetchTimeout = d
	}
}

// WithFallbackBase overrides the generated avatar endpoint.
func WithFallbackBase(base string) Option {
	return func(r *Resolver) {
		r.fallbackBase = base
	}
}

// NewResolver creates a Resolver with the configured avatar fetch timeout.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		httpClient:   &http.Client{},
		fetchTimeout: config.LoadTimeouts().AvatarFetch,
		fallbackBase: defaultFallbackBase,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns an avatar image for username. sourceURL is tried
// first when non-empty; on any failure the generated fallback is
// fetched. An error means neither source produced an image.
func (r *Resolver) Resolve(ctx context.Context, username, sourceURL string) (*Image, error) {
	if sourceURL != "" {
		data, contentType, err := r.fetch(ctx, sourceURL)
		if err == nil {
			return &Image{Data: data, ContentType: contentType, Fallback: false}, nil
		}
	}

	data, contentType, err := r.fetch(ctx, r.FallbackURL(username))
	if err != nil {
		return nil, fmt.Errorf("no avatar available for %s: %w", username, err)
	}
	return &Image{Data: data, ContentType: contentType, Fallback: true}, nil
}

// FallbackURL returns the deterministic generated avatar URL for username.
func (r *Resolver) FallbackURL(username string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	style := fallbackStyles[h.Sum32()%uint32(len(fallbackStyles))]
	return fmt.Sprintf("%s/%s/svg?seed=%s", r.fallbackBase, style, url.QueryEscape(username))
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("avatar fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("avatar fetch returned empty body")
	}
	if len(data) > maxImageSize {
		return nil, "", fmt.Errorf("avatar exceeds %d byte limit", maxImageSize)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
