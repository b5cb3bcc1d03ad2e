package emby

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mediashift/mediashift/internal/config"
	"github.com/mediashift/mediashift/internal/util/retry"
)

// authHeader carries the admin API key on every request.
const authHeader = "X-Emby-Token"

// RealClient implements Client against a live Emby server.
//
// The underlying http.Client is shared across all calls of a run so the
// connection is reused. Calls are strictly sequential, so no locking
// is needed.
type RealClient struct {
	baseURL    string
	apiKey     string
	timeouts   *config.Timeouts
	httpClient *http.Client
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// NewRealClient creates a client for the server at baseURL authenticated
// with the admin API key.
func NewRealClient(baseURL, apiKey string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeouts:   config.LoadTimeouts(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = c.timeouts.Request
	}
	return c
}

// systemInfo is the subset of /emby/System/Info the migration cares about.
type systemInfo struct {
	Version         string `json:"Version"`
	ServerName      string `json:"ServerName"`
	OperatingSystem string `json:"OperatingSystem"`
}

// ProbeCapabilities implements CapabilityProber.
func (c *RealClient) ProbeCapabilities(ctx context.Context) (*ServerCapabilities, error) {
	var info systemInfo
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/emby/System/Info", &info)
	})
	if err != nil {
		if isAuthRejected(err) {
			return nil, &ConnectivityError{Err: fmt.Errorf("API key rejected: %w", err)}
		}
		return nil, &ConnectivityError{Err: err}
	}

	return capabilitiesFor(info.Version, info.ServerName, info.OperatingSystem), nil
}

// withRetry retries op on transient failures within the configured budget.
func (c *RealClient) withRetry(ctx context.Context, op func() error) error {
	return retry.Do(ctx, func() error {
		err := op()
		if err != nil && !isTransient(err) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// getJSON issues an authenticated GET and decodes the JSON response.
func (c *RealClient) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("GET %s returned empty body", path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// postJSON issues an authenticated POST with a JSON payload and returns
// the raw response body (Emby returns 204 with no body for most writes).
func (c *RealClient) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, data, "application/json")
}

func (c *RealClient) do(ctx context.Context, method, path string, body []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(authHeader, c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apiError{
			Op:         fmt.Sprintf("%s %s", method, path),
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 200),
		}
	}

	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
