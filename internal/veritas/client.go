// Package veritas talks to the veritas verification daemon's HTTP API.
// The shell only submits claims and checks reachability here; it never
// interprets fusion payloads beyond the summary fields it displays.
package veritas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API is the surface the shell depends on. Implemented by *Client and by
// test fakes.
type API interface {
	Health(ctx context.Context) error
	Verify(ctx context.Context, text string) (*VerifyResult, error)
}

var _ API = (*Client)(nil)

// Client talks to the veritas HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultEndpoint  = "127.0.0.1:8817"
	defaultUserAgent = "attest/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client using the provided host:port endpoint value.
func NewClient(endpoint string) (*Client, error) {
	base, err := parseBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Health probes the daemon's health endpoint. A nil error means reachable.
// Callers bound the wait with their own context deadline.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &payload); err != nil {
		return err
	}
	if payload.Status != "" && payload.Status != "ok" {
		return fmt.Errorf("daemon unhealthy: %s", payload.Status)
	}
	return nil
}

// Verify submits a claim for verification and returns the fused result.
func (c *Client) Verify(ctx context.Context, text string) (*VerifyResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("claim text is empty")
	}
	body, err := json.Marshal(verifyRequest{Text: trimmed})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var payload VerifyResult
	if err := c.do(ctx, http.MethodPost, "/api/verify", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
