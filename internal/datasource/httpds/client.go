// Package httpds implements a small HTTP datasource with optional TLS
// verification skipping. It is used by the preprocessor to download the
// catalog document when the locator is a URL.
//
// Design goals:
//
//   - Keep a tiny, explicit API (Get, Do).
//   - One attempt per call; a failed fetch is reported, never retried.
//   - Allow skipping TLS verification when talking to endpoints with invalid
//     certificates (e.g., internal mirrors).
//   - Respect context cancellation.
//   - Be easy to test by injecting a custom RoundTripper.
package httpds

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

// Config configures the HTTP datasource client.
//
// Zero values are given sensible defaults:
//   - Timeout: 60s
type Config struct {
	// Timeout is the per-request timeout applied at the http.Client level. It
	// covers reading the response body as well.
	Timeout time.Duration

	// InsecureSkipVerify controls whether TLS certificate verification is
	// disabled.
	InsecureSkipVerify bool

	// Transport is an optional custom RoundTripper. When nil, a default
	// *http.Transport is constructed based on the TLS settings.
	Transport http.RoundTripper
}

// Client wraps an http.Client.
type Client struct {
	httpClient *http.Client
}

// NewClient constructs a Client from Config, applying defaults for zero values.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	transport := cfg.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // explicitly configurable
		}
		transport = t
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// Do sends a single HTTP request with the given method and URL. The returned
// *http.Response has a non-nil Body which the caller must close. Status codes
// are not interpreted here.
func (c *Client) Do(ctx context.Context, method, url string, headers http.Header) (*http.Response, error) {
	if method == "" {
		return nil, fmt.Errorf("httpds: method must not be empty")
	}
	if url == "" {
		return nil, fmt.Errorf("httpds: url must not be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("httpds: build request: %w", err)
	}

	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpds: %s %s: %w", method, url, err)
	}
	return resp, nil
}

// Get is a convenience wrapper over Do for HTTP GET. The caller must close
// the response body.
func (c *Client) Get(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers)
}
