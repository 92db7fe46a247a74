package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"retailprep/internal/errs"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpds: GET %s: unexpected status %s", e.URL, e.Status)
}

// Source fetches one URL with a Client.
type Source struct {
	client *Client
	url    string
}

// NewSource binds url to client.
func NewSource(c *Client, url string) *Source {
	return &Source{client: c, url: url}
}

// URL returns the bound URL.
func (s *Source) URL() string { return s.url }

// Open issues one GET request and returns the response body. Transport
// failures and non-2xx statuses are reported as *errs.SourceUnavailableError;
// context cancellation is returned as-is.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	h := make(http.Header)
	h.Set("Accept", "application/json")

	resp, err := s.client.Get(ctx, s.url, h)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errs.SourceUnavailableError{Locator: s.url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		return nil, &errs.SourceUnavailableError{
			Locator: s.url,
			Err:     &StatusError{URL: s.url, Status: resp.Status, Code: resp.StatusCode},
		}
	}

	return resp.Body, nil
}
