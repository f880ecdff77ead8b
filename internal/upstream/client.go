// Package upstream is the typed HTTP client for the ticketing REST API. It
// is the gateway's data-access layer: handlers never build requests
// themselves, they call one method per endpoint and get model records back.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/molticket/webgate/internal/monitoring"
)

// ErrUnauthorized marks an upstream 401. Handlers react by clearing the
// session and redirecting to the login page.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// APIError carries the upstream's error message for non-2xx responses so the
// page can flash the server-provided text instead of a generic one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// Credentials is the per-request decoration pulled from the session: the
// bearer token plus the queue admission pass. The pass headers are attached
// only when both halves are present.
type Credentials struct {
	AccessToken string
	QueueToken  string
	EventID     string
}

// Client talks to the ticketing API.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// envelope is the {success,message,data} wrapper some endpoints use.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// do performs one request. op labels the call for metrics; body is JSON
// encoded when non-nil; out, when non-nil, receives the decoded response
// body.
func (c *Client) do(ctx context.Context, op string, creds Credentials, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if creds.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	}
	if creds.QueueToken != "" && creds.EventID != "" {
		req.Header.Set("Queue-Token", creds.QueueToken)
		req.Header.Set("Event-Id", creds.EventID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		monitoring.ObserveUpstream(op, 0, time.Since(start))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveUpstream(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// readMessage extracts the "message" field from an error body, tolerating
// both the envelope shape and bare objects.
func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
