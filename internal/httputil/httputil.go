// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the provider clients.
// Every request is attempted exactly once: there is no retry or backoff.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// MaxBodyBytes caps how much of a response body is read. Tests lower it.
var MaxBodyBytes int64 = 4 << 20

const previewLen = 300

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Do sends req once with ctx and reads the whole body (up to MaxBodyBytes).
// The returned error is non-nil only when no response was received or the
// body could not be read; callers check the status with Err.
func Do(ctx context.Context, client *http.Client, req *http.Request) (*Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Err returns a *StatusError for non-2xx responses and nil otherwise.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	return &StatusError{StatusCode: r.StatusCode, Body: Preview(string(r.Body))}
}

// DecodeJSON unmarshals the body into out.
func (r *Response) DecodeJSON(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decoding JSON (status %d): %w; body: %s", r.StatusCode, err, Preview(string(r.Body)))
	}
	return nil
}

// Preview truncates s for inclusion in error messages.
func Preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	return s[:previewLen] + "..."
}

// NewClient returns an *http.Client honouring cfg.Timeout. A zero timeout
// keeps the transport default.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}
