// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search provider and returns organic results.
//
// Failures are split in two. Provider-side problems (an explicit error
// payload, a non-2xx status, an undecodable body) come back as
// *ProviderError and network failures as *TransportError; callers treat both
// as "no results". Anything else, such as a cancelled context or a request
// that cannot be built, is returned as a plain error.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// Searcher issues one search query. Implementations never retry.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}

// ProviderError is a failure reported by the provider itself.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// TransportError wraps a failure to reach the provider.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err is a provider or transport failure,
// which the pipeline degrades to an empty result set.
func IsRecoverable(err error) bool {
	var pe *ProviderError
	var te *TransportError
	return errors.As(err, &pe) || errors.As(err, &te)
}
