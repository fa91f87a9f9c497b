// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cognemail pipeline:
// search results, session result rows, credentials and component config.
package types

// SearchResult is one organic entry returned by the search provider.
// Only Snippet is consumed by the extraction stages; the other fields are
// kept for diagnostics and JSON output.
type SearchResult struct {
	// Position is the provider-reported rank, starting at 1.
	Position int `json:"position" yaml:"position"`

	// Title is the result title.
	Title string `json:"title" yaml:"title"`

	// Link is the result URL.
	Link string `json:"link" yaml:"link"`

	// Snippet is the human-readable description. Empty when the provider omitted it.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Snippets returns the snippet of each result in provider order.
func Snippets(results []SearchResult) []string {
	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, r.Snippet)
	}
	return snippets
}
