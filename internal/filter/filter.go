// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter rejects entity queries that contain disallowed terms.
// The check is plain case-insensitive substring containment against a
// blocklist, with no word-boundary logic: "Sussex" matches "sex" and
// "spammer" matches "spam".
package filter

import "strings"

// defaultTerms is the built-in blocklist. Configuration may extend it but
// never shrink it.
var defaultTerms = []string{
	"porn", "hack", "crack", "drugs", "violence", "illegal", "scam",
	"terrorism", "adult", "carding", "phishing", "sex", "spam", "weapons",
}

// DefaultTerms returns a copy of the built-in blocklist.
func DefaultTerms() []string {
	out := make([]string, len(defaultTerms))
	copy(out, defaultTerms)
	return out
}

// Filter matches queries against a fixed set of lowercased terms.
type Filter struct {
	terms []string
}

// New returns a Filter with the built-in terms plus extra. Blank extras
// are ignored so an empty config entry cannot match every query.
func New(extra ...string) *Filter {
	terms := DefaultTerms()
	for _, t := range extra {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return &Filter{terms: terms}
}

// Match returns the first disallowed term contained in query, if any.
func (f *Filter) Match(query string) (string, bool) {
	lower := strings.ToLower(query)
	for _, t := range f.terms {
		if strings.Contains(lower, t) {
			return t, true
		}
	}
	return "", false
}

// IsUnethical reports whether query contains any disallowed term.
func (f *Filter) IsUnethical(query string) bool {
	_, ok := f.Match(query)
	return ok
}

var std = New()

// IsUnethical checks query against the built-in blocklist only.
func IsUnethical(query string) bool {
	return std.IsUnethical(query)
}
