// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds email addresses in search snippets, first with a
// deterministic pattern scan and, when that finds nothing, through a
// language model.
package extract

import (
	"regexp"
	"strings"
)

// emailPattern matches local@domain.tld with a purely alphabetic TLD of at
// least two letters. It accepts strings that look like addresses but are
// not deliverable; that is intended.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// JoinSnippets concatenates snippets with a single space, the text form
// both extraction stages scan.
func JoinSnippets(snippets []string) string {
	return strings.Join(snippets, " ")
}

// Email returns the first address-like substring in the joined snippets,
// scanning left to right. ok is false when nothing matches, including for
// an empty snippet list.
func Email(snippets []string) (email string, ok bool) {
	m := emailPattern.FindString(JoinSnippets(snippets))
	if m == "" {
		return "", false
	}
	return m, true
}

// AllEmails returns every match in scan order, duplicates included. The
// pipeline only uses the first; this exists for diagnostics.
func AllEmails(snippets []string) []string {
	return emailPattern.FindAllString(JoinSnippets(snippets), -1)
}
