// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name     string
		snippets []string
		want     string
		wantOK   bool
	}{
		{"first of two in one snippet", []string{"contact us at info@example.com or sales@example.org"}, "info@example.com", true},
		{"no match", []string{"no contact info here"}, "", false},
		{"empty list", nil, "", false},
		{"empty strings", []string{"", ""}, "", false},
		{"first across snippets", []string{"Acme HQ", "mail press@acme.co.in", "or ceo@acme.com"}, "press@acme.co.in", true},
		{"plus and percent local part", []string{"x first.last+tag%1@sub.example.io y"}, "first.last+tag%1@sub.example.io", true},
		{"one letter tld rejected", []string{"a@b.c"}, "", false},
		{"numeric tld rejected", []string{"user@host.123"}, "", false},
		{"trailing punctuation dropped", []string{"Email: hello@acme.com."}, "hello@acme.com", true},
		{"non-deliverable still matches", []string{"name@domain.invalid"}, "name@domain.invalid", true},
		{"match spans snippet join", []string{"info", "@acme.com"}, "", false},
		{"duplicates keep first", []string{"a@x.com a@x.com b@x.com"}, "a@x.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Email(tt.snippets)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailDeterministic(t *testing.T) {
	snippets := []string{"reach b@two.org", "or a@one.com"}
	first, _ := Email(snippets)
	for i := 0; i < 20; i++ {
		got, ok := Email(snippets)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
	assert.Equal(t, "b@two.org", first)
}

func TestAllEmails(t *testing.T) {
	got := AllEmails([]string{"a@x.com and a@x.com", "c@y.org"})
	assert.Equal(t, []string{"a@x.com", "a@x.com", "c@y.org"}, got)
	assert.Empty(t, AllEmails(nil))
}

func TestJoinSnippets(t *testing.T) {
	assert.Equal(t, "a b  c", JoinSnippets([]string{"a", "b", "", "c"}))
	assert.Equal(t, "", JoinSnippets(nil))
}
