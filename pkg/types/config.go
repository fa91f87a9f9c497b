// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"log/slog"
	"time"
)

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the web search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the search provider URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Engine selects the provider's backing engine (e.g. "google").
	Engine string `json:"engine" yaml:"engine" mapstructure:"engine"`

	// Language is the interface language code sent as hl.
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// Region is the country code sent as gl.
	Region string `json:"region" yaml:"region" mapstructure:"region"`

	// Safe is the safe-search setting.
	Safe string `json:"safe" yaml:"safe" mapstructure:"safe"`
}

// LLMConfig holds settings for the language-model extraction client.
type LLMConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the OpenAI-compatible chat completions URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Model is the fixed model identifier (e.g. "llama3-8b-8192").
	Model string `json:"model" yaml:"model" mapstructure:"model"`
}

// FilterConfig holds settings for the keyword filter.
type FilterConfig struct {
	// ExtraTerms are appended to the built-in disallowed terms. They never
	// replace the built-in list.
	ExtraTerms []string `json:"extra_terms" yaml:"extra_terms" mapstructure:"extra_terms"`
}

// Credentials holds the two provider secrets for one session.
type Credentials struct {
	SearchAPIKey string `json:"-" yaml:"-"`
	LLMAPIKey    string `json:"-" yaml:"-"`

	// UsedDefaults reports whether either key fell back to a process-wide default.
	UsedDefaults bool `json:"-" yaml:"-"`
}

// String redacts both keys.
func (c Credentials) String() string {
	return "Credentials{search:" + redact(c.SearchAPIKey) + " llm:" + redact(c.LLMAPIKey) + "}"
}

// LogValue keeps keys out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("search_api_key", redact(c.SearchAPIKey)),
		slog.String("llm_api_key", redact(c.LLMAPIKey)),
		slog.Bool("used_defaults", c.UsedDefaults),
	)
}

func redact(s string) string {
	if s == "" {
		return "unset"
	}
	return "set"
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	LLM    LLMConfig    `json:"llm" yaml:"llm" mapstructure:"llm"`
	Filter FilterConfig `json:"filter" yaml:"filter" mapstructure:"filter"`
}
