// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files and
// resolves the credentials a session uses. Each file in the directory
// represents one secret: the filename is the key name and the file contents
// (trimmed) are the value.
//
// Supported key files: serpapi-api-key, groq-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// Key file names.
const (
	SerpAPIKeyFile = "serpapi-api-key"
	GroqKeyFile    = "groq-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Defaults are the process-wide fallback keys, resolved once at startup.
type Defaults struct {
	SearchAPIKey string
	LLMAPIKey    string
}

// DefaultsFrom picks each default key from loaded secret files first and
// from fallback (config or environment) second.
func DefaultsFrom(loaded map[string]string, fallback Defaults) Defaults {
	return Defaults{
		SearchAPIKey: firstNonEmpty(loaded[SerpAPIKeyFile], fallback.SearchAPIKey),
		LLMAPIKey:    firstNonEmpty(loaded[GroqKeyFile], fallback.LLMAPIKey),
	}
}

// Resolve builds the credentials for one session. A non-blank session value
// wins; a blank one falls back to the default. UsedDefaults is set when at
// least one key actually came from a non-empty default.
func Resolve(searchKey, llmKey string, d Defaults) types.Credentials {
	var c types.Credentials
	c.SearchAPIKey, c.UsedDefaults = pick(searchKey, d.SearchAPIKey, c.UsedDefaults)
	c.LLMAPIKey, c.UsedDefaults = pick(llmKey, d.LLMAPIKey, c.UsedDefaults)
	return c
}

func pick(session, def string, used bool) (string, bool) {
	if s := strings.TrimSpace(session); s != "" {
		return s, used
	}
	if def != "" {
		return def, true
	}
	return "", used
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
