// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yashowardhanspatil/cognemailAI/internal/extract"
	"github.com/yashowardhanspatil/cognemailAI/internal/search"
	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

const (
	defaultSearchEndpoint = "https://serpapi.com/search.json"
	defaultLLMEndpoint    = "https://api.groq.com/openai/v1/chat/completions"
	defaultUserAgent      = "cognemail/0.1"
	defaultSearchTimeout  = 30 * time.Second
	defaultLLMTimeout     = 60 * time.Second
)

// Viper keys for the default credentials.
const (
	keySerpAPIKey = "serpapi_key"
	keyGroqKey    = "groq_key"
)

// setDefaults registers every config key so AutomaticEnv and Unmarshal see
// them, and binds the plain SERPAPI_KEY and GROQ_API_KEY variables.
func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix("COGNEMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("search.endpoint", defaultSearchEndpoint)
	v.SetDefault("search.engine", search.DefaultEngine)
	v.SetDefault("search.language", search.DefaultLanguage)
	v.SetDefault("search.region", search.DefaultRegion)
	v.SetDefault("search.safe", search.DefaultSafe)
	v.SetDefault("search.timeout", defaultSearchTimeout)
	v.SetDefault("search.user_agent", defaultUserAgent)

	v.SetDefault("llm.endpoint", defaultLLMEndpoint)
	v.SetDefault("llm.model", extract.DefaultModel)
	v.SetDefault("llm.timeout", defaultLLMTimeout)
	v.SetDefault("llm.user_agent", defaultUserAgent)

	v.SetDefault("filter.extra_terms", []string{})

	v.BindEnv(keySerpAPIKey, "COGNEMAIL_SERPAPI_KEY", "SERPAPI_KEY")
	v.BindEnv(keyGroqKey, "COGNEMAIL_GROQ_KEY", "GROQ_API_KEY")
}

// loadAppConfig decodes the component configuration from v.
func loadAppConfig(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
