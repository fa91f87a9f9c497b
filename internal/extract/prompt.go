// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/yashowardhanspatil/cognemailAI/internal/httputil"
	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// extractionPromptTmpl asks the model for official addresses of one entity
// found in the joined snippet text.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`Extract only official, verified email addresses related to {{.Entity}} from the text below.
Ignore any personal, spam, or unrelated emails.

{{.Text}}

Provide only the valid email(s) along with their source (if available).`))

// groqAPIURL is Groq's OpenAI-compatible chat completions endpoint.
// Package-level var for test substitution.
var groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// DefaultModel is the model every extraction request names.
const DefaultModel = "llama3-8b-8192"

const providerGroq = "Groq"

// AIBackend abstracts the language model so tests can supply a mock.
// Extract returns the model's free-text answer; it is not validated as an
// address.
type AIBackend interface {
	Name() string
	Extract(ctx context.Context, snippets []string, entity string) (string, error)
}

// LLMError is a failure reported by the language-model provider.
type LLMError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *LLMError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API returned %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API: %s", e.Provider, e.Message)
}

// GroqBackend calls a Groq chat completions endpoint with a single user
// message and no retries.
type GroqBackend struct {
	APIKey   string
	Model    string
	Endpoint string
	Client   *http.Client
	Logger   *slog.Logger
}

// NewGroqBackend builds a backend from cfg. An empty model falls back to
// DefaultModel.
func NewGroqBackend(cfg types.LLMConfig, apiKey string, logger *slog.Logger) *GroqBackend {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GroqBackend{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: cfg.Endpoint,
		Client:   httputil.NewClient(cfg.HTTPConfig),
		Logger:   logger,
	}
}

// chatRequest is the OpenAI-compatible chat completions request body.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse carries either choices or an error object.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Name returns the provider name used in user-facing messages.
func (g *GroqBackend) Name() string { return providerGroq }

// Extract sends one extraction request and returns the trimmed answer.
func (g *GroqBackend) Extract(ctx context.Context, snippets []string, entity string) (string, error) {
	if g.APIKey == "" {
		return "", &LLMError{Provider: providerGroq, Message: "API key is not set"}
	}

	prompt, err := renderPrompt(entity, JoinSnippets(snippets))
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model:    g.model(),
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	start := time.Now()
	resp, err := httputil.Do(ctx, g.Client, req)
	if err != nil {
		return "", fmt.Errorf("calling %s API: %w", providerGroq, err)
	}
	g.logger().Debug("llm response",
		slog.String("model", g.model()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var cr chatResponse
	decodeErr := resp.DecodeJSON(&cr)
	if decodeErr == nil && cr.Error != nil && cr.Error.Message != "" {
		code := resp.StatusCode
		if code >= 200 && code < 300 {
			code = 0
		}
		return "", &LLMError{Provider: providerGroq, StatusCode: code, Message: cr.Error.Message}
	}
	if statusErr := resp.Err(); statusErr != nil {
		var se *httputil.StatusError
		msg := statusErr.Error()
		if errors.As(statusErr, &se) {
			msg = se.Body
		}
		return "", &LLMError{Provider: providerGroq, StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", &LLMError{Provider: providerGroq, Message: decodeErr.Error()}
	}
	if len(cr.Choices) == 0 {
		return "", &LLMError{Provider: providerGroq, Message: "no choices in response"}
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

func (g *GroqBackend) model() string {
	if g.Model == "" {
		return DefaultModel
	}
	return g.Model
}

func (g *GroqBackend) endpoint() string {
	if g.Endpoint != "" {
		return g.Endpoint
	}
	return groqAPIURL
}

func (g *GroqBackend) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// renderPrompt executes the extraction prompt template.
func renderPrompt(entity, text string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Entity, Text string }{Entity: entity, Text: text}
	if err := extractionPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
