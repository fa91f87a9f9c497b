// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one email lookup for one entity: input gate, web
// search, pattern extraction and, only when the pattern finds nothing, LLM
// extraction. Every run ends in exactly one terminal State and reports its
// progress through a Reporter. Provider failures are converted to visible
// messages; no error escapes Run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/yashowardhanspatil/cognemailAI/internal/extract"
	"github.com/yashowardhanspatil/cognemailAI/internal/filter"
	"github.com/yashowardhanspatil/cognemailAI/internal/search"
	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// ContactSuffix is appended to the entity to form the search query.
const ContactSuffix = " contact email"

// State is the terminal state of one run.
type State string

const (
	StateInvalid  State = "warn"
	StateRejected State = "reject"
	StateError    State = "error"
	StateSuccess  State = "success"
	StateFailure  State = "failure"
)

// Sentinel errors carried on Outcome.Err.
var (
	ErrInvalidInput = errors.New("invalid input: entity is empty")
	ErrRejected     = errors.New("query contains disallowed terms")
	ErrNoEmail      = errors.New("no email could be extracted")
)

// Source records which stage produced the extracted value.
type Source string

const (
	SourceNone    Source = ""
	SourcePattern Source = "pattern"
	SourceLLM     Source = "llm"
)

// Reporter receives user-visible messages. The presentation layer decides
// how to render them.
type Reporter interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
}

// Sink receives the result row of a successful run.
type Sink interface {
	Append(ctx context.Context, row types.ResultRow) error
}

// Outcome summarises one run.
type Outcome struct {
	RunID    string
	State    State
	Entity   string
	Email    string
	Source   Source
	Snippets int
	Err      error
}

// Pipeline wires the stages together. It holds no per-run state, so one
// value serves any number of sequential runs.
type Pipeline struct {
	Filter   *filter.Filter
	Searcher search.Searcher
	LLM      extract.AIBackend
	Reporter Reporter
	Logger   *slog.Logger
}

// New returns a Pipeline. A nil filter uses the built-in blocklist and a
// nil logger uses slog.Default.
func New(f *filter.Filter, s search.Searcher, llm extract.AIBackend, r Reporter, logger *slog.Logger) *Pipeline {
	if f == nil {
		f = filter.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Filter: f, Searcher: s, LLM: llm, Reporter: r, Logger: logger}
}

// ContactQuery derives the search query for entity.
func ContactQuery(entity string) string {
	return entity + ContactSuffix
}

// Run executes the pipeline for entity. A successful run appends one row to
// sink when sink is non-nil.
func (p *Pipeline) Run(ctx context.Context, entity string, sink Sink) (out Outcome) {
	out = Outcome{RunID: uuid.NewString(), Entity: entity}
	log := p.Logger.With(slog.String("run_id", out.RunID))

	if strings.TrimSpace(entity) == "" {
		p.Reporter.Warn("Please enter a valid term.")
		out.State, out.Err = StateInvalid, ErrInvalidInput
		return out
	}
	if term, hit := p.Filter.Match(entity); hit {
		log.Debug("query rejected", slog.String("term", term))
		p.Reporter.Error("Search contains unethical terms, Please enter a valid query.")
		out.State, out.Err = StateRejected, ErrRejected
		return out
	}

	p.Reporter.Info("Searching... Please wait.")

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("unexpected failure: %v", r)
			log.Error("run aborted", slog.Any("panic", r))
			p.Reporter.Error(fmt.Sprintf("Error: %v. Please try again later.", err))
			out = Outcome{RunID: out.RunID, Entity: entity, State: StateError, Err: err}
		}
	}()

	results, err := p.Searcher.Search(ctx, ContactQuery(entity))
	if err != nil {
		if !search.IsRecoverable(err) {
			log.Debug("search aborted", slog.Any("error", err))
			p.Reporter.Error(fmt.Sprintf("Error: %v. Please try again later.", err))
			out.State, out.Err = StateError, err
			return out
		}
		p.reportSearchError(err)
		results = nil
	}

	snippets := types.Snippets(results)
	out.Snippets = len(snippets)
	log.Debug("search finished", slog.Int("results", len(results)))
	if len(results) == 0 {
		p.Reporter.Warn(fmt.Sprintf("No direct results found for '%s'. Trying AI-based extraction...", entity))
	}

	value, source := p.extract(ctx, log, snippets, entity)
	if value == "" {
		p.Reporter.Error(fmt.Sprintf("Could not extract an email for '%s'. Try again later.", entity))
		out.State, out.Err = StateFailure, ErrNoEmail
		return out
	}

	out.State, out.Email, out.Source = StateSuccess, value, source
	p.Reporter.Success(fmt.Sprintf("Email found: %s", value))

	if sink != nil {
		if err := sink.Append(ctx, types.ResultRow{Entity: entity, ExtractedEmail: value}); err != nil {
			log.Warn("recording result failed", slog.Any("error", err))
		}
	}
	return out
}

// extract runs the pattern stage and falls back to the LLM only when the
// pattern finds nothing.
func (p *Pipeline) extract(ctx context.Context, log *slog.Logger, snippets []string, entity string) (string, Source) {
	if email, ok := extract.Email(snippets); ok {
		log.Debug("pattern match", slog.String("stage", string(SourcePattern)))
		return email, SourcePattern
	}
	if p.LLM == nil {
		return "", SourceNone
	}

	value, err := p.LLM.Extract(ctx, snippets, entity)
	if err != nil {
		log.Debug("llm extraction failed", slog.Any("error", err))
		p.Reporter.Error(fmt.Sprintf("Error occurred while processing with %s LLM: %v", p.LLM.Name(), err))
		return "", SourceNone
	}
	if value == "" {
		return "", SourceNone
	}
	return value, SourceLLM
}

func (p *Pipeline) reportSearchError(err error) {
	var pe *search.ProviderError
	if errors.As(err, &pe) {
		p.Reporter.Error(fmt.Sprintf("%s Error: %s", pe.Provider, pe.Message))
		return
	}
	var te *search.TransportError
	if errors.As(err, &te) {
		err = te.Err
	}
	p.Reporter.Error(fmt.Sprintf("An error occurred while fetching data from %s: %v", p.Searcher.Name(), err))
}
