// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashowardhanspatil/cognemailAI/internal/filter"
	"github.com/yashowardhanspatil/cognemailAI/internal/search"
	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// --- fakes ---

type message struct {
	level string
	text  string
}

type recordingReporter struct {
	messages []message
}

func (r *recordingReporter) Info(msg string) { r.add("info", msg) }
func (r *recordingReporter) Warn(msg string) { r.add("warn", msg) }
func (r *recordingReporter) Error(msg string) { r.add("error", msg) }
func (r *recordingReporter) Success(msg string) { r.add("success", msg) }

func (r *recordingReporter) add(level, msg string) {
	r.messages = append(r.messages, message{level: level, text: msg})
}

func (r *recordingReporter) texts(level string) []string {
	var out []string
	for _, m := range r.messages {
		if m.level == level {
			out = append(out, m.text)
		}
	}
	return out
}

type fakeSearcher struct {
	results []types.SearchResult
	err     error
	panics  bool
	calls   int
	queries []string
}

func (f *fakeSearcher) Name() string { return "SerpAPI" }

func (f *fakeSearcher) Search(_ context.Context, query string) ([]types.SearchResult, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.panics {
		panic("provider client exploded")
	}
	return f.results, f.err
}

type fakeLLM struct {
	answer      string
	err         error
	calls       int
	gotSnippets []string
	gotEntity   string
}

func (f *fakeLLM) Name() string { return "Groq" }

func (f *fakeLLM) Extract(_ context.Context, snippets []string, entity string) (string, error) {
	f.calls++
	f.gotSnippets = snippets
	f.gotEntity = entity
	return f.answer, f.err
}

type memSink struct {
	rows []types.ResultRow
	err  error
}

func (m *memSink) Append(_ context.Context, row types.ResultRow) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, row)
	return nil
}

func snippetResults(snippets ...string) []types.SearchResult {
	out := make([]types.SearchResult, len(snippets))
	for i, s := range snippets {
		out[i] = types.SearchResult{Position: i + 1, Snippet: s}
	}
	return out
}

type harness struct {
	p        *Pipeline
	reporter *recordingReporter
	searcher *fakeSearcher
	llm      *fakeLLM
	sink     *memSink
}

func newHarness(s *fakeSearcher, l *fakeLLM) *harness {
	r := &recordingReporter{}
	return &harness{
		p:        New(nil, s, l, r, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		reporter: r,
		searcher: s,
		llm:      l,
		sink:     &memSink{},
	}
}

func (h *harness) run(entity string) Outcome {
	return h.p.Run(context.Background(), entity, h.sink)
}

// --- input gate ---

func TestRunRejectsEmptyInput(t *testing.T) {
	for _, entity := range []string{"", "   ", "\t\n"} {
		h := newHarness(&fakeSearcher{}, &fakeLLM{})
		out := h.run(entity)

		assert.Equal(t, StateInvalid, out.State)
		assert.ErrorIs(t, out.Err, ErrInvalidInput)
		assert.Equal(t, []string{"Please enter a valid term."}, h.reporter.texts("warn"))
		assert.Zero(t, h.searcher.calls)
		assert.Zero(t, h.llm.calls)
		assert.Empty(t, h.sink.rows)
	}
}

func TestRunRejectsDisallowedTerms(t *testing.T) {
	for _, entity := range []string{"hack this site", "HACKERS inc", "Sussex Police", "best Phishing kits"} {
		t.Run(entity, func(t *testing.T) {
			h := newHarness(&fakeSearcher{}, &fakeLLM{})
			out := h.run(entity)

			assert.Equal(t, StateRejected, out.State)
			assert.ErrorIs(t, out.Err, ErrRejected)
			assert.Equal(t, []string{"Search contains unethical terms, Please enter a valid query."}, h.reporter.texts("error"))
			assert.Zero(t, h.searcher.calls, "no network call on rejection")
			assert.Zero(t, h.llm.calls, "no network call on rejection")
			assert.Empty(t, h.sink.rows)
		})
	}
}

func TestRunUsesConfiguredExtraTerms(t *testing.T) {
	h := newHarness(&fakeSearcher{}, &fakeLLM{})
	h.p.Filter = filter.New("casino")

	out := h.run("Grand Casino")
	assert.Equal(t, StateRejected, out.State)
	assert.Zero(t, h.searcher.calls)
}

// --- search stage ---

func TestRunDerivesContactQuery(t *testing.T) {
	h := newHarness(&fakeSearcher{results: snippetResults("info@acme.com")}, &fakeLLM{})
	h.run("Acme Corp")

	assert.Equal(t, []string{"Acme Corp contact email"}, h.searcher.queries)
	assert.Equal(t, []string{"Searching... Please wait."}, h.reporter.texts("info"))
}

func TestRunPatternHitSkipsLLM(t *testing.T) {
	s := &fakeSearcher{results: snippetResults("contact us at info@example.com or sales@example.org")}
	l := &fakeLLM{answer: "should not be used"}
	h := newHarness(s, l)

	out := h.run("Example Ltd")

	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, "info@example.com", out.Email)
	assert.Equal(t, SourcePattern, out.Source)
	assert.Zero(t, l.calls)
	assert.Equal(t, []types.ResultRow{{Entity: "Example Ltd", ExtractedEmail: "info@example.com"}}, h.sink.rows)
	assert.Equal(t, []string{"Email found: info@example.com"}, h.reporter.texts("success"))
}

func TestRunAcmeFallsBackToLLM(t *testing.T) {
	s := &fakeSearcher{results: snippetResults("Acme Corp HQ, no contact listed")}
	l := &fakeLLM{answer: "acme@acmecorp.com (source: official site)"}
	h := newHarness(s, l)

	out := h.run("Acme Corp")

	require.NoError(t, out.Err)
	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, "acme@acmecorp.com (source: official site)", out.Email)
	assert.Equal(t, SourceLLM, out.Source)
	assert.Equal(t, 1, l.calls)
	assert.Equal(t, []string{"Acme Corp HQ, no contact listed"}, l.gotSnippets)
	assert.Equal(t, "Acme Corp", l.gotEntity)
	assert.Equal(t, []types.ResultRow{{Entity: "Acme Corp", ExtractedEmail: "acme@acmecorp.com (source: official site)"}}, h.sink.rows)
	assert.Empty(t, h.reporter.texts("error"))
}

func TestRunZeroResultsWarnsAndContinues(t *testing.T) {
	l := &fakeLLM{}
	h := newHarness(&fakeSearcher{}, l)

	out := h.run("Nobody Inc")

	assert.Equal(t, []string{"No direct results found for 'Nobody Inc'. Trying AI-based extraction..."}, h.reporter.texts("warn"))
	assert.Equal(t, 1, l.calls, "LLM stage still runs on empty snippets")
	assert.Empty(t, l.gotSnippets)
	assert.Equal(t, StateFailure, out.State)
	assert.ErrorIs(t, out.Err, ErrNoEmail)
	assert.Equal(t, []string{"Could not extract an email for 'Nobody Inc'. Try again later."}, h.reporter.texts("error"))
	assert.Empty(t, h.sink.rows)
}

func TestRunProviderErrorDegradesToEmpty(t *testing.T) {
	s := &fakeSearcher{err: &search.ProviderError{Provider: "SerpAPI", StatusCode: 401, Message: "Invalid API key."}}
	l := &fakeLLM{answer: "guess@acme.com"}
	h := newHarness(s, l)

	out := h.run("Acme")

	errs := h.reporter.texts("error")
	require.NotEmpty(t, errs)
	assert.Equal(t, "SerpAPI Error: Invalid API key.", errs[0])
	assert.Equal(t, 1, l.calls)
	assert.Empty(t, l.gotSnippets)
	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, "guess@acme.com", out.Email)
}

func TestRunTransportErrorDegradesToEmpty(t *testing.T) {
	s := &fakeSearcher{err: &search.TransportError{Provider: "SerpAPI", Err: errors.New("dial tcp: connection refused")}}
	h := newHarness(s, &fakeLLM{})

	out := h.run("Acme")

	errs := h.reporter.texts("error")
	require.Len(t, errs, 2)
	assert.Equal(t, "An error occurred while fetching data from SerpAPI: dial tcp: connection refused", errs[0])
	assert.Equal(t, StateFailure, out.State)
}

func TestRunUnexpectedSearchErrorAborts(t *testing.T) {
	l := &fakeLLM{answer: "x@y.com"}
	h := newHarness(&fakeSearcher{err: context.Canceled}, l)

	out := h.run("Acme")

	assert.Equal(t, StateError, out.State)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Zero(t, l.calls, "no extraction after an aborted search")
	assert.Equal(t, []string{"Error: context canceled. Please try again later."}, h.reporter.texts("error"))
	assert.Empty(t, h.reporter.texts("warn"))
	assert.Empty(t, h.sink.rows)
}

func TestRunSearchPanicAborts(t *testing.T) {
	l := &fakeLLM{answer: "x@y.com"}
	h := newHarness(&fakeSearcher{panics: true}, l)

	out := h.run("Acme")

	assert.Equal(t, StateError, out.State)
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "provider client exploded")
	assert.NotEmpty(t, out.RunID)
	assert.Zero(t, l.calls)
	assert.Empty(t, h.sink.rows)
}

// --- LLM stage ---

func TestRunLLMErrorEndsInFailure(t *testing.T) {
	s := &fakeSearcher{results: snippetResults("nothing useful")}
	l := &fakeLLM{err: errors.New("Groq API returned 401: Invalid API Key")}
	h := newHarness(s, l)

	out := h.run("Acme")

	assert.Equal(t, StateFailure, out.State)
	assert.Equal(t, []string{
		"Error occurred while processing with Groq LLM: Groq API returned 401: Invalid API Key",
		"Could not extract an email for 'Acme'. Try again later.",
	}, h.reporter.texts("error"))
	assert.Empty(t, h.sink.rows)
}

func TestRunEmptyLLMAnswerEndsInFailure(t *testing.T) {
	h := newHarness(&fakeSearcher{results: snippetResults("no emails")}, &fakeLLM{answer: ""})
	out := h.run("Acme")
	assert.Equal(t, StateFailure, out.State)
	assert.Equal(t, SourceNone, out.Source)
}

func TestRunWithoutLLMBackend(t *testing.T) {
	h := newHarness(&fakeSearcher{results: snippetResults("no emails")}, nil)
	h.p.LLM = nil
	out := h.run("Acme")
	assert.Equal(t, StateFailure, out.State)
}

// --- result recording ---

func TestRunAccumulatesRowsAcrossRuns(t *testing.T) {
	s := &fakeSearcher{results: snippetResults("a@a.com")}
	h := newHarness(s, &fakeLLM{})

	h.run("First")
	h.run("hack")
	h.run("Second")

	assert.Equal(t, []types.ResultRow{
		{Entity: "First", ExtractedEmail: "a@a.com"},
		{Entity: "Second", ExtractedEmail: "a@a.com"},
	}, h.sink.rows)
}

func TestRunSinkErrorKeepsSuccess(t *testing.T) {
	h := newHarness(&fakeSearcher{results: snippetResults("a@a.com")}, &fakeLLM{})
	h.sink.err = errors.New("disk full")

	out := h.run("Acme")
	assert.Equal(t, StateSuccess, out.State)
}

func TestRunNilSink(t *testing.T) {
	h := newHarness(&fakeSearcher{results: snippetResults("a@a.com")}, &fakeLLM{})
	out := h.p.Run(context.Background(), "Acme", nil)
	assert.Equal(t, StateSuccess, out.State)
}

func TestRunIDsAreUnique(t *testing.T) {
	h := newHarness(&fakeSearcher{}, &fakeLLM{})
	a := h.run("")
	b := h.run("")
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestContactQuery(t *testing.T) {
	assert.Equal(t, "Acme Corp contact email", ContactQuery("Acme Corp"))
}
