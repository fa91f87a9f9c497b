// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yashowardhanspatil/cognemailAI/internal/extract"
	"github.com/yashowardhanspatil/cognemailAI/internal/filter"
	"github.com/yashowardhanspatil/cognemailAI/internal/pipeline"
	"github.com/yashowardhanspatil/cognemailAI/internal/results"
	"github.com/yashowardhanspatil/cognemailAI/internal/search"
	"github.com/yashowardhanspatil/cognemailAI/internal/secrets"
	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

var findCmd = &cobra.Command{
	Use:   "find <entity...>",
	Short: "Look up the contact email of one organization",
	Long: `Find runs a single lookup. The arguments are joined with spaces to form the
entity name, the query "<entity> contact email" is sent to SerpAPI, and the
first email address in the result snippets is reported. When the snippets
contain no address, Groq is asked to extract an official one.

The exit status is non-zero unless an email was found.`,
	Example: `  cognemail find OpenAI
  cognemail find "Indian Institute of Science" --format json`,
	RunE: runFind,
}

func init() {
	addSessionFlags(findCmd)
	rootCmd.AddCommand(findCmd)
}

// addSessionFlags registers the per-session key, model and format flags.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("serpapi-key", "", "SerpAPI key for this session (default: configured key)")
	cmd.Flags().String("groq-key", "", "Groq API key for this session (default: configured key)")
	cmd.Flags().String("model", "", "override the Groq model")
	cmd.Flags().String("format", string(results.FormatTable), "results format: table, json or yaml")
}

// sessionOptions are the flag values shared by find and interactive.
type sessionOptions struct {
	searchKey string
	llmKey    string
	model     string
	format    results.Format
}

func readSessionFlags(cmd *cobra.Command) (sessionOptions, error) {
	var opts sessionOptions
	opts.searchKey, _ = cmd.Flags().GetString("serpapi-key")
	opts.llmKey, _ = cmd.Flags().GetString("groq-key")
	opts.model, _ = cmd.Flags().GetString("model")

	f, _ := cmd.Flags().GetString("format")
	format, err := results.ParseFormat(f)
	if err != nil {
		return sessionOptions{}, err
	}
	opts.format = format
	return opts, nil
}

// sessionConfig loads the component configuration and applies the model
// override.
func sessionConfig(opts sessionOptions) (types.AppConfig, error) {
	cfg, err := loadAppConfig(viper.GetViper())
	if err != nil {
		return types.AppConfig{}, err
	}
	if opts.model != "" {
		cfg.LLM.Model = opts.model
	}
	return cfg, nil
}

// newPipeline builds the search, extraction and filter components for one
// session's credentials.
func newPipeline(cfg types.AppConfig, creds types.Credentials, r pipeline.Reporter) *pipeline.Pipeline {
	searcher := search.NewSerpAPIClient(cfg.Search, creds.SearchAPIKey, logger)
	llm := extract.NewGroqBackend(cfg.LLM, creds.LLMAPIKey, logger)
	return pipeline.New(filter.New(cfg.Filter.ExtraTerms...), searcher, llm, r, logger)
}

func runFind(cmd *cobra.Command, args []string) error {
	opts, err := readSessionFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := sessionConfig(opts)
	if err != nil {
		return err
	}
	creds := secrets.Resolve(opts.searchKey, opts.llmKey, defaultKeys())
	logger.Debug("session credentials", "credentials", creds)

	store, err := results.NewStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return findEntity(cmd.Context(), cfg, creds, strings.Join(args, " "), opts.format, store, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// findEntity runs one lookup and prints the results. With a machine-readable
// format, progress messages move to stderr so stdout holds only the data.
func findEntity(ctx context.Context, cfg types.AppConfig, creds types.Credentials, entity string, format results.Format, store *results.Store, stdout, stderr io.Writer) error {
	msgOut := stdout
	if format != results.FormatTable {
		msgOut = stderr
	}
	r := newConsoleReporter(msgOut, stderr)
	warnDefaultKeys(r, creds.UsedDefaults)

	out := newPipeline(cfg, creds, r).Run(ctx, entity, store)
	if out.State != pipeline.StateSuccess {
		return fmt.Errorf("%w: %w", errReported, out.Err)
	}

	rows, err := store.Rows(ctx)
	if err != nil {
		return err
	}
	return results.Write(stdout, rows, format)
}
