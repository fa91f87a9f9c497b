// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yashowardhanspatil/cognemailAI/internal/pipeline"
	"github.com/yashowardhanspatil/cognemailAI/internal/results"
	"github.com/yashowardhanspatil/cognemailAI/internal/secrets"
)

// Session commands recognised by the interactive loop.
const (
	cmdTable = ":table"
	cmdQuit  = ":quit"
)

const entityPrompt = "Enter Entity Name> "

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Look up entities one after another in a session",
	Long: `Interactive starts a session that reads one entity name per line and runs
a lookup for each. Successful lookups accumulate in a results table that is
printed after every success and again when the session ends.

When stdin is a terminal and no keys were given as flags, the session first
asks for optional SerpAPI and Groq keys without echoing them. Blank answers
fall back to the configured keys.

Type :table to print the results so far, and :quit (or end of input) to
finish.`,
	RunE: runInteractive,
}

func init() {
	addSessionFlags(interactiveCmd)
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	opts, err := readSessionFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := sessionConfig(opts)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) && opts.searchKey == "" && opts.llmKey == "" {
		fmt.Fprintln(out, "Optional: enter your API keys for better performance (leave blank to use defaults).")
		if opts.searchKey, err = promptSecret(out, f, "SerpAPI Key: "); err != nil {
			return err
		}
		if opts.llmKey, err = promptSecret(out, f, "Groq API Key: "); err != nil {
			return err
		}
	}

	creds := secrets.Resolve(opts.searchKey, opts.llmKey, defaultKeys())
	logger.Debug("session credentials", "credentials", creds)

	store, err := results.NewStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r := newConsoleReporter(out, cmd.ErrOrStderr())
	warnDefaultKeys(r, creds.UsedDefaults)

	s := &session{
		pipeline: newPipeline(cfg, creds, r),
		store:    store,
		format:   opts.format,
		out:      out,
	}
	return s.run(cmd.Context(), in)
}

// promptSecret reads one line from a terminal without echo.
func promptSecret(out io.Writer, f *os.File, label string) (string, error) {
	fmt.Fprint(out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// session is one interactive run: a pipeline, the table it fills and the
// writer the table goes to.
type session struct {
	pipeline *pipeline.Pipeline
	store    *results.Store
	format   results.Format
	out      io.Writer
}

// run reads entity names from in until :quit or end of input, then prints
// the final results table.
func (s *session) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, entityPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case cmdQuit:
			return s.printTable(ctx)
		case cmdTable:
			if err := s.printTable(ctx); err != nil {
				return err
			}
			continue
		}

		out := s.pipeline.Run(ctx, line, s.store)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if out.State == pipeline.StateSuccess {
			if err := s.printTable(ctx); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return s.printTable(ctx)
}

func (s *session) printTable(ctx context.Context) error {
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return err
	}
	return results.Write(s.out, rows, s.format)
}
