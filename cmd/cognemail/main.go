// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cognemail CLI: the presentation
// layer that collects an entity name and optional API keys, runs the lookup
// pipeline and displays its messages and the session results table.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yashowardhanspatil/cognemailAI/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// logger is the diagnostic logger; user-facing messages go through a Reporter.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// errReported marks failures whose message the Reporter already printed.
var errReported = errors.New("reported")

// rootCmd is the base command for the cognemail CLI.
var rootCmd = &cobra.Command{
	Use:   "cognemail",
	Short: "Intelligent email discovery for organizations",
	Long: `cognemail searches the web for an organization's contact details and
extracts an email address from the result snippets. When no address matches
the email pattern, the snippets are handed to a language model that is asked
for official addresses only.

API keys come from flags or an interactive prompt, falling back to the
.secrets/ directory, the config file, or the SERPAPI_KEY and GROQ_API_KEY
environment variables (a .env file is honoured).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(cmd.ErrOrStderr(), verbose)

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", slog.Any("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cognemail.yaml or ~/.config/cognemail/cognemail.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of API key files (serpapi-api-key, groq-api-key)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostic details to stderr")
}

func initConfig() {
	// A missing .env is normal; only report files that exist but cannot be read.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cognemail")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cognemail"))
		}
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a text slog logger on w; verbose lowers the level to Debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// defaultKeys resolves the process-wide fallback keys: secret files first,
// then config file or environment.
func defaultKeys() secrets.Defaults {
	return secrets.DefaultsFrom(loadedSecrets, secrets.Defaults{
		SearchAPIKey: viper.GetString(keySerpAPIKey),
		LLMAPIKey:    viper.GetString(keyGroqKey),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", strings.TrimSpace(err.Error()))
		}
		os.Exit(1)
	}
}
