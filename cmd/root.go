// Package cmd implements the CLI commands for briefpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/briefpipe/internal/config"
	"github.com/gaurav-prasanna/briefpipe/internal/logger"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagConfig   string
	flagLogLevel string
)

// Loaded once per invocation in PersistentPreRunE.
var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "briefpipe",
	Short: "briefpipe — render brand briefs into HTML, JSON, PDF, or terminal text",
	Long: `briefpipe turns narrative brief markdown into structured blocks and renders
them as HTML, JSON, PDF, or styled terminal text.

Briefs come from the brief API, a local file, stdin, or a web page.

Usage:
  briefpipe render [file|-] [flags]
  briefpipe brands
  briefpipe schema`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/briefpipe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// setup loads configuration and builds the stderr logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	levelName := cfg.LogLevel
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	log = logger.NewWithLevel(cmd.ErrOrStderr(), level)

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	log.ConfigLoaded(path, cfg.APIURL, cfg.Timeout)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
