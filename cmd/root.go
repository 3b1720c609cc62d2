// Package cmd implements the costdash CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/costdash/internal/config"
	"github.com/theirongolddev/costdash/internal/costapi"
	"github.com/theirongolddev/costdash/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagBaseURL  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:          "costdash",
	Short:        "AWS cost dashboard",
	Long:         "Browse AWS accounts, contracts and monthly actual-vs-quoted costs from the cost backend.",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		config.LoadEnv()
		logging.Console(os.Stderr, logLevel(loadConfig()))
	},
	RunE: runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Cost backend URL (overrides "+config.EnvBaseURL+" and config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig loads config, returning defaults on error.
// A broken config file should not keep the dashboard from starting.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", config.Path()).Msg("using default config")
		return config.DefaultConfig()
	}
	return cfg
}

// baseURL resolves the backend URL: flag, then env, then config.
func baseURL(cfg config.Config) string {
	if flagBaseURL != "" {
		return flagBaseURL
	}
	return config.BaseURL(cfg)
}

func logLevel(cfg config.Config) string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return config.LogLevel(cfg)
}

func newClient(cfg config.Config) *costapi.Client {
	return costapi.NewClient(baseURL(cfg), costapi.WithTimeout(config.Timeout(cfg)))
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
