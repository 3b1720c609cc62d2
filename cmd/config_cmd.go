package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/costdash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Backend]")
	fmt.Fprintf(out, "    Base URL:  %s%s\n", baseURL(cfg), source(flagBaseURL, config.EnvBaseURL))
	if t := config.Timeout(cfg); t > 0 {
		fmt.Fprintf(out, "    Timeout:   %s\n", t)
	} else {
		fmt.Fprintln(out, "    Timeout:   none")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.LogPath()
	}
	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s%s\n", logLevel(cfg), source(flagLogLevel, config.EnvLogLevel))
	fmt.Fprintf(out, "    File:  %s\n", logFile)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `costdash setup` to reconfigure.")
	return nil
}

// source annotates a value that came from a flag or the environment.
func source(flag, env string) string {
	switch {
	case flag != "":
		return "  (flag)"
	case os.Getenv(env) != "":
		return "  (" + env + ")"
	default:
		return ""
	}
}
