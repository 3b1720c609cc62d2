package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/costdash/internal/config"
	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues are the fields the wizard edits, as strings for huh inputs.
type setupValues struct {
	baseURL string
	timeout string
	theme   string
}

func newSetupForm(v *setupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to costdash").
				Description("Point costdash at your cost backend and pick a theme."),
			huh.NewInput().
				Title("Backend URL").
				Placeholder("http://localhost:8000").
				Value(&v.baseURL).
				Validate(config.ValidateBaseURL),
			huh.NewInput().
				Title("Request timeout (seconds, 0 for none)").
				Value(&v.timeout).
				Validate(validateTimeout),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.theme),
		),
	)
}

func validateTimeout(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter a whole number of seconds")
	}
	return nil
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Str("path", config.Path()).Msg("existing config is unreadable")
		return fmt.Errorf("fix or remove %s before running setup: %w", config.Path(), err)
	}

	vals := setupValues{
		baseURL: cfg.Backend.BaseURL,
		timeout: strconv.Itoa(cfg.Backend.TimeoutSec),
		theme:   theme.ByName(cfg.Appearance.Theme).Name,
	}
	if err := newSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "  Setup cancelled; nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg = applySetup(cfg, vals)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.Path())
	fmt.Fprintln(out, "  Run `costdash setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}

// applySetup copies validated wizard values into cfg.
func applySetup(cfg config.Config, v setupValues) config.Config {
	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(v.baseURL), "/")
	if n, err := strconv.Atoi(strings.TrimSpace(v.timeout)); err == nil && n >= 0 {
		cfg.Backend.TimeoutSec = n
	}
	cfg.Appearance.Theme = theme.ByName(v.theme).Name
	return cfg
}
