package cmd

import (
	"fmt"

	"github.com/theirongolddev/costdash/internal/config"
	"github.com/theirongolddev/costdash/internal/logging"
	"github.com/theirongolddev/costdash/internal/tui"
	"github.com/theirongolddev/costdash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var flagRoute string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&flagRoute, "route", "/", "Start at a route, e.g. /accounts/<id>/contracts/<contractId>")
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// The alt screen owns stdout, so logs go to a file
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = config.LogPath()
	}
	closer, err := logging.File(logPath, logLevel(cfg))
	if err != nil {
		logging.Discard()
	} else {
		defer closer.Close()
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	route := tui.ParseRoute(flagRoute)
	log.Info().Str("base_url", baseURL(cfg)).Str("route", route.Path()).Msg("starting dashboard")

	app := tui.NewApp(newClient(cfg), route)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
