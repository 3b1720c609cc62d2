package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/costdash/internal/fixture"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagFixtureAddr   string
	flagFixtureData   string
	flagFixtureMonths int
)

var fixtureServerCmd = &cobra.Command{
	Use:   "fixture-server",
	Short: "Serve canned cost data over the backend API for demos",
	Args:  cobra.NoArgs,
	RunE:  runFixtureServer,
}

func init() {
	fixtureServerCmd.Flags().StringVar(&flagFixtureAddr, "addr", "127.0.0.1:8000", "HTTP listen address")
	fixtureServerCmd.Flags().StringVar(&flagFixtureData, "data", "", "JSON fixture file (default: built-in sample data)")
	fixtureServerCmd.Flags().IntVar(&flagFixtureMonths, "months", 12, "Months reported per contract")
	rootCmd.AddCommand(fixtureServerCmd)
}

func runFixtureServer(cmd *cobra.Command, _ []string) error {
	data := fixture.SampleData()
	if flagFixtureData != "" {
		var err error
		if data, err = fixture.LoadData(flagFixtureData); err != nil {
			return err
		}
	}

	svc := fixture.New(fixture.Config{
		Addr:   flagFixtureAddr,
		Data:   data,
		Months: flagFixtureMonths,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  costdash fixture backend on http://%s\n", flagFixtureAddr)
	fmt.Fprintf(out, "  Point the dashboard at it with: costdash --base-url http://%s\n", flagFixtureAddr)

	ctx, cancel := signalContext()
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("fixture server stopped")
		return err
	}
	return nil
}
