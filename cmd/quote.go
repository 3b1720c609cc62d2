package cmd

import (
	"fmt"

	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/pipeline"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <account-id> <value>",
	Short: "Set an account's monthly quoted cost",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	accountID := args[0]
	value, err := pipeline.ParseQuote(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := newClient(loadConfig()).UpdateQuotedCost(ctx, accountID, value); err != nil {
		return fmt.Errorf("updating quoted cost: %w", err)
	}
	log.Info().Str("account_id", accountID).Str("value", value.String()).Msg("quoted cost updated")

	fmt.Fprintf(cmd.OutOrStdout(), "  Quoted cost for %s set to %s\n", accountID, cli.FormatMoney(value))
	return nil
}
