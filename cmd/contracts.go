package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/pipeline"

	"github.com/spf13/cobra"
)

var errAccountNotFound = errors.New("account not found")

var contractsCmd = &cobra.Command{
	Use:   "contracts <account-id>",
	Short: "List an account's contracts",
	Args:  cobra.ExactArgs(1),
	RunE:  runContracts,
}

func init() {
	rootCmd.AddCommand(contractsCmd)
}

func runContracts(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	accountID := args[0]
	accounts, err := newClient(loadConfig()).ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	acct, ok := pipeline.FindAccount(accounts, accountID)
	if !ok {
		return fmt.Errorf("%w: %s", errAccountNotFound, accountID)
	}

	rows := make([][]string, 0, len(acct.Contracts))
	for _, c := range acct.Contracts {
		rows = append(rows, []string{c.ContractID, cli.OrDefault(c.StartDate, "-"), cli.FormatMoney(c.QuotedCost)})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(cli.OrDefault(acct.Name, acct.AccountID)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderKV("Account ID", acct.AccountID))
	fmt.Fprint(out, cli.RenderKV("Onboard Date", cli.OrDefault(acct.OnboardDate, "Not available")))
	fmt.Fprint(out, cli.RenderKV("Quoted Cost", cli.FormatMoney(pipeline.AccountQuoted(acct))))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Contract ID", "Start Date", "Quoted Cost"},
		Rows:    rows,
		Empty:   "No contracts found",
	}))
	return nil
}
