package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/pipeline"

	"github.com/spf13/cobra"
)

const chartWidth = 24

var contractCmd = &cobra.Command{
	Use:   "contract <account-id> <contract-id>",
	Short: "Monthly actual vs quoted cost for one contract",
	Args:  cobra.ExactArgs(2),
	RunE:  runContract,
}

func init() {
	rootCmd.AddCommand(contractCmd)
}

func runContract(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	accountID, contractID := args[0], args[1]
	client := newClient(loadConfig())

	detail, err := client.GetContract(ctx, accountID, contractID)
	if err != nil {
		return fmt.Errorf("fetching contract: %w", err)
	}
	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	acct, ok := pipeline.FindAccount(accounts, accountID)
	if !ok {
		return fmt.Errorf("%w: %s", errAccountNotFound, accountID)
	}

	actuals := pipeline.MonthlyActuals(detail.Monthly)
	peak := 0.0
	for _, v := range actuals {
		peak = max(peak, v)
	}

	rows := make([][]string, 0, len(detail.Monthly))
	for i, m := range detail.Monthly {
		v := pipeline.MonthVariance(m)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Month,
			cli.FormatMoney(m.Actual),
			cli.FormatMoney(m.Quoted),
			cli.Variance(cli.FormatMoney(v.Amount), v.OverBudget),
			cli.OrDefault(m.Status, "-"),
			cli.RenderHorizontalBar(actuals[i], peak, chartWidth),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(cli.OrDefault(acct.Name, "Unknown Account")))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderKV("Onboard Date", cli.OrDefault(acct.OnboardDate, "Not available")))
	fmt.Fprint(out, cli.RenderKV("Contract", detail.ContractID))
	fmt.Fprint(out, cli.RenderKV("Total Actual", cli.FormatMoney(detail.TotalActual)))
	fmt.Fprint(out, cli.RenderKV("Total Quoted", cli.FormatMoney(detail.TotalQuoted)))
	fmt.Fprint(out, cli.RenderKV("Total Variance",
		cli.Variance(cli.FormatMoney(detail.TotalVariance.Abs()), detail.OverBudget())))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Monthly Breakdown",
		Headers: []string{"S.No", "Month", "Actual", "Quoted", "Variance", "Status", "Actual Cost"},
		Rows:    rows,
		Empty:   "No monthly data",
	}))
	return nil
}
