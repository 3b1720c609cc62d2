package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagSearch string

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Account totals and quoted costs",
	Args:  cobra.NoArgs,
	RunE:  runAccounts,
}

func init() {
	accountsCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Filter accounts by name (case-insensitive)")
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	accounts, err := newClient(loadConfig()).ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	summary := pipeline.Summarize(accounts)
	filtered := pipeline.FilterByName(accounts, flagSearch)

	rows := make([][]string, 0, len(filtered))
	for _, a := range filtered {
		rows = append(rows, []string{
			a.Name,
			cli.FormatMoney(pipeline.AccountQuoted(a)),
			strconv.Itoa(len(a.Contracts)),
			a.AccountID,
		})
	}

	empty, title := "No accounts available", ""
	if term := strings.TrimSpace(flagSearch); term != "" {
		empty = fmt.Sprintf("No accounts found matching \"%s\"", term)
		title = fmt.Sprintf("Accounts (showing %d matches)", len(filtered))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("AWS COST DASHBOARD  Accounts"))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderKV("Total Accounts", cli.FormatNumber(int64(summary.TotalAccounts))))
	fmt.Fprint(out, cli.RenderKV("Total Quoted Cost", cli.FormatMoney(summary.TotalQuoted)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Account Name", "Quoted Cost", "Contracts", "ID"},
		Rows:    rows,
		Empty:   empty,
	}))
	return nil
}
