package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/model"
	"github.com/theirongolddev/costdash/internal/pipeline"
	"github.com/theirongolddev/costdash/internal/tui/components"

	"github.com/rs/zerolog/log"
)

// accountsPage lists all accounts with the headline totals.
type accountsPage struct {
	state  ViewState[[]model.Account]
	cursor int
}

func newAccountsPage() accountsPage {
	return accountsPage{state: Loading[[]model.Account]()}
}

// receive applies a GET /accounts response. Failures degrade to an empty list.
func (p accountsPage) receive(msg AccountsMsg) accountsPage {
	if msg.Err != nil {
		log.Error().Err(msg.Err).Str("route", "/").Msg("fetch accounts")
		p.state = Empty[[]model.Account]()
		return p
	}
	if len(msg.Accounts) == 0 {
		p.state = Empty[[]model.Account]()
		return p
	}
	p.state = Loaded(msg.Accounts)
	return p
}

func (p accountsPage) all() []model.Account {
	if p.state.Phase != PhaseLoaded {
		return nil
	}
	return p.state.Data
}

func (p accountsPage) visible(filter string) []model.Account {
	return pipeline.FilterByName(p.all(), filter)
}

func (p accountsPage) move(delta int, filter string) accountsPage {
	p.cursor = clampCursor(p.cursor+delta, len(p.visible(filter)))
	return p
}

// selected returns the account under the cursor in the filtered list.
func (p accountsPage) selected(filter string) (model.Account, bool) {
	rows := p.visible(filter)
	if len(rows) == 0 {
		return model.Account{}, false
	}
	return rows[clampCursor(p.cursor, len(rows))], true
}

func (p accountsPage) view(filter, spin string, width, height int) string {
	if p.state.Phase == PhaseLoading {
		return loadingLine(spin, "Loading accounts...")
	}

	summary := pipeline.Summarize(p.all())
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Total Accounts", Value: strconv.Itoa(summary.TotalAccounts)},
		{Label: "Total Quoted Cost", Value: cli.FormatMoney(summary.TotalQuoted)},
	}, width)

	rows := p.visible(filter)
	cells := make([][]components.Cell, len(rows))
	for i, a := range rows {
		cells[i] = []components.Cell{
			{Text: a.Name},
			{Text: cli.FormatMoney(pipeline.AccountQuoted(a))},
			{Text: strconv.Itoa(len(a.Contracts))},
		}
	}

	tableH := height - 2 - 4 - 3
	table := components.RenderTable(components.Table{
		Columns: []components.Column{
			{Title: "Account Name"},
			{Title: "Quoted Cost", Right: true},
			{Title: "Contracts", Right: true},
		},
		Rows:   cells,
		Cursor: clampCursor(p.cursor, len(rows)),
		Empty:  emptyAccountsText(filter),
		Height: max(1, tableH),
	}, components.CardInnerWidth(width))

	return cards + "\n" + components.ContentCard(accountsTitle(filter, len(rows)), table, width)
}

func accountsTitle(filter string, matches int) string {
	if strings.TrimSpace(filter) == "" {
		return "Accounts"
	}
	return fmt.Sprintf("Accounts (showing %d matches)", matches)
}

func emptyAccountsText(filter string) string {
	if term := strings.TrimSpace(filter); term != "" {
		return fmt.Sprintf("No accounts found matching \"%s\"", term)
	}
	return "No accounts available"
}

func clampCursor(c, n int) int {
	if n == 0 || c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}
