package tui

import (
	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/model"
	"github.com/theirongolddev/costdash/internal/pipeline"
	"github.com/theirongolddev/costdash/internal/tui/components"
	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const accountNotFound = "Account not found"

// contractsPage lists the contracts of a single account.
type contractsPage struct {
	accountID string
	state     ViewState[model.Account]
	cursor    int
}

func newContractsPage(accountID string) contractsPage {
	return contractsPage{accountID: accountID, state: Loading[model.Account]()}
}

// receive locates the routed account in a GET /accounts response.
func (p contractsPage) receive(msg AccountsMsg) contractsPage {
	if msg.Err != nil {
		log.Error().Err(msg.Err).Str("account_id", p.accountID).Msg("fetch accounts")
		p.state = Failed[model.Account](accountNotFound)
		return p
	}
	acct, ok := pipeline.FindAccount(msg.Accounts, p.accountID)
	if !ok {
		log.Warn().Str("account_id", p.accountID).Msg("account not in list")
		p.state = Failed[model.Account](accountNotFound)
		return p
	}
	p.state = Loaded(acct)
	p.cursor = clampCursor(p.cursor, len(acct.Contracts))
	return p
}

func (p contractsPage) move(delta int) contractsPage {
	if p.state.Phase != PhaseLoaded {
		return p
	}
	p.cursor = clampCursor(p.cursor+delta, len(p.state.Data.Contracts))
	return p
}

func (p contractsPage) selected() (model.Contract, bool) {
	if p.state.Phase != PhaseLoaded || len(p.state.Data.Contracts) == 0 {
		return model.Contract{}, false
	}
	return p.state.Data.Contracts[clampCursor(p.cursor, len(p.state.Data.Contracts))], true
}

func (p contractsPage) view(spin string, width, height int) string {
	switch p.state.Phase {
	case PhaseLoading:
		return loadingLine(spin, "Loading contracts...")
	case PhaseError, PhaseEmpty:
		return errorLine(p.state.Reason)
	}

	t := theme.Active
	acct := p.state.Data

	heading := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true).
		Render(cli.OrDefault(acct.Name, acct.AccountID))
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).
		Render("  " + acct.AccountID + " · onboarded " + cli.OrDefault(acct.OnboardDate, "Not available"))

	rows := make([][]components.Cell, len(acct.Contracts))
	for i, c := range acct.Contracts {
		rows[i] = []components.Cell{
			{Text: c.ContractID},
			{Text: cli.OrDefault(c.StartDate, "-")},
			{Text: cli.FormatMoney(c.QuotedCost)},
		}
	}

	table := components.RenderTable(components.Table{
		Columns: []components.Column{
			{Title: "Contract ID"},
			{Title: "Start Date"},
			{Title: "Quoted Cost", Right: true},
		},
		Rows:   rows,
		Cursor: p.cursor,
		Empty:  "No contracts found",
		Height: max(1, height-7),
	}, components.CardInnerWidth(width))

	return heading + sub + "\n\n" + components.ContentCard("Contracts", table, width)
}
