package tui

import (
	"errors"
	"strconv"

	"github.com/theirongolddev/costdash/internal/cli"
	"github.com/theirongolddev/costdash/internal/model"
	"github.com/theirongolddev/costdash/internal/pipeline"
	"github.com/theirongolddev/costdash/internal/tui/components"
	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const failedToLoad = "Failed to load data"

type dashboardData struct {
	account model.Account
	detail  *model.ContractDetail
}

// dashboardPage shows one contract's monthly breakdown and the quote editor.
// It waits on two independent fetches and resolves once both have answered.
type dashboardPage struct {
	accountID  string
	contractID string

	detail       *model.ContractDetail
	detailErr    error
	detailDone   bool
	accounts     []model.Account
	accountsErr  error
	accountsDone bool

	state ViewState[dashboardData]
	// cursor is the selected month; it keeps the monthly table scrolled
	// to it on short terminals.
	cursor int

	quote    textinput.Model
	editing  bool
	saving   bool
	inputErr string
}

func newDashboardPage(accountID, contractID string) dashboardPage {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.Prompt = "$ "
	ti.CharLimit = 32
	ti.Width = 14
	ti.SetValue("0")

	return dashboardPage{
		accountID:  accountID,
		contractID: contractID,
		state:      Loading[dashboardData](),
		quote:      ti,
	}
}

// load issues both fetches and puts the page back into its loading state.
func (p dashboardPage) load(b Backend, mount int) (dashboardPage, tea.Cmd) {
	p.detailDone, p.accountsDone = false, false
	p.state = Loading[dashboardData]()
	return p, tea.Batch(
		fetchContractCmd(b, mount, p.accountID, p.contractID),
		fetchAccountsCmd(b, mount),
	)
}

func (p dashboardPage) receiveContract(msg ContractMsg) dashboardPage {
	p.detail, p.detailErr, p.detailDone = msg.Detail, msg.Err, true
	if msg.Err != nil {
		log.Error().Err(msg.Err).
			Str("account_id", p.accountID).
			Str("contract_id", p.contractID).
			Msg("fetch contract")
	}
	return p.resolve()
}

func (p dashboardPage) receiveAccounts(msg AccountsMsg) dashboardPage {
	p.accounts, p.accountsErr, p.accountsDone = msg.Accounts, msg.Err, true
	if msg.Err != nil {
		log.Error().Err(msg.Err).Str("account_id", p.accountID).Msg("fetch accounts")
	}
	return p.resolve()
}

func (p dashboardPage) resolve() dashboardPage {
	if !p.detailDone || !p.accountsDone {
		return p
	}
	if p.detailErr != nil || p.detail == nil || p.accountsErr != nil {
		p.state = Failed[dashboardData](failedToLoad)
		return p
	}
	acct, ok := pipeline.FindAccount(p.accounts, p.accountID)
	if !ok {
		log.Warn().Str("account_id", p.accountID).Msg("account not in list")
		p.state = Failed[dashboardData](failedToLoad)
		return p
	}
	p.state = Loaded(dashboardData{account: acct, detail: p.detail})
	if !p.editing {
		p.quote.SetValue(p.detail.FirstQuoted().String())
	}
	return p
}

// move shifts the month selection by delta.
func (p dashboardPage) move(delta int) dashboardPage {
	if p.state.Phase != PhaseLoaded {
		return p
	}
	p.cursor = clampCursor(p.cursor+delta, len(p.state.Data.detail.Monthly))
	return p
}

// startEdit focuses the quote input.
func (p dashboardPage) startEdit() (dashboardPage, tea.Cmd) {
	if p.state.Phase != PhaseLoaded || p.saving {
		return p, nil
	}
	p.editing = true
	p.inputErr = ""
	return p, p.quote.Focus()
}

func (p dashboardPage) stopEdit() dashboardPage {
	p.editing = false
	p.quote.Blur()
	return p
}

// updateInput handles keys while the quote input is focused.
func (p dashboardPage) updateInput(msg tea.KeyMsg, b Backend, mount int) (dashboardPage, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return p.stopEdit(), nil
	case "enter":
		return p.submit(b, mount)
	}
	var cmd tea.Cmd
	p.quote, cmd = p.quote.Update(msg)
	p.inputErr = ""
	return p, cmd
}

// submit validates the input and, only if it parses, sends the update.
func (p dashboardPage) submit(b Backend, mount int) (dashboardPage, tea.Cmd) {
	value, err := pipeline.ParseQuote(p.quote.Value())
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			p.inputErr = "Enter a number"
		} else {
			p.inputErr = err.Error()
		}
		return p, nil
	}
	p = p.stopEdit()
	p.saving = true
	return p, saveQuoteCmd(b, mount, p.accountID, value)
}

// saved handles the PUT response. Success reloads both resources; failure
// leaves the current data in place.
func (p dashboardPage) saved(msg QuoteSavedMsg, b Backend, mount int) (dashboardPage, tea.Cmd, components.Status) {
	p.saving = false
	if msg.Err != nil {
		log.Error().Err(msg.Err).
			Str("account_id", p.accountID).
			Str("value", msg.Value.String()).
			Msg("update quoted cost")
		return p, nil, components.Status{Text: "Quote update failed: " + msg.Err.Error(), Error: true}
	}
	log.Info().Str("account_id", p.accountID).Str("value", msg.Value.String()).Msg("quoted cost updated")
	p, cmd := p.load(b, mount)
	return p, cmd, components.Status{Text: "Quoted cost set to " + cli.FormatMoney(msg.Value)}
}

// Chrome around the monthly table: card border, card title, table header,
// rule and the "rows x-y of n" line.
const (
	monthlyCardChrome = 6
	chartHeight       = 8
	chartCardChrome   = 3
)

func (p dashboardPage) view(spin string, width, height int) string {
	switch p.state.Phase {
	case PhaseLoading:
		return loadingLine(spin, "Loading contract...")
	case PhaseError, PhaseEmpty:
		return errorLine(p.state.Reason)
	}

	t := theme.Active
	acct := p.state.Data.account
	detail := p.state.Data.detail

	name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true).
		Render(cli.OrDefault(acct.Name, "Unknown Account"))
	meta := "Onboard Date: " + cli.OrDefault(acct.OnboardDate, "Not available") + " · Contract " + detail.ContractID
	if c, ok := pipeline.FindContract(acct, p.contractID); ok && c.StartDate != "" {
		meta += " since " + c.StartDate
	}
	onboard := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).Render(meta)
	header := lipgloss.PlaceHorizontal(width, lipgloss.Center, name, lipgloss.WithWhitespaceBackground(t.Background)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, onboard, lipgloss.WithWhitespaceBackground(t.Background))

	widths := components.LayoutRow(width, 4)
	cards := components.CardRow([]string{
		components.ContentCard("Update Monthly Quoted Cost", p.quoteBody(), widths[0]),
		components.MetricCard(components.Metric{Label: "Total Actual", Value: cli.FormatMoney(detail.TotalActual)}, widths[1]),
		components.MetricCard(components.Metric{Label: "Total Quoted", Value: cli.FormatMoney(detail.TotalQuoted)}, widths[2]),
		components.MetricCard(components.Metric{
			Label: "Total Variance",
			Value: cli.FormatMoney(detail.TotalVariance.Abs()),
			Color: theme.BudgetColor(detail.OverBudget()),
			Note:  budgetNote(detail.OverBudget()),
		}, widths[3]),
	})

	rows, points := monthlyRows(detail.Monthly)

	top := header + "\n\n" + cards
	avail := height - lipgloss.Height(top)

	// The chart is only drawn when the whole table fits above it.
	tableH := len(rows)
	showChart := len(points) > 0 && avail >= len(rows)+monthlyCardChrome+chartHeight+chartCardChrome
	if avail < len(rows)+monthlyCardChrome-1 {
		tableH = max(1, avail-monthlyCardChrome)
	}

	inner := components.CardInnerWidth(width)
	table := components.RenderTable(components.Table{
		Columns: []components.Column{
			{Title: "S.No", Right: true},
			{Title: "Month", Flex: true},
			{Title: "Actual", Right: true},
			{Title: "Quoted", Right: true},
			{Title: "Variance", Right: true},
			{Title: "Status"},
		},
		Rows:   rows,
		Cursor: clampCursor(p.cursor, len(rows)),
		Empty:  "No monthly data",
		Height: tableH,
	}, inner)

	out := top + "\n" + components.ContentCard("Monthly Breakdown", table, width)
	if showChart {
		out += "\n" + components.ContentCard("Monthly Actual Cost", components.CostChart(points, inner, chartHeight), width)
	}
	return out
}

// monthlyRows builds the breakdown table cells and the chart series.
func monthlyRows(monthly []model.MonthlyRecord) ([][]components.Cell, []components.ChartPoint) {
	rows := make([][]components.Cell, len(monthly))
	points := make([]components.ChartPoint, len(monthly))
	for i, m := range monthly {
		v := pipeline.MonthVariance(m)
		rows[i] = []components.Cell{
			{Text: strconv.Itoa(i + 1)},
			{Text: m.Month},
			{Text: cli.FormatMoney(m.Actual)},
			{Text: cli.FormatMoney(m.Quoted)},
			{Text: cli.FormatMoney(v.Amount), Color: theme.BudgetColor(v.OverBudget)},
			{Text: m.Status, Color: statusColor(m.Status)},
		}
		points[i] = components.ChartPoint{
			Label:  m.Month,
			Actual: m.Actual.InexactFloat64(),
			Quoted: m.Quoted.InexactFloat64(),
		}
	}
	return rows, points
}

func (p dashboardPage) quoteBody() string {
	t := theme.Active
	body := p.quote.View()
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	switch {
	case p.inputErr != "":
		body += "\n" + lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface).Render(p.inputErr)
	case p.saving:
		body += "\n" + hint.Render("Saving...")
	case p.editing:
		body += "\n" + hint.Render("[enter] save  [esc] cancel")
	default:
		body += "\n" + hint.Render("[e] edit")
	}
	return body
}

func budgetNote(over bool) string {
	if over {
		return "over budget"
	}
	return "within budget"
}

func statusColor(status string) lipgloss.Color {
	if status == model.StatusEstimated {
		return theme.Active.Estimated
	}
	return ""
}
