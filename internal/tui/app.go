// Package tui provides the interactive Bubble Tea dashboard for costdash.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/costdash/internal/model"
	"github.com/theirongolddev/costdash/internal/tui/components"
	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// App is the root Bubble Tea model. It owns the route, the search text and
// the mounted page; pages own their own view state.
type App struct {
	backend Backend

	route Route
	// mount increases on every navigation. Responses tagged with an older
	// mount belong to a page that is gone and are dropped.
	mount int

	accounts  accountsPage
	contracts contractsPage
	dashboard dashboardPage

	search    textinput.Model
	searching bool

	spinner  spinner.Model
	status   components.Status
	showHelp bool

	width  int
	height int
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the dashboard starting at the given route.
func NewApp(b Backend, start Route) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Background)

	a := App{
		backend: b,
		search:  newSearchInput(),
		spinner: sp,
	}
	a.mountRoute(start)
	return a
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search accounts"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 28
	return ti
}

// Route returns the currently mounted route.
func (a App) Route() Route { return a.route }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetchCmd())
}

// mountRoute replaces the current page with a fresh one for r.
func (a *App) mountRoute(r Route) {
	a.route = r
	a.mount++
	a.status = components.Status{}
	switch r.Page {
	case PageContracts:
		a.contracts = newContractsPage(r.AccountID)
	case PageDashboard:
		a.dashboard = newDashboardPage(r.AccountID, r.ContractID)
	default:
		a.accounts = newAccountsPage()
	}
	if r.Page != PageAccounts {
		a.searching = false
		a.search.Blur()
	}
}

// fetchCmd issues the requests the mounted page needs.
func (a App) fetchCmd() tea.Cmd {
	switch a.route.Page {
	case PageDashboard:
		_, cmd := a.dashboard.load(a.backend, a.mount)
		return cmd
	default:
		return fetchAccountsCmd(a.backend, a.mount)
	}
}

func (a App) navigate(r Route) (App, tea.Cmd) {
	log.Debug().Str("from", a.route.Path()).Str("to", r.Path()).Msg("navigate")
	a.mountRoute(r)
	return a, a.fetchCmd()
}

// refresh re-fetches the mounted page without remounting it.
func (a App) refresh() (App, tea.Cmd) {
	switch a.route.Page {
	case PageDashboard:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.load(a.backend, a.mount)
		return a, cmd
	case PageContracts:
		a.contracts.state = Loading[model.Account]()
	default:
		a.accounts.state = Loading[[]model.Account]()
	}
	return a, fetchAccountsCmd(a.backend, a.mount)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case AccountsMsg:
		if msg.Mount != a.mount {
			log.Debug().Int("mount", msg.Mount).Msg("dropping accounts response for unmounted page")
			return a, nil
		}
		switch a.route.Page {
		case PageAccounts:
			a.accounts = a.accounts.receive(msg)
		case PageContracts:
			a.contracts = a.contracts.receive(msg)
		case PageDashboard:
			a.dashboard = a.dashboard.receiveAccounts(msg)
		}
		return a, nil

	case ContractMsg:
		if msg.Mount != a.mount || a.route.Page != PageDashboard {
			log.Debug().Int("mount", msg.Mount).Msg("dropping contract response for unmounted page")
			return a, nil
		}
		a.dashboard = a.dashboard.receiveContract(msg)
		return a, nil

	case QuoteSavedMsg:
		if msg.Mount != a.mount || a.route.Page != PageDashboard {
			log.Debug().Int("mount", msg.Mount).Msg("dropping quote response for unmounted page")
			return a, nil
		}
		var cmd tea.Cmd
		a.dashboard, cmd, a.status = a.dashboard.saved(msg, a.backend, a.mount)
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Cursor blinks and other input internals.
	var cmd tea.Cmd
	switch {
	case a.searching:
		a.search, cmd = a.search.Update(msg)
	case a.route.Page == PageDashboard && a.dashboard.editing:
		a.dashboard.quote, cmd = a.dashboard.quote.Update(msg)
	}
	return a, cmd
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Text inputs intercept all keys while focused
	if a.searching {
		return a.updateSearch(msg)
	}
	if a.route.Page == PageDashboard && a.dashboard.editing {
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.updateInput(msg, a.backend, a.mount)
		return a, cmd
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a.refresh()
	case "esc", "backspace":
		if a.route.Page == PageAccounts {
			if a.search.Value() != "" {
				a.search.SetValue("")
				a.accounts.cursor = 0
			}
			return a, nil
		}
		return a.navigate(a.route.Back())
	}

	switch a.route.Page {
	case PageAccounts:
		return a.updateAccountsKey(key)
	case PageContracts:
		return a.updateContractsKey(key)
	case PageDashboard:
		switch key {
		case "e":
			var cmd tea.Cmd
			a.dashboard, cmd = a.dashboard.startEdit()
			return a, cmd
		case "j", "down":
			a.dashboard = a.dashboard.move(1)
		case "k", "up":
			a.dashboard = a.dashboard.move(-1)
		}
	}
	return a, nil
}

func (a App) updateAccountsKey(key string) (tea.Model, tea.Cmd) {
	filter := a.search.Value()
	switch key {
	case "/":
		a.searching = true
		return a, a.search.Focus()
	case "j", "down":
		a.accounts = a.accounts.move(1, filter)
	case "k", "up":
		a.accounts = a.accounts.move(-1, filter)
	case "enter":
		if acct, ok := a.accounts.selected(filter); ok {
			return a.navigate(ContractsRoute(acct.AccountID))
		}
	}
	return a, nil
}

func (a App) updateContractsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.contracts = a.contracts.move(1)
	case "k", "up":
		a.contracts = a.contracts.move(-1)
	case "enter":
		if c, ok := a.contracts.selected(); ok {
			return a.navigate(DashboardRoute(a.route.AccountID, c.ContractID))
		}
	}
	return a, nil
}

// updateSearch handles key events while the search field is focused.
// The filter applies as the user types.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.searching = false
		a.search.Blur()
		return a, nil
	case "down":
		a.accounts = a.accounts.move(1, a.search.Value())
		return a, nil
	case "up":
		a.accounts = a.accounts.move(-1, a.search.Value())
		return a, nil
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before {
		a.accounts.cursor = 0
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  costdash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Link).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"j k ↑ ↓", "Move selection"},
		{"Enter", "Open account / contract"},
		{"Esc", "Back"},
		{"/", "Search accounts"},
		{"e", "Edit quoted cost (contract view)"},
		{"r", "Reload"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTopBar(components.TopBar{
		ShowSearch: a.route.Page == PageAccounts,
		Search:     a.search.View(),
		Focused:    a.searching,
	}, w)
	statusBar := components.RenderStatusBar(w, a.hints(), a.status)

	contentH := max(minContentHeight, a.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	spin := a.spinner.View()
	switch a.route.Page {
	case PageContracts:
		content = a.contracts.view(spin, cw, contentH)
	case PageDashboard:
		content = a.dashboard.view(spin, cw, contentH)
	default:
		content = a.accounts.view(a.search.Value(), spin, cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch {
	case a.searching:
		return "[enter]apply  [esc]close"
	case a.route.Page == PageDashboard && a.dashboard.editing:
		return "[enter]save  [esc]cancel"
	case a.route.Page == PageDashboard:
		return "[j/k]scroll  [e]dit quote  [r]eload  [esc]back  [?]help  [q]uit"
	case a.route.Page == PageContracts:
		return "[enter]open  [r]eload  [esc]back  [?]help  [q]uit"
	default:
		return "[/]search  [enter]open  [r]eload  [?]help  [q]uit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func loadingLine(spin, text string) string {
	t := theme.Active
	return "\n " + spin + lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).Render(" "+text)
}

func errorLine(text string) string {
	t := theme.Active
	return "\n " + lipgloss.NewStyle().Foreground(t.Over).Background(t.Background).Bold(true).Render(text)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
