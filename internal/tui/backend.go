package tui

import (
	"context"

	"github.com/theirongolddev/costdash/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Backend is the subset of the cost API the dashboard needs.
// *costapi.Client satisfies it.
type Backend interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	GetContract(ctx context.Context, accountID, contractID string) (*model.ContractDetail, error)
	UpdateQuotedCost(ctx context.Context, accountID string, value decimal.Decimal) error
}

// Every response carries the mount it was requested for. The shell drops
// responses whose mount is no longer current.

// AccountsMsg is the result of GET /accounts.
type AccountsMsg struct {
	Mount    int
	Accounts []model.Account
	Err      error
}

// ContractMsg is the result of GET /accounts/:id/contracts/:contractId.
type ContractMsg struct {
	Mount  int
	Detail *model.ContractDetail
	Err    error
}

// QuoteSavedMsg is the result of PUT /accounts/:id/quote.
type QuoteSavedMsg struct {
	Mount int
	Value decimal.Decimal
	Err   error
}

func fetchAccountsCmd(b Backend, mount int) tea.Cmd {
	return func() tea.Msg {
		accounts, err := b.ListAccounts(context.Background())
		return AccountsMsg{Mount: mount, Accounts: accounts, Err: err}
	}
}

func fetchContractCmd(b Backend, mount int, accountID, contractID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := b.GetContract(context.Background(), accountID, contractID)
		return ContractMsg{Mount: mount, Detail: detail, Err: err}
	}
}

func saveQuoteCmd(b Backend, mount int, accountID string, value decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		err := b.UpdateQuotedCost(context.Background(), accountID, value)
		return QuoteSavedMsg{Mount: mount, Value: value, Err: err}
	}
}
