// Package model defines the account, contract, and monthly cost types served by the backend.
package model

import "github.com/shopspring/decimal"

// Account is a customer AWS account with its contracts, as returned by GET /accounts.
type Account struct {
	AccountID   string     `json:"account_id"`
	Name        string     `json:"name"`
	OnboardDate string     `json:"onboard_date"`
	Contracts   []Contract `json:"contracts"`
}

// Contract is a single quoting agreement belonging to one account.
type Contract struct {
	ContractID string          `json:"contract_id"`
	StartDate  string          `json:"start_date"`
	QuotedCost decimal.Decimal `json:"quoted_cost"`
}

// Monthly billing status values reported by the backend.
const (
	StatusBilled       = "BILLED"
	StatusBilledLegacy = "BILLED (LEGACY)"
	StatusEstimated    = "ESTIMATED"
)

// MonthlyRecord is one month of a contract's cost breakdown.
// Variance and Status are backend-supplied and may be absent.
type MonthlyRecord struct {
	Month    string          `json:"month"`
	Actual   decimal.Decimal `json:"actual"`
	Quoted   decimal.Decimal `json:"quoted"`
	Variance decimal.Decimal `json:"variance"`
	Status   string          `json:"status,omitempty"`
}

// ContractDetail is the response of GET /accounts/:id/contracts/:contractId.
// The totals are computed by the backend and displayed as-is.
type ContractDetail struct {
	ContractID    string          `json:"contract_id"`
	TotalActual   decimal.Decimal `json:"total_actual"`
	TotalQuoted   decimal.Decimal `json:"total_quoted"`
	TotalVariance decimal.Decimal `json:"total_variance"`
	Monthly       []MonthlyRecord `json:"monthly"`
}

// FirstQuoted returns the quoted figure of the earliest month, or zero.
func (d ContractDetail) FirstQuoted() decimal.Decimal {
	if len(d.Monthly) == 0 {
		return decimal.Zero
	}
	return d.Monthly[0].Quoted
}

// OverBudget reports whether the contract's total actual exceeds its total quote.
func (d ContractDetail) OverBudget() bool {
	return d.TotalVariance.IsPositive()
}
