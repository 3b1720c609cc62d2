package model

import "github.com/shopspring/decimal"

// AccountsSummary holds the headline figures of the accounts overview.
// Always computed over the full, unfiltered account list.
type AccountsSummary struct {
	TotalAccounts int
	TotalQuoted   decimal.Decimal
}

// Variance is the per-month difference between actual and quoted cost.
type Variance struct {
	Amount     decimal.Decimal // absolute value of actual - quoted
	OverBudget bool            // actual > quoted
}
