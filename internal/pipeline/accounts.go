// Package pipeline derives display figures from backend account and contract data.
package pipeline

import (
	"strings"

	"github.com/theirongolddev/costdash/internal/model"

	"github.com/shopspring/decimal"
)

// FilterByName returns accounts whose name contains filter, case-insensitively.
// A blank filter returns the input unchanged.
func FilterByName(accounts []model.Account, filter string) []model.Account {
	term := strings.ToLower(strings.TrimSpace(filter))
	if term == "" {
		return accounts
	}

	var result []model.Account
	for _, a := range accounts {
		if strings.Contains(strings.ToLower(a.Name), term) {
			result = append(result, a)
		}
	}
	return result
}

// Summarize computes the overview totals for the full account list.
func Summarize(accounts []model.Account) model.AccountsSummary {
	summary := model.AccountsSummary{
		TotalAccounts: len(accounts),
		TotalQuoted:   decimal.Zero,
	}
	for _, a := range accounts {
		summary.TotalQuoted = summary.TotalQuoted.Add(AccountQuoted(a))
	}
	return summary
}

// AccountQuoted sums the quoted cost of every contract on the account.
func AccountQuoted(a model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, c := range a.Contracts {
		total = total.Add(c.QuotedCost)
	}
	return total
}

// FindAccount looks up an account by ID in a fetched account list.
func FindAccount(accounts []model.Account, id string) (model.Account, bool) {
	for _, a := range accounts {
		if a.AccountID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// FindContract looks up a contract by ID on an account.
func FindContract(a model.Account, contractID string) (model.Contract, bool) {
	for _, c := range a.Contracts {
		if c.ContractID == contractID {
			return c, true
		}
	}
	return model.Contract{}, false
}

// MonthVariance returns |actual - quoted| and whether actual exceeds quoted.
func MonthVariance(r model.MonthlyRecord) model.Variance {
	return model.Variance{
		Amount:     r.Actual.Sub(r.Quoted).Abs(),
		OverBudget: r.Actual.GreaterThan(r.Quoted),
	}
}

// MonthlyActuals extracts actual costs as floats for charting.
func MonthlyActuals(records []model.MonthlyRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Actual.InexactFloat64()
	}
	return values
}
