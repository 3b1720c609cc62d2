package fixture

import (
	"encoding/json"
	"fmt"
	"os"
)

// Data is the fixture file format: accounts with per-month actual costs.
type Data struct {
	Accounts []AccountFixture `json:"accounts"`
}

// AccountFixture is one account in the fixture file.
type AccountFixture struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	OnboardDate string            `json:"onboard_date,omitempty"`
	Contracts   []ContractFixture `json:"contracts"`
}

// ContractFixture is one contract with its known monthly actuals, keyed
// YYYY-MM. HistoricalActuals are figures imported from before billing data
// was available and are reported as legacy.
type ContractFixture struct {
	ContractID        string             `json:"contract_id"`
	StartDate         string             `json:"start_date"`
	QuotedCost        float64            `json:"quoted_cost"`
	MonthlyActuals    map[string]float64 `json:"monthly_actuals,omitempty"`
	HistoricalActuals map[string]float64 `json:"historical_actuals,omitempty"`
}

// LoadData reads a JSON fixture file.
func LoadData(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("reading fixture: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("parsing fixture: %w", err)
	}
	return d, nil
}

// SampleData is the built-in demo data set.
func SampleData() Data {
	return Data{Accounts: []AccountFixture{
		{
			ID:          "acc-1001",
			Name:        "Acme Analytics",
			OnboardDate: "2023-11-20",
			Contracts: []ContractFixture{
				{
					ContractID: "CT-2024-001",
					StartDate:  "2024-01-01",
					QuotedCost: 1200,
					HistoricalActuals: map[string]float64{
						"2024-01": 1130.42, "2024-02": 1184.10,
					},
					MonthlyActuals: map[string]float64{
						"2024-03": 1251.77, "2024-04": 1320.05, "2024-05": 1198.60,
						"2024-06": 1402.33,
					},
				},
				{
					ContractID: "CT-2024-014",
					StartDate:  "2024-07-01",
					QuotedCost: 450,
					MonthlyActuals: map[string]float64{
						"2024-07": 380.00, "2024-08": 415.25, "2024-09": 472.90,
					},
				},
			},
		},
		{
			ID:          "acc-1002",
			Name:        "Globex Logistics",
			OnboardDate: "2024-02-05",
			Contracts: []ContractFixture{
				{
					ContractID: "CT-2024-007",
					StartDate:  "2024-03-01",
					QuotedCost: 3000,
					MonthlyActuals: map[string]float64{
						"2024-03": 2750.00, "2024-04": 2980.40, "2024-05": 3105.85,
						"2024-06": 2890.10,
					},
				},
			},
		},
		{
			ID:          "acc-1003",
			Name:        "Initech Labs",
			OnboardDate: "2024-05-13",
		},
	}}
}
