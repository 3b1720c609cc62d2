package fixture

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/costdash/internal/costapi"
	"github.com/theirongolddev/costdash/internal/model"
	"github.com/theirongolddev/costdash/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testData() Data {
	return Data{Accounts: []AccountFixture{
		{
			ID:          "a1",
			Name:        "Acme",
			OnboardDate: "2023-01-15",
			Contracts: []ContractFixture{{
				ContractID:     "c1",
				StartDate:      "2024-01-31",
				QuotedCost:     100,
				MonthlyActuals: map[string]float64{"2024-01": 120, "2024-02": 90},
			}},
		},
		{ID: "a2", Name: "Empty Co"},
	}}
}

func newTestServer(t *testing.T) (*costapi.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(New(Config{Data: testData(), Months: 3}).Handler())
	t.Cleanup(srv.Close)
	return costapi.NewClient(srv.URL), srv
}

func TestAccountsRoundTripThroughClient(t *testing.T) {
	client, _ := newTestServer(t)

	accounts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "Acme", accounts[0].Name)
	assert.Equal(t, "2023-01-15", accounts[0].OnboardDate)
	assert.Equal(t, "Not set in data", accounts[1].OnboardDate)
	assert.Empty(t, accounts[1].Contracts)
	assert.Equal(t, "100", pipeline.Summarize(accounts).TotalQuoted.String())
}

func TestContractSummaryCarriesLastActual(t *testing.T) {
	client, _ := newTestServer(t)

	detail, err := client.GetContract(context.Background(), "a1", "c1")
	require.NoError(t, err)
	require.Len(t, detail.Monthly, 3)

	months := []string{detail.Monthly[0].Month, detail.Monthly[1].Month, detail.Monthly[2].Month}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, months)

	assert.Equal(t, "BILLED", detail.Monthly[0].Status)
	assert.Equal(t, "ESTIMATED", detail.Monthly[2].Status)
	assert.Equal(t, "90", detail.Monthly[2].Actual.String())

	assert.Equal(t, "300", detail.TotalActual.String())
	assert.Equal(t, "300", detail.TotalQuoted.String())
	assert.True(t, detail.TotalVariance.IsZero())

	v := pipeline.MonthVariance(detail.Monthly[0])
	assert.Equal(t, "20.00", v.Amount.StringFixed(2))
	assert.True(t, v.OverBudget)
}

func TestQuoteUpdateIsVisibleOnRefetch(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, client.UpdateQuotedCost(ctx, "a1", decimal.RequireFromString("150")))

	detail, err := client.GetContract(ctx, "a1", "c1")
	require.NoError(t, err)
	for _, m := range detail.Monthly {
		assert.Equal(t, "150", m.Quoted.String())
	}
	assert.Equal(t, "450", detail.TotalQuoted.String())
	assert.False(t, detail.OverBudget())

	// The account list still reports the contract's own quoted_cost.
	accounts, err := client.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", accounts[0].Contracts[0].QuotedCost.String())
}

func TestNotFoundResponses(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	_, err := client.GetContract(ctx, "missing", "c1")
	var httpErr *costapi.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.True(t, httpErr.NotFound())
	assert.Contains(t, httpErr.Body, "Account not found")

	_, err = client.GetContract(ctx, "a1", "missing")
	require.True(t, errors.As(err, &httpErr))
	assert.Contains(t, httpErr.Body, "Contract not found")

	err = client.UpdateQuotedCost(ctx, "missing", decimal.NewFromInt(1))
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestQuoteRejectsNonNumericBody(t *testing.T) {
	_, srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/accounts/a1/quote", strings.NewReader(`{"quoted_cost":"abc"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExportWorkbook(t *testing.T) {
	client, _ := newTestServer(t)

	exp, err := client.ExportContract(context.Background(), "a1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "cost_report.xlsx", exp.Filename)
	assert.Equal(t, ".xlsx", exp.Ext())

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Month", "Actual", "Quoted", "Variance", "Status"}, rows[0])
	assert.Equal(t, []string{"2024-01", "120", "100", "20", "BILLED"}, rows[1])
	require.GreaterOrEqual(t, len(rows[4]), 4)
	assert.Equal(t, []string{"TOTAL", "300", "300", "0"}, rows[4][:4])
}

func TestHistoricalActualsAreLegacy(t *testing.T) {
	data := testData()
	data.Accounts[0].Contracts[0].HistoricalActuals = map[string]float64{"2024-01": 80}
	srv := httptest.NewServer(New(Config{Data: data, Months: 3}).Handler())
	t.Cleanup(srv.Close)

	detail, err := costapi.NewClient(srv.URL).GetContract(context.Background(), "a1", "c1")
	require.NoError(t, err)
	require.Len(t, detail.Monthly, 3)

	assert.Equal(t, model.StatusBilledLegacy, detail.Monthly[0].Status)
	assert.Equal(t, "80", detail.Monthly[0].Actual.String())
	assert.Equal(t, model.StatusBilled, detail.Monthly[1].Status)
	assert.Equal(t, model.StatusEstimated, detail.Monthly[2].Status)
}

func TestSampleDataCoversEveryStatus(t *testing.T) {
	s := New(Config{Data: SampleData()})
	seen := map[string]bool{}
	for _, a := range SampleData().Accounts {
		for _, c := range a.Contracts {
			summary, err := s.summarize(a.ID, c)
			require.NoError(t, err)
			for _, m := range summary.Monthly {
				seen[m.Status] = true
			}
		}
	}
	assert.True(t, seen[model.StatusBilled])
	assert.True(t, seen[model.StatusBilledLegacy])
	assert.True(t, seen[model.StatusEstimated])
}

func TestLoadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	raw := `{"accounts":[{"id":"x1","name":"Umbrella","contracts":[{"contract_id":"k1","start_date":"2024-05-01","quoted_cost":75.5}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	d, err := LoadData(path)
	require.NoError(t, err)
	require.Len(t, d.Accounts, 1)
	assert.Equal(t, 75.5, d.Accounts[0].Contracts[0].QuotedCost)

	_, err = LoadData(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSampleDataIsConsistent(t *testing.T) {
	s := New(Config{Data: SampleData()})
	for _, a := range SampleData().Accounts {
		for _, c := range a.Contracts {
			_, err := s.summarize(a.ID, c)
			assert.NoErrorf(t, err, "%s/%s", a.ID, c.ContractID)
		}
	}
}
