package costapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountsJSON = `[
  {"account_id": "a1", "name": "Acme", "onboard_date": "2023-04-01",
   "contracts": [{"contract_id": "c1", "start_date": "2024-01-01", "quoted_cost": 100}]},
  {"account_id": "a2", "name": "Globex", "onboard_date": "2023-09-15",
   "contracts": [{"contract_id": "c2", "start_date": "2024-03-01", "quoted_cost": "250.75"},
                 {"contract_id": "c3", "start_date": "2024-06-01", "quoted_cost": null}]},
  {"account_id": "a3", "name": "Initech", "contracts": null}
]`

const contractJSON = `{
  "contract_id": "c1",
  "total_actual": 220.5,
  "total_quoted": 200,
  "total_variance": 20.5,
  "monthly": [
    {"month": "2024-01", "actual": 120, "quoted": 100, "variance": 20, "status": "BILLED"},
    {"month": "2024-02", "actual": 100.5, "quoted": 100, "variance": 0.5, "status": "ESTIMATED"}
  ]
}`

func TestListAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, accountsJSON)
	}))
	defer srv.Close()

	accounts, err := NewClient(srv.URL).ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "Acme", accounts[0].Name)
	assert.Equal(t, "2023-04-01", accounts[0].OnboardDate)
	assert.Equal(t, "100", accounts[0].Contracts[0].QuotedCost.String())
	assert.Equal(t, "250.75", accounts[1].Contracts[0].QuotedCost.String())
	assert.True(t, accounts[1].Contracts[1].QuotedCost.IsZero(), "null quoted_cost decodes as zero")
	assert.Empty(t, accounts[2].Contracts)
}

func TestGetContract(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, contractJSON)
	}))
	defer srv.Close()

	detail, err := NewClient(srv.URL+"/").GetContract(context.Background(), "a 1", "c/1")
	require.NoError(t, err)

	assert.Equal(t, "/accounts/a%201/contracts/c%2F1", gotPath)
	assert.Equal(t, "c1", detail.ContractID)
	assert.Equal(t, "220.5", detail.TotalActual.String())
	assert.True(t, detail.OverBudget())
	require.Len(t, detail.Monthly, 2)
	assert.Equal(t, "2024-01", detail.Monthly[0].Month)
	assert.Equal(t, "BILLED", detail.Monthly[0].Status)
	assert.Equal(t, "100", detail.FirstQuoted().String())
}

func TestUpdateQuotedCostSendsJSONNumber(t *testing.T) {
	var (
		method string
		path   string
		ctype  string
		raw    []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, ctype = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		raw, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateQuotedCost(context.Background(), "a1", decimal.RequireFromString("1500.25"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/accounts/a1/quote", path)
	assert.Equal(t, "application/json", ctype)
	assert.JSONEq(t, `{"quoted_cost": 1500.25}`, string(raw))

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.IsType(t, float64(0), body["quoted_cost"])
}

func TestExportContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/a1/contracts/c1/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "Month,Actual\n2024-01,120\n")
	}))
	defer srv.Close()

	exp, err := NewClient(srv.URL).ExportContract(context.Background(), "a1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Month,Actual\n2024-01,120\n", string(exp.Data))
	assert.Empty(t, exp.Filename)
	assert.Equal(t, ".csv", exp.Ext())
}

func TestExportContractWorkbook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", xlsxType)
		w.Header().Set("Content-Disposition", "attachment; filename=cost_report.xlsx")
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	defer srv.Close()

	exp, err := NewClient(srv.URL).ExportContract(context.Background(), "a1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "cost_report.xlsx", exp.Filename)
	assert.Equal(t, ".xlsx", exp.Ext())
}

func TestExportExt(t *testing.T) {
	tests := []struct {
		name string
		exp  Export
		want string
	}{
		{"filename wins", Export{Filename: "report.ods", ContentType: xlsxType}, ".ods"},
		{"xlsx type", Export{ContentType: xlsxType}, ".xlsx"},
		{"csv with charset", Export{ContentType: "text/csv; charset=utf-8"}, ".csv"},
		{"unknown", Export{}, ".xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exp.Ext())
		})
	}
}

func TestDispositionFilenameStripsDirectories(t *testing.T) {
	assert.Equal(t, "x.xlsx", dispositionFilename(`attachment; filename="../../x.xlsx"`))
	assert.Equal(t, "y.csv", dispositionFilename(`attachment; filename="C:\\tmp\\y.csv"`))
	assert.Empty(t, dispositionFilename(`attachment; filename=".."`))
	assert.Empty(t, dispositionFilename("attachment"))
	assert.Empty(t, dispositionFilename(""))
}

func TestOversizedResponses(t *testing.T) {
	tests := []struct {
		name string
		size int
		call func(*Client) error
	}{
		{"export", maxExportSize + 1, func(c *Client) error {
			_, err := c.ExportContract(context.Background(), "a1", "c1")
			return err
		}},
		{"accounts", maxBodySize + 1, func(c *Client) error {
			_, err := c.ListAccounts(context.Background())
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write(bytes.Repeat([]byte(" "), tt.size))
			}))
			defer srv.Close()

			err := tt.call(NewClient(srv.URL))
			var bigErr *TooLargeError
			require.True(t, errors.As(err, &bigErr), "want *TooLargeError, got %T", err)
			assert.Equal(t, "too_large", Kind(err))
		})
	}
}

func TestExportAtLimitSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), maxExportSize))
	}))
	defer srv.Close()

	exp, err := NewClient(srv.URL).ExportContract(context.Background(), "a1", "c1")
	require.NoError(t, err)
	assert.Len(t, exp.Data, maxExportSize)
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Contract not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetContract(context.Background(), "a1", "nope")
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr), "want *HTTPError, got %T", err)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.True(t, httpErr.NotFound())
	assert.Contains(t, httpErr.Body, "Contract not found")
	assert.Equal(t, "http", Kind(err))
}

func TestParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListAccounts(context.Background())

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
	assert.Equal(t, "parse", Kind(err))
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).ListAccounts(context.Background())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "want *NetworkError, got %T", err)
	assert.Equal(t, "network", Kind(err))
}

func TestTimeoutOption(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).ListAccounts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Equal(t, "network", Kind(err))
}

func TestNewClientDefaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL())
	assert.Equal(t, "http://example.test:9000", NewClient(" http://example.test:9000/ ").BaseURL())
}
