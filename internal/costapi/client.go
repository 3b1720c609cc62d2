// Package costapi is the HTTP client for the AWS cost backend.
package costapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/costdash/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is where the backend listens during local development.
	DefaultBaseURL = "http://localhost:8000"

	maxBodySize   = 1 << 20  // 1 MB
	maxExportSize = 16 << 20 // 16 MB
	maxErrorBody  = 200
	userAgent     = "costdash/1.0"
)

// Client talks to the cost backend. It keeps no state between calls.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero (the default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for the backend at baseURL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// ListAccounts returns every account with its contracts.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	const op = "list accounts"

	body, _, err := c.do(ctx, op, http.MethodGet, "/accounts", nil, maxBodySize)
	if err != nil {
		return nil, err
	}

	var accounts []model.Account
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return accounts, nil
}

// GetContract returns the monthly cost breakdown for one contract.
func (c *Client) GetContract(ctx context.Context, accountID, contractID string) (*model.ContractDetail, error) {
	const op = "get contract"

	body, _, err := c.do(ctx, op, http.MethodGet, contractPath(accountID, contractID), nil, maxBodySize)
	if err != nil {
		return nil, err
	}

	var detail model.ContractDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return &detail, nil
}

// quoteRequest is the PUT /accounts/:id/quote body. json.Number keeps the
// value a JSON number rather than decimal's default quoted string.
type quoteRequest struct {
	QuotedCost json.Number `json:"quoted_cost"`
}

// UpdateQuotedCost sets the account-level monthly quote. The response body is
// not used; callers re-fetch to observe the result.
func (c *Client) UpdateQuotedCost(ctx context.Context, accountID string, value decimal.Decimal) error {
	const op = "update quote"

	payload, err := json.Marshal(quoteRequest{QuotedCost: json.Number(value.String())})
	if err != nil {
		return fmt.Errorf("costapi: %s: encoding body: %w", op, err)
	}

	path := "/accounts/" + url.PathEscape(accountID) + "/quote"
	_, _, err = c.do(ctx, op, http.MethodPut, path, payload, maxBodySize)
	return err
}

// Media types the backend is known to export.
const (
	xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvType  = "text/csv"
)

// Export is a downloaded contract report.
type Export struct {
	Data        []byte
	ContentType string
	// Filename is the base name suggested by Content-Disposition, if any.
	Filename string
}

// Ext returns the file extension for the export, including the dot. The
// suggested filename wins over the media type; the backend's workbook format
// is assumed when neither says.
func (e *Export) Ext() string {
	if ext := filepath.Ext(e.Filename); ext != "" {
		return ext
	}
	mt, _, _ := mime.ParseMediaType(e.ContentType)
	switch mt {
	case xlsxType:
		return ".xlsx"
	case csvType:
		return ".csv"
	}
	if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
		return exts[0]
	}
	return ".xlsx"
}

// ExportContract downloads the backend's spreadsheet export for a contract.
func (c *Client) ExportContract(ctx context.Context, accountID, contractID string) (*Export, error) {
	path := contractPath(accountID, contractID) + "/export"
	body, header, err := c.do(ctx, "export contract", http.MethodGet, path, nil, maxExportSize)
	if err != nil {
		return nil, err
	}
	return &Export{
		Data:        body,
		ContentType: header.Get("Content-Type"),
		Filename:    dispositionFilename(header.Get("Content-Disposition")),
	}, nil
}

// dispositionFilename extracts a safe base name from a Content-Disposition value.
func dispositionFilename(v string) string {
	if v == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(v)
	if err != nil {
		return ""
	}
	name := filepath.Base(strings.ReplaceAll(params["filename"], "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

func contractPath(accountID, contractID string) string {
	return "/accounts/" + url.PathEscape(accountID) + "/contracts/" + url.PathEscape(contractID)
}

// do performs a request and returns the response body and headers. A body
// longer than limit is an error rather than a truncated result.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte, limit int64) ([]byte, http.Header, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("costapi: %s: creating request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, nil, &HTTPError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, nil, &NetworkError{Op: op, Err: err}
	}
	if int64(len(body)) > limit {
		return nil, nil, &TooLargeError{Op: op, Limit: limit}
	}
	return body, resp.Header, nil
}
