// Package fixture serves canned cost data over the backend's REST contract,
// for demos and tests. It makes no AWS calls and keeps nothing on disk.
package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/costdash/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "cost_report.xlsx"
	exportSheet     = "Sheet"
)

// Config controls the fixture server.
type Config struct {
	Addr   string
	Data   Data
	Months int // months reported per contract
}

// Server is an in-memory stand-in for the cost backend.
type Server struct {
	cfg Config

	mu     sync.RWMutex
	quotes map[string]float64 // account ID -> monthly quote override
}

// New returns a fixture server with the provided config.
func New(cfg Config) *Server {
	if cfg.Months < 1 {
		cfg.Months = 12
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	return &Server{
		cfg:    cfg,
		quotes: make(map[string]float64),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/accounts", s.handleAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/contracts/{contractId}", s.handleContract).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/contracts/{contractId}/export", s.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/quote", s.handleQuote).Methods(http.MethodPut)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	return r
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().Str("addr", s.cfg.Addr).Int("accounts", len(s.cfg.Data.Accounts)).Msg("fixture server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("fixture http server: %w", err)
	}
}

type contractEntry struct {
	ContractID string  `json:"contract_id"`
	StartDate  string  `json:"start_date"`
	QuotedCost float64 `json:"quoted_cost"`
}

type accountEntry struct {
	AccountID   string          `json:"account_id"`
	Name        string          `json:"name"`
	OnboardDate string          `json:"onboard_date"`
	Contracts   []contractEntry `json:"contracts"`
}

type monthEntry struct {
	Month    string  `json:"month"`
	Actual   float64 `json:"actual"`
	Quoted   float64 `json:"quoted"`
	Variance float64 `json:"variance"`
	Status   string  `json:"status"`
}

type contractSummary struct {
	ContractID    string       `json:"contract_id"`
	TotalActual   float64      `json:"total_actual"`
	TotalQuoted   float64      `json:"total_quoted"`
	TotalVariance float64      `json:"total_variance"`
	Monthly       []monthEntry `json:"monthly"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAccounts(w http.ResponseWriter, _ *http.Request) {
	out := make([]accountEntry, 0, len(s.cfg.Data.Accounts))
	for _, a := range s.cfg.Data.Accounts {
		entry := accountEntry{
			AccountID:   a.ID,
			Name:        a.Name,
			OnboardDate: a.OnboardDate,
			Contracts:   make([]contractEntry, 0, len(a.Contracts)),
		}
		if entry.OnboardDate == "" {
			entry.OnboardDate = "Not set in data"
		}
		for _, c := range a.Contracts {
			entry.Contracts = append(entry.Contracts, contractEntry{
				ContractID: c.ContractID,
				StartDate:  c.StartDate,
				QuotedCost: c.QuotedCost,
			})
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	summary, status, msg := s.lookupSummary(r)
	if status != http.StatusOK {
		writeDetail(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	summary, status, msg := s.lookupSummary(r)
	if status != http.StatusOK {
		writeDetail(w, status, msg)
		return
	}

	buf, err := exportWorkbook(summary)
	if err != nil {
		log.Error().Err(err).Str("contract_id", summary.ContractID).Msg("building export")
		writeDetail(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+exportFilename)
	_, _ = w.Write(buf)
}

// exportWorkbook lays the summary out as one sheet: a header row, a row per
// month and a TOTAL row.
func exportWorkbook(summary contractSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	rows := [][]any{{"Month", "Actual", "Quoted", "Variance", "Status"}}
	for _, m := range summary.Monthly {
		rows = append(rows, []any{m.Month, m.Actual, m.Quoted, m.Variance, m.Status})
	}
	rows = append(rows, []any{"TOTAL", summary.TotalActual, summary.TotalQuoted, summary.TotalVariance, ""})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.findAccount(id); !ok {
		writeDetail(w, http.StatusNotFound, "Account not found")
		return
	}

	var body struct {
		QuotedCost *float64 `json:"quoted_cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.QuotedCost == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "quoted_cost must be a number")
		return
	}

	s.mu.Lock()
	s.quotes[id] = *body.QuotedCost
	s.mu.Unlock()

	log.Info().Str("account_id", id).Float64("quoted_cost", *body.QuotedCost).Msg("quote updated")
	writeJSON(w, http.StatusOK, map[string]any{"account_id": id, "quoted_cost": *body.QuotedCost})
}

func (s *Server) lookupSummary(r *http.Request) (contractSummary, int, string) {
	vars := mux.Vars(r)
	acc, ok := s.findAccount(vars["id"])
	if !ok {
		return contractSummary{}, http.StatusNotFound, "Account not found"
	}
	for _, c := range acc.Contracts {
		if c.ContractID == vars["contractId"] {
			summary, err := s.summarize(acc.ID, c)
			if err != nil {
				return contractSummary{}, http.StatusInternalServerError, err.Error()
			}
			return summary, http.StatusOK, ""
		}
	}
	return contractSummary{}, http.StatusNotFound, "Contract not found"
}

func (s *Server) findAccount(id string) (AccountFixture, bool) {
	for _, a := range s.cfg.Data.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return AccountFixture{}, false
}

// summarize builds the month-by-month breakdown for a contract. Historical
// actuals take precedence over billed ones; months with neither carry the
// last known actual forward as an estimate.
func (s *Server) summarize(accountID string, c ContractFixture) (contractSummary, error) {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return contractSummary{}, fmt.Errorf("contract %s: bad start_date %q", c.ContractID, c.StartDate)
	}
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	quoted := c.QuotedCost
	s.mu.RLock()
	if q, ok := s.quotes[accountID]; ok {
		quoted = q
	}
	s.mu.RUnlock()

	out := contractSummary{ContractID: c.ContractID, Monthly: make([]monthEntry, 0, s.cfg.Months)}
	var lastActual float64
	for i := 0; i < s.cfg.Months; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")

		actual, status := lastActual, model.StatusEstimated
		if v, ok := c.HistoricalActuals[key]; ok {
			actual, status = v, model.StatusBilledLegacy
		} else if v, ok := c.MonthlyActuals[key]; ok {
			actual, status = v, model.StatusBilled
		}
		if actual > 0 {
			lastActual = actual
		}

		out.Monthly = append(out.Monthly, monthEntry{
			Month:    key,
			Actual:   round2(actual),
			Quoted:   quoted,
			Variance: round2(actual - quoted),
			Status:   status,
		})
		out.TotalActual += actual
		out.TotalQuoted += quoted
	}

	out.TotalVariance = round2(out.TotalActual - out.TotalQuoted)
	out.TotalActual = round2(out.TotalActual)
	out.TotalQuoted = round2(out.TotalQuoted)
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail mirrors the backend's {"detail": "..."} error body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
