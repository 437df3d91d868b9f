package web

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/sie/export"
	"github.com/robinvdvleuten/sie/ledger"
)

// LedgerResponse summarizes the served file.
type LedgerResponse struct {
	Filepath    string         `json:"filepath"`
	Version     string         `json:"version,omitempty"`
	CommitSHA   string         `json:"commitSha,omitempty"`
	ReadOnly    bool           `json:"readOnly"`
	Company     string         `json:"company"`
	OrgNumber   string         `json:"orgNumber,omitempty"`
	SieType     int            `json:"sieType"`
	Program     []string       `json:"program,omitempty"`
	Currency    string         `json:"currency,omitempty"`
	FiscalYears []FiscalYear   `json:"fiscalYears"`
	Counts      map[string]int `json:"counts"`
	ErrorCount  int            `json:"errorCount"`
}

// FiscalYear is a fiscal year in JSON form.
type FiscalYear struct {
	ID    int    `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// handleGetLedger handles GET requests to /api/ledger.
func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l := s.ledger
	response := &LedgerResponse{
		Filepath:    s.file,
		Version:     s.Version,
		CommitSHA:   s.CommitSHA,
		ReadOnly:    s.ReadOnly,
		Company:     l.Company.Name,
		OrgNumber:   l.Company.OrgNumber,
		SieType:     l.SieType,
		Program:     l.Program,
		Currency:    l.Currency,
		FiscalYears: []FiscalYear{},
		Counts: map[string]int{
			"accounts": len(l.Accounts),
			"vouchers": len(l.Vouchers),
		},
		ErrorCount: len(s.errs),
	}
	for _, fy := range l.SortedFiscalYears() {
		response.FiscalYears = append(response.FiscalYears, FiscalYear{
			ID:    fy.ID,
			Start: dateString(fy.Start),
			End:   dateString(fy.End),
		})
	}
	for _, token := range ledger.PeriodTokens {
		response.Counts[strings.ToLower(strings.TrimPrefix(token, "#"))] = len(l.Values(token))
	}

	writeJSONResponse(w, response)
}

// handleGetExport handles GET requests to /api/export.
// Streams the ledger as an Excel workbook.
func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := export.Workbook(r.Context(), s.ledger)
	if err != nil {
		http.Error(w, "Failed to build workbook", http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	name := strings.TrimSuffix(filepath.Base(s.file), filepath.Ext(s.file)) + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := f.Write(w); err != nil {
		http.Error(w, "Failed to write workbook", http.StatusInternalServerError)
	}
}

func dateString(d *ledger.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
