package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/ledger"
)

// BalancesResponse is the JSON response structure for the balances endpoint.
type BalancesResponse struct {
	Year     int           `json:"year"`
	Start    string        `json:"start,omitempty"`
	End      string        `json:"end,omitempty"`
	Currency string        `json:"currency,omitempty"`
	Accounts []*BalanceRow `json:"accounts"`
}

// BalanceRow holds the totals of one account for a fiscal year.
type BalanceRow struct {
	Account string          `json:"account"`
	Name    string          `json:"name"`
	Opening decimal.Decimal `json:"opening"`
	Closing decimal.Decimal `json:"closing"`
	Result  decimal.Decimal `json:"result"`
}

// handleGetBalances handles GET requests to /api/balances.
//
// Query parameters:
//   - year: Fiscal year number, 0 for the current year (default), -1 for the
//     previous one and so on.
//
// Only values without objects are summed; object level values are broken
// down further in the file and would be counted twice.
//
// Examples:
//   - GET /api/balances - Current year
//   - GET /api/balances?year=-1 - Previous year
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	year := 0
	if param := r.URL.Query().Get("year"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n > 0 {
			http.Error(w, "invalid year (expected 0 or a negative number): "+param, http.StatusBadRequest)
			return
		}
		year = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSONResponse(w, buildBalances(s.ledger, year))
}

// buildBalances sums opening balances, closing balances and results per
// account for a fiscal year.
func buildBalances(l *ledger.Ledger, year int) *BalancesResponse {
	response := &BalancesResponse{
		Year:     year,
		Currency: l.Currency,
		Accounts: []*BalanceRow{},
	}
	if fy, ok := l.FiscalYears[year]; ok {
		if fy.Start != nil {
			response.Start = fy.Start.String()
		}
		if fy.End != nil {
			response.End = fy.End.String()
		}
	}

	rows := make(map[string]*BalanceRow)
	add := func(token string, pick func(*BalanceRow) *decimal.Decimal) {
		for _, v := range l.Values(token) {
			if v.YearNr != year || len(v.Objects) > 0 {
				continue
			}
			row, ok := rows[v.Account]
			if !ok {
				row = &BalanceRow{Account: v.Account}
				rows[v.Account] = row
			}
			p := pick(row)
			*p = p.Add(v.Amount)
		}
	}
	add(ledger.TokenIB, func(r *BalanceRow) *decimal.Decimal { return &r.Opening })
	add(ledger.TokenUB, func(r *BalanceRow) *decimal.Decimal { return &r.Closing })
	add(ledger.TokenRES, func(r *BalanceRow) *decimal.Decimal { return &r.Result })

	for _, a := range l.SortedAccounts() {
		if row, ok := rows[a.Number]; ok {
			row.Name = a.Name
			response.Accounts = append(response.Accounts, row)
		}
	}

	return response
}
