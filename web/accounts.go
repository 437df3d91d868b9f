package web

import (
	"net/http"
)

// AccountInfo represents basic information about a ledger account.
type AccountInfo struct {
	Number string   `json:"number"`
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Unit   string   `json:"unit,omitempty"`
	SRU    []string `json:"sru,omitempty"`
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns the chart of accounts ordered by account number.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.ledger.SortedAccounts()
	accounts := make([]AccountInfo, 0, len(sorted))
	for _, a := range sorted {
		accounts = append(accounts, AccountInfo{
			Number: a.Number,
			Name:   a.Name,
			Type:   a.Kind().String(),
			Unit:   a.Unit,
			SRU:    a.SRU,
		})
	}

	writeJSONResponse(w, &AccountsResponse{Accounts: accounts})
}
