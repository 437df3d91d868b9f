package web

import (
	"net/http"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestAPIBalances(t *testing.T) {
	_, mux, _ := newTestServer(t, fixture(t))

	t.Run("CurrentYear", func(t *testing.T) {
		var response BalancesResponse
		rec := get(t, mux, "/api/balances", &response)
		assert.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, 0, response.Year)
		assert.Equal(t, "20200101", response.Start)
		assert.Equal(t, "20201231", response.End)
		assert.Equal(t, "SEK", response.Currency)

		// Values with objects (the #RES for 4010) are left out.
		assert.Equal(t, 3, len(response.Accounts))

		tests := []struct {
			account string
			name    string
			opening string
			closing string
			result  string
		}{
			{"1910", "Kassa", "1000", "1500", "0"},
			{"1930", "Foretagskonto", "25000.5", "24100.5", "0"},
			{"3010", "Forsaljning", "0", "0", "-12000"},
		}
		for i, tt := range tests {
			t.Run(tt.account, func(t *testing.T) {
				row := response.Accounts[i]
				assert.Equal(t, tt.account, row.Account)
				assert.Equal(t, tt.name, row.Name)
				assert.True(t, decimal.RequireFromString(tt.opening).Equal(row.Opening), "opening %s", row.Opening)
				assert.True(t, decimal.RequireFromString(tt.closing).Equal(row.Closing), "closing %s", row.Closing)
				assert.True(t, decimal.RequireFromString(tt.result).Equal(row.Result), "result %s", row.Result)
			})
		}
	})

	t.Run("PreviousYear", func(t *testing.T) {
		var response BalancesResponse
		rec := get(t, mux, "/api/balances?year=-1", &response)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, -1, response.Year)
		assert.Equal(t, "20190101", response.Start)
		assert.Equal(t, 0, len(response.Accounts))
		assert.NotZero(t, response.Accounts)
	})

	t.Run("InvalidYear", func(t *testing.T) {
		for _, year := range []string{"abc", "1"} {
			rec := get(t, mux, "/api/balances?year="+year, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})
}
