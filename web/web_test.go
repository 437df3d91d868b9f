package web

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/sie/ledger"
)

const unbalanced = "#FLAGGA 0\r\n#SIETYP 4\r\n#GEN 20210115\r\n#KONTO 1910 \"Kassa\"\r\n#VER A 1 20200105 \"Fel\"\r\n{\r\n#TRANS 1910 {} 100.00\r\n}\r\n"

// newTestServer writes content to a temporary file and loads it.
func newTestServer(t *testing.T, content []byte) (*Server, *http.ServeMux, string) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "bokslut.se")
	assert.NoError(t, os.WriteFile(file, content, 0600))

	server := New(8080, file)
	assert.NoError(t, server.reloadLedger(context.Background()))
	return server, server.setupRouter(), file
}

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../testdata/sie4.se")
	assert.NoError(t, err)
	return data
}

func get(t *testing.T, mux *http.ServeMux, target string, v any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if v != nil && rec.Code == http.StatusOK {
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(v))
	}
	return rec
}

func put(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/source", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAPISource(t *testing.T) {
	_, mux, file := newTestServer(t, fixture(t))

	t.Run("Get", func(t *testing.T) {
		var response SourceResponse
		rec := get(t, mux, "/api/source", &response)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasSuffix(response.Filepath, "bokslut.se"))
		assert.Contains(t, response.Source, `#FNAMN "Exempelbolaget AB"`)
		assert.Equal(t, 0, len(response.Errors))
	})

	t.Run("PutUpdateContent", func(t *testing.T) {
		updated := "#FLAGGA 0\n#SIETYP 4\n#GEN 20240101\n#FNAMN \"Nytt namn\"\n"
		body, err := json.Marshal(map[string]string{"source": updated})
		assert.NoError(t, err)

		rec := put(t, mux, string(body))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response SourceResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, updated, response.Source)
		assert.Equal(t, 0, len(response.Errors))

		content, err := os.ReadFile(file)
		assert.NoError(t, err)
		assert.Equal(t, "#FLAGGA 0\r\n#SIETYP 4\r\n#GEN 20240101\r\n#FNAMN \"Nytt namn\"\r\n", string(content))

		var summary LedgerResponse
		get(t, mux, "/api/ledger", &summary)
		assert.Equal(t, "Nytt namn", summary.Company)
	})

	t.Run("PutEncodesPC8", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{"source": "#FLAGGA 0\n#GEN 20240101\n#FNAMN \"Företag\"\n"})
		assert.NoError(t, err)

		rec := put(t, mux, string(body))
		assert.Equal(t, http.StatusOK, rec.Code)

		content, err := os.ReadFile(file)
		assert.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "F\x94retag"), "ö should be written as PC8 0x94")
	})

	t.Run("PutWithParseErrorStillSavesFile", func(t *testing.T) {
		invalid := "this is not a SIE file"
		body, err := json.Marshal(map[string]string{"source": invalid})
		assert.NoError(t, err)

		rec := put(t, mux, string(body))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response SourceResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, len(response.Errors))
		assert.Equal(t, "InvalidFileError", response.Errors[0].Type)

		content, err := os.ReadFile(file)
		assert.NoError(t, err)
		assert.Equal(t, invalid+"\r\n", string(content))

		var accounts AccountsResponse
		get(t, mux, "/api/accounts", &accounts)
		assert.Equal(t, 0, len(accounts.Accounts))
	})

	t.Run("PutInvalidJSON", func(t *testing.T) {
		rec := put(t, mux, "invalid json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAPISourceReadOnly(t *testing.T) {
	server, mux, file := newTestServer(t, fixture(t))
	server.ReadOnly = true

	rec := put(t, mux, `{"source": "#FLAGGA 0"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	content, err := os.ReadFile(file)
	assert.NoError(t, err)
	assert.Equal(t, fixture(t), content)
}

func TestAPIErrors(t *testing.T) {
	_, mux, _ := newTestServer(t, []byte(unbalanced))

	var response ErrorsResponse
	rec := get(t, mux, "/api/errors", &response)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, len(response.Errors))

	e := response.Errors[0]
	assert.Equal(t, "VoucherMismatchError", e.Type)
	assert.Equal(t, 5, e.Position.Line)
	assert.Equal(t, "A", e.Details["series"])

	var summary LedgerResponse
	get(t, mux, "/api/ledger", &summary)
	assert.Equal(t, 1, summary.ErrorCount)
}

func TestAPILedger(t *testing.T) {
	server, mux, file := newTestServer(t, fixture(t))
	server.Version = "1.2.3"

	var response LedgerResponse
	rec := get(t, mux, "/api/ledger", &response)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, file, response.Filepath)
	assert.Equal(t, "1.2.3", response.Version)
	assert.Equal(t, "Exempelbolaget AB", response.Company)
	assert.Equal(t, "556677-8899", response.OrgNumber)
	assert.Equal(t, 4, response.SieType)
	assert.Equal(t, []string{"Bokfor", "3.1"}, response.Program)
	assert.Equal(t, "SEK", response.Currency)
	assert.Equal(t, []FiscalYear{
		{ID: 0, Start: "20200101", End: "20201231"},
		{ID: -1, Start: "20190101", End: "20191231"},
	}, response.FiscalYears)
	assert.Equal(t, 5, response.Counts["accounts"])
	assert.Equal(t, 2, response.Counts["vouchers"])
	assert.Equal(t, 2, response.Counts["ib"])
	assert.Equal(t, 2, response.Counts["psaldo"])
	assert.Equal(t, 0, response.ErrorCount)
}

func TestAPIAccounts(t *testing.T) {
	_, mux, _ := newTestServer(t, fixture(t))

	t.Run("ReturnsSortedAccounts", func(t *testing.T) {
		var response AccountsResponse
		rec := get(t, mux, "/api/accounts", &response)
		assert.Equal(t, http.StatusOK, rec.Code)

		numbers := make([]string, 0, len(response.Accounts))
		for _, a := range response.Accounts {
			numbers = append(numbers, a.Number)
		}
		assert.Equal(t, []string{"1910", "1930", "2640", "3010", "4010"}, numbers)

		assert.Equal(t, AccountInfo{Number: "1910", Name: "Kassa", Type: "Assets", SRU: []string{"7281"}}, response.Accounts[0])
		assert.Equal(t, "Unknown", response.Accounts[2].Type)
		assert.Equal(t, AccountInfo{Number: "3010", Name: "Forsaljning", Type: "Income", Unit: "st", SRU: []string{"7410"}}, response.Accounts[3])
	})

	t.Run("EmptyArrayWhenNoAccounts", func(t *testing.T) {
		server := New(8080, "")
		server.ledger = ledger.New()

		rec := get(t, server.setupRouter(), "/api/accounts", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"accounts":[]}`, strings.TrimSpace(rec.Body.String()))
	})
}

func TestAPIVouchers(t *testing.T) {
	_, mux, _ := newTestServer(t, fixture(t))

	t.Run("All", func(t *testing.T) {
		var response VouchersResponse
		rec := get(t, mux, "/api/vouchers", &response)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, len(response.Vouchers))

		a := response.Vouchers[0]
		assert.Equal(t, "A", a.Series)
		assert.Equal(t, "20200105", a.Date)
		assert.Equal(t, "20200106", a.RegDate)
		assert.True(t, a.Balanced)
		assert.Equal(t, 3, len(a.Rows))
		assert.Equal(t, []string{"1:100", "6:P1"}, a.Rows[1].Objects)
		assert.Equal(t, "20200105", a.Rows[0].Date)
	})

	t.Run("BySeries", func(t *testing.T) {
		var response VouchersResponse
		get(t, mux, "/api/vouchers?series=B", &response)
		assert.Equal(t, 1, len(response.Vouchers))

		kinds := []string{}
		for _, r := range response.Vouchers[0].Rows {
			kinds = append(kinds, r.Kind)
		}
		assert.Equal(t, []string{"TRANS", "TRANS", "BTRANS", "RTRANS"}, kinds)
		assert.Equal(t, "Borttagen rad", response.Vouchers[0].Rows[2].Text)
	})

	t.Run("UnknownSeries", func(t *testing.T) {
		rec := get(t, mux, "/api/vouchers?series=Z", nil)
		assert.Equal(t, `{"vouchers":[]}`, strings.TrimSpace(rec.Body.String()))
	})
}

func TestAPIExport(t *testing.T) {
	_, mux, _ := newTestServer(t, fixture(t))

	rec := get(t, mux, "/api/export", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="bokslut.xlsx"`, rec.Header().Get("Content-Disposition"))
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestBroadcast(t *testing.T) {
	server, mux, _ := newTestServer(t, fixture(t))

	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/events")
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: connected\n", line)

	// The client is registered before the connected event is written.
	server.broadcast("reload")

	_, err = reader.ReadString('\n')
	assert.NoError(t, err)
	line, err = reader.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: reload\n", line)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	server, mux, file := newTestServer(t, fixture(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, server.startWatcher(ctx))

	updated := "#FLAGGA 0\r\n#GEN 20240101\r\n#FNAMN \"Omladdad\"\r\n"
	assert.NoError(t, os.WriteFile(file, []byte(updated), 0600))

	deadline := time.Now().Add(5 * time.Second)
	for {
		var response LedgerResponse
		get(t, mux, "/api/ledger", &response)
		if response.Company == "Omladdad" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("ledger not reloaded, company is %q", response.Company)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
