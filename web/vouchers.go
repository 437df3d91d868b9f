package web

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/ledger"
)

// VouchersResponse is the JSON response structure for the vouchers endpoint.
type VouchersResponse struct {
	Vouchers []VoucherInfo `json:"vouchers"`
}

// VoucherInfo is a voucher and its rows.
type VoucherInfo struct {
	Series   string          `json:"series"`
	Number   string          `json:"number"`
	Date     string          `json:"date"`
	Text     string          `json:"text,omitempty"`
	RegDate  string          `json:"regDate,omitempty"`
	Sign     string          `json:"sign,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	Balanced bool            `json:"balanced"`
	Rows     []RowInfo       `json:"rows"`
}

// RowInfo is a voucher row.
type RowInfo struct {
	Kind     string          `json:"kind"`
	Account  string          `json:"account"`
	Objects  []string        `json:"objects,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date,omitempty"`
	Text     string          `json:"text,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Sign     string          `json:"sign,omitempty"`
}

// handleGetVouchers handles GET requests to /api/vouchers.
//
// Query parameters:
//   - series: Only vouchers of this series.
func (s *Server) handleGetVouchers(w http.ResponseWriter, r *http.Request) {
	series := r.URL.Query().Get("series")

	s.mu.RLock()
	defer s.mu.RUnlock()

	response := &VouchersResponse{Vouchers: []VoucherInfo{}}
	for _, v := range s.ledger.Vouchers {
		if series != "" && v.Series != series {
			continue
		}
		response.Vouchers = append(response.Vouchers, voucherInfo(v))
	}

	writeJSONResponse(w, response)
}

func voucherInfo(v *ledger.Voucher) VoucherInfo {
	info := VoucherInfo{
		Series:   v.Series,
		Number:   v.Number,
		Date:     dateString(v.Date),
		Text:     v.Text,
		RegDate:  dateString(v.RegDate),
		Sign:     v.Sign,
		Balance:  v.Balance(ledger.DefaultBalanceIgnore),
		Balanced: v.IsBalanced(ledger.DefaultBalanceIgnore),
		Rows:     make([]RowInfo, 0, len(v.Rows)),
	}
	for _, row := range v.Rows {
		objects := make([]string, 0, len(row.Objects))
		for _, o := range row.Objects {
			objects = append(objects, o.String())
		}
		info.Rows = append(info.Rows, RowInfo{
			Kind:     strings.TrimPrefix(row.Token, "#"),
			Account:  row.Account,
			Objects:  objects,
			Amount:   row.Amount,
			Date:     dateString(row.Date),
			Text:     row.Text,
			Quantity: row.Quantity,
			Sign:     row.Sign,
		})
	}
	return info
}
