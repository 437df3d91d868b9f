package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

// BenchmarkAddVoucher benchmarks adding a simple 2-row voucher
func BenchmarkAddVoucher(b *testing.B) {
	amount := decimal.RequireFromString("50.00")
	date := MustParseDate("20210102")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := New()
		v := &Voucher{Series: "A", Number: "1", Date: date, Token: TokenVER}
		v.AddRow(&Row{Account: "1910", Amount: amount.Neg(), Token: TokenTRANS})
		v.AddRow(&Row{Account: "4010", Amount: amount, Token: TokenTRANS})
		l.AddVoucher(v)
	}
}

// BenchmarkVoucherBalance benchmarks the balance check of a voucher with
// added and removed rows
func BenchmarkVoucherBalance(b *testing.B) {
	v := &Voucher{Series: "A", Number: "1", Date: MustParseDate("20210102")}
	for i := 0; i < 20; i++ {
		amount := decimal.NewFromInt(int64(i*100 + 1))
		v.AddRow(&Row{Account: "1910", Amount: amount, Token: TokenTRANS})
		v.AddRow(&Row{Account: "3010", Amount: amount.Neg(), Token: TokenTRANS})
	}
	v.AddRow(&Row{Account: "1910", Amount: decimal.NewFromInt(5), Token: TokenBTRANS})
	v.AddRow(&Row{Account: "1910", Amount: decimal.NewFromInt(5), Token: TokenRTRANS})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !v.IsBalanced(DefaultBalanceIgnore) {
			b.Fatal("voucher should balance")
		}
	}
}

// BenchmarkAddValue benchmarks recording period values against a growing
// chart of accounts
func BenchmarkAddValue(b *testing.B) {
	amount := decimal.RequireFromString("1000.00")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := New()
		for n := 0; n < 100; n++ {
			account := fmt.Sprintf("%d", 1000+n)
			l.AddValue(&PeriodValue{Token: TokenIB, Account: account, Amount: amount})
			l.AddValue(&PeriodValue{Token: TokenUB, Account: account, Amount: amount})
		}
	}
}

// BenchmarkSortedAccounts benchmarks ordering a full chart of accounts
func BenchmarkSortedAccounts(b *testing.B) {
	l := New()
	for n := 9999; n >= 1000; n -= 7 {
		l.Account(fmt.Sprintf("%d", n))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.SortedAccounts()
	}
}

// BenchmarkSortedDimensions benchmarks ordering nested dimensions
func BenchmarkSortedDimensions(b *testing.B) {
	l := New()
	for n := 20; n < 60; n++ {
		l.DeclareDimension(fmt.Sprintf("%d", n), "Dimension")
		if n > 20 {
			_ = l.SetParent(fmt.Sprintf("%d", n), fmt.Sprintf("%d", n-1))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.SortedDimensions()
	}
}
