package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/sie/ledger"
)

func TestRecordAccessors(t *testing.T) {
	rec := Tokenize(`#TRANS 1910 {1 "100"} -500.25 20200105 "Text" 2 "AB"`)

	assert.Equal(t, 7, rec.Len())
	assert.Equal(t, "1910", rec.String(0))
	assert.Equal(t, "", rec.String(10))
	assert.Equal(t, 1, rec.ObjectOffset())
	assert.False(t, rec.HasEmptyObjects())

	i, ok := rec.ObjectField()
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	amount, err := rec.Decimal(2)
	assert.NoError(t, err)
	assert.Equal(t, "-500.25", amount.String())

	date, err := rec.Date(3)
	assert.NoError(t, err)
	assert.Equal(t, "20200105", date.String())

	qty, err := rec.Int(5)
	assert.NoError(t, err)
	assert.Equal(t, 2, qty)

	assert.Equal(t, []string{"Text", "2", "AB"}, rec.Strings(4))
	assert.Zero(t, rec.Strings(7))
}

func TestRecordMissingFieldDefaults(t *testing.T) {
	rec := Tokenize("#IB 0 1910")

	n, err := rec.Int(5)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	l, err := rec.Long(5)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), l)

	d, err := rec.Decimal(5)
	assert.NoError(t, err)
	assert.True(t, d.IsZero())

	date, err := rec.Date(5)
	assert.NoError(t, err)
	assert.Zero(t, date)
}

func TestRecordInvalidValues(t *testing.T) {
	rec := Tokenize("#X abc 2020013 1.2.3")

	_, err := rec.Int(0)
	var invalid *InvalidValueError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "integer", invalid.Kind)

	_, err = rec.Decimal(2)
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "amount", invalid.Kind)

	date, err := rec.Date(1)
	var dateErr *ledger.InvalidDateError
	assert.True(t, errors.As(err, &dateErr))
	assert.Zero(t, date)
}

func TestRecordEmptyObjects(t *testing.T) {
	rec := Tokenize("#TRANS 1910 {} 500")
	assert.True(t, rec.HasEmptyObjects())
	assert.Equal(t, 1, rec.ObjectOffset())

	rec = Tokenize("#TRANS 1910 500")
	assert.False(t, rec.HasEmptyObjects())
	assert.Equal(t, 0, rec.ObjectOffset())
	_, ok := rec.ObjectField()
	assert.False(t, ok)
}

func TestParseObjectsField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		want    []ledger.ObjectRef
		wantErr bool
	}{
		{
			name:  "Quoted",
			field: `{1 "100" 6 "P1"}`,
			want:  []ledger.ObjectRef{{Dimension: "1", Number: "100"}, {Dimension: "6", Number: "P1"}},
		},
		{
			name:  "Bare",
			field: `{1 100}`,
			want:  []ledger.ObjectRef{{Dimension: "1", Number: "100"}},
		},
		{
			name:  "QuotedWithSpace",
			field: `{"1" "A 1"}`,
			want:  []ledger.ObjectRef{{Dimension: "1", Number: "A 1"}},
		},
		{
			name:  "DuplicateDimension",
			field: `{1 "100" 1 "200"}`,
			want:  []ledger.ObjectRef{{Dimension: "1", Number: "100"}},
		},
		{
			name:  "Empty",
			field: `{}`,
			want:  []ledger.ObjectRef{},
		},
		{
			name:    "Odd",
			field:   `{1 "100" 6}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseObjects(tt.field)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
