package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Date
		wantErr bool
	}{
		{name: "Valid", input: "20240131", want: NewDate(2024, time.January, 31)},
		{name: "Empty", input: ""},
		{name: "Placeholder", input: "00000000"},
		{name: "TooShort", input: "2024013", wantErr: true},
		{name: "TooLong", input: "2024-01-31", wantErr: true},
		{name: "NotDigits", input: "2024013X", wantErr: true},
		{name: "NoSuchDay", input: "20240230", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				var dateErr *InvalidDateError
				assert.True(t, errors.As(err, &dateErr))
				assert.Equal(t, tt.input, dateErr.Value)
				assert.True(t, got == nil)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDateString(t *testing.T) {
	var missing *Date
	assert.Equal(t, "00000000", missing.String())
	assert.Equal(t, "20201231", NewDate(2020, time.December, 31).String())
}

func TestDateEqual(t *testing.T) {
	var a, b *Date
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewDate(2020, 1, 1)))
	assert.False(t, NewDate(2020, 1, 1).Equal(nil))
	assert.True(t, NewDate(2020, 1, 1).Equal(MustParseDate("20200101")))
}
