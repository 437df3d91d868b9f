package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestReadSieType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "Declared", input: "#FLAGGA 0\n#SIETYP 2\n#KONTO 1910 Kassa\n", want: 2},
		{name: "Missing", input: "#FLAGGA 0\n#KONTO 1910 Kassa\n", want: 0},
		{name: "StopsAtFirstVoucher", input: "#FLAGGA 0\n#VER A 1 20200101\n#SIETYP 4\n", want: 0},
		{name: "Invalid", input: "#FLAGGA 0\n#SIETYP fyra\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSieType(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSieTypeFile(t *testing.T) {
	f, err := os.Open("../testdata/sie4.se")
	assert.NoError(t, err)
	defer f.Close()

	got, err := ReadSieType(f)
	assert.NoError(t, err)
	assert.Equal(t, 4, got)
}
