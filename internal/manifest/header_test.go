package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected int
	}{
		{
			name: "header after preamble",
			lines: []string{
				"foo",
				"Remetente  Endereço Origem  CEP Origem",
				"Acme  Rua X  01001000",
			},
			expected: 1,
		},
		{
			name: "unaccented spelling accepted",
			lines: []string{
				"Remetente\tEndereco Origem\tCEP Origem",
				"Acme\tRua X\t01001000",
			},
			expected: 0,
		},
		{
			name: "case insensitive",
			lines: []string{
				"REMETENTE  ENDEREÇO ORIGEM  CEP ORIGEM",
			},
			expected: 0,
		},
		{
			name: "no header defaults to first line",
			lines: []string{
				"Acme  Rua X  01001000",
				"Beta  Rua Y  02002000",
			},
			expected: 0,
		},
		{
			name: "partial token set does not match",
			lines: []string{
				"Remetente  CEP Origem",
				"Remetente  Endereço Origem  CEP Origem",
			},
			expected: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, LocateHeader(tc.lines))
		})
	}
}
