package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRows(t *testing.T) {
	lines := []string{
		"Remetente\tEndereço Origem\tCEP Origem",
		"Acme\tRua A, 10\t01001-000",
		"Beta\tRua B",
		"Gama\tRua C\t03003-000\textra value",
	}

	header, rows := buildRows(lines, 0)

	assert.Equal(t, []string{"Remetente", "Endereço Origem", "CEP Origem"}, header)
	assert.Len(t, rows, 3)
	// Short row padded with empty strings.
	assert.Equal(t, []string{"Beta", "Rua B", ""}, rows[1])
	// Long row truncated to header width.
	assert.Equal(t, []string{"Gama", "Rua C", "03003-000"}, rows[2])
}

func TestBuildRowsHeaderMidFile(t *testing.T) {
	lines := []string{
		"exported 2024-01-02",
		"Remetente\tEndereço Origem\tCEP Origem",
		"Acme\tRua A\t01001000",
	}

	header, rows := buildRows(lines, 1)
	assert.Equal(t, []string{"Remetente", "Endereço Origem", "CEP Origem"}, header)
	assert.Len(t, rows, 1)
}

func TestBuildRowsEmptyInput(t *testing.T) {
	header, rows := buildRows(nil, 0)
	assert.Nil(t, header)
	assert.Nil(t, rows)
}
