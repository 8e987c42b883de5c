package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsouza/manifest-match/internal/logging"
)

const sampleManifest = "Remetente\tEndereço Origem\tCEP Origem\tDestinatário\n" +
	"Acme Ltda\tRua São João, 10\t01001-000\tBeta SA\n" +
	"Delta_Transportes\tAv. Paulista 1000\t\tGama ME\n"

func newTestParser() *Parser {
	return NewParser(&logging.MockLogger{}, nil)
}

func TestParseBytes(t *testing.T) {
	table := newTestParser().ParseBytes([]byte(sampleManifest))

	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{ColSender, ColOriginAddress, ColOriginPostalCode, ColDestinee}, table.Columns)

	first := table.Records[0]
	assert.Equal(t, "Acme Ltda", first.Sender)
	assert.Equal(t, "Rua São João, 10", first.OriginAddress)
	assert.Equal(t, "01001-000", first.OriginPostalCode)
	assert.Equal(t, "Beta SA", first.Destinee)
	assert.Equal(t, "ACME LTDA", first.SenderNorm)
	assert.Equal(t, "RUA SAO JOAO 10", first.AddressNorm)
	assert.Equal(t, "01001000", first.PostalNorm)
	assert.Equal(t, "ACME LTDA|RUA SAO JOAO 10|01001000", first.Key)

	// Underscores in exports read as spaces; missing postal stays empty.
	second := table.Records[1]
	assert.Equal(t, "Delta Transportes", second.Sender)
	assert.Equal(t, "", second.PostalNorm)
	assert.Equal(t, "DELTA TRANSPORTES|AV PAULISTA 1000|", second.Key)
}

func TestParseBytesIdempotent(t *testing.T) {
	p := newTestParser()
	raw := []byte(sampleManifest)

	a := p.ParseBytes(raw)
	b := p.ParseBytes(raw)

	assert.Equal(t, a, b)

	keysOf := func(tb *Table) []string {
		keys := make([]string, 0, len(tb.Records))
		for _, r := range tb.Records {
			keys = append(keys, r.Key)
		}
		return keys
	}
	assert.Equal(t, keysOf(a), keysOf(b))
}

func TestParseBytesEmptyInput(t *testing.T) {
	table := newTestParser().ParseBytes(nil)
	assert.True(t, table.Empty())
	assert.Empty(t, table.Columns)
}

func TestParseBytesNoHeaderLine(t *testing.T) {
	// No line carries the header tokens: the first line is consumed as the
	// header and the file still parses.
	raw := []byte("Acme  Rua A  01001000\nBeta  Rua B  02002000\n")
	table := newTestParser().ParseBytes(raw)
	assert.Len(t, table.Records, 1)
}

func TestParseBytesUnmappedColumnsPreserved(t *testing.T) {
	raw := []byte("Remetente\tEndereço Origem\tCEP Origem\tPeso\n" +
		"Acme\tRua A\t01001000\t12kg\n")
	table := newTestParser().ParseBytes(raw)

	require.Len(t, table.Records, 1)
	assert.Equal(t, "12kg", table.Records[0].Extra["Peso"])
}

func TestParseBytesShortRowPadded(t *testing.T) {
	raw := []byte("Remetente\tEndereço Origem\tCEP Origem\nAcme\tRua A\n")
	table := newTestParser().ParseBytes(raw)

	require.Len(t, table.Records, 1)
	rec := table.Records[0]
	assert.Equal(t, "Acme", rec.Sender)
	assert.Equal(t, "Rua A", rec.OriginAddress)
	assert.Equal(t, "", rec.OriginPostalCode)
}

func TestParseBytesLatin1Input(t *testing.T) {
	// "Endereço" with ç encoded as Latin-1 byte 0xE7.
	header := append([]byte("Remetente\tEndere"), 0xE7)
	header = append(header, []byte("o Origem\tCEP Origem\n")...)
	raw := append(header, []byte("Acme\tRua A\t01001000\n")...)

	table := newTestParser().ParseBytes(raw)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Rua A", table.Records[0].OriginAddress)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o600))

	table, err := newTestParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)
}

func TestParseFileMissing(t *testing.T) {
	_, err := newTestParser().ParseFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestParseReader(t *testing.T) {
	table, err := newTestParser().Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)
}
