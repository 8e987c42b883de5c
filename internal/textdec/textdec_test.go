package textdec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		raw         []byte
		expected    string
		expectedEnc string
	}{
		{"plain ASCII", []byte("Remetente"), "Remetente", "utf-8"},
		{"valid UTF-8", []byte("Endereço São João"), "Endereço São João", "utf-8"},
		// 0xE7 0xE3 are ç and ã in Latin-1 but invalid UTF-8.
		{"latin-1 accents", []byte{'E', 'n', 'd', 'e', 'r', 'e', 0xE7, 'o'}, "Endereço", "latin-1"},
		{"empty input", []byte{}, "", "utf-8"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, enc := Decode(tc.raw)
			assert.Equal(t, tc.expected, text)
			assert.Equal(t, tc.expectedEnc, enc)
		})
	}
}

func TestDecodeNeverFails(t *testing.T) {
	// Arbitrary binary garbage must still produce a usable string.
	raw := []byte{0xFF, 0xFE, 0x00, 0x41, 0xC0, 0xAF}
	text, _ := Decode(raw)
	assert.NotNil(t, text)
}

func TestLines(t *testing.T) {
	raw := []byte("first line\r\n\n   \nsecond line\nthird\tline\r\n")
	lines := Lines(raw)
	assert.Equal(t, []string{"first line", "second line", "third\tline"}, lines)
}

func TestLinesEmptyInput(t *testing.T) {
	assert.Empty(t, Lines(nil))
	assert.Empty(t, Lines([]byte("  \n \r\n")))
}
