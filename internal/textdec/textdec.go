// Package textdec recovers text from raw bytes of unknown encoding.
//
// Manifest exports arrive as UTF-8, Latin-1 or Windows-1252 depending on the
// system that produced them. Decoding tries each candidate in order and, as
// a last resort, force-decodes by discarding invalid byte sequences. It never
// fails: any input yields a usable string.
package textdec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// decoderCandidate is one entry of the ordered decoding strategy list.
type decoderCandidate struct {
	name    string
	decoder *encoding.Decoder
}

func candidates() []decoderCandidate {
	return []decoderCandidate{
		{name: "utf-8", decoder: nil}, // validated directly, no transform needed
		{name: "latin-1", decoder: charmap.ISO8859_1.NewDecoder()},
		{name: "windows-1252", decoder: charmap.Windows1252.NewDecoder()},
	}
}

// Decode converts raw bytes to a string, returning the text and the name of
// the encoding that succeeded ("forced" when every candidate failed and
// invalid sequences were dropped).
func Decode(raw []byte) (string, string) {
	for _, c := range candidates() {
		if c.decoder == nil {
			if utf8.Valid(raw) {
				return string(raw), c.name
			}
			continue
		}
		decoded, err := c.decoder.Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), c.name
	}

	// Last resort: keep whatever decodes, drop the rest.
	return strings.ToValidUTF8(string(raw), ""), "forced"
}

// Lines decodes raw bytes and splits the text into lines, discarding blank
// and whitespace-only lines. Trailing carriage returns are stripped.
func Lines(raw []byte) []string {
	text, _ := Decode(raw)
	return SplitLines(text)
}

// SplitLines splits already-decoded text into non-blank lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
