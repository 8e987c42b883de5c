// Package normalize cleans raw manifest fields and derives the canonical
// comparison key.
//
// Two records refer to the same historical entity iff their keys are equal.
// The key is exact: all tolerance to encoding, accent, punctuation and
// formatting noise lives in the normalization below, never in the comparison.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// KeySeparator joins the normalized triple. A literal pipe keeps the key
// positional even when individual fields are empty.
const KeySeparator = "|"

// PostalLength is the canonical zero-padded postal code width.
const PostalLength = 8

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordRun    = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	nonDigit      = regexp.MustCompile(`\D`)

	// NFD-decompose, drop combining marks, recompose. Turns "São" into "Sao".
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Clean prepares a raw field value: trims, converts the underscore-as-space
// convention some exports use, and collapses internal whitespace runs.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return s
}

// Text produces the comparison form of a text field: accents stripped,
// uppercased, punctuation collapsed to spaces, whitespace collapsed.
// It is a fixed point: Text(Text(s)) == Text(s).
func Text(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		// The chain only fails on malformed UTF-8; fall back to the input,
		// the character class below drops anything non-ASCII anyway.
		out = s
	}
	out = strings.ToUpper(out)
	out = strings.TrimSpace(out)
	out = nonWordRun.ReplaceAllString(out, " ")
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Postal reduces a postal code to its digits, left-padded with zeros to
// PostalLength. A value with no digits at all normalizes to the empty
// string, never to a padded zero run.
func Postal(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return ""
	}
	if len(digits) < PostalLength {
		digits = strings.Repeat("0", PostalLength-len(digits)) + digits
	}
	return digits
}

// Key builds the pipe-joined comparison key from already-normalized parts.
func Key(senderNorm, addressNorm, postalNorm string) string {
	return senderNorm + KeySeparator + addressNorm + KeySeparator + postalNorm
}
