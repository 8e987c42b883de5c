// Package report renders the repeated-records report as a PDF document.
// It is a pure formatting step over already-matched rows.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"rsouza/manifest-match/internal/manifest"
)

// Options controls the report layout. Field caps are in characters.
type Options struct {
	Title      string
	SenderMax  int
	AddressMax int
	PostalMax  int
}

// DefaultOptions returns the standard report layout.
func DefaultOptions() Options {
	return Options{
		Title:      "Repeated Addresses Report (Sender — Origin Address — Origin Postal Code)",
		SenderMax:  200,
		AddressMax: 300,
		PostalMax:  12,
	}
}

// Generate renders one line per record as
// "Sender — OriginAddress — OriginPostalCode", each field capped, followed
// by a total-count summary.
func Generate(records []manifest.Record, opts Options) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	// Core fonts are CP1252; translate so accented senders survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(opts.Title), "", 1, "", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 9)
	for _, rec := range records {
		line := fmt.Sprintf("%s — %s — %s",
			truncate(rec.Sender, opts.SenderMax),
			truncate(rec.OriginAddress, opts.AddressMax),
			truncate(rec.OriginPostalCode, opts.PostalMax))
		pdf.MultiCell(0, 5, tr(line), "", "", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total repeated records: %d", len(records))), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate caps s at max characters, counting runes so multi-byte accents do
// not get cut in half.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
