package manifest

import (
	"fmt"
	"io"
	"os"
	"slices"

	"rsouza/manifest-match/internal/logging"
	"rsouza/manifest-match/internal/normalize"
	"rsouza/manifest-match/internal/textdec"
)

// Parser turns raw manifest bytes into a normalized Table. It is stateless
// apart from its logger and column rules and is safe for reuse.
type Parser struct {
	logger logging.Logger
	rules  []Rule
}

// NewParser creates a Parser. A nil logger falls back to the package
// default; empty rules fall back to the built-in mapping rules.
func NewParser(logger logging.Logger, rules []Rule) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Parser{logger: logger, rules: rules}
}

// Parse reads the full contents of r and parses them. The only possible
// error is a read failure; malformed content always degrades to a usable
// table.
func (p *Parser) Parse(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}
	return p.ParseBytes(raw), nil
}

// ParseFile parses the manifest file at path.
func (p *Parser) ParseFile(path string) (*Table, error) {
	file, err := os.Open(path) // #nosec G304 -- paths come from operator config or CLI flags
	if err != nil {
		return nil, fmt.Errorf("error opening manifest file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close manifest file",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	return p.Parse(file)
}

// ParseBytes parses raw manifest bytes. It never fails: undecodable bytes
// are dropped, a missing header degrades to the first line, short rows are
// padded and unmapped columns pass through.
func (p *Parser) ParseBytes(raw []byte) *Table {
	text, enc := textdec.Decode(raw)
	lines := textdec.SplitLines(text)
	if len(lines) == 0 {
		p.logger.Warn("Manifest contains no usable lines")
		return &Table{}
	}

	headerIdx := LocateHeader(lines)
	header, rows := buildRows(lines, headerIdx)
	mapped := MapColumns(header, p.rules)

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(mapped, row))
	}

	table := &Table{
		Columns: ensureRequired(mapped),
		Records: records,
	}

	p.logger.Debug("Parsed manifest",
		logging.Field{Key: logging.FieldEncoding, Value: enc},
		logging.Field{Key: logging.FieldHeader, Value: headerIdx},
		logging.Field{Key: logging.FieldColumns, Value: len(table.Columns)},
		logging.Field{Key: logging.FieldRows, Value: len(records)})

	return table
}

// buildRecord assigns row values to canonical fields by mapped column name;
// anything else lands in Extra under its source label. When two source
// columns map to the same canonical field the rightmost wins.
func buildRecord(columns []string, row []string) Record {
	var rec Record
	for i, col := range columns {
		value := row[i]
		switch col {
		case ColSender:
			rec.Sender = value
		case ColOriginAddress:
			rec.OriginAddress = value
		case ColOriginPostalCode:
			rec.OriginPostalCode = value
		case ColDestinationAddress:
			rec.DestinationAddress = value
		case ColDestinee:
			rec.Destinee = value
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = value
		}
	}
	rec.Normalize()
	return rec
}

// Normalize cleans the three guaranteed fields and derives the comparison
// fields and key from them.
func (r *Record) Normalize() {
	r.Sender = normalize.Clean(r.Sender)
	r.OriginAddress = normalize.Clean(r.OriginAddress)
	r.OriginPostalCode = normalize.Clean(r.OriginPostalCode)

	r.SenderNorm = normalize.Text(r.Sender)
	r.AddressNorm = normalize.Text(r.OriginAddress)
	r.PostalNorm = normalize.Postal(r.OriginPostalCode)
	r.Key = normalize.Key(r.SenderNorm, r.AddressNorm, r.PostalNorm)
}

// ensureRequired extends the mapped column list with any required canonical
// column no source column produced, so downstream consumers can rely on
// their presence.
func ensureRequired(columns []string) []string {
	out := slices.Clone(columns)
	for _, required := range requiredColumns {
		if !slices.Contains(out, required) {
			out = append(out, required)
		}
	}
	return out
}
