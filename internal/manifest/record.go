// Package manifest parses loosely tabular shipment manifest exports into
// structured, normalized records.
//
// Source files disagree on delimiter (tabs vs space padding), header
// position and column naming, so every stage degrades gracefully instead of
// failing the whole file: the tokenizer infers the delimiter per line, the
// header locator falls back to the first line, short rows are padded, and
// unrecognized columns pass through unchanged.
package manifest

// Canonical column names produced by the column mapper.
const (
	ColSender             = "Sender"
	ColOriginAddress      = "OriginAddress"
	ColOriginPostalCode   = "OriginPostalCode"
	ColDestinationAddress = "DestinationAddress"
	ColDestinee           = "Destinee"

	// ColKey is the derived comparison key column, also persisted in the
	// base snapshot.
	ColKey = "key"
)

// Record is one parsed manifest row after column mapping and normalization.
type Record struct {
	Sender             string
	OriginAddress      string
	OriginPostalCode   string
	DestinationAddress string
	Destinee           string

	// Extra holds columns no mapping rule matched, under their source label.
	Extra map[string]string

	// Derived comparison fields.
	SenderNorm  string
	AddressNorm string
	PostalNorm  string
	Key         string

	// IsRepeat is set by the matcher when the key exists in the base.
	IsRepeat bool
}

// Table is an ordered sequence of records sharing one header-derived column
// set.
type Table struct {
	// Columns are the mapped column names in source order, extended with any
	// required canonical column that had to be synthesized.
	Columns []string
	Records []Record
}

// Empty reports whether the table holds no records.
func (t *Table) Empty() bool {
	return t == nil || len(t.Records) == 0
}

// Len returns the record count.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
