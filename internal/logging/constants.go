package logging

// Standardized field names for structured logging.
const (
	FieldFile     = "file_path"
	FieldCount    = "count"
	FieldRows     = "rows"
	FieldColumns  = "columns"
	FieldHeader   = "header_index"
	FieldEncoding = "encoding"
	FieldReason   = "reason"
	FieldAddr     = "addr"
)
