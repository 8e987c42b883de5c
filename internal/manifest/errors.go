package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InvalidFormatError reports an input file that cannot be accepted, e.g. a
// disallowed extension or a missing filename. It is surfaced to the user
// verbatim, with no partial processing.
type InvalidFormatError struct {
	Filename string
	Msg      string
}

func (e *InvalidFormatError) Error() string {
	if e.Filename == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Msg)
}

// allowedExtensions are the only upload extensions accepted, lowercased.
var allowedExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

// ValidateUploadName checks that an uploaded manifest has a usable filename
// with a permitted extension. Content is never inspected here; parsing
// itself tolerates anything.
func ValidateUploadName(filename string) error {
	if filename == "" {
		return &InvalidFormatError{Msg: "no file selected"}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return &InvalidFormatError{Filename: filename, Msg: "unsupported file format, use .txt or .csv"}
	}
	return nil
}
