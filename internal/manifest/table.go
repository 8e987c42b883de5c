package manifest

// buildRows tokenizes the header line and every subsequent line as a data
// row, guaranteeing each row has exactly len(header) columns: short rows are
// right-padded with empty strings, long rows truncated. No row is ever
// dropped for its width.
func buildRows(lines []string, headerIdx int) (header []string, rows [][]string) {
	if len(lines) == 0 {
		return nil, nil
	}

	header = TokenizeLine(lines[headerIdx])
	for _, line := range lines[headerIdx+1:] {
		cols := TokenizeLine(line)
		for len(cols) < len(header) {
			cols = append(cols, "")
		}
		rows = append(rows, cols[:len(header)])
	}
	return header, rows
}
