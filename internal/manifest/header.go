package manifest

import "strings"

// LocateHeader returns the index of the column-header line: the first line
// containing, case-insensitively, a sender token, an address token (accented
// or not) and a postal-code token. When no line qualifies the first line is
// treated as the header rather than failing the file.
func LocateHeader(lines []string) int {
	for i, line := range lines {
		low := strings.ToLower(line)
		if strings.Contains(low, "remetente") &&
			(strings.Contains(low, "endereço") || strings.Contains(low, "endereco")) &&
			strings.Contains(low, "cep") {
			return i
		}
	}
	return 0
}
