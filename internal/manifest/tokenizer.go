package manifest

import (
	"regexp"
	"strings"
)

var (
	tabRun       = regexp.MustCompile(`\t+`)
	wideSpaceRun = regexp.MustCompile(`\s{2,}`)
	anySpaceRun  = regexp.MustCompile(`\s+`)
)

// TokenizeLine splits one line into column values, inferring the delimiter.
//
// Tiers, tried in order:
//  1. If the line contains a tab, split on runs of tabs. Repeated tab
//     padding counts as one delimiter.
//  2. Split on runs of two or more whitespace characters, so single spaces
//     inside a field ("São Paulo") stay content.
//  3. If that still yields a single token, split on any whitespace run.
//
// The last tier can break multi-word fields in purely single-spaced files;
// that is the accepted cost of never rejecting a line.
func TokenizeLine(line string) []string {
	if strings.Contains(line, "\t") {
		return tabRun.Split(line, -1)
	}
	cols := wideSpaceRun.Split(line, -1)
	if len(cols) == 1 {
		return anySpaceRun.Split(line, -1)
	}
	return cols
}
