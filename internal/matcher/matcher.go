// Package matcher classifies daily manifest records against the historical
// base by exact key equality.
package matcher

import (
	"sync/atomic"

	"rsouza/manifest-match/internal/manifest"
)

// KeySet collects the distinct keys of a table. Duplicates in the base
// deduplicate through set semantics.
func KeySet(table *manifest.Table) map[string]struct{} {
	if table == nil {
		return map[string]struct{}{}
	}
	keys := make(map[string]struct{}, len(table.Records))
	for _, rec := range table.Records {
		keys[rec.Key] = struct{}{}
	}
	return keys
}

// Match flags every daily record whose key exists in the base and returns
// the repeat subsequence in original file order. One pass over the base to
// build the key set, one pass over the daily records to classify.
func Match(base, daily *manifest.Table) []manifest.Record {
	baseKeys := KeySet(base)

	var repeats []manifest.Record
	if daily == nil {
		return repeats
	}
	for i := range daily.Records {
		_, ok := baseKeys[daily.Records[i].Key]
		daily.Records[i].IsRepeat = ok
		if ok {
			repeats = append(repeats, daily.Records[i])
		}
	}
	return repeats
}

// Result is the outcome of matching one upload: the repeat subsequence plus
// the size of the upload it came from.
type Result struct {
	Repeats    []manifest.Record
	DailyTotal int
}

// Count returns the number of repeated records.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Repeats)
}

// ResultHolder stores the most recent match result behind an atomic pointer
// swap, so a report download racing a new upload observes either the old or
// the new result, never a partial one.
type ResultHolder struct {
	current atomic.Pointer[Result]
}

// Store replaces the current result wholesale.
func (h *ResultHolder) Store(result *Result) {
	h.current.Store(result)
}

// Load returns the most recent result, or nil when no upload has been
// processed yet.
func (h *ResultHolder) Load() *Result {
	return h.current.Load()
}
