// Package filter derives a filtered, ordered subset of a record collection
// from a free-text query and zero or more discrete field filters. Filtering
// is pure and synchronous; it never mutates the input and never performs I/O.
package filter

import (
	"strings"

	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

// State is the transient filter input owned by a view. It is not persisted.
type State struct {
	// Query is a free-text query matched case-insensitively as a substring
	// across the configured searchable fields (OR semantics).
	Query string

	// Discrete maps field names to exact-match values. Every discrete filter
	// must hold for a record to be included (AND semantics, also relative to
	// Query). A filter on an array field matches by membership.
	Discrete map[string]string
}

// Empty reports whether the state excludes nothing.
func (s State) Empty() bool {
	return strings.TrimSpace(s.Query) == "" && len(s.Discrete) == 0
}

// Apply returns the subset of records matching the state, preserving input
// order. searchFields names the fields the text query is matched against;
// numeric fields match by substring of their string representation. An empty
// state returns the input unchanged.
func Apply(records []record.Record, st State, searchFields []string) []record.Record {
	if st.Empty() {
		return records
	}

	query := strings.ToLower(strings.TrimSpace(st.Query))

	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if query != "" && !matchesQuery(rec, query, searchFields) {
			continue
		}
		if !matchesDiscrete(rec, st.Discrete) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesQuery reports whether any searchable field contains the lower-cased
// query as a substring.
func matchesQuery(rec record.Record, query string, searchFields []string) bool {
	for _, field := range searchFields {
		value := fields.String(rec[field])
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

// matchesDiscrete reports whether every active discrete filter holds.
func matchesDiscrete(rec record.Record, discrete map[string]string) bool {
	for field, want := range discrete {
		if !fields.Matches(rec[field], want) {
			return false
		}
	}
	return true
}
