// Package classify maps free-text item attributes to a category label via an
// ordered keyword rule table. Classification is pure and deterministic: the
// same input always yields the same label.
package classify

import (
	"strings"

	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

// DefaultLabel is returned when no rule matches.
const DefaultLabel = "Uncategorized"

// Rule associates a set of keywords with a category label. A rule matches
// when any of its keywords occurs as a substring of the lower-cased input.
type Rule struct {
	Keywords []string
	Label    string
}

// Table is an ordered rule sequence; the first matching rule wins.
type Table []Rule

// Classify returns the label of the first rule matching text, or
// DefaultLabel if none match. Matching is case-insensitive.
func Classify(text string, table Table) string {
	lowered := strings.ToLower(text)
	for _, rule := range table {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return rule.Label
			}
		}
	}
	return DefaultLabel
}

// Text concatenates the named fields of a record, lower-cased and
// space-separated, for use as classification input.
func Text(rec record.Record, names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if v := fields.String(rec[name]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
