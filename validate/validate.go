// Package validate evaluates static per-entity validation rules against raw
// form input before any gateway call is made.
package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

// Rule is the constraint descriptor for one field. A zero Rule passes
// everything.
type Rule struct {
	// Required fails empty or whitespace-only values.
	Required bool

	// MinLength and MaxLength bound the trimmed length in characters, not
	// bytes (0 = unbounded).
	MinLength int
	MaxLength int

	// Pattern, when non-nil, must match the trimmed value.
	Pattern *regexp.Regexp

	// Numeric requires the trimmed value to parse as a float, optionally
	// range-checked against Min/Max.
	Numeric bool
	Min     *float64
	Max     *float64

	// Message is the human-readable violation message reported for this
	// rule. One message per rule, not per failing check.
	Message string
}

// Evaluate reports whether a value satisfies the rule. Checks run in a fixed
// order: required, length, pattern, numeric parse and range; the first
// failing check is authoritative. An empty optional value passes trivially
// with no further checks.
func Evaluate(value string, rule Rule) bool {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return !rule.Required
	}
	length := utf8.RuneCountInString(trimmed)
	if rule.MinLength > 0 && length < rule.MinLength {
		return false
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return false
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(trimmed) {
		return false
	}
	if rule.Numeric {
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return false
		}
		if rule.Min != nil && n < *rule.Min {
			return false
		}
		if rule.Max != nil && n > *rule.Max {
			return false
		}
	}
	return true
}

// RuleSet maps field names to their constraint descriptors for one entity
// type. Rule sets are static configuration, declared once per entity.
type RuleSet map[string]Rule

// Validate evaluates every rule against the raw input record and returns the
// collected violations, or nil when the input is valid. Field values are
// rendered to strings before evaluation, so numeric input may arrive as
// either a number or a string.
func (rs RuleSet) Validate(input record.Record) *Errors {
	var errs *Errors
	for field, rule := range rs {
		value := fields.String(input[field])
		if Evaluate(value, rule) {
			continue
		}
		if errs == nil {
			errs = &Errors{Fields: make(map[string][]string)}
		}
		msg := rule.Message
		if msg == "" {
			msg = field + " is invalid"
		}
		errs.Fields[field] = append(errs.Fields[field], msg)
	}
	return errs
}

// Errors is a structured validation failure: one message list per violating
// field. It aggregates to a single human-readable message listing all
// violations.
type Errors struct {
	Fields map[string][]string
}

// Error implements the error interface with one aggregated message.
func (e *Errors) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(strings.Join(e.Fields[field], "; "))
	}
	return b.String()
}
