package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Predicate decides whether a row belongs in the filtered result.
// The filter stage is expressed entirely in predicates so that new column
// filter semantics can be added without modifying the stage itself.
type Predicate interface {
	// Matches reports whether the row passes this predicate.
	// Predicates are total: missing or mistyped fields are non-matching,
	// never an error.
	Matches(row Row) bool

	// Description returns a human-readable summary for logging and
	// debugging (e.g. "city contains \"berlin\"").
	Description() string
}

// =============================================================================
// Composites
// =============================================================================

// And combines predicates so that a row must pass all of them.
// An empty And passes every row.
type And []Predicate

// Matches implements Predicate. Evaluation short-circuits on the first
// failing predicate.
func (a And) Matches(row Row) bool {
	for _, p := range a {
		if !p.Matches(row) {
			return false
		}
	}
	return true
}

// Description implements Predicate.
func (a And) Description() string { return joinDescriptions(a, "AND") }

// Or combines predicates so that a row must pass at least one of them.
// An empty Or passes every row.
type Or []Predicate

// Matches implements Predicate. Evaluation short-circuits on the first
// passing predicate.
func (o Or) Matches(row Row) bool {
	if len(o) == 0 {
		return true
	}
	for _, p := range o {
		if p.Matches(row) {
			return true
		}
	}
	return false
}

// Description implements Predicate.
func (o Or) Description() string { return joinDescriptions(o, "OR") }

func joinDescriptions(ps []Predicate, op string) string {
	if len(ps) == 0 {
		return "empty"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Description()
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}

// =============================================================================
// Column Predicates
// =============================================================================

// columnFilter matches a single column against an active filter value.
// Numeric columns compare by equality, everything else by case-insensitive
// substring over the formatted value.
type columnFilter struct {
	col   Column
	value string
}

// ColumnFilter builds the predicate for one active per-column filter.
// A numeric filter value that cannot be parsed yields a nil predicate:
// invalid input deactivates the filter rather than excluding every row.
func ColumnFilter(col Column, value string) Predicate {
	if value == "" {
		return nil
	}
	if col.Type == TypeInt || col.Type == TypeFloat {
		want, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil
		}
		return numericEq{col: col, want: want}
	}
	return columnFilter{col: col, value: value}
}

func (f columnFilter) Matches(row Row) bool {
	raw, ok := row[f.col.Key]
	if !ok || raw == nil {
		return false
	}
	cell := NewValue(raw, f.col.Type).Formatted
	return strings.Contains(strings.ToLower(cell), strings.ToLower(f.value))
}

func (f columnFilter) Description() string {
	return fmt.Sprintf("%s contains %q", f.col.Key, f.value)
}

// numericEq matches a numeric column by value equality.
type numericEq struct {
	col  Column
	want float64
}

func (f numericEq) Matches(row Row) bool {
	raw, ok := row[f.col.Key]
	if !ok || raw == nil {
		return false
	}
	got, ok := asFloat(raw)
	return ok && got == f.want
}

func (f numericEq) Description() string {
	return fmt.Sprintf("%s == %v", f.col.Key, f.want)
}

// =============================================================================
// Search Predicate
// =============================================================================

// searchFilter matches the free-text query against every filterable column.
type searchFilter struct {
	cols  []Column
	query string
}

// SearchFilter builds the free-text search predicate over the filterable
// columns. An empty query yields a nil predicate (identity).
func SearchFilter(cols []Column, query string) Predicate {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return searchFilter{cols: cols, query: query}
}

func (f searchFilter) Matches(row Row) bool {
	q := strings.ToLower(f.query)
	for _, col := range f.cols {
		if !col.Filterable {
			continue
		}
		raw, ok := row[col.Key]
		if !ok || raw == nil {
			continue
		}
		cell := NewValue(raw, col.Type).Formatted
		if strings.Contains(strings.ToLower(cell), q) {
			return true
		}
	}
	return false
}

func (f searchFilter) Description() string {
	return fmt.Sprintf("search %q", f.query)
}
