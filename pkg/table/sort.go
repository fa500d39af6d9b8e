package table

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Direction specifies the direction of sorting.
type Direction int

const (
	// DirectionNone indicates no sorting (source order).
	DirectionNone Direction = iota
	// Ascending indicates ascending sort order.
	Ascending
	// Descending indicates descending sort order.
	Descending
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", d)
	}
}

// ParseDirection converts a string (as used in query parameters) to a
// Direction. Unrecognized input means no sorting.
func ParseDirection(s string) Direction {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending
	case "desc", "descending":
		return Descending
	default:
		return DirectionNone
	}
}

// SortState represents the current sorting configuration: at most one
// active column key and a direction. An empty key means source order.
type SortState struct {
	Key       string    `json:"key,omitempty" bson:"key,omitempty"`
	Direction Direction `json:"direction,omitempty" bson:"direction,omitempty"`
}

// IsSorted reports whether this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Key != "" && s.Direction != DirectionNone
}

// =============================================================================
// Comparators
// =============================================================================

// Comparator compares two raw cell values. It returns a negative number
// when a orders before b, zero when they are equal, and a positive number
// when a orders after b. Comparators receive raw values and must tolerate
// nil (missing fields order before everything else).
type Comparator func(a, b any) int

// ComparatorRegistry holds named reusable comparators so that comparison
// policy is decoupled from column descriptors. A column references a
// comparator by name via Column.Comparator.
type ComparatorRegistry struct {
	m map[string]Comparator
}

// Built-in comparator names.
const (
	CompareString  = "string"
	CompareNumeric = "numeric"
	CompareTime    = "time"
	CompareBool    = "bool"
)

// NewComparatorRegistry creates a registry pre-populated with the built-in
// string, numeric, time, and bool comparators.
func NewComparatorRegistry() *ComparatorRegistry {
	r := &ComparatorRegistry{m: make(map[string]Comparator)}
	r.Register(CompareString, compareStrings)
	r.Register(CompareNumeric, compareNumbers)
	r.Register(CompareTime, compareTimes)
	r.Register(CompareBool, compareBools)
	return r
}

// Register adds or replaces a named comparator.
func (r *ComparatorRegistry) Register(name string, c Comparator) {
	r.m[name] = c
}

// Lookup returns the comparator registered under name.
func (r *ComparatorRegistry) Lookup(name string) (Comparator, bool) {
	c, ok := r.m[name]
	return c, ok
}

// ForColumn resolves the comparator used when sorting by col: the named
// comparator when set, otherwise the built-in for the column's type.
func (r *ComparatorRegistry) ForColumn(col Column) (Comparator, error) {
	if col.Comparator != "" {
		c, ok := r.Lookup(col.Comparator)
		if !ok {
			return nil, fmt.Errorf("column %s: %w: %q", col.Key, ErrUnknownComparator, col.Comparator)
		}
		return c, nil
	}
	switch col.Type {
	case TypeInt, TypeFloat:
		return compareNumbers, nil
	case TypeTime:
		return compareTimes, nil
	case TypeBool:
		return compareBools, nil
	default:
		return compareStrings, nil
	}
}

func compareStrings(a, b any) int {
	if c, done := compareNils(a, b); done {
		return c
	}
	as := strings.ToLower(fmt.Sprintf("%v", a))
	bs := strings.ToLower(fmt.Sprintf("%v", b))
	return strings.Compare(as, bs)
}

func compareNumbers(a, b any) int {
	if c, done := compareNils(a, b); done {
		return c
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		// Mistyped values fall back to string ordering.
		return compareStrings(a, b)
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func compareTimes(a, b any) int {
	if c, done := compareNils(a, b); done {
		return c
	}
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if !aok || !bok {
		return compareStrings(a, b)
	}
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	default:
		return 0
	}
}

func compareBools(a, b any) int {
	if c, done := compareNils(a, b); done {
		return c
	}
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if !aok || !bok {
		return compareStrings(a, b)
	}
	switch {
	case !ab && bb:
		return -1
	case ab && !bb:
		return 1
	default:
		return 0
	}
}

// compareNils orders missing values before present ones. The second
// return reports whether the comparison is already decided.
func compareNils(a, b any) (int, bool) {
	switch {
	case a == nil && b == nil:
		return 0, true
	case a == nil:
		return -1, true
	case b == nil:
		return 1, true
	default:
		return 0, false
	}
}

// =============================================================================
// Sort Stage
// =============================================================================

// Sort produces a new ordered collection. The input is never reordered in
// place. With an inactive state the result is a shallow copy in source
// order. Sorting is stable: rows with equal keys keep their relative
// source order, which also makes re-sorting by the same key idempotent.
func Sort(rows []Row, state SortState, cmp Comparator) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	if !state.IsSorted() {
		return out
	}
	if cmp == nil {
		cmp = compareStrings
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i][state.Key], out[j][state.Key])
		if state.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}
