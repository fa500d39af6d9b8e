package table

import "errors"

// Common errors returned by the table package.
// These only surface at construction time; once a Table exists, every
// operation is total and clamps or ignores bad input instead of failing.
var (
	// ErrNoColumns is returned when a table is created without columns.
	ErrNoColumns = errors.New("no columns defined")

	// ErrDuplicateColumn is returned when two columns share a key.
	ErrDuplicateColumn = errors.New("duplicate column key")

	// ErrEmptyColumnKey is returned when a column has an empty key.
	ErrEmptyColumnKey = errors.New("empty column key")

	// ErrUnknownComparator is returned when a column names a comparator
	// that is not registered.
	ErrUnknownComparator = errors.New("unknown comparator")
)
