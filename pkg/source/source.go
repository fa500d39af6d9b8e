package source

import (
	"context"
	"errors"

	"github.com/tablekit/tablekit/pkg/table"
)

// Common errors returned by data sources.
var (
	// ErrNoHeader is returned when tabular input lacks a header row.
	ErrNoHeader = errors.New("no header row")

	// ErrNotConnected is returned when a backing store is unreachable.
	ErrNotConnected = errors.New("not connected")

	// ErrEmptyCollection is returned when column discovery finds no
	// documents to sample.
	ErrEmptyCollection = errors.New("empty collection")
)

// Source provides read-only access to tabular data.
// Implementations must be safe for concurrent reads and must return
// errors rather than panic.
type Source interface {
	// Name identifies the source for logging and display.
	Name() string

	// Columns returns the column descriptors.
	Columns(ctx context.Context) ([]table.Column, error)

	// Rows returns all rows. The returned slice is owned by the caller.
	Rows(ctx context.Context) ([]table.Row, error)
}

// Memory is an in-memory source over caller-supplied rows.
type Memory struct {
	name string
	cols []table.Column
	rows []table.Row
}

// NewMemory creates an in-memory source.
func NewMemory(name string, cols []table.Column, rows []table.Row) *Memory {
	return &Memory{name: name, cols: cols, rows: rows}
}

// Name implements Source.
func (m *Memory) Name() string { return m.name }

// Columns implements Source.
func (m *Memory) Columns(ctx context.Context) ([]table.Column, error) {
	out := make([]table.Column, len(m.cols))
	copy(out, m.cols)
	return out, nil
}

// Rows implements Source.
func (m *Memory) Rows(ctx context.Context) ([]table.Row, error) {
	out := make([]table.Row, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

// Ensure Memory implements Source.
var _ Source = (*Memory)(nil)
