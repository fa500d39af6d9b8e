package table

import "fmt"

// Table is the stateful composition of the filter → sort → paginate
// pipeline over a caller-supplied source collection.
//
// The source rows are read-only from the table's perspective and are
// never mutated or reordered. All state is owned exclusively by the
// instance and mutated only through its setters; every setter synchronously
// re-derives the downstream stages before returning, so reads after a
// setter always observe a consistent pipeline.
//
// A Table is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
type Table struct {
	source      []Row
	columns     []Column
	comparators *ComparatorRegistry

	filter FilterState
	sort   SortState
	pager  *Pager

	// filtered caches the filter+sort result so page navigation does not
	// re-run the upstream stages.
	filtered []Row
}

// New creates a table over the given source rows and column descriptors,
// starting unfiltered and unsorted on page 1. pageSize below 1 falls back
// to DefaultPageSize. The column list must be non-empty, with unique,
// non-empty keys.
func New(rows []Row, cols []Column, pageSize int) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Key == "" {
			return nil, ErrEmptyColumnKey
		}
		if seen[c.Key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = true
	}

	t := &Table{
		source:      rows,
		columns:     cols,
		comparators: NewComparatorRegistry(),
		filter:      FilterState{},
		pager:       NewPager(pageSize),
	}
	t.recompute()
	return t, nil
}

// Comparators exposes the table's comparator registry so callers can
// register custom comparison policies before columns reference them.
func (t *Table) Comparators() *ComparatorRegistry { return t.comparators }

// recompute re-derives the filtered and sorted collection from the
// current state. Called by every setter that invalidates upstream stages.
func (t *Table) recompute() {
	rows := Filter(t.source, t.columns, t.filter)

	cmp := Comparator(nil)
	if t.sort.IsSorted() {
		if col, ok := columnByKey(t.columns, t.sort.Key); ok {
			// Unknown comparator names were rejected at registration
			// time; ForColumn only fails for those.
			if c, err := t.comparators.ForColumn(col); err == nil {
				cmp = c
			}
		}
	}
	t.filtered = Sort(rows, t.sort, cmp)
}

// =============================================================================
// Setters
// =============================================================================

// SetSearch sets the global free-text query and resets to page 1.
func (t *Table) SetSearch(query string) {
	t.filter.Search = query
	t.pager.Reset()
	t.recompute()
}

// SetFilter sets the active filter value for a column and resets to
// page 1. An empty value clears the filter for that column.
func (t *Table) SetFilter(key, value string) {
	if value == "" {
		t.ClearFilter(key)
		return
	}
	if t.filter.Columns == nil {
		t.filter.Columns = make(map[string]string)
	}
	t.filter.Columns[key] = value
	t.pager.Reset()
	t.recompute()
}

// ClearFilter removes the active filter for a column and resets to page 1.
func (t *Table) ClearFilter(key string) {
	delete(t.filter.Columns, key)
	t.pager.Reset()
	t.recompute()
}

// ClearAllFilters removes every column filter and the search query, and
// resets to page 1.
func (t *Table) ClearAllFilters() {
	t.filter = FilterState{}
	t.pager.Reset()
	t.recompute()
}

// SetSort selects the sort column. Selecting a new key sorts ascending;
// re-selecting the active key toggles the direction. Keys that do not name
// a sortable column are ignored.
func (t *Table) SetSort(key string) {
	col, ok := columnByKey(t.columns, key)
	if !ok || !col.Sortable {
		return
	}
	if t.sort.Key == key && t.sort.Direction == Ascending {
		t.sort.Direction = Descending
	} else {
		t.sort = SortState{Key: key, Direction: Ascending}
	}
	t.recompute()
}

// ClearSort returns the table to source order.
func (t *Table) ClearSort() {
	t.sort = SortState{}
	t.recompute()
}

// SetPage requests a page, clamped into the valid range.
func (t *Table) SetPage(n int) { t.pager.SetPage(n, len(t.filtered)) }

// SetPageSize changes the page size and resets to page 1.
// Sizes below 1 are ignored.
func (t *Table) SetPageSize(n int) { t.pager.SetSize(n) }

// FirstPage navigates to the first page.
func (t *Table) FirstPage() { t.pager.First() }

// PrevPage navigates one page back.
func (t *Table) PrevPage() { t.pager.Prev() }

// NextPage navigates one page forward.
func (t *Table) NextPage() { t.pager.Next(len(t.filtered)) }

// LastPage navigates to the final page.
func (t *Table) LastPage() { t.pager.Last(len(t.filtered)) }

// =============================================================================
// Accessors
// =============================================================================

// Page returns the current visible page of rows, filtered and sorted.
// The returned slice must not be mutated.
func (t *Table) Page() []Row { return t.pager.Slice(t.filtered) }

// Filtered returns the filtered, sorted collection before pagination.
// The returned slice must not be mutated.
func (t *Table) Filtered() []Row { return t.filtered }

// FilteredLen returns the number of rows after filtering.
func (t *Table) FilteredLen() int { return len(t.filtered) }

// TotalLen returns the number of rows in the unfiltered source.
func (t *Table) TotalLen() int { return len(t.source) }

// Columns returns the column descriptors.
func (t *Table) Columns() []Column { return t.columns }

// CurrentPage returns the 1-based current page number.
func (t *Table) CurrentPage() int { return t.pager.Page() }

// PageSize returns the current page size.
func (t *Table) PageSize() int { return t.pager.Size() }

// TotalPages returns the number of pages over the filtered collection,
// minimum one.
func (t *Table) TotalPages() int { return t.pager.TotalPages(len(t.filtered)) }

// Window returns the zero-based [start, end) indices of the visible page
// within the filtered collection, for "showing X–Y of Z" display.
func (t *Table) Window() (start, end int) { return t.pager.Window(len(t.filtered)) }

// Search returns the active free-text query.
func (t *Table) Search() string { return t.filter.Search }

// Filters returns a copy of the active per-column filter map.
func (t *Table) Filters() map[string]string {
	return t.filter.Clone().Columns
}

// SortKey returns the active sort column key, or "" in source order.
func (t *Table) SortKey() string { return t.sort.Key }

// SortDirection returns the active sort direction.
func (t *Table) SortDirection() Direction { return t.sort.Direction }

// IsSortedBy reports whether the table is currently sorted by key.
func (t *Table) IsSortedBy(key string) bool {
	return t.sort.IsSorted() && t.sort.Key == key
}

// CellValue extracts the typed value of a column from a row. Rows lacking
// the field yield a null value with an empty display string rather than
// failing; so do keys that name no column.
func (t *Table) CellValue(row Row, key string) Value {
	col, ok := columnByKey(t.columns, key)
	if !ok {
		return NullValue(TypeString)
	}
	raw, ok := row[key]
	if !ok {
		return NullValue(col.Type)
	}
	return NewValue(raw, col.Type)
}

// UniqueValues returns the deduplicated display values of a column across
// the unfiltered source, preserving first-seen order. Used to populate
// filter option lists. Missing fields are skipped.
func (t *Table) UniqueValues(key string) []string {
	col, ok := columnByKey(t.columns, key)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.source {
		raw, ok := row[key]
		if !ok || raw == nil {
			continue
		}
		v := NewValue(raw, col.Type).Formatted
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
