package table

import (
	"context"
	"time"

	"github.com/tablekit/tablekit/pkg/observability"
)

// Query is the stateless, serializable form of one pipeline evaluation.
// The HTTP API decodes a Query from request parameters, the CLI builds one
// from flags, and the cache layer hashes one into a result key. The zero
// value is a valid query: unfiltered, unsorted, first page, default size.
type Query struct {
	// Search is the global free-text query.
	Search string `json:"search,omitempty" bson:"search,omitempty"`

	// Filters maps column key to active filter value.
	Filters map[string]string `json:"filters,omitempty" bson:"filters,omitempty"`

	// SortKey is the active sort column, empty for source order.
	SortKey string `json:"sort_key,omitempty" bson:"sort_key,omitempty"`

	// SortDir is the sort direction.
	SortDir Direction `json:"sort_dir,omitempty" bson:"sort_dir,omitempty"`

	// Page is the requested 1-based page. Values below 1 clamp to 1.
	Page int `json:"page,omitempty" bson:"page,omitempty"`

	// Size is the page size. Values below 1 fall back to DefaultPageSize.
	Size int `json:"size,omitempty" bson:"size,omitempty"`
}

// Normalize applies defaults so that equivalent queries hash identically:
// page and size are clamped, an empty sort key drops the direction, and an
// active key without a direction sorts ascending.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = DefaultPageSize
	}
	if q.SortKey == "" {
		q.SortDir = DirectionNone
	} else if q.SortDir == DirectionNone {
		q.SortDir = Ascending
	}
	return q
}

// Result is the outcome of one pipeline evaluation.
type Result struct {
	// Rows is the visible page, filtered and sorted.
	Rows []Row `json:"rows"`

	// Filtered is the number of rows after filtering, before pagination.
	Filtered int `json:"filtered"`

	// Total is the number of rows in the unfiltered source.
	Total int `json:"total"`

	// Page is the effective (clamped) 1-based page number.
	Page int `json:"page"`

	// TotalPages is the page count over the filtered rows, minimum 1.
	TotalPages int `json:"total_pages"`

	// Start and End are the zero-based window indices within the filtered
	// rows, for "showing X–Y of Z" display.
	Start int `json:"start"`
	End   int `json:"end"`

	// Stats carries per-stage timings.
	Stats Stats `json:"-"`
}

// Stats contains evaluation timings.
type Stats struct {
	FilterTime time.Duration
	SortTime   time.Duration
}

// Apply evaluates the query against a source collection in one synchronous
// pass: filter, then sort, then paginate. The source is never mutated. The
// registry resolves named comparators; nil means the built-in registry.
// Hooks registered with the observability package receive stage events.
func (q Query) Apply(ctx context.Context, rows []Row, cols []Column, reg *ComparatorRegistry) Result {
	q = q.Normalize()
	if reg == nil {
		reg = NewComparatorRegistry()
	}

	hooks := observability.Pipeline()
	hooks.OnEvaluateStart(ctx, len(rows))
	start := time.Now()

	filterStart := time.Now()
	filtered := Filter(rows, cols, FilterState{Search: q.Search, Columns: q.Filters})
	filterTime := time.Since(filterStart)
	hooks.OnFilter(ctx, len(rows), len(filtered), filterTime)

	state := SortState{Key: q.SortKey, Direction: q.SortDir}
	var cmp Comparator
	if state.IsSorted() {
		if col, ok := columnByKey(cols, state.Key); ok && col.Sortable {
			if c, err := reg.ForColumn(col); err == nil {
				cmp = c
			}
		} else {
			state = SortState{}
		}
	}
	sortStart := time.Now()
	sorted := Sort(filtered, state, cmp)
	sortTime := time.Since(sortStart)
	if state.IsSorted() {
		hooks.OnSort(ctx, state.Key, len(sorted), sortTime)
	}

	pager := NewPager(q.Size)
	pager.SetPage(q.Page, len(sorted))
	winStart, winEnd := pager.Window(len(sorted))
	hooks.OnPaginate(ctx, pager.Page(), pager.Size(), pager.TotalPages(len(sorted)))

	result := Result{
		Rows:       pager.Slice(sorted),
		Filtered:   len(sorted),
		Total:      len(rows),
		Page:       pager.Page(),
		TotalPages: pager.TotalPages(len(sorted)),
		Start:      winStart,
		End:        winEnd,
		Stats:      Stats{FilterTime: filterTime, SortTime: sortTime},
	}
	hooks.OnEvaluateComplete(ctx, len(rows), len(sorted), time.Since(start))
	return result
}
