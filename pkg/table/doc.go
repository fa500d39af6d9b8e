// Package table implements the tablekit derived-state pipeline: a
// filter → sort → paginate transformation over an in-memory row collection.
//
// # Architecture
//
// The pipeline consists of three stages, each a total function over its
// inputs:
//
//  1. Filter: reduce the source rows by a free-text search and per-column
//     filter values ([Filter], [Predicate])
//  2. Sort: order the filtered rows by a single column and direction using
//     a pluggable comparator ([Sort], [ComparatorRegistry])
//  3. Paginate: slice the ordered rows into fixed-size pages ([Pager])
//
// [Table] wires the three stages into one stateful composition that
// re-derives the visible page synchronously on every setter call. [Query]
// is the stateless, serializable form of the same evaluation and is used
// by the HTTP API and the CLI.
//
// # Error Handling
//
// No stage can fail: missing fields are treated as non-matching (filter)
// or placeholder values (display), out-of-range page requests clamp into
// the valid range, and empty collections yield a single well-defined empty
// page. Construction validates columns and returns errors; everything
// after construction is total.
//
// # Usage
//
//	tbl, err := table.New(rows, []table.Column{
//	    {Key: "name", Label: "Name", Type: table.TypeString, Sortable: true, Filterable: true},
//	    {Key: "age", Label: "Age", Type: table.TypeInt, Sortable: true},
//	}, 25)
//	if err != nil {
//	    return err
//	}
//
//	tbl.SetSearch("john")
//	tbl.SetSort("age")      // ascending
//	tbl.SetSort("age")      // toggles to descending
//	page := tbl.Page()      // current visible rows
package table
