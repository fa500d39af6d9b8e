// Package pkg provides the core libraries for Tablekit tabular data exploration.
//
// # Overview
//
// Tablekit turns raw tabular datasets into paged, filterable, sortable views
// through a derived-state pipeline. The pkg directory is organized into
// these areas:
//
//  1. [table] - The pipeline core (filter → sort → paginate, table state)
//  2. [source] - Dataset sources (in-memory, CSV, JSON, MongoDB)
//  3. [reactive] - Small reactive primitives (values, derived state, lifecycle)
//  4. [cache] - Result caching (file, Redis, no-op backends)
//  5. [session] - Server-side table sessions (memory, Redis, file backends)
//  6. [errors] - Structured error codes shared by CLI and API
//  7. [observability] - Pluggable pipeline, cache and HTTP hooks
//  8. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow through Tablekit:
//
//	CSV / JSON / MongoDB
//	         ↓
//	    [source] package (columns + rows)
//	         ↓
//	    [table] package (filter → sort → paginate)
//	         ↓
//	    CLI table / TUI / HTTP API response
//
// # Quick Start
//
// Load a dataset and page through it:
//
//	import (
//	    "github.com/tablekit/tablekit/pkg/source"
//	    "github.com/tablekit/tablekit/pkg/table"
//	)
//
//	src, err := source.LoadCSV("people.csv")
//	if err != nil {
//	    return err
//	}
//	cols, _ := src.Columns(ctx)
//	rows, _ := src.Rows(ctx)
//
//	tbl, err := table.New(rows, cols, 10)
//	if err != nil {
//	    return err
//	}
//	tbl.SetSearch("berlin")
//	tbl.SetSort("name")
//	for _, row := range tbl.Page() {
//	    fmt.Println(row)
//	}
//
// Stateless evaluation for servers:
//
//	result := table.Query{Search: "berlin", SortKey: "name"}.Apply(ctx, rows, cols, nil)
package pkg
