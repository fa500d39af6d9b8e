package table

// FilterState holds the active filter inputs: one global free-text search
// plus at most one active value per column. Absence of a key means no
// filter on that column.
type FilterState struct {
	// Search is the global free-text query. Matches case-insensitively
	// against the stringified value of any filterable column.
	Search string `json:"search,omitempty" bson:"search,omitempty"`

	// Columns maps column key to the active filter value for that column.
	Columns map[string]string `json:"columns,omitempty" bson:"columns,omitempty"`
}

// IsEmpty reports whether no search and no column filters are active.
func (s FilterState) IsEmpty() bool {
	return s.Search == "" && len(s.Columns) == 0
}

// Clone returns an independent copy of the filter state.
func (s FilterState) Clone() FilterState {
	out := FilterState{Search: s.Search}
	if len(s.Columns) > 0 {
		out.Columns = make(map[string]string, len(s.Columns))
		for k, v := range s.Columns {
			out.Columns[k] = v
		}
	}
	return out
}

// Predicate compiles the filter state into a single predicate over the
// given columns. Filters on unknown columns and invalid numeric filter
// values are ignored. Returns nil when the state is an identity filter.
func (s FilterState) Predicate(cols []Column) Predicate {
	var ps And
	if p := SearchFilter(cols, s.Search); p != nil {
		ps = append(ps, p)
	}
	// Iterate columns, not the map, so Description output is deterministic.
	for _, col := range cols {
		value, ok := s.Columns[col.Key]
		if !ok {
			continue
		}
		if p := ColumnFilter(col, value); p != nil {
			ps = append(ps, p)
		}
	}
	if len(ps) == 0 {
		return nil
	}
	return ps
}

// Filter produces the subset of rows matching the filter state.
// The source slice is never mutated; with an identity filter the result is
// a shallow copy in source order. Applying the same filter twice yields the
// same result as applying it once.
func Filter(rows []Row, cols []Column, state FilterState) []Row {
	p := state.Predicate(cols)
	if p == nil {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if p.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}
