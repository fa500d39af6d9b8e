package table

// Column describes one displayable field of a row.
// Columns are immutable for the lifetime of a table.
type Column struct {
	// Key identifies the field on a row.
	Key string `json:"key" bson:"key"`

	// Label is the display name. Defaults to Key when empty.
	Label string `json:"label,omitempty" bson:"label,omitempty"`

	// Type is the data type of the column's values.
	Type DataType `json:"type,omitempty" bson:"type,omitempty"`

	// Sortable marks the column as eligible for sorting.
	Sortable bool `json:"sortable,omitempty" bson:"sortable,omitempty"`

	// Filterable marks the column as eligible for per-column filters and
	// inclusion in free-text search.
	Filterable bool `json:"filterable,omitempty" bson:"filterable,omitempty"`

	// Comparator optionally names a registered comparator used when
	// sorting by this column. Empty means compare by the column's Type.
	Comparator string `json:"comparator,omitempty" bson:"comparator,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the key.
func (c Column) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// columnByKey returns the column with the given key, if present.
func columnByKey(cols []Column, key string) (Column, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
