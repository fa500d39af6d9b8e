package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tablekit/tablekit/pkg/table"
)

// Dataset is the canonical serialization format for a tabular dataset:
// column descriptors plus rows. Used by the HTTP API, file storage, and
// caching. The format round-trips: export → re-import produces an
// identical dataset.
type Dataset struct {
	Name    string         `json:"name,omitempty" bson:"name,omitempty"`
	Columns []table.Column `json:"columns" bson:"columns"`
	Rows    []table.Row    `json:"rows" bson:"rows"`
}

// ReadJSON decodes a JSON dataset from r into an in-memory source.
//
// The input must be an object with a "columns" array and a "rows" array:
//
//	{
//	  "columns": [{"key": "name", "type": 0, "sortable": true}],
//	  "rows": [{"name": "John Doe"}]
//	}
//
// ReadJSON returns an error if the JSON is malformed or the dataset has
// no columns. It does not close r.
func ReadJSON(r io.Reader) (*Memory, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(ds.Columns) == 0 {
		return nil, fmt.Errorf("decode: %w", ErrNoHeader)
	}
	return NewMemory(ds.Name, ds.Columns, ds.Rows), nil
}

// WriteJSON encodes a source as a JSON dataset on w. The output can be
// re-imported with [ReadJSON].
func WriteJSON(ctx context.Context, src Source, w io.Writer) error {
	cols, err := src.Columns(ctx)
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	rows, err := src.Rows(ctx)
	if err != nil {
		return fmt.Errorf("rows: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Dataset{Name: src.Name(), Columns: cols, Rows: rows})
}

// ImportJSON reads a JSON dataset file at path.
func ImportJSON(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return src, nil
}

// ExportJSON writes a source as a JSON dataset file at path.
func ExportJSON(ctx context.Context, src Source, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(ctx, src, f); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
