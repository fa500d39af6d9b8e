package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tablekit/tablekit/pkg/table"
)

// ReadCSV parses CSV data into an in-memory source. The first record is
// the header row and becomes the column keys. Column types are inferred
// from the data: a column where every non-empty cell parses as an integer
// is Int, as a float is Float, as a bool is Bool; anything else is String.
// All columns are sortable and filterable.
//
// Empty cells become missing fields on the row, matching the pipeline's
// treatment of absent values.
func ReadCSV(name string, r io.Reader) (*Memory, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := records[0]
	body := records[1:]

	cols := make([]table.Column, len(header))
	for i, key := range header {
		key = strings.TrimSpace(key)
		cols[i] = table.Column{
			Key:        key,
			Label:      key,
			Type:       inferType(body, i),
			Sortable:   true,
			Filterable: true,
		}
	}

	rows := make([]table.Row, 0, len(body))
	for _, record := range body {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			if i >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				continue
			}
			row[col.Key] = convertCell(cell, col.Type)
		}
		rows = append(rows, row)
	}

	return NewMemory(name, cols, rows), nil
}

// LoadCSV reads a CSV file at path. The source is named after the file's
// basename without extension.
func LoadCSV(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	src, err := ReadCSV(name, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return src, nil
}

// inferType scans a column's cells and picks the narrowest type that fits
// every non-empty value. Columns with no data default to String.
func inferType(records [][]string, col int) table.DataType {
	isInt, isFloat, isBool := true, true, true
	seen := false

	for _, record := range records {
		if col >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[col])
		if cell == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(cell); err != nil {
			isBool = false
		}
	}

	switch {
	case !seen:
		return table.TypeString
	case isInt:
		return table.TypeInt
	case isFloat:
		return table.TypeFloat
	case isBool:
		return table.TypeBool
	default:
		return table.TypeString
	}
}

// convertCell parses a cell into the Go value for its column type.
// Cells that fail to parse stay strings rather than erroring; type
// inference makes that rare but extra rows appended later may not match.
func convertCell(cell string, dt table.DataType) any {
	switch dt {
	case table.TypeInt:
		if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return int(n)
		}
	case table.TypeFloat:
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f
		}
	case table.TypeBool:
		if b, err := strconv.ParseBool(cell); err == nil {
			return b
		}
	}
	return cell
}
