package table

import (
	"fmt"
	"time"
)

// Row is one record of the in-memory collection being displayed.
// Rows are opaque to the pipeline: any map from column key to value works,
// and keys absent from a row are treated as missing rather than invalid.
type Row = map[string]any

// DataType represents the type of data in a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data (any size).
	TypeInt
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeTime represents chronological data (dates and timestamps).
	TypeTime
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeTime:
		return "Time"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Value is a typed container for cell values.
// It holds the raw value, type information, and a pre-formatted string so
// renderers never format the same cell twice.
type Value struct {
	// Raw holds the underlying value. The Go type depends on Type.
	Raw any

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is missing or nil.
	IsNull bool

	// Formatted is the display string for this value.
	// Missing values format as the empty string.
	Formatted string
}

// NewValue creates a Value from a raw value and type.
func NewValue(raw any, dataType DataType) Value {
	if raw == nil {
		return NullValue(dataType)
	}
	return Value{
		Raw:       raw,
		Type:      dataType,
		Formatted: formatValue(raw, dataType),
	}
}

// NullValue creates a missing value of the specified type.
func NullValue(dataType DataType) Value {
	return Value{Type: dataType, IsNull: true}
}

// formatValue converts a raw value to its display string.
func formatValue(raw any, dataType DataType) string {
	if dataType == TypeTime {
		if t, ok := raw.(time.Time); ok {
			return t.Format(time.RFC3339)
		}
	}
	return fmt.Sprintf("%v", raw)
}

// asFloat coerces numeric raw values to float64 for comparison and
// numeric filter equality. The second return reports success.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
