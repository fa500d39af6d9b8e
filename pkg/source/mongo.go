package source

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablekit/tablekit/pkg/table"
)

// mongoSampleSize is the number of documents inspected for column discovery.
const mongoSampleSize = 50

// Mongo reads a MongoDB collection as a tabular source. Column
// descriptors are discovered by sampling documents: every field seen in
// the sample becomes a sortable, filterable column typed by the first
// non-null value observed. The "_id" field is skipped.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo creates a source over the given collection.
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

// Name implements Source.
func (m *Mongo) Name() string { return m.coll.Name() }

// Columns implements Source. It samples up to mongoSampleSize documents;
// an empty collection returns ErrEmptyCollection.
func (m *Mongo) Columns(ctx context.Context) ([]table.Column, error) {
	opts := options.Find().SetLimit(mongoSampleSize)
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", m.coll.Name(), err)
	}
	defer cur.Close(ctx)

	types := make(map[string]table.DataType)
	var order []string
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		for key, raw := range doc {
			if key == "_id" || raw == nil {
				continue
			}
			if _, ok := types[key]; !ok {
				types[key] = mongoType(raw)
				order = append(order, key)
			}
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("sample %s: %w", m.coll.Name(), err)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%s: %w", m.coll.Name(), ErrEmptyCollection)
	}

	// Map iteration order varies between documents; sort for stability.
	sort.Strings(order)

	cols := make([]table.Column, len(order))
	for i, key := range order {
		cols[i] = table.Column{
			Key:        key,
			Label:      key,
			Type:       types[key],
			Sortable:   true,
			Filterable: true,
		}
	}
	return cols, nil
}

// Rows implements Source. Every document becomes one row; BSON-specific
// value types are normalized to the pipeline's Go types.
func (m *Mongo) Rows(ctx context.Context) ([]table.Row, error) {
	cur, err := m.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.coll.Name(), err)
	}
	defer cur.Close(ctx)

	var rows []table.Row
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		row := make(table.Row, len(doc))
		for key, raw := range doc {
			if key == "_id" || raw == nil {
				continue
			}
			row[key] = normalizeBSON(raw)
		}
		rows = append(rows, row)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", m.coll.Name(), err)
	}
	return rows, nil
}

// mongoType maps a BSON value to the pipeline data type.
func mongoType(raw any) table.DataType {
	switch raw.(type) {
	case int32, int64, int:
		return table.TypeInt
	case float32, float64:
		return table.TypeFloat
	case bool:
		return table.TypeBool
	case primitive.DateTime, time.Time:
		return table.TypeTime
	default:
		return table.TypeString
	}
}

// normalizeBSON converts driver-specific values to plain Go types.
func normalizeBSON(raw any) any {
	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case primitive.DateTime:
		return v.Time().UTC()
	default:
		return raw
	}
}

// Ensure Mongo implements Source.
var _ Source = (*Mongo)(nil)
