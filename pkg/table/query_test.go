package table

import (
	"context"
	"testing"
)

func TestQueryApply(t *testing.T) {
	ctx := context.Background()
	res := Query{
		Filters: map[string]string{"city": "berlin"},
		SortKey: "name",
		SortDir: Ascending,
		Page:    1,
		Size:    1,
	}.Apply(ctx, peopleRows(), peopleColumns(), nil)

	if res.Total != 4 || res.Filtered != 2 {
		t.Errorf("counts total=%d filtered=%d, want 4/2", res.Total, res.Filtered)
	}
	if res.TotalPages != 2 || res.Page != 1 {
		t.Errorf("pages %d/%d, want 1/2", res.Page, res.TotalPages)
	}
	if len(res.Rows) != 1 || res.Rows[0]["name"] != "Bob Johnson" {
		t.Errorf("rows = %v", res.Rows)
	}
	if res.Start != 0 || res.End != 1 {
		t.Errorf("window = [%d, %d)", res.Start, res.End)
	}
}

func TestQueryApplyClampsPage(t *testing.T) {
	res := Query{Page: 999, Size: 5}.Apply(context.Background(), peopleRows(), peopleColumns(), nil)
	if res.Page != 1 {
		t.Errorf("page = %d, want 1 (4 rows, size 5)", res.Page)
	}
	if len(res.Rows) != 4 {
		t.Errorf("rows = %d, want 4", len(res.Rows))
	}
}

func TestQueryApplyZeroValue(t *testing.T) {
	res := Query{}.Apply(context.Background(), peopleRows(), peopleColumns(), nil)
	if res.Page != 1 || res.Filtered != 4 {
		t.Errorf("zero query: page=%d filtered=%d", res.Page, res.Filtered)
	}
	// Default page size applies.
	if res.End != 4 {
		t.Errorf("end = %d, want 4", res.End)
	}
}

func TestQueryApplyIgnoresUnsortableKey(t *testing.T) {
	cols := peopleColumns()
	cols[0].Sortable = false
	res := Query{SortKey: "name", SortDir: Descending}.Apply(context.Background(), peopleRows(), cols, nil)
	if res.Rows[0]["name"] != "John Doe" {
		t.Errorf("unsortable key should keep source order, got %v", res.Rows[0]["name"])
	}
}

func TestQueryNormalize(t *testing.T) {
	q := Query{Page: -1, SortKey: "age"}.Normalize()
	if q.Page != 1 || q.Size != DefaultPageSize {
		t.Errorf("normalized page/size = %d/%d", q.Page, q.Size)
	}
	if q.SortDir != Ascending {
		t.Errorf("active key without direction should sort ascending, got %v", q.SortDir)
	}

	q = Query{SortDir: Descending}.Normalize()
	if q.SortDir != DirectionNone {
		t.Errorf("direction without key should be dropped, got %v", q.SortDir)
	}
}
