package cli

import (
	"context"
	"reflect"
	"testing"

	"github.com/tablekit/tablekit/pkg/table"
)

func TestOverlaySavedQuery(t *testing.T) {
	saved := table.Query{
		Search:  "berlin",
		Filters: map[string]string{"age": "34"},
		SortKey: "name",
		SortDir: table.Descending,
		Page:    2,
		Size:    5,
	}
	flags := table.Query{
		Search: "munich",
		Page:   1,
		Size:   10,
	}

	changedFlags := map[string]bool{"search": true, "page": true}
	got := overlaySavedQuery(saved, flags, func(name string) bool { return changedFlags[name] })

	if got.Search != "munich" {
		t.Errorf("Search = %q, want the flag value munich", got.Search)
	}
	if got.Page != 1 {
		t.Errorf("Page = %d, want the flag value 1", got.Page)
	}
	if got.Filters["age"] != "34" || got.SortKey != "name" || got.SortDir != table.Descending || got.Size != 5 {
		t.Errorf("unchanged fields not kept from saved query: %+v", got)
	}
}

func TestOverlaySavedQueryNoFlags(t *testing.T) {
	saved := table.Query{Search: "berlin", SortKey: "name", Page: 3, Size: 2}
	got := overlaySavedQuery(saved, table.Query{}, func(string) bool { return false })
	if !reflect.DeepEqual(got, saved) {
		t.Errorf("bare resume should repeat the saved query, got %+v", got)
	}
}

func TestApplyQueryState(t *testing.T) {
	m := newTestModel(t)
	tbl := m.tbl

	applyQueryState(tbl, table.Query{
		Search:  "berlin",
		SortKey: "name",
		SortDir: table.Descending,
		Page:    1,
		Size:    1,
	})

	if tbl.Search() != "berlin" {
		t.Errorf("Search = %q, want berlin", tbl.Search())
	}
	if tbl.SortKey() != "name" || tbl.SortDirection() != table.Descending {
		t.Errorf("sort = %s/%v, want name descending", tbl.SortKey(), tbl.SortDirection())
	}
	if tbl.FilteredLen() != 2 {
		t.Errorf("FilteredLen = %d, want the 2 berlin rows", tbl.FilteredLen())
	}
	page := tbl.Page()
	if len(page) != 1 || page[0]["name"] != "John Doe" {
		t.Errorf("page = %v, want John Doe first under descending name sort", page)
	}
}

func TestSaveAndResumeLastSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ctx := context.Background()

	if _, err := lastSession(ctx); err == nil {
		t.Fatal("expected an error before any session was saved")
	}

	saveLastSession(ctx, "data/people.csv", table.Query{Search: "berlin", Page: 2, Size: 5})

	sess, err := lastSession(ctx)
	if err != nil {
		t.Fatalf("lastSession() error = %v", err)
	}
	if sess.DatasetHash != "data/people.csv" {
		t.Errorf("dataset = %q, want data/people.csv", sess.DatasetHash)
	}
	if sess.Query.Search != "berlin" || sess.Query.Page != 2 || sess.Query.Size != 5 {
		t.Errorf("Query = %+v, want the saved query back", sess.Query)
	}
}
