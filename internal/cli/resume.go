package cli

import (
	"context"
	"fmt"

	"github.com/tablekit/tablekit/pkg/session"
	"github.com/tablekit/tablekit/pkg/table"
)

// lastSession loads the resumable CLI session.
func lastSession(ctx context.Context) (*session.Session, error) {
	store, err := session.NewCLIStore("")
	if err != nil {
		return nil, err
	}
	sess, err := store.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("no session to resume")
	}
	return sess, nil
}

// saveLastSession persists the dataset reference and query state so the
// next invocation can pick up with --resume. Failure to save is logged,
// never returned: losing the resume pointer must not fail the command
// that produced it.
func saveLastSession(ctx context.Context, dataset string, q table.Query) {
	store, err := session.NewCLIStore("")
	if err == nil {
		sess := session.New(dataset, session.DefaultTTL)
		sess.Query = q.Normalize()
		err = store.SaveSession(ctx, sess)
	}
	if err != nil {
		loggerFromContext(ctx).Debug("session not saved", "err", err)
	}
}

// overlaySavedQuery starts from the saved query and applies only the
// values whose flags were set on this invocation, so a bare --resume
// repeats the previous query and added flags refine it.
func overlaySavedQuery(saved, flags table.Query, changed func(name string) bool) table.Query {
	q := saved
	if changed("search") {
		q.Search = flags.Search
	}
	if changed("filter") {
		q.Filters = flags.Filters
	}
	if changed("sort") {
		q.SortKey = flags.SortKey
	}
	if changed("dir") {
		q.SortDir = flags.SortDir
	}
	if changed("page") {
		q.Page = flags.Page
	}
	if changed("size") {
		q.Size = flags.Size
	}
	return q
}

// applyQueryState replays a saved query onto an interactive table.
// The page is set last since the other setters reset it.
func applyQueryState(tbl *table.Table, q table.Query) {
	q = q.Normalize()
	tbl.SetPageSize(q.Size)
	tbl.SetSearch(q.Search)
	for col, value := range q.Filters {
		tbl.SetFilter(col, value)
	}
	if q.SortKey != "" {
		tbl.SetSort(q.SortKey)
		if q.SortDir == table.Descending {
			tbl.SetSort(q.SortKey)
		}
	}
	tbl.SetPage(q.Page)
}
