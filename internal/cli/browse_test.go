package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tablekit/tablekit/pkg/table"
)

func newTestModel(t *testing.T) browseModel {
	t.Helper()

	cols := []table.Column{
		{Key: "name", Label: "Name", Type: table.TypeString, Sortable: true, Filterable: true},
		{Key: "age", Label: "Age", Type: table.TypeInt, Sortable: true, Filterable: true},
		{Key: "city", Label: "City", Type: table.TypeString, Sortable: true, Filterable: true},
	}
	rows := []table.Row{
		{"name": "John Doe", "age": 34, "city": "Berlin"},
		{"name": "Alice Smith", "age": 28, "city": "Hamburg"},
		{"name": "Bob Johnson", "age": 34, "city": "Berlin"},
		{"name": "Carol White", "age": 41, "city": "Munich"},
	}

	tbl, err := table.New(rows, cols, 2)
	if err != nil {
		t.Fatalf("table.New() error = %v", err)
	}
	return newBrowseModel("people", tbl)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(m browseModel, keys ...string) browseModel {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(browseModel)
	}
	return m
}

func TestBrowseQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestBrowsePaging(t *testing.T) {
	m := newTestModel(t)

	if got := m.tbl.CurrentPage(); got != 1 {
		t.Fatalf("initial page = %d, want 1", got)
	}
	m = send(m, "right")
	if got := m.tbl.CurrentPage(); got != 2 {
		t.Errorf("page after right = %d, want 2", got)
	}
	m = send(m, "right")
	if got := m.tbl.CurrentPage(); got != 2 {
		t.Errorf("page clamps at last, got %d", got)
	}
	m = send(m, "left")
	if got := m.tbl.CurrentPage(); got != 1 {
		t.Errorf("page after left = %d, want 1", got)
	}
}

func TestBrowseSearch(t *testing.T) {
	m := newTestModel(t)

	m = send(m, "/", "j", "o", "h", "n")
	if !m.searching {
		t.Fatal("expected search mode")
	}
	if got := m.tbl.FilteredLen(); got != 2 {
		t.Errorf("FilteredLen = %d, want 2 while typing", got)
	}

	m = send(m, "enter")
	if m.searching {
		t.Error("enter should leave search mode")
	}
	if got := m.tbl.Search(); got != "john" {
		t.Errorf("Search = %q, want john", got)
	}

	// Esc clears the search entirely.
	m = send(m, "/", "esc")
	if got := m.tbl.FilteredLen(); got != 4 {
		t.Errorf("FilteredLen = %d, want 4 after esc", got)
	}
}

func TestBrowseSearchBackspace(t *testing.T) {
	m := newTestModel(t)

	m = send(m, "/", "x", "y", "backspace", "backspace")
	if got := m.tbl.FilteredLen(); got != 4 {
		t.Errorf("FilteredLen = %d, want 4 after erasing the query", got)
	}
}

func TestBrowseSortToggle(t *testing.T) {
	m := newTestModel(t)

	// Sort by the first column (name).
	m = send(m, "s")
	if got := m.tbl.SortKey(); got != "name" {
		t.Fatalf("SortKey = %q, want name", got)
	}
	if got := m.tbl.SortDirection(); got != table.Ascending {
		t.Errorf("SortDirection = %v, want ascending", got)
	}

	m = send(m, "s")
	if got := m.tbl.SortDirection(); got != table.Descending {
		t.Errorf("SortDirection = %v, want descending after toggle", got)
	}

	m = send(m, "S")
	if m.tbl.SortKey() != "" {
		t.Error("expected sort cleared")
	}
}

func TestBrowseColumnCursor(t *testing.T) {
	m := newTestModel(t)

	m = send(m, "tab", "s")
	if got := m.tbl.SortKey(); got != "age" {
		t.Errorf("SortKey = %q, want age after tab", got)
	}

	// Wrap around.
	m = send(m, "tab", "tab", "s")
	if got := m.tbl.SortKey(); got != "name" {
		t.Errorf("SortKey = %q, want name after wrapping", got)
	}
}

func TestBrowseClear(t *testing.T) {
	m := newTestModel(t)

	m = send(m, "/", "b", "e", "r", "enter", "c")
	if got := m.tbl.FilteredLen(); got != 4 {
		t.Errorf("FilteredLen = %d, want 4 after clear", got)
	}
	if m.tbl.Search() != "" {
		t.Error("expected search cleared")
	}
}

func TestBrowseView(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "people") {
		t.Error("view should contain the dataset name")
	}
	if !strings.Contains(view, "John Doe") {
		t.Error("view should contain first page rows")
	}
	if strings.Contains(view, "Carol White") {
		t.Error("view should not contain rows beyond the page")
	}
	if !strings.Contains(view, "page 1/2") {
		t.Error("view should contain the page indicator")
	}

	m = send(m, "s")
	if !strings.Contains(m.View(), "▲") {
		t.Error("view should mark the ascending sort")
	}
}
