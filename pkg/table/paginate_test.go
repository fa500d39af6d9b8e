package table

import "testing"

func idRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{"id": i + 1}
	}
	return rows
}

func TestPagerTwelveRowsSizeFive(t *testing.T) {
	rows := idRows(12)
	p := NewPager(5)

	if got := p.TotalPages(len(rows)); got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}
	if got := len(p.Slice(rows)); got != 5 {
		t.Errorf("page 1 has %d rows, want 5", got)
	}

	p.Last(len(rows))
	last := p.Slice(rows)
	if len(last) != 2 {
		t.Errorf("page 3 has %d rows, want 2", len(last))
	}
	if last[0]["id"] != 11 || last[1]["id"] != 12 {
		t.Errorf("page 3 rows = %v", last)
	}
}

func TestPagerPageLengthsSumToTotal(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7, 12, 20} {
		rows := idRows(12)
		p := NewPager(size)

		sum := 0
		for page := 1; page <= p.TotalPages(len(rows)); page++ {
			p.SetPage(page, len(rows))
			n := len(p.Slice(rows))
			if n > size {
				t.Errorf("size %d page %d exceeds page size: %d", size, page, n)
			}
			sum += n
		}
		if sum != len(rows) {
			t.Errorf("size %d: page lengths sum to %d, want %d", size, sum, len(rows))
		}
	}
}

func TestPagerClamping(t *testing.T) {
	rows := idRows(12) // 3 pages of 5
	p := NewPager(5)

	p.SetPage(0, len(rows))
	if p.Page() != 1 {
		t.Errorf("page 0 should clamp to 1, got %d", p.Page())
	}
	p.SetPage(999, len(rows))
	if p.Page() != 3 {
		t.Errorf("page 999 should clamp to 3, got %d", p.Page())
	}
	p.SetPage(-4, len(rows))
	if p.Page() != 1 {
		t.Errorf("negative page should clamp to 1, got %d", p.Page())
	}
}

func TestPagerEmptyCollection(t *testing.T) {
	p := NewPager(5)

	if got := p.TotalPages(0); got != 1 {
		t.Errorf("empty collection TotalPages = %d, want 1", got)
	}
	if got := p.Slice(nil); len(got) != 0 {
		t.Errorf("empty collection page has %d rows", len(got))
	}
	start, end := p.Window(0)
	if start != 0 || end != 0 {
		t.Errorf("empty window = [%d, %d), want [0, 0)", start, end)
	}
}

func TestPagerNavigation(t *testing.T) {
	rows := idRows(12)
	p := NewPager(5)

	p.Next(len(rows))
	if p.Page() != 2 {
		t.Errorf("Next: page = %d, want 2", p.Page())
	}
	p.Next(len(rows))
	p.Next(len(rows)) // already on last page, must not advance
	if p.Page() != 3 {
		t.Errorf("Next past end: page = %d, want 3", p.Page())
	}
	p.Prev()
	if p.Page() != 2 {
		t.Errorf("Prev: page = %d, want 2", p.Page())
	}
	p.First()
	p.Prev() // already on first page, must not retreat
	if p.Page() != 1 {
		t.Errorf("Prev past start: page = %d, want 1", p.Page())
	}
	p.Last(len(rows))
	if p.Page() != 3 {
		t.Errorf("Last: page = %d, want 3", p.Page())
	}
}

func TestPagerSetSizeResetsPage(t *testing.T) {
	rows := idRows(12)
	p := NewPager(5)
	p.Last(len(rows))

	p.SetSize(3)
	if p.Page() != 1 {
		t.Errorf("SetSize should reset to page 1, got %d", p.Page())
	}
	if got := p.TotalPages(len(rows)); got != 4 {
		t.Errorf("TotalPages after resize = %d, want 4", got)
	}

	// Invalid sizes are ignored.
	p.SetPage(2, len(rows))
	p.SetSize(0)
	if p.Size() != 3 || p.Page() != 2 {
		t.Errorf("SetSize(0) should be ignored: size=%d page=%d", p.Size(), p.Page())
	}
}

func TestPagerWindow(t *testing.T) {
	rows := idRows(12)
	p := NewPager(5)

	p.SetPage(2, len(rows))
	start, end := p.Window(len(rows))
	if start != 5 || end != 10 {
		t.Errorf("page 2 window = [%d, %d), want [5, 10)", start, end)
	}

	p.Last(len(rows))
	start, end = p.Window(len(rows))
	if start != 10 || end != 12 {
		t.Errorf("page 3 window = [%d, %d), want [10, 12)", start, end)
	}
}

func TestNewPagerDefaultsSize(t *testing.T) {
	p := NewPager(0)
	if p.Size() != DefaultPageSize {
		t.Errorf("size = %d, want %d", p.Size(), DefaultPageSize)
	}
}
