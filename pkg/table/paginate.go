package table

// DefaultPageSize is the page size used when none is supplied.
const DefaultPageSize = 10

// Pager tracks the current page window over an ordered collection.
// Pages are 1-based. Every navigation operation clamps the resulting page
// into [1, TotalPages] instead of erroring on out-of-range requests, and
// an empty collection still has exactly one (empty) page.
type Pager struct {
	page int
	size int
}

// NewPager creates a pager on page 1 with the given page size.
// Sizes below 1 fall back to DefaultPageSize.
func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{page: 1, size: size}
}

// Page returns the current 1-based page number.
func (p *Pager) Page() int { return p.page }

// Size returns the current page size.
func (p *Pager) Size() int { return p.size }

// TotalPages returns ceil(total/size), with a minimum of one page even
// when the collection is empty.
func (p *Pager) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.size - 1) / p.size
}

// SetPage requests a page and clamps it into [1, TotalPages(total)].
func (p *Pager) SetPage(n, total int) {
	p.page = clamp(n, 1, p.TotalPages(total))
}

// SetSize changes the page size and resets to page 1.
// Sizes below 1 are ignored.
func (p *Pager) SetSize(n int) {
	if n < 1 {
		return
	}
	p.size = n
	p.page = 1
}

// Reset returns to page 1.
func (p *Pager) Reset() { p.page = 1 }

// First navigates to page 1.
func (p *Pager) First() { p.page = 1 }

// Prev navigates one page back, clamping at the first page.
func (p *Pager) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// Next navigates one page forward, clamping at the last page.
func (p *Pager) Next(total int) {
	if p.page < p.TotalPages(total) {
		p.page++
	}
}

// Last navigates to the final page.
func (p *Pager) Last(total int) { p.page = p.TotalPages(total) }

// Window returns the zero-based [start, end) indices of the current page
// within a collection of the given length, for "showing X–Y of Z" display.
// An empty collection yields (0, 0).
func (p *Pager) Window(total int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	page := clamp(p.page, 1, p.TotalPages(total))
	start = (page - 1) * p.size
	end = start + p.size
	if end > total {
		end = total
	}
	return start, end
}

// Slice returns the current page of rows. The slice aliases the input
// backing array; callers must not mutate it.
func (p *Pager) Slice(rows []Row) []Row {
	start, end := p.Window(len(rows))
	return rows[start:end]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
