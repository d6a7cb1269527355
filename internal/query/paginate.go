package query

import "github.com/fabrizia2/blogfocus/internal/blog"

// Paginate returns the prefix of view exposed to the renderer: the first
// page*pageSize records, or all of view when shorter. Pagination is
// cumulative: page 2 is pages 1 and 2 together, matching a "load more"
// model rather than page-jump navigation.
func Paginate(view []blog.Record, page, pageSize int) []blog.Record {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	end := page * pageSize
	if end > len(view) {
		end = len(view)
	}
	return view[:end]
}

// Slice applies s's pagination to a derived view.
func (s State) Slice(view []blog.Record) []blog.Record {
	return Paginate(view, s.Page, s.PageSize)
}
