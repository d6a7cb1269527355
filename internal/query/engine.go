package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

// Derive produces the ordered, filtered view of master for the given state.
// It is a pure function of its inputs: master is never mutated and identical
// inputs always yield identical output. The pipeline order is fixed:
// search, then category filter, then sort. Malformed records are never
// rejected; they degrade through the field defaults on blog.Record.
func Derive(master []blog.Record, s State) []blog.Record {
	view := make([]blog.Record, 0, len(master))

	term := strings.ToLower(strings.TrimSpace(s.SearchTerm))
	for _, r := range master {
		if term != "" && !strings.Contains(strings.ToLower(r.Title), term) {
			continue
		}
		if s.Category != "" && r.Category != s.Category {
			continue
		}
		view = append(view, r)
	}

	sortView(view, s.Sort)
	return view
}

// sortView orders view in place with a stable sort, so ties keep the relative
// order they had after filtering.
func sortView(view []blog.Record, key SortKey) {
	switch key {
	case SortDate:
		// Newest first. Records with unparseable dates rank together after
		// every valid date instead of depending on undefined comparisons.
		sort.SliceStable(view, func(i, j int) bool {
			ti, okI := view[i].PublishedAt()
			tj, okJ := view[j].PublishedAt()
			switch {
			case okI && okJ:
				return ti.After(tj)
			case okI:
				return true
			default:
				return false
			}
		})
	case SortReadingTime:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].SortReadingTime() < view[j].SortReadingTime()
		})
	case SortCategory:
		c := collate.New(language.Und)
		sort.SliceStable(view, func(i, j int) bool {
			return c.CompareString(view[i].Category, view[j].Category) < 0
		})
	case SortNone:
		// Keep incoming order.
	}
}
