// Package query derives the displayed subset of a post collection. Derivation
// is a pure pipeline over the immutable master collection: free-text search,
// category filter, stable multi-key sort, then cumulative pagination.
package query

import "fmt"

// SortKey selects the ordering applied after filtering.
type SortKey int

const (
	// SortNone preserves the filtered list's incoming order.
	SortNone SortKey = iota

	// SortDate orders newest publish date first.
	SortDate

	// SortReadingTime orders ascending by reading time; absent values sort as 0.
	SortReadingTime

	// SortCategory orders ascending by locale-aware category comparison.
	SortCategory
)

// Sort selector values as they appear on the control surface.
const (
	sortValueDate        = "date"
	sortValueReadingTime = "reading_time"
	sortValueCategory    = "category"
)

// ParseSortKey maps a sort selector value to a SortKey. The empty string is
// SortNone; any other unknown value is an error.
func ParseSortKey(value string) (SortKey, error) {
	switch value {
	case "":
		return SortNone, nil
	case sortValueDate:
		return SortDate, nil
	case sortValueReadingTime:
		return SortReadingTime, nil
	case sortValueCategory:
		return SortCategory, nil
	default:
		return SortNone, fmt.Errorf("invalid sort key %q (valid: date, reading_time, category)", value)
	}
}

func (k SortKey) String() string {
	switch k {
	case SortDate:
		return sortValueDate
	case SortReadingTime:
		return sortValueReadingTime
	case SortCategory:
		return sortValueCategory
	default:
		return "none"
	}
}

// DefaultPageSize is the number of records added per "load more".
const DefaultPageSize = 10

// State is the transient query state of one browsing session. Any change to
// the search term, category, or sort key resets Page to 1; advancing the page
// is the only mutation that leaves the rest of the state untouched.
type State struct {
	SearchTerm string
	Category   string
	Sort       SortKey
	Page       int
	PageSize   int
}

// NewState returns a State showing the first page with the default page size.
func NewState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// SetSearch updates the search term, resetting pagination.
func (s *State) SetSearch(term string) {
	if s.SearchTerm == term {
		return
	}
	s.SearchTerm = term
	s.Page = 1
}

// SetCategory updates the category filter, resetting pagination.
func (s *State) SetCategory(category string) {
	if s.Category == category {
		return
	}
	s.Category = category
	s.Page = 1
}

// SetSort updates the sort key, resetting pagination.
func (s *State) SetSort(key SortKey) {
	if s.Sort == key {
		return
	}
	s.Sort = key
	s.Page = 1
}

// AdvancePage grows the displayed prefix by one page.
func (s *State) AdvancePage() {
	s.Page++
}
