package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

func intPtr(n int) *int {
	return &n
}

func post(title, category, published string) blog.Record {
	return blog.Record{Title: title, Category: category, PublishedDate: published}
}

func titles(records []blog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestDerive_Search(t *testing.T) {
	master := []blog.Record{
		post("AI in 2024", "Tech", "2024-01-10"),
		post("Gardening Tips", "Lifestyle", "2024-02-01"),
		post("The ai revolution", "Tech", "2024-03-01"),
	}

	tests := []struct {
		name       string
		term       string
		wantTitles []string
	}{
		{
			name:       "empty term keeps all",
			term:       "",
			wantTitles: []string{"AI in 2024", "Gardening Tips", "The ai revolution"},
		},
		{
			name:       "substring match on title",
			term:       "AI",
			wantTitles: []string{"AI in 2024", "The ai revolution"},
		},
		{
			name:       "case variation yields identical result set",
			term:       "ai",
			wantTitles: []string{"AI in 2024", "The ai revolution"},
		},
		{
			name:       "no match",
			term:       "quantum",
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Derive(master, State{SearchTerm: tt.term})
			assert.Equal(t, tt.wantTitles, titles(view))
		})
	}
}

func TestDerive_CategoryFilter(t *testing.T) {
	master := []blog.Record{
		post("One", "Tech", ""),
		post("Two", "tech", ""),
		post("Three", "", ""),
		post("Four", "Tech", ""),
	}

	t.Run("exact case-sensitive match", func(t *testing.T) {
		view := Derive(master, State{Category: "Tech"})
		assert.Equal(t, []string{"One", "Four"}, titles(view))
	})

	t.Run("empty category keeps all", func(t *testing.T) {
		view := Derive(master, State{})
		assert.Len(t, view, len(master))
	})
}

func TestDerive_Pure(t *testing.T) {
	master := []blog.Record{
		post("B post", "Tech", "2024-01-01"),
		post("A post", "Art", "2024-06-01"),
		post("C post", "Tech", "2023-12-01"),
	}
	state := State{SearchTerm: "post", Category: "Tech", Sort: SortDate}

	first := Derive(master, state)
	second := Derive(master, state)
	assert.Equal(t, first, second, "identical inputs must yield identical output")

	// The master collection is never reordered or mutated.
	assert.Equal(t, []string{"B post", "A post", "C post"}, titles(master))
}

func TestDerive_Narrowing(t *testing.T) {
	master := []blog.Record{
		post("AI in 2024", "Tech", ""),
		post("Gardening Tips", "Lifestyle", ""),
	}

	for _, state := range []State{
		{},
		{SearchTerm: "ai"},
		{Category: "Tech"},
		{SearchTerm: "ai", Category: "Lifestyle"},
	} {
		view := Derive(master, state)
		assert.LessOrEqual(t, len(view), len(master))
	}
}

func TestDerive_SortDate(t *testing.T) {
	master := []blog.Record{
		post("oldest", "", "2023-01-01"),
		post("bad-date-1", "", "not a date"),
		post("newest", "", "2024-06-15T10:00:00Z"),
		post("bad-date-2", "", "also junk"),
		post("middle", "", "2024-01-01"),
	}

	view := Derive(master, State{Sort: SortDate})
	assert.Equal(
		t,
		[]string{"newest", "middle", "oldest", "bad-date-1", "bad-date-2"},
		titles(view),
		"newest first; unparseable dates rank last, keeping their relative order",
	)
}

func TestDerive_SortReadingTime(t *testing.T) {
	master := []blog.Record{
		{Title: "long", ReadingTimeMinutes: intPtr(12)},
		{Title: "absent"},
		{Title: "short", ReadingTimeMinutes: intPtr(3)},
	}

	view := Derive(master, State{Sort: SortReadingTime})
	require.Equal(t, []string{"absent", "short", "long"}, titles(view),
		"absent reading time sorts as 0")

	// The display default is untouched by sorting.
	assert.Equal(t, blog.DefaultReadingTime, view[0].DisplayReadingTime())
}

func TestDerive_SortCategory(t *testing.T) {
	master := []blog.Record{
		post("c", "Tech", ""),
		post("b", "", ""),
		post("a", "Art", ""),
	}

	view := Derive(master, State{Sort: SortCategory})
	assert.Equal(t, []string{"b", "a", "c"}, titles(view),
		"absent category sorts as empty string, first")
}

func TestDerive_SortNoneIsStable(t *testing.T) {
	master := []blog.Record{
		post("first", "Tech", ""),
		post("skip", "Art", ""),
		post("second", "Tech", ""),
		post("third", "Tech", ""),
	}

	view := Derive(master, State{Category: "Tech", Sort: SortNone})
	assert.Equal(t, []string{"first", "second", "third"}, titles(view),
		"output order equals the filtered subsequence's relative order")
}

func TestDerive_StartupsScenario(t *testing.T) {
	// 15 records, 5 tagged Startups with distinct dates.
	var master []blog.Record
	dates := []string{"2024-03-01", "2024-05-01", "2024-01-01", "2024-04-01", "2024-02-01"}
	for i := 0; i < 10; i++ {
		master = append(master, post("filler", "Tech", "2024-06-01"))
	}
	names := []string{"s-mar", "s-may", "s-jan", "s-apr", "s-feb"}
	for i, d := range dates {
		master = append(master, post(names[i], "Startups", d))
	}
	require.Len(t, master, 15)

	state := NewState()
	state.SetCategory("Startups")
	state.SetSort(SortDate)

	view := Derive(master, state)
	require.Len(t, view, 5)
	assert.Equal(t, []string{"s-may", "s-apr", "s-mar", "s-feb", "s-jan"}, titles(view))

	// 5 < page size 10, so page 1 shows all of them.
	assert.Len(t, state.Slice(view), 5)
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		value   string
		want    SortKey
		wantErr bool
	}{
		{value: "", want: SortNone},
		{value: "date", want: SortDate},
		{value: "reading_time", want: SortReadingTime},
		{value: "category", want: SortCategory},
		{value: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			got, err := ParseSortKey(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestState_PageResets(t *testing.T) {
	s := NewState()
	s.AdvancePage()
	s.AdvancePage()
	require.Equal(t, 3, s.Page)

	s.SetSearch("ai")
	assert.Equal(t, 1, s.Page, "search change resets page")

	s.AdvancePage()
	s.SetCategory("Tech")
	assert.Equal(t, 1, s.Page, "category change resets page")

	s.AdvancePage()
	s.SetSort(SortDate)
	assert.Equal(t, 1, s.Page, "sort change resets page")

	// Setting the same value again is a no-op and keeps the page.
	s.AdvancePage()
	s.SetSearch("ai")
	s.SetCategory("Tech")
	s.SetSort(SortDate)
	assert.Equal(t, 2, s.Page)
}
