package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

func TestRenderSlice_EmptyState(t *testing.T) {
	out := renderSlice(nil, 0, 20, 80, "")
	assert.Contains(t, out, "No posts found.")

	withSuggestion := renderSlice(nil, 0, 20, 80, "kubernetes")
	assert.Contains(t, withSuggestion, "Did you mean")
	assert.Contains(t, withSuggestion, "kubernetes")
}

func TestRenderSlice_Cards(t *testing.T) {
	minutes := 7
	slice := []blog.Record{
		{
			Title:              "AI in 2024",
			Content:            "A look at the year ahead.",
			Category:           "Tech",
			Author:             "Ada",
			ReadingTimeMinutes: &minutes,
			PublishedDate:      "2024-01-10",
		},
		{Title: "Bare post"},
	}

	out := renderSlice(slice, 0, 40, 80, "")
	assert.Contains(t, out, "AI in 2024")
	assert.Contains(t, out, "Ada · Tech · 7 min read · Jan 10, 2024")

	// Defaults substitute for the bare record.
	assert.Contains(t, out, "Unknown · General · 5 min read")
}

func TestRenderSlice_CursorWindow(t *testing.T) {
	var slice []blog.Record
	for i := 0; i < 30; i++ {
		slice = append(slice, blog.Record{Title: "post-" + strings.Repeat("x", i%5)})
	}

	// A short viewport shows a window around the cursor, not all 30 cards.
	out := renderSlice(slice, 29, cardLines*3, 80, "")
	lines := strings.Count(out, "\n") + 1
	assert.Less(t, lines, 30*cardLines)
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "short", truncateStr("short", 10))
	assert.Equal(t, "exactly", truncateStr("exactly", 7))
	assert.Equal(t, "long te...", truncateStr("long text here", 10))
	assert.Equal(t, "", truncateStr("anything", 0))
}

func TestCollectCategories(t *testing.T) {
	master := []blog.Record{
		{Category: "Tech"},
		{Category: ""},
		{Category: "Art"},
		{Category: "Tech"},
	}
	assert.Equal(t, []string{"Art", "Tech"}, collectCategories(master))
}
