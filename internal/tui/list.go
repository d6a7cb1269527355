package tui

import (
	"fmt"
	"strings"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

// cardLines is the height of one rendered card: title, meta, excerpt, blank.
const cardLines = 4

// renderCard renders one post as a card: title, meta line, excerpt prefix.
func renderCard(r blog.Record, selected bool, width int) string {
	if width < 20 {
		width = 60
	}

	title := "  " + truncateStr(r.Title, width-4)
	if selected {
		title = cardTitleSelectedStyle.Render("> " + truncateStr(r.Title, width-4))
	} else {
		title = cardTitleStyle.Render(title)
	}

	meta := cardMetaStyle.Render(fmt.Sprintf("  %s · %s · %d min read · %s",
		r.DisplayAuthor(),
		r.DisplayCategory(),
		r.DisplayReadingTime(),
		r.DisplayDate(),
	))

	excerpt := cardExcerptStyle.Render("  " + truncateStr(r.Excerpt(), width-4))

	return title + "\n" + meta + "\n" + excerpt
}

// renderSlice renders the visible window of the displayed slice, keeping the
// cursor in view. An empty slice renders the distinguishable no-results
// state, optionally with a search suggestion.
func renderSlice(slice []blog.Record, cursor, height, width int, suggestion string) string {
	if len(slice) == 0 {
		empty := emptyStyle.Render("No posts found.")
		if suggestion != "" {
			empty += "\n" + emptyStyle.Render("Did you mean ") +
				suggestionStyle.Render(suggestion) +
				emptyStyle.Render("?")
		}
		return empty
	}

	visible := height / cardLines
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(slice) {
		end = len(slice)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderCard(slice[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
