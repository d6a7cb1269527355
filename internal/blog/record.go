// Package blog holds the blog post data model and the loaders that retrieve
// the master collection from remote JSON and RSS sources.
package blog

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Display defaults substituted for absent record fields.
const (
	DefaultAuthor      = "Unknown"
	DefaultCategory    = "General"
	DefaultReadingTime = 5
)

// excerptRunes is the length of the content prefix shown on a card.
const excerptRunes = 150

// Record is one blog post as delivered by a data source. Fields that the wire
// format may omit keep their zero value (or nil for ReadingTimeMinutes) and
// are defaulted at display time, never rewritten in the master collection.
type Record struct {
	Title              string `json:"title"`
	Content            string `json:"content"`
	Category           string `json:"category"`
	ReadingTimeMinutes *int   `json:"readingTimeMinutes,omitempty"`
	PublishedDate      string `json:"publishedDate"`
	Author             string `json:"author,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
}

// DisplayAuthor returns the author, or "Unknown" when absent.
func (r Record) DisplayAuthor() string {
	if r.Author == "" {
		return DefaultAuthor
	}
	return r.Author
}

// DisplayCategory returns the category, or "General" when absent.
func (r Record) DisplayCategory() string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}

// DisplayReadingTime returns the reading time in minutes, defaulting to 5
// when the source omitted it.
func (r Record) DisplayReadingTime() int {
	if r.ReadingTimeMinutes == nil {
		return DefaultReadingTime
	}
	return *r.ReadingTimeMinutes
}

// SortReadingTime returns the reading time used for ordering. Absent values
// sort as 0, not as the display default.
func (r Record) SortReadingTime() int {
	if r.ReadingTimeMinutes == nil {
		return 0
	}
	return *r.ReadingTimeMinutes
}

// publishedLayouts are tried in order when parsing PublishedDate.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PublishedAt parses PublishedDate. ok is false when the value is absent or
// not parseable with any accepted layout.
func (r Record) PublishedAt() (time.Time, bool) {
	s := strings.TrimSpace(r.PublishedDate)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate returns the publish date formatted for a card, falling back to
// the raw string when it cannot be parsed.
func (r Record) DisplayDate() string {
	t, ok := r.PublishedAt()
	if !ok {
		return r.PublishedDate
	}
	return t.Format("Jan 2, 2006")
}

// Excerpt returns the first 150 characters of the HTML-stripped content with
// a trailing ellipsis when truncated.
func (r Record) Excerpt() string {
	plain := stripHTML(r.Content)
	runes := []rune(plain)
	if len(runes) <= excerptRunes {
		return plain
	}
	return string(runes[:excerptRunes]) + "..."
}

// stripHTML extracts the text content of s, collapsing whitespace. Content
// that is not HTML passes through unchanged apart from whitespace folding.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
