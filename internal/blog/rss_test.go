package blog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Blog</title>
    <item>
      <title>Shipping at the Edge</title>
      <description>How we ship software to edge nodes.</description>
      <category>Infrastructure</category>
      <pubDate>Mon, 10 Jun 2024 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Bare item</title>
    </item>
  </channel>
</rss>`

func TestFeedLoader_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	loader := NewFeedLoader(zerolog.Nop())
	records, err := loader.Load(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Shipping at the Edge", records[0].Title)
	assert.Equal(t, "Infrastructure", records[0].Category)
	assert.Equal(t, "How we ship software to edge nodes.", records[0].Content)
	published, ok := records[0].PublishedAt()
	require.True(t, ok, "feed dates are normalized to an accepted layout")
	assert.Equal(t, 2024, published.Year())

	assert.Equal(t, "Bare item", records[1].Title)
	assert.Equal(t, DefaultAuthor, records[1].DisplayAuthor())
}

func TestFeedLoader_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	loader := NewFeedLoader(zerolog.Nop())
	_, err := loader.Load(context.Background(), server.URL)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindHTTPStatus, loadErr.Kind)
	assert.Equal(t, http.StatusForbidden, loadErr.Status)
}

func TestFeedRecord_Mapping(t *testing.T) {
	item := &gofeed.Item{
		Title:       "Mapped",
		Description: "desc",
		Content:     "full content",
		Categories:  []string{"First", "Second"},
		Published:   "2024-06-10",
		Author:      &gofeed.Person{Name: "Ada"},
		Image:       &gofeed.Image{URL: "https://example.test/x.png"},
	}

	r := feedRecord(item)
	assert.Equal(t, "Mapped", r.Title)
	assert.Equal(t, "full content", r.Content, "content wins over description")
	assert.Equal(t, "First", r.Category)
	assert.Equal(t, "Ada", r.Author)
	assert.Equal(t, "https://example.test/x.png", r.ImageURL)
}
