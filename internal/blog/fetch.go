package blog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Source types accepted in configuration.
const (
	SourceJSON = "json"
	SourceRSS  = "rss"
)

// maxConcurrentFetches bounds how many sources are read at once.
const maxConcurrentFetches = 4

// Source is one configured post origin.
type Source struct {
	Name string
	Type string
	URL  string
}

// Fetcher loads a full post collection from one URL.
type Fetcher interface {
	Load(ctx context.Context, url string) ([]Record, error)
}

// CollectionCache answers previously fetched collections per source URL.
// A nil cache means every fetch goes to the network.
type CollectionCache interface {
	// Lookup returns the cached posts for sourceURL, ok=false on miss.
	Lookup(sourceURL string) ([]Record, bool)

	// Put stores posts for sourceURL.
	Put(sourceURL string, posts []Record) error
}

// FetchSources reads every source concurrently and concatenates the results
// in source order. One failing source is tolerated as long as at least one
// succeeds; when every source fails, the first error is returned.
func FetchSources(
	ctx context.Context,
	sources []Source,
	pick func(Source) Fetcher,
) ([]Record, error) {
	results := make([][]Record, len(sources))
	errs := make([]error, len(sources))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, src := range sources {
		g.Go(func() error {
			records, err := pick(src).Load(gctx, src.URL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	var merged []Record
	var firstErr error
	succeeded := false
	for i := range sources {
		if errs[i] != nil {
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		succeeded = true
		merged = append(merged, results[i]...)
	}

	if !succeeded && firstErr != nil {
		return nil, firstErr
	}
	return merged, nil
}
