// Package session orchestrates one browsing component: it owns the master
// post collection and the query state, runs loads through the configured
// fetchers and cache, and pushes every derived slice to its sink.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fabrizia2/blogfocus/internal/blog"
	"github.com/fabrizia2/blogfocus/internal/logging"
	"github.com/fabrizia2/blogfocus/internal/query"
)

// Sink receives the slice currently exposed to the renderer. Display is
// called on every state change, including with an empty slice: the sink owns
// the "no results" presentation, the session never substitutes placeholders.
type Sink interface {
	Display(slice []blog.Record)
}

// Progress marks the loading indicator. Done is invoked on every exit path
// of a load, success or failure.
type Progress interface {
	Start()
	Done()
}

// noProgress is the no-op Progress used when none is supplied.
type noProgress struct{}

func (noProgress) Start() {}
func (noProgress) Done()  {}

// Options wires a Session's collaborators.
type Options struct {
	Sources []blog.Source

	// JSON loads json-typed sources; Feed loads rss-typed ones.
	JSON blog.Fetcher
	Feed blog.Fetcher

	// Cache may be nil to disable collection caching.
	Cache blog.CollectionCache

	Sink     Sink
	Progress Progress

	// OnError receives the single user-visible message on load failure.
	OnError func(message string)

	// PageSize overrides the default page size when positive.
	PageSize int

	Logger zerolog.Logger
}

// Session owns the master collection and the query state for one component
// lifetime. The master collection is immutable after load: every displayed
// slice is re-derived from it, never edited in place. All derivation is
// synchronous; the only suspension point is the network read in Refresh.
type Session struct {
	mu      sync.Mutex
	master  []blog.Record
	view    []blog.Record
	state   query.State
	loaded  bool
	loadSeq uint64

	sources  []blog.Source
	json     blog.Fetcher
	feed     blog.Fetcher
	cache    blog.CollectionCache
	sink     Sink
	progress Progress
	onError  func(string)
	logger   zerolog.Logger
}

// New creates a Session showing the first page with no filters.
func New(opts Options) *Session {
	progress := opts.Progress
	if progress == nil {
		progress = noProgress{}
	}
	onError := opts.OnError
	if onError == nil {
		onError = func(string) {}
	}
	state := query.NewState()
	if opts.PageSize > 0 {
		state.PageSize = opts.PageSize
	}
	return &Session{
		state:    state,
		sources:  opts.Sources,
		json:     opts.JSON,
		feed:     opts.Feed,
		cache:    opts.Cache,
		sink:     opts.Sink,
		progress: progress,
		onError:  onError,
		logger:   logging.ComponentLogger(opts.Logger, "session"),
	}
}

// ErrorSurface formats the single user-visible message for a load failure.
func ErrorSurface(err error) string {
	return fmt.Sprintf("Error: %s. Please check the console for details.", err)
}

// Refresh replaces the master collection from the configured sources and
// re-renders. The cache, when present and fresh, answers instead of the
// network. If a slower, older load resolves after a newer one, its result is
// dropped: the collection only moves forward.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	s.progress.Start()
	defer s.progress.Done()

	records, fromCache, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("load failed")
		s.mu.Lock()
		if seq != s.loadSeq {
			// A newer load has been issued; this failure is stale and must
			// not clear its collection or surface an error over it.
			s.mu.Unlock()
			return nil
		}
		s.master = nil
		s.view = nil
		s.loaded = false
		s.mu.Unlock()
		s.sink.Display(nil)
		s.onError(ErrorSurface(err))
		return err
	}

	s.mu.Lock()
	if seq != s.loadSeq {
		// A newer load has been issued; this result is stale.
		s.mu.Unlock()
		return nil
	}
	s.master = records
	s.loaded = true
	s.view = query.Derive(s.master, s.state)
	slice := s.state.Slice(s.view)
	s.mu.Unlock()

	s.logger.Info().
		Int("count", len(records)).
		Bool("from_cache", fromCache).
		Msg("master collection replaced")
	s.sink.Display(slice)
	return nil
}

// fetch answers from the cache when every source hits, otherwise reads all
// sources and repopulates the cache.
func (s *Session) fetch(ctx context.Context) ([]blog.Record, bool, error) {
	if s.cache != nil {
		var cached []blog.Record
		hit := true
		for _, src := range s.sources {
			posts, ok := s.cache.Lookup(src.URL)
			if !ok {
				hit = false
				break
			}
			cached = append(cached, posts...)
		}
		if hit && len(s.sources) > 0 {
			return cached, true, nil
		}
	}

	bySource := make(map[string][]blog.Record, len(s.sources))
	var mu sync.Mutex
	records, err := blog.FetchSources(ctx, s.sources, func(src blog.Source) blog.Fetcher {
		return fetcherFunc(func(ctx context.Context, url string) ([]blog.Record, error) {
			f := s.json
			if src.Type == blog.SourceRSS {
				f = s.feed
			}
			posts, err := f.Load(ctx, url)
			if err == nil {
				mu.Lock()
				bySource[url] = posts
				mu.Unlock()
			}
			return posts, err
		})
	})
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		for url, posts := range bySource {
			if cacheErr := s.cache.Put(url, posts); cacheErr != nil {
				s.logger.Warn().Err(cacheErr).Str("url", url).Msg("could not cache posts")
			}
		}
	}
	return records, false, nil
}

// fetcherFunc adapts a function to the blog.Fetcher interface.
type fetcherFunc func(ctx context.Context, url string) ([]blog.Record, error)

func (f fetcherFunc) Load(ctx context.Context, url string) ([]blog.Record, error) {
	return f(ctx, url)
}

// SetSearch applies a new search term, resetting pagination and re-rendering.
// Debouncing of rapid keystrokes happens at the input edge, not here.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	s.state.SetSearch(term)
	s.rederiveLocked()
	slice := s.state.Slice(s.view)
	s.mu.Unlock()
	s.sink.Display(slice)
}

// SetCategory applies a category filter, resetting pagination and
// re-rendering. An empty category clears the filter.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	s.state.SetCategory(category)
	s.rederiveLocked()
	slice := s.state.Slice(s.view)
	s.mu.Unlock()
	s.sink.Display(slice)
}

// SetSort applies a sort key, resetting pagination and re-rendering.
func (s *Session) SetSort(key query.SortKey) {
	s.mu.Lock()
	s.state.SetSort(key)
	s.rederiveLocked()
	slice := s.state.Slice(s.view)
	s.mu.Unlock()
	s.sink.Display(slice)
}

// AdvancePage grows the displayed prefix by one page and re-renders. The
// derived view is reused; only the slice bound changes.
func (s *Session) AdvancePage() {
	s.mu.Lock()
	s.state.AdvancePage()
	slice := s.state.Slice(s.view)
	s.mu.Unlock()
	s.sink.Display(slice)
}

// rederiveLocked recomputes the view for the current state. Callers hold mu.
func (s *Session) rederiveLocked() {
	s.view = query.Derive(s.master, s.state)
}

// State returns a copy of the current query state.
func (s *Session) State() query.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loaded reports whether a master collection has been loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// ViewLen returns the size of the current filtered view.
func (s *Session) ViewLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.view)
}

// Master returns the master collection. The returned slice must not be
// modified.
func (s *Session) Master() []blog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.master
}
