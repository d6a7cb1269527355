package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/fabrizia2/blogfocus/internal/logging"
)

// ErrorKind classifies load failures.
type ErrorKind int

const (
	// KindNetwork is a transport-level failure (DNS, connect, timeout).
	KindNetwork ErrorKind = iota

	// KindHTTPStatus is a non-2xx response from the data source.
	KindHTTPStatus

	// KindMalformedResponse is a body that does not decode to a post array.
	KindMalformedResponse
)

// LoadError is the terminal error for one load attempt. All kinds funnel to
// a single user-visible message; the kind itself is only logged.
type LoadError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("Failed to fetch blogs (Status: %d)", e.Status)
	case KindMalformedResponse:
		return fmt.Sprintf("malformed blog response: %v", e.Err)
	default:
		return fmt.Sprintf("fetching blogs: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 32 << 20

// defaultLoadTimeout bounds a single load when the caller's context has no
// deadline of its own.
const defaultLoadTimeout = 30 * time.Second

// Loader retrieves a full post collection from a JSON endpoint in one read.
// There is no retry policy; a failed load is surfaced and the caller decides
// whether to trigger another.
type Loader struct {
	client *http.Client
	logger zerolog.Logger
}

// NewLoader creates a Loader. A nil client falls back to a client with the
// default load timeout; timeouts are otherwise delegated to the transport.
func NewLoader(client *http.Client, logger zerolog.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: defaultLoadTimeout}
	}
	return &Loader{
		client: client,
		logger: logging.ComponentLogger(logger, "loader"),
	}
}

// Load issues a single GET against url and decodes the body as a JSON array
// of records. On success the returned slice is the complete new master
// collection; partial results are never returned.
func (l *Loader) Load(ctx context.Context, url string) ([]Record, error) {
	requestID := ulid.Make().String()
	log := l.logger.With().Str("request_id", requestID).Str("url", url).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("transport failure")
		return nil, &LoadError{Kind: KindNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Msg("unexpected status")
		return nil, &LoadError{Kind: KindHTTPStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Err: err}
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		log.Error().Err(err).Msg("response did not decode to a post array")
		return nil, &LoadError{Kind: KindMalformedResponse, Err: err}
	}

	log.Debug().
		Int("count", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("loaded posts")
	return records, nil
}
