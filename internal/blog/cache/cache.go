// Package cache stores fetched post collections on disk with TTL expiry, so
// repeated launches inside the freshness window skip the network entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

// entryExtension is the file extension used for cache entries.
const entryExtension = ".json"

// Common cache errors.
var (
	ErrNotFound = errors.New("cache entry not found")
	ErrExpired  = errors.New("cache entry expired")
	ErrDisabled = errors.New("cache is disabled")
)

// Entry is one cached post collection for a single source URL.
type Entry struct {
	SourceURL string        `json:"source_url"`
	Posts     []blog.Record `json:"posts"`
	FetchedAt time.Time     `json:"fetched_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry time.
func (e *Entry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the time since the entry was fetched.
func (e *Entry) Age() time.Duration {
	return time.Since(e.FetchedAt)
}

// Store is a file-based cache of post collections, one JSON file per source
// URL. Writes go through a temp file plus rename so readers never observe a
// partial entry. Safe for concurrent use.
type Store struct {
	directory string
	enabled   bool
	ttl       time.Duration

	mu sync.RWMutex
}

// New creates a Store rooted at directory, creating it when missing. A
// disabled store accepts calls but answers ErrDisabled.
func New(directory string, enabled bool, ttl time.Duration) (*Store, error) {
	if !enabled {
		return &Store{enabled: false}, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{directory: directory, enabled: true, ttl: ttl}, nil
}

// Get returns the cached collection for sourceURL. Expired entries are
// removed and reported as ErrExpired.
func (s *Store) Get(sourceURL string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	s.mu.RLock()
	path := s.entryPath(sourceURL)
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	if entry.Expired() {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return &entry, nil
}

// Put stores posts for sourceURL, overwriting any previous entry.
func (s *Store) Put(sourceURL string, posts []blog.Record) error {
	if !s.enabled {
		return ErrDisabled
	}

	now := time.Now()
	entry := Entry{
		SourceURL: sourceURL,
		Posts:     posts,
		FetchedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	data, err := json.MarshalIndent(&entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.entryPath(sourceURL)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Lookup returns the cached posts for sourceURL, ok=false on any miss
// (absent, expired, disabled, or unreadable). It satisfies the session's
// collection-cache dependency.
func (s *Store) Lookup(sourceURL string) ([]blog.Record, bool) {
	entry, err := s.Get(sourceURL)
	if err != nil {
		return nil, false
	}
	return entry.Posts, true
}

// Clear removes every cache entry.
func (s *Store) Clear() error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != entryExtension {
			continue
		}
		if err := os.Remove(filepath.Join(s.directory, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// CleanupExpired removes expired entries. Unreadable or undecodable files
// are skipped, not treated as errors.
func (s *Store) CleanupExpired() error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryExtension {
			continue
		}
		path := filepath.Join(s.directory, dirEntry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if entry.Expired() {
			_ = os.Remove(path)
		}
	}
	return nil
}

// Enabled reports whether the store is active.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Directory returns the cache directory path.
func (s *Store) Directory() string {
	return s.directory
}

// entryPath maps a source URL to its cache file. URLs are hashed so the file
// name is filesystem-safe regardless of the URL's contents.
func (s *Store) entryPath(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return filepath.Join(s.directory, hex.EncodeToString(sum[:16])+entryExtension)
}
