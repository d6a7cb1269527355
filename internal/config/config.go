// Package config loads and validates the blogfocus configuration file.
package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfig []byte

// supportedVersions is the config schema range this build understands.
const supportedVersions = ">= 1.0, < 2.0"

// Source is one configured post origin.
type Source struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"` // "json" or "rss"
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// CacheConfig controls the on-disk fetch cache.
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Directory string `yaml:"directory,omitempty"`
	TTL       string `yaml:"ttl,omitempty"`
}

// LoggingConfig mirrors the logging section of the config file.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`
	Format     string `yaml:"format,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Config is the full configuration file.
type Config struct {
	Version  string        `yaml:"version"`
	PageSize int           `yaml:"page_size,omitempty"`
	Sources  []Source      `yaml:"sources"`
	Cache    CacheConfig   `yaml:"cache"`
	Logging  LoggingConfig `yaml:"logging"`
}

// defaultCacheTTL applies when the cache section omits a TTL.
const defaultCacheTTL = time.Hour

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "blogfocus", "config.yaml")
}

// DefaultCacheDir returns the cache location under the XDG cache home.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "blogfocus")
}

// GetPageSize returns the configured page size, defaulting to 10.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 10
	}
	return c.PageSize
}

// EnabledSources returns the sources marked enabled, in file order.
func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// CacheTTL returns the cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return defaultCacheTTL
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return defaultCacheTTL
	}
	return d
}

// CacheDir returns the configured cache directory or the XDG default.
func (c *Config) CacheDir() string {
	if c.Cache.Directory != "" {
		return c.Cache.Directory
	}
	return DefaultCacheDir()
}

// Load reads the config at path, falling back to DefaultPath when path is
// empty. On first run the embedded defaults are written to the config path
// and used directly.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Best-effort write; the embedded defaults are used either way.
			_ = writeDefaults(path)
			return parse(defaultConfig)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, defaultConfig, 0o644)
}

// Validate checks the schema version, source entries, and cache settings.
func Validate(cfg *Config) error {
	if cfg.Version != "" {
		v, err := semver.NewVersion(cfg.Version)
		if err != nil {
			return fmt.Errorf("invalid config version %q: %w", cfg.Version, err)
		}
		constraint, err := semver.NewConstraint(supportedVersions)
		if err != nil {
			return fmt.Errorf("parsing version constraint: %w", err)
		}
		if !constraint.Check(v) {
			return fmt.Errorf("config version %s is not supported (want %s)", cfg.Version, supportedVersions)
		}
	}

	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if s.Type != "json" && s.Type != "rss" {
			return fmt.Errorf("source %q: unknown type %q (valid: json, rss)", s.Name, s.Type)
		}
	}

	if cfg.Cache.TTL != "" {
		if _, err := time.ParseDuration(cfg.Cache.TTL); err != nil {
			return fmt.Errorf("cache ttl: %w", err)
		}
	}
	return nil
}
