// Package cli wires the blogfocus commands: the interactive browser, the
// plain listing, and cache maintenance.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fabrizia2/blogfocus/internal/blog"
	"github.com/fabrizia2/blogfocus/internal/blog/cache"
	"github.com/fabrizia2/blogfocus/internal/config"
	"github.com/fabrizia2/blogfocus/internal/logging"
	"github.com/fabrizia2/blogfocus/internal/session"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command. With no subcommand it opens the
// interactive browser when stdout is a terminal and prints a plain listing
// otherwise.
func NewRootCmd(ver string) *cobra.Command {
	root := &cobra.Command{
		Use:   "blogfocus",
		Short: "Browse a blog post collection from the terminal",
		Long: "blogfocus fetches a blog post collection from configured JSON or RSS\n" +
			"sources and lets you search, filter, sort, and page through it.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(os.Stdout) {
				return runBrowse(cmd)
			}
			return runList(cmd, listOptions{})
		},
	}

	root.PersistentFlags().String("config", "", "path to config file")
	root.PersistentFlags().Bool("debug", false, "enable debug logging to the console")
	root.PersistentFlags().Bool("no-cache", false, "bypass the on-disk fetch cache")

	root.AddCommand(newBrowseCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newCacheCmd())
	return root
}

// setup loads configuration and initializes logging for a command run.
func setup(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.File = ""
	}

	logger = logging.ComponentLogger(logging.New(logCfg), "cli")
	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return cfg, nil
}

// sessionOptions assembles the loader, feed parser, and cache for a session.
// The sink, progress, and error surface stay unset for the caller to wire.
func sessionOptions(cmd *cobra.Command, cfg *config.Config) (session.Options, error) {
	base := logger

	var store blog.CollectionCache
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if cfg.Cache.Enabled && !noCache {
		s, err := cache.New(cfg.CacheDir(), true, cfg.CacheTTL())
		if err != nil {
			return session.Options{}, fmt.Errorf("opening cache: %w", err)
		}
		store = s
	}

	sources := make([]blog.Source, 0, len(cfg.Sources))
	for _, s := range cfg.EnabledSources() {
		sources = append(sources, blog.Source{Name: s.Name, Type: s.Type, URL: s.URL})
	}
	if len(sources) == 0 {
		return session.Options{}, fmt.Errorf("no enabled sources in config")
	}

	return session.Options{
		Sources: sources,
		JSON:    blog.NewLoader(nil, base),
		Feed:    blog.NewFeedLoader(base),
		Cache:   store,
		Logger:  base,
	}, nil
}
