// Package cli implements the gfak command-line interface.
//
// The commands read one or more GFA files, merge them into a single graph and
// either serialize it again (sort, diff), check it (verify), dump it as JSON
// (export) or draw it (render). Rendered and sorted outputs are cached on
// disk, keyed by input content.
//
// # Commands
//
//   - sort: rewrite a GFA file in natural or block order, optionally
//     converting between GFA1 and GFA2
//   - diff: merge two files and print the union
//   - verify: report references to undeclared records
//   - render: draw segments and links with Graphviz (svg, png, dot)
//   - export: dump the graph model as JSON
//   - cache: inspect or clear the output cache
//
// # Configuration
//
// Defaults come from a TOML file (see package config), and flags override
// them. --verbose (-v) enables debug logging on stderr.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gfak/pkg/buildinfo"
	"github.com/matzehuels/gfak/pkg/cache"
	"github.com/matzehuels/gfak/pkg/config"
	"github.com/matzehuels/gfak/pkg/observability"
	"github.com/matzehuels/gfak/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gfak"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config holds file defaults, loaded before any command runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gfak sorts, converts, checks and draws GFA assembly graphs",
		Long:         `gfak is a toolkit for Graphical Fragment Assembly files. It reads GFA1 and GFA2, keeps every record and optional field it does not understand, and writes them back in a stable order, converting between the two versions on request.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			hooks := logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gfak/config.toml)")

	root.AddCommand(c.sortCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	for _, k := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", k, "path", cfg.Source)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CachePrefix())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.NoCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.CacheURL != "" {
		return cache.NewRedisCache(c.Config.CacheURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gfak/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
