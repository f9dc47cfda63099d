// Package config loads gfak defaults from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/gfak/config.toml (or
// ~/.config/gfak/config.toml) unless a path is given explicitly. Every key is
// optional; command-line flags override whatever the file sets.
//
//	block_order   = true
//	version       = "2"
//	walks         = false
//	no_cache      = false
//	render_format = "png"
//	labels        = true
//	max_nodes     = 2000
//	cache_url     = "redis://cache.internal:6379/0"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds user defaults for the CLI.
type Config struct {
	BlockOrder   bool   `toml:"block_order"`
	Version      string `toml:"version"`
	Walks        bool   `toml:"walks"`
	NoCache      bool   `toml:"no_cache"`
	RenderFormat string `toml:"render_format"`
	Labels       bool   `toml:"labels"`
	MaxNodes     int    `toml:"max_nodes"`

	// CacheURL selects a Redis cache instead of the cache directory.
	CacheURL string `toml:"cache_url"`

	// Source is the file the values came from, empty for built-in defaults.
	Source  string   `toml:"-"`
	// Unknown lists keys in the file that no field consumed.
	Unknown []string `toml:"-"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{RenderFormat: "svg"}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gfak", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gfak", FileName), nil
}

// Load reads the config at path. An empty path means [DefaultPath], and a
// missing default file yields the built-in defaults. A missing explicit path
// is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errs.Wrap(errs.ErrCodeSourceUnavailable, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "config %s", path)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes TOML config text on top of the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	for _, k := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}
	sort.Strings(cfg.Unknown)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch strings.TrimSpace(c.Version) {
	case "", "1", "1.0", "2", "2.0":
	default:
		return errs.New(errs.ErrCodeInvalidVersion, "version %q: want 1 or 2", c.Version)
	}
	switch c.RenderFormat {
	case "svg", "png", "dot":
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "render_format %q: want svg, png or dot", c.RenderFormat)
	}
	if c.MaxNodes < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_nodes must not be negative")
	}
	return nil
}
