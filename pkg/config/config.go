// Package config loads chord2svg settings from a TOML file.
//
// Every field is optional. A minimal file overriding the line spacing
// and moving the cache to Redis looks like:
//
//	[geometry]
//	line_spacing = 12
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//	ttl = "72h"
//	layout_ttl = "24h"
//	prefix = "staging:"
//
// Zero geometry fields keep their defaults, so partial files are safe.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chord2svg/pkg/cache"
	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/layout"
)

const (
	appName  = "chord2svg"
	fileName = "config.toml"
)

// Config is the full configuration file.
type Config struct {
	Geometry layout.Geometry `toml:"geometry"`
	Cache    Cache           `toml:"cache"`
	Render   Render          `toml:"render"`
	Server   Server          `toml:"server"`
}

// Cache selects and tunes the artifact cache.
//
// TTL bounds rendered artifacts and LayoutTTL computed layouts. Prefix
// scopes every key, so several deployments can share one backend.
type Cache struct {
	Backend   string   `toml:"backend"`
	URL       string   `toml:"url"`
	TTL       Duration `toml:"ttl"`
	LayoutTTL Duration `toml:"layout_ttl"`
	Prefix    string   `toml:"prefix"`
}

// Render holds output defaults.
type Render struct {
	Background string  `toml:"background"`
	PNGScale   float64 `toml:"png_scale"`
}

// Server holds HTTP API defaults.
type Server struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration is a time.Duration written as a string such as "36h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Geometry: layout.DefaultGeometry(),
		Cache: Cache{
			Backend:   cache.BackendFile,
			TTL:       Duration{cache.ArtifactTTL},
			LayoutTTL: Duration{cache.LayoutTTL},
		},
		Render: Render{PNGScale: 2},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/chord2svg/config.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path on top of the defaults and validates the result.
// An empty path loads the default file if it exists and the defaults
// otherwise; an explicit path must exist.
func Load(path string) (Config, error) {
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		if _, err := os.Stat(def); err != nil {
			return Default(), nil
		}
		path = def
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of the defaults and validates it.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.Geometry = cfg.Geometry.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks geometry and cache settings.
func (c Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendNone, "":
	case cache.BackendRedis, cache.BackendMongo:
		if err := errors.ValidateURL(c.Cache.URL); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, none, redis, mongo)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 || c.Cache.LayoutTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	if c.Render.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale cannot be negative")
	}
	return nil
}
