// Package cli implements the chord2svg command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chord2svg/pkg/buildinfo"
	"github.com/matzehuels/chord2svg/pkg/cache"
	"github.com/matzehuels/chord2svg/pkg/config"
	"github.com/matzehuels/chord2svg/pkg/observability"
	"github.com/matzehuels/chord2svg/pkg/pipeline"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chord2svg"

	// defaultOutputDir is where render writes chord files without -o.
	defaultOutputDir = "outputs"
)

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

	// ConfigPath is the --config flag; empty means the default location.
	ConfigPath string

	table *pitch.Table
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		table:  pitch.NewTable(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and server hooks are routed to the log as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		h := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetServerHooks(h)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chord2svg engraves chords as staff notation",
		Long:         `chord2svg lays out chords of quarter-tone pitches on a five-line staff, resolving notehead and accidental collisions, and renders them as SVG, JSON, MIDI, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/chord2svg/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the file named by --config, or the default file.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	r := pipeline.NewRunner(c.table, cc, keyer, c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		r.ArtifactTTL = cfg.Cache.TTL.Duration
	}
	if cfg.Cache.LayoutTTL.Duration > 0 {
		r.LayoutTTL = cfg.Cache.LayoutTTL.Duration
	}
	return r, nil
}

// newCache opens the configured backend. An unusable cache directory
// disables caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil && (cfg.Cache.Backend == cache.BackendFile || cfg.Cache.Backend == "") {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, cfg.Cache.Backend, cfg.Cache.URL, dir)
}

// baseOptions returns pipeline options seeded from the config file.
func baseOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Geometry:   cfg.Geometry,
		Background: cfg.Render.Background,
		PNGScale:   cfg.Render.PNGScale,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chord2svg/).
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

// parseClef maps the --clef flag to a clef. Empty and "auto" mean detect.
func parseClef(s string) (pitch.Clef, error) {
	if s == "" || s == "auto" {
		return "", nil
	}
	return pitch.ParseClef(s)
}
