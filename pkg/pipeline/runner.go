package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/cache"
	chordio "github.com/matzehuels/chord2svg/pkg/io"
	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/observability"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the HTTP server both use it.
//
// The Runner holds only the pitch table, cache and logger, none of which
// change after construction, so one Runner may serve many goroutines.
type Runner struct {
	Table  *pitch.Table
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// LayoutTTL and ArtifactTTL bound how long layouts and rendered
	// artifacts stay cached.
	LayoutTTL   time.Duration
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// A nil table builds the standard pitch table, a nil keyer uses
// DefaultKeyer and a nil cache disables caching.
func NewRunner(t *pitch.Table, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if t == nil {
		t = pitch.NewTable()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Table:       t,
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		LayoutTTL:   cache.LayoutTTL,
		ArtifactTTL: cache.ArtifactTTL,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NoteCount = len(l.Notes)
	result.Stats.Unresolved = unresolvedCount(l)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Debug("computed layout",
		"clef", l.Clef,
		"notes", result.Stats.NoteCount,
		"unresolved", result.Stats.Unresolved,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and reports whether it
// came from the cache. Warnings of a cached layout are logged again so a
// hit looks the same as a miss.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	hooks := observability.Pipeline()
	cacheKey := r.Keyer.LayoutKey(opts.Notes, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, "layout", cacheKey); ok {
			var cached layout.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				if unknown := unresolvedPitches(cached); len(unknown) > 0 {
					opts.Logger.Warn("unknown pitches skipped", "pitches", unknown)
				}
				return cached, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		}
	}

	start := time.Now()
	hooks.OnLayoutStart(ctx, len(opts.Notes))
	l, err := GenerateLayout(r.Table, opts)
	hooks.OnLayoutComplete(ctx, string(l.Clef), unresolvedCount(l), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		r.cacheSet(ctx, "layout", cacheKey, data, r.LayoutTTL)
	}
	return l, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching. It returns the
// artifacts, the layout hash they were keyed under, and whether every
// requested format was served from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	layoutData, err := json.Marshal(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, ok := r.cacheGet(ctx, "artifact", key)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, layoutHash, true, nil
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := RenderFromLayout(l, r.Table, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, "artifact", key, data, r.ArtifactTTL)
	}
	return rendered, layoutHash, false, nil
}

// Render is a convenience wrapper that discards the hash and cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// RenderBatch executes every chord of b with the shared options in base.
// The batch is already structurally valid, so per-chord failures are
// reported with the chord's 1-based position and stop the batch.
func (r *Runner) RenderBatch(ctx context.Context, b chordio.Batch, base Options) ([]*Result, error) {
	results := make([]*Result, 0, len(b.Chords))
	for i, c := range b.Chords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opts := base
		opts.Notes = c.Notes
		opts.Name = c.Name
		opts.validated = false
		if c.Clef != "" {
			opts.Clef = c.Clef
		}
		if opts.Logger != nil {
			opts.Logger = opts.Logger.With("chord", i+1)
		}

		res, err := r.Execute(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("chord %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet reads key, reporting errors to hooks and the log. Errors count as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	case !hit:
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	hooks := observability.Cache()
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	hooks.OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
