package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codecity/pkg/cache"
	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/observability"
)

const cacheKeyType = "layout"

// Runner executes the pipeline with caching. The CLI and the HTTP service
// share it so that both resolve cache keys the same way.
//
// A Runner holds no per-run state; it is safe to call Run from several
// goroutines when the cache is.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run lays out c. Cached layouts are returned without recomputation;
// cache failures are logged and never fail the run.
func (r *Runner) Run(ctx context.Context, c *city.City, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	canonical, err := c.Canonical()
	if err != nil {
		return nil, err
	}
	result := &Result{CityHash: cache.Hash(canonical)}
	key := r.Keyer.LayoutKey(result.CityHash, opts.LayoutKeyOpts())

	if cached, ok := r.lookup(ctx, key); ok {
		result.Layout = cached
		result.CacheHit = true
		result.Stats.NodeCount = len(c.Nodes)
		result.Stats.EdgeCount = len(c.Edges)
		opts.Logger.Debug("layout cache hit", "key", key)
		return result, nil
	}

	l, stats, err := Compute(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats = stats

	opts.Logger.Info("computed layout",
		"layout", opts.Layout,
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"duration", stats.ScaleTime+stats.LayoutTime+stats.EdgeTime)

	r.store(ctx, key, l)
	return result, nil
}

// lookup reads and decodes a cached layout. Undecodable entries count as
// misses.
func (r *Runner) lookup(ctx context.Context, key string) (*city.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	l, err := city.DecodeLayout(data)
	if err != nil {
		r.Logger.Debug("discarding undecodable cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return l, true
}

func (r *Runner) store(ctx context.Context, key string, l *city.Layout) {
	data, err := city.MarshalLayout(l)
	if err != nil {
		r.Logger.Warn("cannot serialize layout for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
