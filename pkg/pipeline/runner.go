package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ceilplan/pkg/cache"
	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a
// nil cache disables caching and a nil logger means log.Default().
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	layoutStart := time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, opts.Design, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.Fixtures = len(l.Positions)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"type", l.Config.Type,
		"fixtures", result.Stats.Fixtures,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, layoutHash, hit, err := r.renderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo validates cfg and returns its layout, from cache
// when possible, along with whether it was a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, cfg ceiling.Config, refresh bool) (lighting.Layout, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(cfg.Type))
	start := time.Now()

	l, hit, err := r.layout(ctx, cfg, refresh)
	hooks.OnLayoutComplete(ctx, string(cfg.Type), len(l.Positions), time.Since(start), err)
	return l, hit, err
}

func (r *Runner) layout(ctx context.Context, cfg ceiling.Config, refresh bool) (lighting.Layout, bool, error) {
	if err := cfg.Validate(); err != nil {
		return lighting.Layout{}, false, err
	}

	designHash, err := DesignHash(cfg)
	if err != nil {
		return lighting.Layout{}, false, fmt.Errorf("hash design: %w", err)
	}
	key := r.Keyer.LayoutKey(designHash)

	if !refresh {
		if data, ok := r.get(ctx, key, keyTypeLayout); ok {
			if cached, err := UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", key)
		}
	}

	l := lighting.Plan(cfg)
	if data, err := MarshalLayout(l); err == nil {
		r.set(ctx, key, keyTypeLayout, data, cache.TTLLayout)
	}
	return l, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit info.
func (r *Runner) Layout(ctx context.Context, cfg ceiling.Config) (lighting.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, cfg, false)
	return l, err
}

// RenderWithCacheInfo renders l in every requested format. It reports a
// hit only when all artifacts came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l lighting.Layout, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.renderWithCacheInfo(ctx, l, opts)
	return artifacts, hit, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, l lighting.Layout, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, layoutHash, hit, err := r.render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, layoutHash, hit, err
}

func (r *Runner) render(ctx context.Context, l lighting.Layout, opts Options) (map[string][]byte, string, bool, error) {
	layoutData, err := MarshalLayout(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if _, seen := artifacts[format]; seen {
			continue
		}
		if !opts.Refresh {
			if data, ok := r.get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, l, sub)
	if err != nil {
		return nil, "", false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		r.set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact, data, cache.TTLArtifact)
	}
	return artifacts, layoutHash, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, l lighting.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// get reads key, treating backend errors as misses.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "stage", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes key, logging and ignoring backend errors.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "stage", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
