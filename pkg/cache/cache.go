// Package cache memoizes calculated layouts and rendered artifacts.
//
// A [Cache] is a plain byte store with per-entry TTLs. Four backends are
// available:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [NullCache]: stores nothing, for --no-cache and tests
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: shared cache backed by a MongoDB collection
//
// [Open] picks a backend from a URL. Keys come from a [Keyer], which
// hashes the inputs of each stage so identical designs share entries.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes. Layouts are deterministic, so they only expire to
// bound disk usage.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// keyVersion is bumped whenever the placement rules or renderers change
// output for the same input.
const keyVersion = "v1"

// ArtifactKeyOpts holds the render settings that change artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Labels   bool    `json:"labels,omitempty"`
	Coves    bool    `json:"coves,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Wiring   bool    `json:"wiring,omitempty"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey keys a calculated layout by the hash of its design.
	LayoutKey(designHash string) string
	// ArtifactKey keys a rendered output by layout hash and settings.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "stage:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(designHash string) string {
	return hashKey("layout", keyVersion, designHash)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, layoutHash, opts)
}
