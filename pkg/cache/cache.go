// Package cache stores rendered chord artifacts between runs.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: never stores anything (--no-cache)
//
// All backends implement [Cache]. Keys come from a [Keyer], which hashes
// everything that affects the bytes of an artifact: the pitches, the
// clef, the geometry and the output format options.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default lifetimes.
const (
	// LayoutTTL is how long computed layouts stay cached.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long rendered artifacts stay cached.
	ArtifactTTL = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// LayoutKeyOpts are the inputs that determine a layout.
type LayoutKeyOpts struct {
	Clef     string `json:"clef"`
	Geometry any    `json:"geometry"`
}

// ArtifactKeyOpts are the render options that determine an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Title      string  `json:"title,omitempty"`
	Background string  `json:"background,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the layout of pitches under opts.
	LayoutKey(pitches []string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>". Pitch order is significant.
func (DefaultKeyer) LayoutKey(pitches []string, opts LayoutKeyOpts) string {
	return hashKey("layout", pitches, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
