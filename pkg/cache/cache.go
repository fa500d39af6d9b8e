// Package cache provides result caching for the table pipeline.
//
// The cache stores serialized datasets and evaluated query pages so the
// HTTP API does not re-run the filter → sort → paginate chain for a query
// it has already answered. Three backends are provided:
//
//   - [FileCache]: file-based, for CLI usage
//   - [RedisCache]: Redis-backed, for multi-instance server deployments
//   - [NullCache]: a no-op cache that disables caching
//
// Keys are built by a [Keyer] from content hashes so that equal inputs
// share entries and any input change invalidates naturally.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind.
const (
	// TTLDataset is how long uploaded datasets stay cached.
	TTLDataset = 24 * time.Hour

	// TTLQuery is how long evaluated query pages stay cached. Short,
	// because a dataset replacement changes the hash anyway and stale
	// pages only waste space.
	TTLQuery = time.Hour
)

// =============================================================================
// Keyer
// =============================================================================

// QueryKeyOpts carries every query input that affects an evaluated page.
// Two queries with equal opts over the same dataset hash share a cache
// entry.
type QueryKeyOpts struct {
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	SortKey string            `json:"sort_key,omitempty"`
	SortDir string            `json:"sort_dir,omitempty"`
	Page    int               `json:"page,omitempty"`
	Size    int               `json:"size,omitempty"`
}

// Keyer generates cache keys for the two entry kinds.
type Keyer interface {
	// DatasetKey generates a key for a serialized dataset by content hash.
	DatasetKey(hash string) string

	// QueryKey generates a key for an evaluated query page.
	QueryKey(datasetHash string, opts QueryKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey implements Keyer.
func (k *DefaultKeyer) DatasetKey(hash string) string {
	return "dataset:" + hash
}

// QueryKey implements Keyer. The options are hashed so that maps with
// different insertion orders still produce equal keys.
func (k *DefaultKeyer) QueryKey(datasetHash string, opts QueryKeyOpts) string {
	return hashKey("query:"+datasetHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
