package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several table sessions or tenants share one cache backend
// and must not see each other's entries.
//
// Example usage:
//
//	// Per-session keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "session:"+sessionID+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DatasetKey generates a prefixed key for a serialized dataset.
func (k *ScopedKeyer) DatasetKey(hash string) string {
	return k.prefix + k.inner.DatasetKey(hash)
}

// QueryKey generates a prefixed key for an evaluated query page.
func (k *ScopedKeyer) QueryKey(datasetHash string, opts QueryKeyOpts) string {
	return k.prefix + k.inner.QueryKey(datasetHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
