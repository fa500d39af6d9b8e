package api

import (
	"sync"

	"github.com/tablekit/tablekit/pkg/source"
)

// Registry holds uploaded datasets in memory, keyed by content hash.
// Uploading the same dataset twice registers it once; sessions over equal
// datasets share pipeline cache entries through the shared hash.
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]*source.Memory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{datasets: make(map[string]*source.Memory)}
}

// Put registers a dataset under its hash.
func (r *Registry) Put(hash string, src *source.Memory) {
	r.mu.Lock()
	r.datasets[hash] = src
	r.mu.Unlock()
}

// Get returns the dataset for a hash, nil when absent.
func (r *Registry) Get(hash string) *source.Memory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.datasets[hash]
}

// Delete removes a dataset.
func (r *Registry) Delete(hash string) {
	r.mu.Lock()
	delete(r.datasets, hash)
	r.mu.Unlock()
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}
