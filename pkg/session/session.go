// Package session provides server-side table sessions.
//
// A session binds a dataset to the query state a client has built up
// (search, filters, sort, page) so that the HTTP API can evaluate
// follow-up requests without the client resending the dataset. Sessions
// expire automatically after their TTL.
//
// The Store interface supports different backends:
//   - memory: in-memory storage for development and single-instance servers
//   - file: JSON files in a config directory, for CLI resume and small servers
//   - redis: Redis-backed storage for multi-instance deployments
//
// # Usage
//
// Create a store and a session:
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(datasetHash, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
// Retrieve it later:
//
//	sess, err := store.Get(ctx, sessionID)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tablekit/tablekit/pkg/table"
)

// ErrExpired is returned when a session to be stored has already
// exceeded its TTL. Missing or expired sessions on read are not errors:
// Store.Get reports them as nil, nil.
var ErrExpired = errors.New("expired")

// Default durations.
const (
	// DefaultTTL is the default session duration.
	DefaultTTL = 24 * time.Hour
)

// Session stores one client's table state.
type Session struct {
	ID          string      `json:"id"`
	DatasetHash string      `json:"dataset_hash"`
	Query       table.Query `json:"query"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime, zero when already expired.
func (s *Session) TTL() time.Duration {
	if s.IsExpired() {
		return 0
	}
	return time.Until(s.ExpiresAt)
}

// New creates a session for a dataset with a fresh random ID.
func New(datasetHash string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		DatasetHash: datasetHash,
		Query:       table.Query{}.Normalize(),
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for backends
	// with native expiration).
	Cleanup(ctx context.Context) error
}
