package store

import (
	"context"
	"errors"
)

// Sentinel errors for persistence backends.
var (
	// ErrNoRecord is returned by [Backend.Load] when no layout record has
	// been persisted yet.
	ErrNoRecord = errors.New("no layout record")

	// ErrQuotaExceeded is returned by [Backend.Store] when the write fails
	// because of a capacity limit. The store reacts by trimming the widget
	// list and retrying once.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Backend persists the dashboard layout as a single keyed blob. The store
// serializes the state to JSON before handing it to the backend and treats
// the stored bytes as opaque on the way back.
//
// Implementations:
//   - [FileBackend]: one JSON file in the config directory (default)
//   - [RedisBackend]: one key in Redis
//   - [MongoBackend]: one document in MongoDB
//   - [MemoryBackend]: in-process, with fault injection for tests
type Backend interface {
	// Load reads the persisted record. Returns ErrNoRecord when nothing
	// has been written yet.
	Load(ctx context.Context) ([]byte, error)

	// Store writes the record, replacing any previous one. Returns
	// ErrQuotaExceeded when the write fails due to a capacity limit.
	Store(ctx context.Context, data []byte) error

	// Name identifies the backend in logs and hooks ("file", "redis", ...).
	Name() string

	// Close releases backend resources.
	Close() error
}
