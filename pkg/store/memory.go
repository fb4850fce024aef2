package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps the record in process memory. It is used in tests and
// as a throwaway backend for ephemeral dashboards; it also supports fault
// injection so store degradation paths can be exercised.
type MemoryBackend struct {
	mu         sync.Mutex
	data       []byte
	writes     int
	failNext   error
	quotaBytes int
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns the stored record.
func (b *MemoryBackend) Load(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, ErrNoRecord
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

// Store writes the record, honoring any injected fault.
func (b *MemoryBackend) Store(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failNext; err != nil {
		b.failNext = nil
		return err
	}
	if b.quotaBytes > 0 && len(data) > b.quotaBytes {
		return fmt.Errorf("%w: %d bytes over %d byte limit", ErrQuotaExceeded, len(data), b.quotaBytes)
	}

	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.writes++
	return nil
}

// Name identifies the backend in logs and hooks.
func (b *MemoryBackend) Name() string { return "memory" }

// Close does nothing for the memory backend.
func (b *MemoryBackend) Close() error { return nil }

// FailNext makes the next Store call return err once.
func (b *MemoryBackend) FailNext(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = err
}

// SetQuota rejects writes larger than n bytes with ErrQuotaExceeded.
// Zero disables the quota.
func (b *MemoryBackend) SetQuota(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quotaBytes = n
}

// Writes returns the number of successful Store calls.
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Ensure MemoryBackend implements Backend.
var _ Backend = (*MemoryBackend)(nil)
