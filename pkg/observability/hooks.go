// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about store mutations, interaction sessions, and
// persistence operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logs)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    observability.SetPersistenceHooks(&myPersistenceHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Store().OnMutation("widgetMoved", widgetCount)
//	observability.Persistence().OnWrite(backend, size, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from dashboard state mutations.
type StoreHooks interface {
	// OnMutation records a committed state mutation by event name.
	OnMutation(event string, widgetCount int)

	// OnSaveScheduled records a debounced save being scheduled or re-armed.
	OnSaveScheduled()

	// OnMigration records a schema migration from one version to another.
	OnMigration(fromVersion, toVersion string)

	// OnListenerPanic records a change listener that panicked during delivery.
	OnListenerPanic(event string, recovered any)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from drag and resize interaction sessions.
type SessionHooks interface {
	// OnSessionStart records the start of a session ("drag" or "resize").
	OnSessionStart(kind, widgetID string)

	// OnSessionEnd records the end of a session. committed is false when
	// the session was cancelled or torn down without a store call.
	OnSessionEnd(kind, widgetID string, committed bool, duration time.Duration)

	// OnValidate records one placement validation pass and whether the
	// bounded collision search relocated the candidate.
	OnValidate(relocated bool)
}

// =============================================================================
// Persistence Hooks
// =============================================================================

// PersistenceHooks receives events from persistence backend operations.
type PersistenceHooks interface {
	// OnLoad records a backend read.
	OnLoad(backend string, size int, duration time.Duration, err error)

	// OnWrite records a backend write.
	OnWrite(backend string, size int, duration time.Duration, err error)

	// OnQuotaRetry records a degrade-and-retry after a capacity failure.
	OnQuotaRetry(backend string, trimmedTo int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnMutation(string, int)        {}
func (NoopStoreHooks) OnSaveScheduled()              {}
func (NoopStoreHooks) OnMigration(string, string)    {}
func (NoopStoreHooks) OnListenerPanic(string, any)   {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionStart(string, string)                    {}
func (NoopSessionHooks) OnSessionEnd(string, string, bool, time.Duration) {}
func (NoopSessionHooks) OnValidate(bool)                                  {}

// NoopPersistenceHooks is a no-op implementation of PersistenceHooks.
type NoopPersistenceHooks struct{}

func (NoopPersistenceHooks) OnLoad(string, int, time.Duration, error)  {}
func (NoopPersistenceHooks) OnWrite(string, int, time.Duration, error) {}
func (NoopPersistenceHooks) OnQuotaRetry(string, int)                  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks       StoreHooks       = NoopStoreHooks{}
	sessionHooks     SessionHooks     = NoopSessionHooks{}
	persistenceHooks PersistenceHooks = NoopPersistenceHooks{}
	hooksMu          sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before any interaction.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// SetPersistenceHooks registers custom persistence hooks.
// This should be called once at application startup before any backend operations.
func SetPersistenceHooks(h PersistenceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		persistenceHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Persistence returns the registered persistence hooks.
func Persistence() PersistenceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return persistenceHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	sessionHooks = NoopSessionHooks{}
	persistenceHooks = NoopPersistenceHooks{}
}
