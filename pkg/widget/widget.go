// Package widget defines the contract between the dashboard and the
// content it hosts. A widget kind registers a [Factory]; the engine and
// store treat kind names as opaque strings and never reach into an
// instance beyond this interface.
package widget

import (
	"sort"
	"sync"

	"github.com/griddeck/griddeck/pkg/errors"
)

// Instance is a live widget. The engine owns sizing and position: Render
// receives the cell dimensions it must fill and returns the content
// string, nothing more. An instance must never try to place itself.
type Instance interface {
	// Render returns the widget body for the given inner dimensions.
	Render(width, height int) string

	// Config returns the current configuration snapshot.
	Config() map[string]any

	// SetConfig merges a partial configuration into the instance.
	SetConfig(patch map[string]any) error

	// Refresh re-reads whatever the widget displays.
	Refresh()

	// Destroy releases timers, listeners, and other resources. It is
	// called exactly once when the widget is removed.
	Destroy()
}

// SettingsProvider is an optional capability: widgets that expose a
// settings form implement it in addition to Instance.
type SettingsProvider interface {
	SettingsForm() []Field
}

// Field describes one entry of a settings form.
type Field struct {
	Key     string
	Label   string
	Kind    string // "text", "number", "bool"
	Default any
}

// Factory creates an instance from an initial configuration. A nil map
// is valid and means "all defaults".
type Factory func(initial map[string]any) (Instance, error)

// Registry maps widget kind names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given kind name. Registering an
// invalid name or the same name twice is an error.
func (r *Registry) Register(kind string, f Factory) error {
	if err := errors.ValidateWidgetType(kind); err != nil {
		return err
	}
	if f == nil {
		return errors.New(errors.ErrCodeInvalidWidget, "nil factory for widget type %q", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[kind]; ok {
		return errors.New(errors.ErrCodeInvalidWidget, "widget type %q already registered", kind)
	}
	r.factories[kind] = f
	return nil
}

// Create instantiates a widget of the given kind.
func (r *Registry) Create(kind string, initial map[string]any) (Instance, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeNotFound, "unknown widget type %q", kind)
	}
	inst, err := f(initial)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWidget, err, "create %s widget", kind)
	}
	return inst, nil
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Builtin returns a registry pre-loaded with the built-in widget kinds.
func Builtin() *Registry {
	r := NewRegistry()
	// Static names, registration cannot fail.
	_ = r.Register("clock", NewClock)
	_ = r.Register("notes", NewNotes)
	_ = r.Register("gauge", NewGauge)
	return r
}

// mergeConfig applies patch over base, returning base. Nil-safe.
func mergeConfig(base, patch map[string]any) map[string]any {
	if base == nil {
		base = make(map[string]any)
	}
	for k, v := range patch {
		base[k] = v
	}
	return base
}

// cloneConfig returns a shallow copy so callers cannot mutate internals.
func cloneConfig(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stringOpt(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func floatOpt(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func boolOpt(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}
