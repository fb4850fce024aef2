// Package store owns the canonical dashboard state: grid configuration,
// widget placements, theme, and schema version.
//
// The store is the single source of truth for the layout. Every committed
// mutation goes through its API, which validates input, applies the change
// atomically, schedules a debounced persistence write, and emits a named
// change event synchronously to registered listeners. Persistence goes
// through a pluggable [Backend] (file, redis, mongo, or memory).
//
// # Durability
//
// Save coalesces bursts of mutations into one write: repeated calls within
// the debounce window re-arm a single timer. Flush cancels the timer and
// writes immediately; it is called on session teardown so trailing edits
// are never lost. When a write fails with [ErrQuotaExceeded], the store
// degrades by trimming the widget list to the most-recently-added
// [QuotaTrimLimit] and retrying once; a second failure resets the state to
// defaults rather than risking a partially-written record.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	gderr "github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
)

const (
	// DefaultSaveDelay is the debounce window for persistence writes.
	DefaultSaveDelay = 500 * time.Millisecond

	// QuotaTrimLimit is how many widgets survive a quota degradation:
	// the most-recently-added QuotaTrimLimit entries of the list.
	QuotaTrimLimit = 20
)

// Options configures a Store.
type Options struct {
	// Backend persists the layout record. Defaults to a MemoryBackend.
	Backend Backend

	// Logger receives warnings about listener panics and degraded
	// persistence. Optional.
	Logger *charmlog.Logger

	// SaveDelay overrides the debounce window. Zero means DefaultSaveDelay.
	SaveDelay time.Duration

	// PreventOverlap controls whether mutations that would be routed
	// through the layout engine use collision search. Stored here so the
	// engine and TUI share one switch.
	PreventOverlap bool

	// DefaultGrid is the grid geometry for fresh dashboards: it applies
	// whenever no usable persisted record exists and on Reset. An invalid
	// or zero config falls back to grid.DefaultConfig(). A persisted
	// layout keeps its own grid.
	DefaultGrid grid.Config
}

// Store is the canonical, versioned dashboard state with durable
// persistence and change notification. Mutation methods are safe for
// concurrent use; listeners run synchronously on the mutating goroutine.
type Store struct {
	mu             sync.Mutex
	backend        Backend
	logger         *charmlog.Logger
	state          State
	saveDelay      time.Duration
	saveTimer      *time.Timer
	listeners      map[Event][]subscription
	nextListenerID int
	preventOverlap bool
	defaultGrid    grid.Config
}

// New creates a store with the given options. Call Load before use to
// populate state from the backend.
func New(opts Options) *Store {
	backend := opts.Backend
	if backend == nil {
		backend = NewMemoryBackend()
	}
	delay := opts.SaveDelay
	if delay == 0 {
		delay = DefaultSaveDelay
	}
	dg := opts.DefaultGrid
	if dg.Validate() != nil {
		dg = grid.DefaultConfig()
	}
	st := DefaultState()
	st.Grid = dg
	return &Store{
		backend:        backend,
		logger:         opts.Logger,
		state:          st,
		saveDelay:      delay,
		listeners:      make(map[Event][]subscription),
		preventOverlap: opts.PreventOverlap,
		defaultGrid:    dg,
	}
}

// PreventOverlap reports whether collision search is enabled for
// interactive placement.
func (s *Store) PreventOverlap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preventOverlap
}

// =============================================================================
// Load / Save / Flush
// =============================================================================

// Load reads the persisted record, migrating older schemas before
// validation. It fails soft: a missing record, a parse error, or a record
// that fails validation all yield the built-in default state. The default
// is persisted immediately when no usable record exists.
func (s *Store) Load(ctx context.Context) State {
	data, err := s.backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoRecord):
		s.resetToDefault(ctx, "no persisted layout")
		return s.Snapshot()
	case err != nil:
		// Backend unavailable: use defaults but do not overwrite whatever
		// the backend may still hold.
		s.warn("load layout", "backend", s.backend.Name(), "err", err)
		s.setState(s.defaultState())
		return s.Snapshot()
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.warn("parse layout record, using defaults", "err", err)
		s.resetToDefault(ctx, "unparseable record")
		return s.Snapshot()
	}

	migrated := Migrate(&st)
	if err := st.Validate(); err != nil {
		s.warn("stored layout invalid, using defaults", "err", err)
		s.resetToDefault(ctx, "invalid record")
		return s.Snapshot()
	}

	s.setState(st)
	if migrated {
		if err := s.persist(ctx); err != nil {
			s.warn("persist migrated layout", "err", err)
		}
	}
	return s.Snapshot()
}

// Save schedules a debounced persistence write. Repeated calls within the
// debounce window coalesce into a single write. The pending timer is
// cancelled and replaced atomically on each call.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleSaveLocked()
}

func (s *Store) scheduleSaveLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.saveDelay, func() {
		if err := s.Flush(context.Background()); err != nil {
			s.warn("debounced save", "err", err)
		}
	})
	observability.Store().OnSaveScheduled()
}

// Flush cancels any pending debounced write and persists synchronously.
// Used on session teardown to avoid losing trailing edits.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.mu.Unlock()
	return s.persist(ctx)
}

// Close flushes pending changes and releases the backend.
func (s *Store) Close() error {
	flushErr := s.Flush(context.Background())
	closeErr := s.backend.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// persist writes the current state. On a quota failure it trims the widget
// list to the most-recently-added QuotaTrimLimit and retries once; if the
// retry also fails the store resets to defaults — losing data is preferred
// over leaving a partially-written record.
func (s *Store) persist(ctx context.Context) error {
	data, err := s.encodeState()
	if err != nil {
		return gderr.Wrap(gderr.ErrCodeInternal, err, "encode layout")
	}

	err = s.backend.Store(ctx, data)
	if err == nil {
		s.emit(Change{Event: EventSave, State: s.snapshotPtr()})
		return nil
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		return gderr.Wrap(gderr.ErrCodePersistence, err, "write layout record")
	}

	// Degrade: keep the most recently added widgets and retry once.
	s.mu.Lock()
	if n := len(s.state.Widgets); n > QuotaTrimLimit {
		trimmed := make([]Widget, QuotaTrimLimit)
		copy(trimmed, s.state.Widgets[n-QuotaTrimLimit:])
		s.state.Widgets = trimmed
	}
	s.mu.Unlock()
	s.warn("storage quota exceeded, trimming widget list", "keep", QuotaTrimLimit)
	observability.Persistence().OnQuotaRetry(s.backend.Name(), QuotaTrimLimit)

	data, encErr := s.encodeState()
	if encErr != nil {
		return gderr.Wrap(gderr.ErrCodeInternal, encErr, "encode trimmed layout")
	}
	if retryErr := s.backend.Store(ctx, data); retryErr != nil {
		// Last resort: a clean default record beats a corrupt partial one.
		s.warn("trimmed write failed, resetting to defaults", "err", retryErr)
		s.resetToDefault(ctx, "quota retry failed")
		return gderr.Wrap(gderr.ErrCodeQuotaExceeded, retryErr, "layout exceeds storage quota")
	}

	s.emit(Change{Event: EventSave, State: s.snapshotPtr()})
	return nil
}

// defaultState is DefaultState with the configured fresh-dashboard grid.
func (s *Store) defaultState() State {
	st := DefaultState()
	st.Grid = s.defaultGrid
	return st
}

// resetToDefault replaces state with the built-in default and persists it,
// emitting a reset event.
func (s *Store) resetToDefault(ctx context.Context, reason string) {
	s.setState(s.defaultState())
	data, err := s.encodeState()
	if err == nil {
		if werr := s.backend.Store(ctx, data); werr != nil {
			s.warn("persist default layout", "reason", reason, "err", werr)
		}
	}
	s.emit(Change{Event: EventReset, State: s.snapshotPtr()})
}

// Reset discards the current layout and returns to the built-in default.
func (s *Store) Reset(ctx context.Context) {
	s.resetToDefault(ctx, "explicit reset")
}

func (s *Store) encodeState() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.MarshalIndent(s.state, "", "  ")
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// =============================================================================
// Read access
// =============================================================================

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) snapshotPtr() *State {
	st := s.Snapshot()
	return &st
}

// Widgets returns a deep copy of the widget list in placement order.
func (s *Store) Widgets() []Widget {
	return s.Snapshot().Widgets
}

// Widget returns a copy of the widget with the given id.
func (s *Store) Widget(id string) (Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.indexOf(id)
	if i < 0 {
		return Widget{}, gderr.New(gderr.ErrCodeWidgetNotFound, "no widget %q", id)
	}
	return s.state.Widgets[i].Clone(), nil
}

// GridConfig returns the current grid configuration.
func (s *Store) GridConfig() grid.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Grid
}

// ThemeValue returns the current theme.
func (s *Store) ThemeValue() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

// =============================================================================
// Mutations
// =============================================================================

// AddWidget validates and inserts a widget. An empty id is generated; an id
// colliding with an existing widget is regenerated rather than rejected.
// Emits widgetAdded and schedules a save. Returns the stored widget.
func (s *Store) AddWidget(w Widget) (Widget, error) {
	if err := gderr.ValidateWidgetType(w.Type); err != nil {
		return Widget{}, err
	}

	s.mu.Lock()
	if err := s.state.Grid.CheckPlacement(w.Placement); err != nil {
		s.mu.Unlock()
		return Widget{}, gderr.Wrap(gderr.ErrCodeInvalidPlacement, err, "widget placement %+v", w.Placement)
	}

	existing := make(map[string]struct{}, len(s.state.Widgets))
	for _, cur := range s.state.Widgets {
		existing[cur.ID] = struct{}{}
	}
	if _, collides := existing[w.ID]; w.ID == "" || collides {
		w.ID = newWidgetID(w.Type, existing)
	}
	if err := gderr.ValidateWidgetID(w.ID); err != nil {
		s.mu.Unlock()
		return Widget{}, err
	}

	stored := w.Clone()
	s.state.Widgets = append(s.state.Widgets, stored)
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(EventWidgetAdded), count)
	out := stored.Clone()
	s.emit(Change{Event: EventWidgetAdded, Widget: &out})
	return stored, nil
}

// Patch describes a partial widget update. Nil fields are left unchanged;
// Config entries are merged key-by-key into the existing config.
type Patch struct {
	X         *int
	Y         *int
	W         *int
	H         *int
	Minimized *bool
	Config    map[string]any
}

// UpdateWidget applies a partial update to a widget. The resulting
// placement is validated before anything mutates; on failure the state is
// unchanged. Emits widgetUpdated.
func (s *Store) UpdateWidget(id string, p Patch) (Widget, error) {
	s.mu.Lock()
	i := s.state.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Widget{}, gderr.New(gderr.ErrCodeWidgetNotFound, "no widget %q", id)
	}

	next := s.state.Widgets[i].Clone()
	if p.X != nil {
		next.X = *p.X
	}
	if p.Y != nil {
		next.Y = *p.Y
	}
	if p.W != nil {
		next.W = *p.W
	}
	if p.H != nil {
		next.H = *p.H
	}
	if p.Minimized != nil {
		next.Minimized = *p.Minimized
	}
	if len(p.Config) > 0 {
		if next.Config == nil {
			next.Config = make(map[string]any, len(p.Config))
		}
		for k, v := range p.Config {
			next.Config[k] = v
		}
	}

	if err := s.state.Grid.CheckPlacement(next.Placement); err != nil {
		s.mu.Unlock()
		return Widget{}, gderr.Wrap(gderr.ErrCodeInvalidPlacement, err, "widget %q", id)
	}

	s.state.Widgets[i] = next
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(EventWidgetUpdated), count)
	out := next.Clone()
	s.emit(Change{Event: EventWidgetUpdated, Widget: &out})
	return next, nil
}

// RemoveWidget deletes a widget by id. Emits widgetRemoved carrying the
// removed widget.
func (s *Store) RemoveWidget(id string) error {
	s.mu.Lock()
	i := s.state.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return gderr.New(gderr.ErrCodeWidgetNotFound, "no widget %q", id)
	}

	removed := s.state.Widgets[i].Clone()
	s.state.Widgets = append(s.state.Widgets[:i], s.state.Widgets[i+1:]...)
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(EventWidgetRemoved), count)
	s.emit(Change{Event: EventWidgetRemoved, Widget: &removed})
	return nil
}

// MoveWidget sets a widget's origin cell. Emits widgetMoved.
func (s *Store) MoveWidget(id string, x, y int) (Widget, error) {
	return s.mutatePlacement(id, EventWidgetMoved, func(p grid.Placement) grid.Placement {
		p.X = x
		p.Y = y
		return p
	})
}

// ResizeWidget sets a widget's dimensions. Emits widgetResized.
func (s *Store) ResizeWidget(id string, w, h int) (Widget, error) {
	return s.mutatePlacement(id, EventWidgetResized, func(p grid.Placement) grid.Placement {
		p.W = w
		p.H = h
		return p
	})
}

// mutatePlacement applies fn to a widget's placement with validation,
// schedules a save, and emits the given event.
func (s *Store) mutatePlacement(id string, event Event, fn func(grid.Placement) grid.Placement) (Widget, error) {
	s.mu.Lock()
	i := s.state.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Widget{}, gderr.New(gderr.ErrCodeWidgetNotFound, "no widget %q", id)
	}

	next := fn(s.state.Widgets[i].Placement)
	if err := s.state.Grid.CheckPlacement(next); err != nil {
		s.mu.Unlock()
		return Widget{}, gderr.Wrap(gderr.ErrCodeInvalidPlacement, err, "widget %q", id)
	}

	s.state.Widgets[i].Placement = next
	updated := s.state.Widgets[i].Clone()
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(event), count)
	out := updated.Clone()
	s.emit(Change{Event: event, Widget: &out})
	return updated, nil
}

// ToggleMinimized flips a widget's minimized flag. Emits widgetToggled.
func (s *Store) ToggleMinimized(id string) (Widget, error) {
	s.mu.Lock()
	i := s.state.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Widget{}, gderr.New(gderr.ErrCodeWidgetNotFound, "no widget %q", id)
	}

	s.state.Widgets[i].Minimized = !s.state.Widgets[i].Minimized
	updated := s.state.Widgets[i].Clone()
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(EventWidgetToggled), count)
	out := updated.Clone()
	s.emit(Change{Event: EventWidgetToggled, Widget: &out})
	return updated, nil
}

// SetTheme switches the color theme. Emits themeChanged.
func (s *Store) SetTheme(t Theme) error {
	if !t.Valid() {
		return gderr.New(gderr.ErrCodeInvalidTheme, "unknown theme %q", t)
	}

	s.mu.Lock()
	s.state.Theme = t
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(EventThemeChanged), count)
	s.emit(Change{Event: EventThemeChanged, Theme: t})
	return nil
}

// UpdateGrid replaces the grid configuration. Existing placements are
// clamped into the new column count so the state stays valid when the grid
// shrinks. Emits gridUpdated.
func (s *Store) UpdateGrid(cfg grid.Config) error {
	if err := cfg.Validate(); err != nil {
		return gderr.Wrap(gderr.ErrCodeInvalidGrid, err, "grid config")
	}

	s.mu.Lock()
	s.state.Grid = cfg
	for i := range s.state.Widgets {
		p := s.state.Widgets[i].Placement
		if p.W > cfg.Cols {
			p.W = cfg.Cols
		}
		s.state.Widgets[i].Placement = p.ClampX(cfg.Cols)
	}
	s.touchLocked()
	s.scheduleSaveLocked()
	count := len(s.state.Widgets)
	s.mu.Unlock()

	observability.Store().OnMutation(string(EventGridUpdated), count)
	s.emit(Change{Event: EventGridUpdated, Grid: &cfg})
	return nil
}

// =============================================================================
// Export / Import
// =============================================================================

// ExportLayout returns a deep snapshot of the state tagged with an export
// timestamp. It does not mutate state.
func (s *Store) ExportLayout() ExportDocument {
	return ExportDocument{
		State:      s.Snapshot(),
		ExportedAt: time.Now(),
	}
}

// ImportLayout validates and migrates the incoming document in full before
// touching current state. On success it replaces the grid, theme, and
// widget list — widgets receive fresh ids so residual state can never
// collide — and persists immediately. On any failure the current state is
// untouched and the error propagates.
func (s *Store) ImportLayout(ctx context.Context, doc ExportDocument) error {
	incoming := doc.State.Clone()
	Migrate(&incoming)
	if err := incoming.Validate(); err != nil {
		return gderr.Wrap(gderr.ErrCodeImport, err, "import document rejected")
	}

	s.mu.Lock()
	ids := make(map[string]struct{}, len(incoming.Widgets))
	for i := range incoming.Widgets {
		incoming.Widgets[i].ID = newWidgetID(incoming.Widgets[i].Type, ids)
		ids[incoming.Widgets[i].ID] = struct{}{}
	}
	s.state.Grid = incoming.Grid
	s.state.Theme = incoming.Theme
	s.state.Widgets = incoming.Widgets
	s.state.Version = CurrentVersion
	s.touchLocked()
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return err
	}

	observability.Store().OnMutation(string(EventLayoutImported), len(incoming.Widgets))
	s.emit(Change{Event: EventLayoutImported, State: s.snapshotPtr()})
	return nil
}

// =============================================================================
// Ids
// =============================================================================

// GenerateWidgetID produces a collision-resistant id from the widget type,
// the current timestamp, and a random suffix. The result is checked against
// current widget ids and regenerated on the unlikely collision.
func (s *Store) GenerateWidgetID(typ string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := make(map[string]struct{}, len(s.state.Widgets))
	for _, w := range s.state.Widgets {
		existing[w.ID] = struct{}{}
	}
	return newWidgetID(typ, existing)
}

// newWidgetID builds "<type>-<unix-millis>-<suffix>" ids, regenerating the
// random suffix until the id is absent from existing.
func newWidgetID(typ string, existing map[string]struct{}) string {
	if typ == "" {
		typ = "widget"
	}
	for {
		suffix := uuid.NewString()[:8]
		id := fmt.Sprintf("%s-%d-%s", typ, time.Now().UnixMilli(), suffix)
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}

// touchLocked stamps the modification time. Callers hold s.mu.
func (s *Store) touchLocked() {
	s.state.LastModified = time.Now()
	s.state.Version = CurrentVersion
}

// warn logs through the optional logger.
func (s *Store) warn(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, kv...)
	}
}
