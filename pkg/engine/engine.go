// Package engine translates interactive input into validated grid
// placements. It owns the drag and resize session state machines, keyboard
// driven movement, and focus tracking. Every committed change goes through
// the state store; the engine itself never persists anything.
//
// The engine is designed for a single-threaded event loop (one update
// goroutine, as in a Bubble Tea program). At most one session, drag or
// resize, is alive at a time: the single slot makes overlapping sessions
// impossible by construction.
package engine

import (
	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
	"github.com/griddeck/griddeck/pkg/store"
)

// Size limits applied to every resize path, pointer or keyboard.
const (
	MinWidgetW = 1
	MinWidgetH = 1
	MaxWidgetW = 12
	MaxWidgetH = 8
)

// Auto-scroll tuning. When a dragged pointer comes within EdgeThreshold
// display units of the viewport's top or bottom edge, the engine reports a
// scroll direction; the host scrolls at ScrollSpeed units per tick for as
// long as the threshold is breached.
const (
	EdgeThreshold = 48.0
	ScrollSpeed   = 16.0
)

// Scroll is the auto-scroll signal reported during a drag.
type Scroll int

const (
	ScrollNone Scroll = iota
	ScrollUp
	ScrollDown
)

// Viewport is the visible vertical slice of the dashboard surface, in the
// same display units as the pointer coordinates.
type Viewport struct {
	Top    float64
	Height float64
}

// MenuFunc is invoked on a secondary click over a widget. The engine never
// renders the menu; presentation belongs to the host.
type MenuFunc func(widgetID string, pointerX, pointerY float64)

// Engine drives interactive layout editing on top of a store.
type Engine struct {
	store    *store.Store
	metrics  grid.Metrics
	viewport Viewport

	drag   *DragSession
	resize *ResizeSession

	focusID string
	menuFn  MenuFunc
}

// New returns an engine bound to the given store. metrics supplies the
// pointer-to-grid mapping; update it via SetMetrics when the container is
// resized.
func New(st *store.Store, metrics grid.Metrics) *Engine {
	return &Engine{store: st, metrics: metrics}
}

// SetMetrics replaces the pointer-to-grid mapping, typically after a
// container resize.
func (e *Engine) SetMetrics(m grid.Metrics) { e.metrics = m }

// Metrics returns the current pointer-to-grid mapping.
func (e *Engine) Metrics() grid.Metrics { return e.metrics }

// SetViewport updates the visible slice used for edge auto-scroll.
func (e *Engine) SetViewport(v Viewport) { e.viewport = v }

// SetMenuFunc installs the context-menu callback.
func (e *Engine) SetMenuFunc(fn MenuFunc) { e.menuFn = fn }

// SessionActive reports whether a drag or resize session is in progress.
func (e *Engine) SessionActive() bool {
	return e.drag != nil || e.resize != nil
}

// Cleanup tears down any active session without committing. Used when the
// host loses the pointer (terminal suspend, focus loss).
func (e *Engine) Cleanup() {
	if e.drag != nil {
		e.endDrag(false)
	}
	if e.resize != nil {
		e.endResize(false)
	}
}

// =============================================================================
// Focus
// =============================================================================

// Focus sets the focused widget for keyboard routing.
func (e *Engine) Focus(id string) error {
	if _, err := e.store.Widget(id); err != nil {
		return err
	}
	e.focusID = id
	return nil
}

// Blur clears focus.
func (e *Engine) Blur() { e.focusID = "" }

// Focused returns the focused widget id, or "" when nothing is focused.
func (e *Engine) Focused() string { return e.focusID }

// CycleFocus moves focus through the widget list in order. delta is +1 or
// -1; with nothing focused it selects the first (or last) widget. Returns
// the newly focused id, or "" when the dashboard is empty.
func (e *Engine) CycleFocus(delta int) string {
	widgets := e.store.Widgets()
	if len(widgets) == 0 {
		e.focusID = ""
		return ""
	}
	idx := -1
	for i, w := range widgets {
		if w.ID == e.focusID {
			idx = i
			break
		}
	}
	if idx == -1 {
		if delta < 0 {
			idx = len(widgets) - 1
		} else {
			idx = 0
		}
	} else {
		idx = (idx + delta + len(widgets)) % len(widgets)
	}
	e.focusID = widgets[idx].ID
	return e.focusID
}

// =============================================================================
// Hit testing and context menu
// =============================================================================

// WidgetAt returns the widget whose placement covers the pointer position,
// hit-testing in reverse order so later widgets win when the bounded
// search has allowed an overlap.
func (e *Engine) WidgetAt(pointerX, pointerY float64) (store.Widget, bool) {
	cell := e.cellUnder(pointerX, pointerY)
	widgets := e.store.Widgets()
	for i := len(widgets) - 1; i >= 0; i-- {
		if widgets[i].Placement.Contains(cell) {
			return widgets[i], true
		}
	}
	return store.Widget{}, false
}

// SecondaryClick routes a secondary click to the menu callback when it
// lands on a widget. The hit widget also receives focus.
func (e *Engine) SecondaryClick(pointerX, pointerY float64) {
	w, ok := e.WidgetAt(pointerX, pointerY)
	if !ok {
		return
	}
	e.focusID = w.ID
	if e.menuFn != nil {
		e.menuFn(w.ID, pointerX, pointerY)
	}
}

// cellUnder maps a pointer position to the cell it is over. Unlike
// Metrics.CellAt this truncates instead of rounding: hit testing wants the
// cell the pointer is inside, not the nearest cell origin.
func (e *Engine) cellUnder(pointerX, pointerY float64) grid.Cell {
	col := int(pointerX/e.metrics.CellWidth()) + 1
	row := int(pointerY/e.metrics.RowPitch()) + 1
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	return grid.Cell{Col: col, Row: row}
}

// =============================================================================
// Shared validation
// =============================================================================

// validate runs the store-configured validation pass on a candidate
// placement, excluding the widget being edited from the occupancy set.
func (e *Engine) validate(p grid.Placement, excludeID string) grid.Placement {
	placements := make([]grid.Placement, 0)
	for _, w := range e.store.Widgets() {
		if w.ID == excludeID {
			continue
		}
		placements = append(placements, w.Placement)
	}
	occ := grid.NewOccupancy(placements)
	result := grid.ValidatePosition(p, occ, e.store.GridConfig().Cols, e.store.PreventOverlap())
	relocated := result.X != p.X || result.Y != p.Y
	observability.Session().OnValidate(relocated)
	return result
}

func (e *Engine) sessionBusyErr() error {
	kind := "drag"
	if e.resize != nil {
		kind = "resize"
	}
	return errors.New(errors.ErrCodeInvalidInput, "a %s session is already active", kind)
}

// displayOrigin returns the top-left display position of a placement.
func (e *Engine) displayOrigin(p grid.Placement) (float64, float64) {
	x := float64(p.X-1) * e.metrics.CellWidth()
	y := float64(p.Y-1) * e.metrics.RowPitch()
	return x, y
}

// scrollHint converts a pointer's vertical position into an auto-scroll
// signal based on viewport edge proximity.
func (e *Engine) scrollHint(pointerY float64) Scroll {
	if e.viewport.Height <= 0 {
		return ScrollNone
	}
	if pointerY-e.viewport.Top < EdgeThreshold {
		return ScrollUp
	}
	if e.viewport.Top+e.viewport.Height-pointerY < EdgeThreshold {
		return ScrollDown
	}
	return ScrollNone
}
