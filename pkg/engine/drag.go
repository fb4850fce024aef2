package engine

import (
	"time"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
	"github.com/griddeck/griddeck/pkg/store"
)

// DragSession tracks one in-progress drag. It is visual-only until commit:
// the placeholder moves on every pointer event, the store is touched
// exactly once, on EndDrag.
type DragSession struct {
	WidgetID string

	// origin is the placement at drag start, restored on cancel.
	origin grid.Placement

	// offsetX/offsetY is the pointer position within the widget at grab
	// time, so the placeholder tracks the grab point rather than snapping
	// its corner to the pointer.
	offsetX, offsetY float64

	placeholder grid.Placement
	startedAt   time.Time
}

// Placeholder returns the current validated placeholder rectangle for
// rendering.
func (d *DragSession) Placeholder() grid.Placement { return d.placeholder }

// Origin returns the placement the widget had when the drag started.
func (d *DragSession) Origin() grid.Placement { return d.origin }

// Drag returns the active drag session, or nil.
func (e *Engine) Drag() *DragSession { return e.drag }

// StartDrag begins a drag of the widget under its drag region. The pointer
// position is relative to the container origin. Fails when another session
// is active or the widget does not exist.
func (e *Engine) StartDrag(id string, pointerX, pointerY float64) error {
	if e.SessionActive() {
		return e.sessionBusyErr()
	}
	w, err := e.store.Widget(id)
	if err != nil {
		return err
	}
	originX, originY := e.displayOrigin(w.Placement)
	e.drag = &DragSession{
		WidgetID:    id,
		origin:      w.Placement,
		offsetX:     pointerX - originX,
		offsetY:     pointerY - originY,
		placeholder: w.Placement,
		startedAt:   time.Now(),
	}
	e.focusID = id
	observability.Session().OnSessionStart("drag", id)
	return nil
}

// DragMove handles a pointer move during a drag: the pointer (minus the
// grab offset) is converted to a grid cell, validated with the dragged
// widget excluded, and the placeholder moves to the validated cell. The
// returned Scroll signals edge-proximity auto-scroll; ScrollNone when the
// pointer is away from the viewport edges or no drag is active.
func (e *Engine) DragMove(pointerX, pointerY float64) Scroll {
	if e.drag == nil {
		return ScrollNone
	}
	cell := e.metrics.CellAt(pointerX-e.drag.offsetX, pointerY-e.drag.offsetY)
	candidate := grid.Placement{X: cell.Col, Y: cell.Row, W: e.drag.origin.W, H: e.drag.origin.H}
	e.drag.placeholder = e.validate(candidate, e.drag.WidgetID)
	return e.scrollHint(pointerY)
}

// EndDrag commits the drag: the placeholder's final cell is written with a
// single MoveWidget call and the session is discarded.
func (e *Engine) EndDrag() (store.Widget, error) {
	if e.drag == nil {
		return store.Widget{}, errors.New(errors.ErrCodeInvalidInput, "no drag session active")
	}
	d := e.drag
	w, err := e.store.MoveWidget(d.WidgetID, d.placeholder.X, d.placeholder.Y)
	e.endDrag(err == nil)
	return w, err
}

// CancelDrag discards the session without a store call; the widget keeps
// its original placement.
func (e *Engine) CancelDrag() {
	if e.drag == nil {
		return
	}
	e.endDrag(false)
}

func (e *Engine) endDrag(committed bool) {
	d := e.drag
	e.drag = nil
	observability.Session().OnSessionEnd("drag", d.WidgetID, committed, time.Since(d.startedAt))
}
