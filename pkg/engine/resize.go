package engine

import (
	"time"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
	"github.com/griddeck/griddeck/pkg/store"
)

// Handle identifies which edge or corner of a widget a resize grabs. The
// opposite edge or corner stays anchored.
type Handle string

const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

// ParseHandle validates a handle name.
func ParseHandle(s string) (Handle, error) {
	switch Handle(s) {
	case HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW:
		return Handle(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown resize handle %q", s)
}

// north/south/east/west report which edges the handle moves.
func (h Handle) north() bool { return h == HandleN || h == HandleNE || h == HandleNW }
func (h Handle) south() bool { return h == HandleS || h == HandleSE || h == HandleSW }
func (h Handle) east() bool  { return h == HandleE || h == HandleNE || h == HandleSE }
func (h Handle) west() bool  { return h == HandleW || h == HandleNW || h == HandleSW }

// ResizeSession tracks one in-progress resize.
type ResizeSession struct {
	WidgetID string
	Handle   Handle

	origin             grid.Placement
	pointerX, pointerY float64

	placeholder grid.Placement
	startedAt   time.Time
}

// Placeholder returns the current validated placeholder rectangle.
func (r *ResizeSession) Placeholder() grid.Placement { return r.placeholder }

// Origin returns the placement the widget had when the resize started.
func (r *ResizeSession) Origin() grid.Placement { return r.origin }

// Resize returns the active resize session, or nil.
func (e *Engine) Resize() *ResizeSession { return e.resize }

// StartResize begins a resize of the widget via the given handle.
func (e *Engine) StartResize(id string, h Handle, pointerX, pointerY float64) error {
	if e.SessionActive() {
		return e.sessionBusyErr()
	}
	if _, err := ParseHandle(string(h)); err != nil {
		return err
	}
	w, err := e.store.Widget(id)
	if err != nil {
		return err
	}
	e.resize = &ResizeSession{
		WidgetID:    id,
		Handle:      h,
		origin:      w.Placement,
		pointerX:    pointerX,
		pointerY:    pointerY,
		placeholder: w.Placement,
		startedAt:   time.Now(),
	}
	e.focusID = id
	observability.Session().OnSessionStart("resize", id)
	return nil
}

// ResizeMove handles a pointer move during a resize. The pointer delta from
// the session start is converted to grid-unit deltas with the same cell
// constants as drag, applied per the handle direction, clamped, and
// re-validated for overlap.
func (e *Engine) ResizeMove(pointerX, pointerY float64) {
	if e.resize == nil {
		return
	}
	dcols := e.metrics.DeltaCols(pointerX - e.resize.pointerX)
	drows := e.metrics.DeltaRows(pointerY - e.resize.pointerY)
	candidate := applyHandle(e.resize.origin, e.resize.Handle, dcols, drows)
	candidate = clampSize(candidate, e.resize.origin, e.resize.Handle, e.store.GridConfig().Cols)
	e.resize.placeholder = e.validate(candidate, e.resize.WidgetID)
}

// EndResize commits the resize: ResizeWidget for the dimensions, then
// MoveWidget for the (possibly shifted) origin.
func (e *Engine) EndResize() (store.Widget, error) {
	if e.resize == nil {
		return store.Widget{}, errors.New(errors.ErrCodeInvalidInput, "no resize session active")
	}
	r := e.resize
	if _, err := e.store.ResizeWidget(r.WidgetID, r.placeholder.W, r.placeholder.H); err != nil {
		e.endResize(false)
		return store.Widget{}, err
	}
	w, err := e.store.MoveWidget(r.WidgetID, r.placeholder.X, r.placeholder.Y)
	e.endResize(err == nil)
	return w, err
}

// CancelResize discards the session without a store call.
func (e *Engine) CancelResize() {
	if e.resize == nil {
		return
	}
	e.endResize(false)
}

func (e *Engine) endResize(committed bool) {
	r := e.resize
	e.resize = nil
	observability.Session().OnSessionEnd("resize", r.WidgetID, committed, time.Since(r.startedAt))
}

// applyHandle maps grid-unit deltas onto (x, y, w, h) for one handle. East
// and south handles grow away from the anchored origin; north and west
// handles shift the origin and grow toward it, keeping the opposite edge
// fixed.
func applyHandle(p grid.Placement, h Handle, dcols, drows int) grid.Placement {
	if h.east() {
		p.W += dcols
	}
	if h.west() {
		p.X += dcols
		p.W -= dcols
	}
	if h.south() {
		p.H += drows
	}
	if h.north() {
		p.Y += drows
		p.H -= drows
	}
	return p
}

// clampSize enforces the min and max widget size. The width ceiling is the
// grid's column count when that is narrower than MaxWidgetW, so a widget can
// never outgrow the grid it lives on. When a west or north handle hits a
// size limit, the origin is re-derived from the anchored opposite edge so
// the fixed edge stays fixed.
func clampSize(p, origin grid.Placement, h Handle, cols int) grid.Placement {
	right := origin.Right()
	bottom := origin.Bottom()

	maxW := MaxWidgetW
	if cols > 0 && cols < maxW {
		maxW = cols
	}
	if p.W < MinWidgetW {
		p.W = MinWidgetW
	}
	if p.W > maxW {
		p.W = maxW
	}
	if p.H < MinWidgetH {
		p.H = MinWidgetH
	}
	if p.H > MaxWidgetH {
		p.H = MaxWidgetH
	}
	if h.west() {
		p.X = right - p.W + 1
	}
	if h.north() {
		p.Y = bottom - p.H + 1
	}
	return p
}
