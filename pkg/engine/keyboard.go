package engine

import (
	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/store"
)

// Keyboard step sizes. Wide-step applies while the modifier is held.
const (
	MoveStep       = 1
	MoveStepWide   = 5
	ResizeStep     = 1
	ResizeStepWide = 2
)

// Direction is a keyboard arrow direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) vector() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Nudge moves the focused widget one step (five with wide) in the given
// direction. The candidate runs through the same clamp and collision
// search as a pointer drag and commits immediately with a single store
// call. No session is created.
func (e *Engine) Nudge(dir Direction, wide bool) (store.Widget, error) {
	w, err := e.focusedWidget()
	if err != nil {
		return store.Widget{}, err
	}
	step := MoveStep
	if wide {
		step = MoveStepWide
	}
	dx, dy := dir.vector()
	candidate := w.Placement
	candidate.X += dx * step
	candidate.Y += dy * step
	validated := e.validate(candidate, w.ID)
	return e.store.MoveWidget(w.ID, validated.X, validated.Y)
}

// Adjust resizes the focused widget one step (two with wide): right and
// down grow, left and up shrink. The result goes through the same clamp
// and validation path as a pointer resize and commits with a single
// UpdateWidget call carrying both dimensions and position.
func (e *Engine) Adjust(dir Direction, wide bool) (store.Widget, error) {
	w, err := e.focusedWidget()
	if err != nil {
		return store.Widget{}, err
	}
	step := ResizeStep
	if wide {
		step = ResizeStepWide
	}
	dx, dy := dir.vector()

	candidate := w.Placement
	candidate.W += dx * step
	candidate.H += dy * step
	candidate = clampSize(candidate, w.Placement, HandleSE, e.store.GridConfig().Cols)
	candidate = e.validate(candidate, w.ID)

	patch := store.Patch{X: &candidate.X, Y: &candidate.Y, W: &candidate.W, H: &candidate.H}
	return e.store.UpdateWidget(w.ID, patch)
}

func (e *Engine) focusedWidget() (store.Widget, error) {
	if e.focusID == "" {
		return store.Widget{}, errors.New(errors.ErrCodeInvalidInput, "no widget focused")
	}
	w, err := e.store.Widget(e.focusID)
	if err != nil {
		// Focus can go stale when the widget is removed out from under us.
		e.focusID = ""
		return store.Widget{}, err
	}
	return w, nil
}
