package engine

import (
	"testing"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/store"
)

func TestDragCommitsExactlyOneMove(t *testing.T) {
	e, st := newTestEngine(t)
	addWidget(t, st, "a", 1, 1, 3, 2)

	moves := 0
	st.Subscribe(store.EventWidgetMoved, func(store.Change) { moves++ })

	// Grab at (50,55), inside the widget's first cell.
	if err := e.StartDrag("a", 50, 55); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if got := e.Drag().Placeholder(); got.X != 1 || got.Y != 1 {
		t.Fatalf("initial placeholder = %+v", got)
	}

	// Pointer wanders down by two rows; placeholder follows, store is quiet.
	e.DragMove(50, 165)
	e.DragMove(50, 275)
	if moves != 0 {
		t.Fatalf("store mutated during drag: %d moves", moves)
	}
	if got := e.Drag().Placeholder(); got.X != 1 || got.Y != 3 {
		t.Fatalf("placeholder = %+v, want (1,3)", got)
	}

	w, err := e.EndDrag()
	if err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
	if w.X != 1 || w.Y != 3 {
		t.Errorf("committed at (%d,%d), want (1,3)", w.X, w.Y)
	}
	if moves != 1 {
		t.Errorf("moves = %d, want exactly 1", moves)
	}
	if e.SessionActive() {
		t.Error("session should be gone after commit")
	}
}

func TestDragPlaceholderRelocatesAroundCollision(t *testing.T) {
	e, st := newTestEngine(t)
	addWidget(t, st, "a", 1, 1, 3, 2)
	addWidget(t, st, "b", 4, 1, 3, 2)

	if err := e.StartDrag("a", 50, 55); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	// Pointer over b's origin cell: candidate (4,1) collides, the bounded
	// search slides right past b to the first free column.
	e.DragMove(350, 55)
	if got := e.Drag().Placeholder(); got.X != 7 || got.Y != 1 {
		t.Errorf("placeholder = %+v, want (7,1)", got)
	}
}

func TestDragIgnoresExcludedWidgetOwnCells(t *testing.T) {
	e, st := newTestEngine(t)
	addWidget(t, st, "a", 1, 1, 3, 2)

	if err := e.StartDrag("a", 50, 55); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	// A one-column wiggle overlaps a's own cells; the dragged widget must
	// not collide with itself.
	e.DragMove(150, 55)
	if got := e.Drag().Placeholder(); got.X != 2 || got.Y != 1 {
		t.Errorf("placeholder = %+v, want (2,1)", got)
	}
}

func TestCancelDragRestoresOriginal(t *testing.T) {
	e, st := newTestEngine(t)
	addWidget(t, st, "a", 1, 1, 3, 2)

	moves := 0
	st.Subscribe(store.EventWidgetMoved, func(store.Change) { moves++ })

	if err := e.StartDrag("a", 50, 55); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	e.DragMove(550, 275)
	e.CancelDrag()

	if moves != 0 {
		t.Errorf("cancel issued %d store calls", moves)
	}
	w, _ := st.Widget("a")
	if w.X != 1 || w.Y != 1 {
		t.Errorf("widget at (%d,%d) after cancel, want (1,1)", w.X, w.Y)
	}
	if e.SessionActive() {
		t.Error("session should be gone after cancel")
	}
}

func TestStartDragRejectsSecondSession(t *testing.T) {
	e, st := newTestEngine(t)
	addWidget(t, st, "a", 1, 1, 2, 1)
	addWidget(t, st, "b", 3, 1, 2, 1)

	if err := e.StartDrag("a", 50, 50); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if err := e.StartDrag("b", 250, 50); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("second StartDrag code = %v", errors.GetCode(err))
	}
	if err := e.StartResize("b", HandleSE, 250, 50); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("StartResize during drag code = %v", errors.GetCode(err))
	}
}

func TestStartDragUnknownWidget(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.StartDrag("ghost", 0, 0); errors.GetCode(err) != errors.ErrCodeWidgetNotFound {
		t.Errorf("code = %v, want WIDGET_NOT_FOUND", errors.GetCode(err))
	}
}

func TestEndDragWithoutSession(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.EndDrag(); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
	e.CancelDrag() // no-op, must not panic
}

func TestDragGrabOffsetKeepsGrabPoint(t *testing.T) {
	e, st := newTestEngine(t)
	addWidget(t, st, "a", 2, 2, 3, 2)

	// Grab in the middle of the widget: origin display (100,110), pointer
	// at (250,165) — offset (150,55).
	if err := e.StartDrag("a", 250, 165); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	// Moving the pointer by exactly one cell width moves the placeholder
	// one column, regardless of where inside the widget it was grabbed.
	e.DragMove(350, 165)
	if got := e.Drag().Placeholder(); got.X != 3 || got.Y != 2 {
		t.Errorf("placeholder = %+v, want (3,2)", got)
	}
}
