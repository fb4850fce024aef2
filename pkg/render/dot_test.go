package render

import (
	"strings"
	"testing"

	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/store"
)

func sampleState() store.State {
	s := store.DefaultState()
	s.Widgets = []store.Widget{
		{ID: "clock-1", Type: "clock", Placement: grid.Placement{X: 1, Y: 1, W: 3, H: 2}},
		{ID: "notes-1", Type: "notes", Placement: grid.Placement{X: 4, Y: 1, W: 4, H: 3}, Minimized: true},
	}
	return s
}

func TestToDOTEmitsPinnedNodes(t *testing.T) {
	dot := ToDOT(sampleState(), Options{})

	if !strings.Contains(dot, "layout=neato") {
		t.Error("expected neato layout")
	}
	for _, id := range []string{`"clock-1"`, `"notes-1"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("missing node %s", id)
		}
	}
	// Positions must be pinned, otherwise neato rearranges the layout.
	if !strings.Contains(dot, "!\"") {
		t.Error("expected pinned pos attributes")
	}
	// clock-1: center x = (0 + 3/2) * 60 = 90; maxRow=3, center y = (3-1+1 - 1)*60 = 120.
	if !strings.Contains(dot, `pos="90,120!"`) {
		t.Errorf("clock-1 position wrong:\n%s", dot)
	}
}

func TestToDOTMinimizedStyling(t *testing.T) {
	dot := ToDOT(sampleState(), Options{})
	if !strings.Contains(dot, "dashed") {
		t.Error("minimized widget should render dashed")
	}
}

func TestToDOTLabels(t *testing.T) {
	plain := ToDOT(sampleState(), Options{})
	if !strings.Contains(plain, `label="clock"`) {
		t.Errorf("plain label missing:\n%s", plain)
	}

	detailed := ToDOT(sampleState(), Options{Detailed: true})
	if !strings.Contains(detailed, "clock-1") || !strings.Contains(detailed, "3x2") {
		t.Error("detailed label should include id and size")
	}
	if !strings.Contains(detailed, "minimized") {
		t.Error("detailed label should flag minimized widgets")
	}
}

func TestToDOTEmptyState(t *testing.T) {
	dot := ToDOT(store.DefaultState(), Options{})
	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("malformed DOT:\n%s", dot)
	}
}
