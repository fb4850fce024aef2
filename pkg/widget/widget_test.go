package widget

import (
	"strings"
	"testing"
	"time"

	"github.com/griddeck/griddeck/pkg/errors"
)

func TestRegistryRegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("clock", NewClock); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !r.Has("clock") {
		t.Error("expected Has(clock)")
	}
	inst, err := r.Create("clock", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer inst.Destroy()
	if inst.Config()["format"] != "15:04:05" {
		t.Errorf("default format = %v", inst.Config()["format"])
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("notes", NewNotes); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := r.Register("notes", NewNotes)
	if errors.GetCode(err) != errors.ErrCodeInvalidWidget {
		t.Errorf("duplicate register code = %v", errors.GetCode(err))
	}
}

func TestRegistryRejectsInvalidNames(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"", "Has Spaces", "UPPER", "sixty-five-characters-" + strings.Repeat("x", 43)} {
		if err := r.Register(name, NewClock); err == nil {
			t.Errorf("Register(%q): expected error", name)
		}
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create("nope", nil)
	if errors.GetCode(err) != errors.ErrCodeTypeNotFound {
		t.Errorf("code = %v, want TYPE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestBuiltinKinds(t *testing.T) {
	r := Builtin()
	got := r.Kinds()
	want := []string{"clock", "gauge", "notes"}
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClockRender(t *testing.T) {
	inst, err := NewClock(map[string]any{"format": "15:04"})
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	c := inst.(*Clock)
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC) }

	out := c.Render(20, 2)
	if !strings.Contains(out, "14:30") {
		t.Errorf("Render = %q, want time", out)
	}
	if !strings.Contains(out, "Mar 9") {
		t.Errorf("Render = %q, want date line", out)
	}

	out = c.Render(20, 1)
	if strings.Contains(out, "Mar 9") {
		t.Errorf("single-row Render = %q, should drop date", out)
	}
}

func TestNotesRenderTruncatesToHeight(t *testing.T) {
	inst, _ := NewNotes(map[string]any{"text": "one two three four five six seven eight"})
	out := inst.Render(8, 2)
	if lines := strings.Count(out, "\n") + 1; lines > 2 {
		t.Errorf("rendered %d lines, want <= 2", lines)
	}
}

func TestNotesEmptyPlaceholder(t *testing.T) {
	inst, _ := NewNotes(nil)
	if !strings.Contains(inst.Render(20, 3), "empty note") {
		t.Error("expected empty placeholder")
	}
}

func TestGaugeValueValidation(t *testing.T) {
	if _, err := NewGauge(map[string]any{"value": 150}); err == nil {
		t.Error("expected out-of-range error")
	}
	inst, err := NewGauge(map[string]any{"value": 40, "label": "cpu"})
	if err != nil {
		t.Fatalf("NewGauge: %v", err)
	}
	if err := inst.SetConfig(map[string]any{"value": -3}); err == nil {
		t.Error("SetConfig should reject negative value")
	}
	if err := inst.SetConfig(map[string]any{"value": 80}); err != nil {
		t.Errorf("SetConfig(80): %v", err)
	}
	if got := inst.Config()["value"]; floatOpt(inst.Config(), "value", 0) != 80 {
		t.Errorf("value = %v, want 80", got)
	}
}

func TestGaugeRenderBar(t *testing.T) {
	inst, _ := NewGauge(map[string]any{"value": 50, "label": "disk"})
	out := inst.Render(27, 2)
	if !strings.Contains(out, "disk") || !strings.Contains(out, "50%") {
		t.Errorf("Render = %q", out)
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "░") {
		t.Errorf("Render = %q, want half-filled bar", out)
	}
}

func TestConfigIsolation(t *testing.T) {
	inst, _ := NewNotes(map[string]any{"text": "hi"})
	cfg := inst.Config()
	cfg["text"] = "mutated"
	if inst.Config()["text"] != "hi" {
		t.Error("Config() snapshot should not alias internal state")
	}
}

func TestSettingsForms(t *testing.T) {
	r := Builtin()
	for _, kind := range r.Kinds() {
		inst, err := r.Create(kind, nil)
		if err != nil {
			t.Fatalf("Create(%s): %v", kind, err)
		}
		sp, ok := inst.(SettingsProvider)
		if !ok {
			t.Errorf("%s: no settings form", kind)
			continue
		}
		if len(sp.SettingsForm()) == 0 {
			t.Errorf("%s: empty settings form", kind)
		}
		inst.Destroy()
	}
}
