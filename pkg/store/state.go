package store

import (
	"time"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
)

// Theme selects the dashboard color scheme.
type Theme string

// Supported themes.
const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeAmoled Theme = "amoled"
)

// Themes lists all supported themes in display order.
func Themes() []Theme {
	return []Theme{ThemeSystem, ThemeLight, ThemeDark, ThemeAmoled}
}

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark, ThemeAmoled:
		return true
	}
	return false
}

// Widget is one placed widget instance. The embedded [grid.Placement]
// contributes the x/y/w/h fields; Config is opaque to the store and is
// interpreted only by the widget's own factory.
type Widget struct {
	ID             string `json:"id" bson:"id"`
	Type           string `json:"type" bson:"type"`
	grid.Placement `bson:",inline"`
	Minimized      bool           `json:"minimized" bson:"minimized"`
	Config         map[string]any `json:"config,omitempty" bson:"config,omitempty"`
}

// Clone returns a deep copy of the widget.
func (w Widget) Clone() Widget {
	c := w
	if w.Config != nil {
		c.Config = make(map[string]any, len(w.Config))
		for k, v := range w.Config {
			c.Config[k] = v
		}
	}
	return c
}

// State is the canonical dashboard state, persisted as one versioned record.
type State struct {
	Grid         grid.Config `json:"grid" bson:"grid"`
	Widgets      []Widget    `json:"widgets" bson:"widgets"`
	Theme        Theme       `json:"theme" bson:"theme"`
	Version      string      `json:"version" bson:"version"`
	LastModified time.Time   `json:"lastModified" bson:"last_modified"`
}

// DefaultState returns the built-in state used when no record exists or a
// stored record cannot be recovered.
func DefaultState() State {
	return State{
		Grid:         grid.DefaultConfig(),
		Widgets:      []Widget{},
		Theme:        ThemeSystem,
		Version:      CurrentVersion,
		LastModified: time.Now(),
	}
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s State) Clone() State {
	c := s
	c.Widgets = make([]Widget, len(s.Widgets))
	for i, w := range s.Widgets {
		c.Widgets[i] = w.Clone()
	}
	return c
}

// Validate checks the full state: grid bounds, theme, widget id uniqueness,
// and every placement against the grid.
func (s State) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGrid, err, "grid config")
	}
	if !s.Theme.Valid() {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", s.Theme)
	}

	seen := make(map[string]struct{}, len(s.Widgets))
	for _, w := range s.Widgets {
		if err := errors.ValidateWidgetID(w.ID); err != nil {
			return err
		}
		if err := errors.ValidateWidgetType(w.Type); err != nil {
			return err
		}
		if _, dup := seen[w.ID]; dup {
			return errors.New(errors.ErrCodeInvalidWidget, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = struct{}{}

		if err := s.Grid.CheckPlacement(w.Placement); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPlacement, err, "widget %q", w.ID)
		}
	}
	return nil
}

// indexOf returns the position of the widget with the given id, or -1.
func (s State) indexOf(id string) int {
	for i, w := range s.Widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// ExportDocument is a deep snapshot of the state tagged with an export
// timestamp. It is the unit consumed by ImportLayout.
type ExportDocument struct {
	State
	ExportedAt time.Time `json:"exportedAt" bson:"exported_at"`
}
