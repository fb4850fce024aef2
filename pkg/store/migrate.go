package store

import (
	"strconv"
	"strings"

	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
)

// CurrentVersion is the schema version stamped on every persisted record.
const CurrentVersion = "1.0.0"

// migration is one version-gated step. Steps apply in order to any record
// whose stored version is older than the step's version.
type migration struct {
	version string
	apply   func(*State)
}

// migrations is the ordered chain of schema migrations.
var migrations = []migration{
	{version: "1.0.0", apply: migrateTo100},
}

// Migrate brings a record up to CurrentVersion, applying every step gated
// on a newer version than the record carries. It reports whether the record
// changed. Migrating an already-current record is a no-op, so running
// Migrate twice is safe.
func Migrate(s *State) bool {
	from := s.Version
	if compareVersions(from, CurrentVersion) >= 0 {
		return false
	}

	for _, m := range migrations {
		if compareVersions(from, m.version) < 0 {
			m.apply(s)
		}
	}
	s.Version = CurrentVersion

	observability.Store().OnMigration(from, CurrentVersion)
	return true
}

// migrateTo100 is the pre-1.0.0 cleanup: fill missing fields with defaults
// and deduplicate widget id collisions by regenerating later duplicates.
func migrateTo100(s *State) {
	def := grid.DefaultConfig()
	if s.Grid.Cols == 0 {
		s.Grid.Cols = def.Cols
	}
	if s.Grid.RowHeight == 0 {
		s.Grid.RowHeight = def.RowHeight
	}
	if s.Theme == "" {
		s.Theme = ThemeSystem
	}
	if s.Widgets == nil {
		s.Widgets = []Widget{}
	}

	seen := make(map[string]struct{}, len(s.Widgets))
	for i := range s.Widgets {
		w := &s.Widgets[i]
		if w.W < 1 {
			w.W = 1
		}
		if w.H < 1 {
			w.H = 1
		}
		w.Placement = w.Placement.ClampX(s.Grid.Cols).ClampY()

		if _, dup := seen[w.ID]; dup || w.ID == "" {
			w.ID = newWidgetID(w.Type, seen)
		}
		seen[w.ID] = struct{}{}
	}
}

// compareVersions compares two semantic version strings ordinally by
// major.minor.patch. Missing components are treated as 0; a leading "v"
// and any pre-release suffix are ignored.
func compareVersions(a, b string) int {
	av := parseVersion(a)
	bv := parseVersion(b)
	for i := 0; i < 3; i++ {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// parseVersion extracts the numeric triple from a version string.
// Unparseable components are treated as 0.
func parseVersion(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	var out [3]int
	parts := strings.Split(v, ".")
	for i := 0; i < 3 && i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			break
		}
		out[i] = n
	}
	return out
}
