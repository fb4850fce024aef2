package grid

import "errors"

var (
	// ErrInvalidCols is returned by [Config.Validate] when the column count
	// is outside [MinCols, MaxCols].
	ErrInvalidCols = errors.New("column count out of range")

	// ErrInvalidRowHeight is returned by [Config.Validate] when the row
	// height is not strictly positive.
	ErrInvalidRowHeight = errors.New("row height must be positive")

	// ErrInvalidGap is returned by [Config.Validate] when the gap is negative.
	ErrInvalidGap = errors.New("gap must not be negative")

	// ErrInvalidPlacement is returned by [Config.CheckPlacement] when a
	// placement has a non-positive coordinate or dimension, or extends past
	// the right edge of the grid.
	ErrInvalidPlacement = errors.New("placement out of grid bounds")
)

// Column count bounds for the dashboard surface.
const (
	MinCols = 1
	MaxCols = 24
)

// Config describes the dashboard grid surface.
type Config struct {
	// Cols is the number of columns, between MinCols and MaxCols.
	Cols int `json:"cols" toml:"cols" bson:"cols"`

	// RowHeight is the height of one row in display units.
	RowHeight float64 `json:"rowHeight" toml:"row_height" bson:"row_height"`

	// Gap is the spacing between cells in display units.
	Gap float64 `json:"gap" toml:"gap" bson:"gap"`
}

// DefaultConfig returns the grid used when no configuration exists.
func DefaultConfig() Config {
	return Config{Cols: 12, RowHeight: 100, Gap: 10}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.Cols < MinCols || c.Cols > MaxCols {
		return ErrInvalidCols
	}
	if c.RowHeight <= 0 {
		return ErrInvalidRowHeight
	}
	if c.Gap < 0 {
		return ErrInvalidGap
	}
	return nil
}

// CheckPlacement verifies that p has positive coordinates and dimensions
// and satisfies the horizontal invariant x + w - 1 <= cols. Rows grow
// downward without bound, so no vertical limit is enforced.
func (c Config) CheckPlacement(p Placement) error {
	if p.X < 1 || p.Y < 1 || p.W < 1 || p.H < 1 {
		return ErrInvalidPlacement
	}
	if p.Right() > c.Cols {
		return ErrInvalidPlacement
	}
	return nil
}
