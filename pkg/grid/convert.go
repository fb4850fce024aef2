package grid

import "math"

// Metrics converts pointer positions in display units to grid cells.
// It is the single source of truth for pointer-to-grid mapping; keyboard
// movement bypasses conversion and operates directly in grid units.
type Metrics struct {
	// ContainerWidth is the width of the dashboard surface in display units.
	ContainerWidth float64

	// Config supplies the column count, row height, and gap.
	Config Config
}

// CellWidth returns the width of one column in display units.
func (m Metrics) CellWidth() float64 {
	return m.ContainerWidth / float64(m.Config.Cols)
}

// RowPitch returns the vertical distance between row origins.
func (m Metrics) RowPitch() float64 {
	return m.Config.RowHeight + m.Config.Gap
}

// CellAt converts a pointer position relative to the container origin into
// the nearest grid cell. Both coordinates are floored at 1.
func (m Metrics) CellAt(relX, relY float64) Cell {
	col := int(math.Round(relX/m.CellWidth())) + 1
	row := int(math.Round(relY/m.RowPitch())) + 1
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	return Cell{Col: col, Row: row}
}

// DeltaCols converts a horizontal pointer delta into whole columns,
// rounding to the nearest column. Used by resize sessions, which share
// cell-size constants with drag.
func (m Metrics) DeltaCols(dx float64) int {
	return int(math.Round(dx / m.CellWidth()))
}

// DeltaRows converts a vertical pointer delta into whole rows.
func (m Metrics) DeltaRows(dy float64) int {
	return int(math.Round(dy / m.RowPitch()))
}
