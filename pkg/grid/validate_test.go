package grid

import "testing"

func TestValidatePositionClamping(t *testing.T) {
	empty := Occupancy{}

	tests := []struct {
		name string
		p    Placement
		want Placement
	}{
		{"in bounds", Placement{X: 2, Y: 3, W: 3, H: 2}, Placement{X: 2, Y: 3, W: 3, H: 2}},
		{"past right edge", Placement{X: 11, Y: 1, W: 3, H: 1}, Placement{X: 10, Y: 1, W: 3, H: 1}},
		{"left of grid", Placement{X: -5, Y: 1, W: 3, H: 1}, Placement{X: 1, Y: 1, W: 3, H: 1}},
		{"above grid", Placement{X: 1, Y: -2, W: 3, H: 1}, Placement{X: 1, Y: 1, W: 3, H: 1}},
		{"full width", Placement{X: 4, Y: 2, W: 12, H: 1}, Placement{X: 1, Y: 2, W: 12, H: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePosition(tt.p, empty, 12, true)
			if got != tt.want {
				t.Errorf("ValidatePosition(%+v) = %+v, want %+v", tt.p, got, tt.want)
			}
			if got.Right() > 12 {
				t.Errorf("result violates x+w-1 <= cols: %+v", got)
			}
		})
	}
}

func TestValidatePositionRelocates(t *testing.T) {
	// Widget A occupies (1,1,3,2). Widget B wants the same spot; the
	// row-major scan must land it on the first free column of row 1.
	occ := NewOccupancy([]Placement{{X: 1, Y: 1, W: 3, H: 2}})

	got := ValidatePosition(Placement{X: 1, Y: 1, W: 3, H: 2}, occ, 12, true)
	want := Placement{X: 4, Y: 1, W: 3, H: 2}
	if got != want {
		t.Errorf("relocation = %+v, want %+v", got, want)
	}
	if occ.Covers(got) {
		t.Error("relocated placement still overlaps occupancy")
	}
}

func TestValidatePositionOverlapDisabled(t *testing.T) {
	occ := NewOccupancy([]Placement{{X: 1, Y: 1, W: 3, H: 2}})

	got := ValidatePosition(Placement{X: 1, Y: 1, W: 3, H: 2}, occ, 12, false)
	want := Placement{X: 1, Y: 1, W: 3, H: 2}
	if got != want {
		t.Errorf("with overlap prevention off, got %+v, want %+v", got, want)
	}
}

func TestValidatePositionScansRowMajor(t *testing.T) {
	// Row 1 is fully blocked from the candidate's column onward, so the
	// scan must drop to row 2 and resume at the candidate's start column.
	occ := NewOccupancy([]Placement{{X: 1, Y: 1, W: 12, H: 1}})

	got := ValidatePosition(Placement{X: 5, Y: 1, W: 2, H: 1}, occ, 12, true)
	want := Placement{X: 5, Y: 2, W: 2, H: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestValidatePositionWindowExhausted(t *testing.T) {
	// Block every cell the window can reach. The candidate (1,1,1,1) with a
	// 12-column grid scans rows 1..SearchWindow; occupy them all.
	blocked := make([]Placement, 0, SearchWindow)
	for row := 1; row <= SearchWindow; row++ {
		blocked = append(blocked, Placement{X: 1, Y: row, W: 12, H: 1})
	}
	occ := NewOccupancy(blocked)

	got := ValidatePosition(Placement{X: 1, Y: 1, W: 1, H: 1}, occ, 12, true)
	want := Placement{X: 1, Y: 1, W: 1, H: 1}
	if got != want {
		t.Errorf("exhausted search should return clamped origin, got %+v", got)
	}
	if !occ.Covers(got) {
		t.Error("test setup expected the returned position to overlap")
	}
}

func TestCellAt(t *testing.T) {
	m := Metrics{
		ContainerWidth: 1200,
		Config:         Config{Cols: 12, RowHeight: 100, Gap: 10},
	}

	if w := m.CellWidth(); w != 100 {
		t.Fatalf("CellWidth = %v, want 100", w)
	}

	tests := []struct {
		name string
		x, y float64
		want Cell
	}{
		{"origin", 0, 0, Cell{Col: 1, Row: 1}},
		{"rounds down within cell", 40, 40, Cell{Col: 1, Row: 1}},
		{"rounds up past midpoint", 60, 60, Cell{Col: 2, Row: 2}},
		{"exact cell boundary", 100, 110, Cell{Col: 2, Row: 2}},
		{"negative floors at 1", -50, -50, Cell{Col: 1, Row: 1}},
		{"far column", 1150, 0, Cell{Col: 13, Row: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.CellAt(tt.x, tt.y); got != tt.want {
				t.Errorf("CellAt(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDeltaConversion(t *testing.T) {
	m := Metrics{
		ContainerWidth: 1200,
		Config:         Config{Cols: 12, RowHeight: 100, Gap: 10},
	}

	if d := m.DeltaCols(210); d != 2 {
		t.Errorf("DeltaCols(210) = %d, want 2", d)
	}
	if d := m.DeltaCols(-160); d != -2 {
		t.Errorf("DeltaCols(-160) = %d, want -2", d)
	}
	if d := m.DeltaRows(115); d != 1 {
		t.Errorf("DeltaRows(115) = %d, want 1", d)
	}
	if d := m.DeltaRows(40); d != 0 {
		t.Errorf("DeltaRows(40) = %d, want 0", d)
	}
}
