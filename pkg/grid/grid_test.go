package grid

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"default", DefaultConfig(), nil},
		{"min cols", Config{Cols: 1, RowHeight: 1}, nil},
		{"max cols", Config{Cols: 24, RowHeight: 1}, nil},
		{"zero cols", Config{Cols: 0, RowHeight: 1}, ErrInvalidCols},
		{"too many cols", Config{Cols: 25, RowHeight: 1}, ErrInvalidCols},
		{"zero row height", Config{Cols: 12, RowHeight: 0}, ErrInvalidRowHeight},
		{"negative gap", Config{Cols: 12, RowHeight: 10, Gap: -1}, ErrInvalidGap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckPlacement(t *testing.T) {
	cfg := Config{Cols: 12, RowHeight: 100}

	tests := []struct {
		name    string
		p       Placement
		wantErr bool
	}{
		{"fits", Placement{X: 1, Y: 1, W: 3, H: 2}, false},
		{"touches right edge", Placement{X: 10, Y: 1, W: 3, H: 1}, false},
		{"deep row", Placement{X: 1, Y: 500, W: 1, H: 1}, false},
		{"past right edge", Placement{X: 11, Y: 1, W: 3, H: 1}, true},
		{"zero width", Placement{X: 1, Y: 1, W: 0, H: 1}, true},
		{"zero height", Placement{X: 1, Y: 1, W: 1, H: 0}, true},
		{"zero origin", Placement{X: 0, Y: 1, W: 1, H: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.CheckPlacement(tt.p)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPlacement(%+v) = %v, wantErr %v", tt.p, err, tt.wantErr)
			}
		})
	}
}

func TestPlacementIntersects(t *testing.T) {
	a := Placement{X: 1, Y: 1, W: 3, H: 2}

	tests := []struct {
		name string
		b    Placement
		want bool
	}{
		{"identical", a, true},
		{"partial overlap", Placement{X: 3, Y: 2, W: 2, H: 2}, true},
		{"single shared cell", Placement{X: 3, Y: 2, W: 1, H: 1}, true},
		{"adjacent right", Placement{X: 4, Y: 1, W: 2, H: 2}, false},
		{"adjacent below", Placement{X: 1, Y: 3, W: 3, H: 1}, false},
		{"far away", Placement{X: 10, Y: 10, W: 1, H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("reverse Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOccupancy(t *testing.T) {
	occ := NewOccupancy([]Placement{
		{X: 1, Y: 1, W: 3, H: 2},
		{X: 5, Y: 1, W: 2, H: 1},
	})

	if len(occ) != 8 {
		t.Errorf("occupancy size = %d, want 8", len(occ))
	}
	if !occ.Covers(Placement{X: 3, Y: 2, W: 1, H: 1}) {
		t.Error("cell (3,2) should be covered")
	}
	if occ.Covers(Placement{X: 4, Y: 1, W: 1, H: 1}) {
		t.Error("cell (4,1) should be free")
	}
	if !occ.Covers(Placement{X: 4, Y: 1, W: 2, H: 1}) {
		t.Error("rectangle reaching into (5,1) should report covered")
	}
}
