package grid

// Occupancy is the set of cells covered by existing placements. It is
// derived state: build it from the current placement list immediately
// before a validation pass and discard it afterwards.
type Occupancy map[Cell]struct{}

// NewOccupancy builds the occupancy set covering all given placements.
func NewOccupancy(placements []Placement) Occupancy {
	occ := make(Occupancy)
	for _, p := range placements {
		occ.Add(p)
	}
	return occ
}

// Add marks every cell of p as occupied.
func (o Occupancy) Add(p Placement) {
	for col := p.X; col <= p.Right(); col++ {
		for row := p.Y; row <= p.Bottom(); row++ {
			o[Cell{Col: col, Row: row}] = struct{}{}
		}
	}
}

// Covers reports whether any cell of p is occupied.
func (o Occupancy) Covers(p Placement) bool {
	for col := p.X; col <= p.Right(); col++ {
		for row := p.Y; row <= p.Bottom(); row++ {
			if _, ok := o[Cell{Col: col, Row: row}]; ok {
				return true
			}
		}
	}
	return false
}
