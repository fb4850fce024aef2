package grid

// SearchWindow is the number of rows the collision search examines below
// the requested row before giving up. The ceiling keeps validation cost
// bounded at the price of occasionally accepting an overlapping result.
const SearchWindow = 20

// ValidatePosition clamps the candidate placement into the grid and, when
// preventOverlap is true, relocates it to the first free position in
// row-major order.
//
// The scan starts at the clamped (x, y) and examines rows y through
// y+SearchWindow-1; within each row, columns x through cols-w+1. The first
// position whose rectangle covers no cell in occ is returned. If the window
// exhausts without a free position, the clamped original placement is
// returned as-is and may overlap existing widgets.
//
// occ must not include the cells of the widget being moved or resized;
// callers exclude it when building the set.
func ValidatePosition(p Placement, occ Occupancy, cols int, preventOverlap bool) Placement {
	p = p.ClampX(cols).ClampY()

	if !preventOverlap {
		return p
	}

	maxX := cols - p.W + 1
	for row := p.Y; row < p.Y+SearchWindow; row++ {
		for col := p.X; col <= maxX; col++ {
			candidate := Placement{X: col, Y: row, W: p.W, H: p.H}
			if !occ.Covers(candidate) {
				return candidate
			}
		}
	}

	return p
}
