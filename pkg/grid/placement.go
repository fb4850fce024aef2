package grid

// Cell addresses one (column, row) unit of the grid surface, 1-based.
type Cell struct {
	Col int
	Row int
}

// Placement is a widget's rectangle in grid units, 1-based inclusive.
type Placement struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	W int `json:"w" bson:"w"`
	H int `json:"h" bson:"h"`
}

// Right returns the rightmost column covered by the placement.
func (p Placement) Right() int { return p.X + p.W - 1 }

// Bottom returns the bottommost row covered by the placement.
func (p Placement) Bottom() int { return p.Y + p.H - 1 }

// Contains reports whether the placement covers the given cell.
func (p Placement) Contains(c Cell) bool {
	return c.Col >= p.X && c.Col <= p.Right() && c.Row >= p.Y && c.Row <= p.Bottom()
}

// Intersects reports whether two placements share at least one cell.
func (p Placement) Intersects(o Placement) bool {
	return p.X <= o.Right() && o.X <= p.Right() && p.Y <= o.Bottom() && o.Y <= p.Bottom()
}

// ClampX returns the placement with X clamped to [1, cols-w+1].
// A placement wider than the grid is pinned to column 1.
func (p Placement) ClampX(cols int) Placement {
	maxX := cols - p.W + 1
	if p.X > maxX {
		p.X = maxX
	}
	if p.X < 1 {
		p.X = 1
	}
	return p
}

// ClampY returns the placement with Y floored at 1.
func (p Placement) ClampY() Placement {
	if p.Y < 1 {
		p.Y = 1
	}
	return p
}
