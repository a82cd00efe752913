package model

// Cell is the state of a single grid position. The numeric values are part of
// the buffer contract: renderers may read Cells() directly as bytes.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// String returns the state name
func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

// cellOf converts a rule outcome back into a Cell
func cellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}
