package types

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Coord is a square on the board. Row 0 is Black's back rank and row 7 is
// White's back rank. A Coord obtained from NewCoord or OffsetBy is always
// inside the board.
type Coord struct {
	Row int
	Col int
}

// NewCoord returns the square at (row, col). ok is false if either index
// is outside [0, BoardSize).
func NewCoord(row, col int) (c Coord, ok bool) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return Coord{}, false
	}
	return Coord{Row: row, Col: col}, true
}

// MustCoord is like NewCoord but panics on out-of-range input.
// Intended for constants and tests.
func MustCoord(row, col int) Coord {
	c, ok := NewCoord(row, col)
	if !ok {
		panic("types: coordinate out of range")
	}
	return c
}

// OffsetBy returns the square reached by moving dRow rows and dCol columns
// from c, as seen by player. Negative row deltas point towards the
// opponent's back rank for both players: for White the delta is applied
// as is, for Black it is negated.
func (c Coord) OffsetBy(dRow, dCol int, player Player) (Coord, bool) {
	if player == Black {
		dRow = -dRow
	}
	return NewCoord(c.Row+dRow, c.Col+dCol)
}
