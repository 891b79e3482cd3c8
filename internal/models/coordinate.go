package models

import "fmt"

// Coordinate identifies a cell on the 15x15 board.
// The origin is the top-left corner of the board.
type Coordinate struct {
	X int
	Y int
}

// Equal reports whether both coordinates point at the same cell
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
