package i

import "github.com/beka-birhanu/vinom-maze-client/maze"

// Maze defines the maze queries the runtime relies on.
type Maze interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// StartPosition returns the position a player starts from.
	StartPosition() maze.Position

	// GoalPosition returns the position a player must reach.
	GoalPosition() maze.Position

	// InBound reports whether (row, col) lies on the grid.
	InBound(row, col int) bool

	// PossibleToGo reports whether a player may occupy (row, col).
	PossibleToGo(row, col int) bool

	// Bytes returns the buffer form sent to the solving service.
	Bytes() []byte

	String() string
}
