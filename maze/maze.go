/*
Package maze holds the grid maze exchanged with the generation and solving services.

A maze travels as a byte buffer: a 24 byte header of six big-endian int32 values
(rows, cols, start row, start col, goal row, goal col) followed by one cell-type code per cell
in row-major order.
*/
package maze

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Cell-type codes.
const (
	Passage byte = 0
	Wall    byte = 1
)

// HeaderSize is the size of the metadata that precedes the cells of a maze buffer.
const HeaderSize = 24

var ErrInvalidMaze = errors.New("invalid maze")

// Position is a (row, col) coordinate on the grid.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("{%d,%d}", p.Row, p.Col)
}

// Solution is an ordered path of positions from start to goal.
type Solution struct {
	States []Position
}

// Len returns the number of steps in the solution.
func (s *Solution) Len() int {
	return len(s.States)
}

// Maze is an immutable rectangular grid with a start and a goal position.
type Maze struct {
	rows  int
	cols  int
	start Position
	goal  Position
	cells []byte
}

// New builds a maze from its dimensions, endpoints and row-major cells.
func New(rows, cols int, start, goal Position, cells []byte) (*Maze, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidMaze, rows, cols)
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidMaze, rows*cols, len(cells))
	}

	m := &Maze{rows: rows, cols: cols, start: start, goal: goal, cells: make([]byte, len(cells))}
	copy(m.cells, cells)

	if !m.InBound(start.Row, start.Col) {
		return nil, fmt.Errorf("%w: start %v is out of the maze", ErrInvalidMaze, start)
	}
	if !m.InBound(goal.Row, goal.Col) {
		return nil, fmt.Errorf("%w: goal %v is out of the maze", ErrInvalidMaze, goal)
	}
	return m, nil
}

// FromBytes builds a maze from its buffer form.
func FromBytes(b []byte) (*Maze, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: buffer of %d bytes is shorter than the header", ErrInvalidMaze, len(b))
	}

	header := make([]int, HeaderSize/4)
	for i := range header {
		header[i] = int(int32(binary.BigEndian.Uint32(b[i*4:])))
	}

	return New(
		header[0], header[1],
		Position{Row: header[2], Col: header[3]},
		Position{Row: header[4], Col: header[5]},
		b[HeaderSize:],
	)
}

// Bytes returns the buffer form of the maze.
func (m *Maze) Bytes() []byte {
	b := make([]byte, 0, HeaderSize+len(m.cells))
	for _, v := range []int{m.rows, m.cols, m.start.Row, m.start.Col, m.goal.Row, m.goal.Col} {
		b = binary.BigEndian.AppendUint32(b, uint32(int32(v)))
	}
	return append(b, m.cells...)
}

// Rows returns the number of rows.
func (m *Maze) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Maze) Cols() int {
	return m.cols
}

// StartPosition returns the position a player starts from.
func (m *Maze) StartPosition() Position {
	return m.start
}

// GoalPosition returns the position a player must reach.
func (m *Maze) GoalPosition() Position {
	return m.goal
}

// InBound reports whether (row, col) lies on the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Cell returns the cell-type code at (row, col). Out of bound cells read as walls.
func (m *Maze) Cell(row, col int) byte {
	if !m.InBound(row, col) {
		return Wall
	}
	return m.cells[row*m.cols+col]
}

// PossibleToGo reports whether a player may occupy (row, col).
func (m *Maze) PossibleToGo(row, col int) bool {
	return m.Cell(row, col) == Passage
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var sb strings.Builder
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			switch {
			case m.start.Row == row && m.start.Col == col:
				sb.WriteByte('S')
			case m.goal.Row == row && m.goal.Col == col:
				sb.WriteByte('E')
			case m.Cell(row, col) == Passage:
				sb.WriteByte(' ')
			default:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
