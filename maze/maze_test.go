package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 3x4 grid:
//
//	S . # .
//	# . . #
//	# # . E
var sampleCells = []byte{
	0, 0, 1, 0,
	1, 0, 0, 1,
	1, 1, 0, 0,
}

func sampleMaze(t *testing.T) *Maze {
	t.Helper()
	m, err := New(3, 4, Position{0, 0}, Position{2, 3}, sampleCells)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	cases := []struct {
		name  string
		rows  int
		cols  int
		start Position
		goal  Position
		cells []byte
	}{
		{"zero rows", 0, 4, Position{}, Position{}, nil},
		{"cell count mismatch", 3, 4, Position{}, Position{}, sampleCells[:11]},
		{"start out of bound", 3, 4, Position{3, 0}, Position{2, 3}, sampleCells},
		{"goal out of bound", 3, 4, Position{0, 0}, Position{2, 4}, sampleCells},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.rows, tc.cols, tc.start, tc.goal, tc.cells)
			assert.ErrorIs(t, err, ErrInvalidMaze)
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	m := sampleMaze(t)

	b := m.Bytes()
	require.Len(t, b, HeaderSize+12)
	assert.Equal(t, []byte{0, 0, 0, 3, 0, 0, 0, 4}, b[:8])

	got, err := FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFromBytesRejectsShortBuffer(t *testing.T) {
	_, err := FromBytes(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrInvalidMaze)

	b := sampleMaze(t).Bytes()
	_, err = FromBytes(b[:len(b)-1])
	assert.ErrorIs(t, err, ErrInvalidMaze)
}

func TestPossibleToGo(t *testing.T) {
	m := sampleMaze(t)

	assert.True(t, m.PossibleToGo(0, 1))
	assert.True(t, m.PossibleToGo(2, 3))
	assert.False(t, m.PossibleToGo(0, 2))
	assert.False(t, m.PossibleToGo(-1, 0))
	assert.False(t, m.PossibleToGo(0, 4))
	assert.False(t, m.PossibleToGo(3, 0))
}

func TestNewCopiesCells(t *testing.T) {
	cells := append([]byte(nil), sampleCells...)
	m, err := New(3, 4, Position{0, 0}, Position{2, 3}, cells)
	require.NoError(t, err)

	cells[1] = Wall
	assert.True(t, m.PossibleToGo(0, 1))
}

func TestString(t *testing.T) {
	assert.Equal(t, "S # \n#  #\n## E\n", sampleMaze(t).String())
}
