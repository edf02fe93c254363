package movement

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze-client/maze"
	"github.com/stretchr/testify/assert"
)

// openCells is a grid where only the listed cells can be occupied.
type openCells map[maze.Position]bool

func (o openCells) PossibleToGo(row, col int) bool {
	return o[maze.Position{Row: row, Col: col}]
}

func TestApplyAllDirections(t *testing.T) {
	from := maze.Position{Row: 3, Col: 4}
	cases := []struct {
		d    Direction
		want maze.Position
	}{
		{Up, maze.Position{Row: 2, Col: 4}},
		{Down, maze.Position{Row: 4, Col: 4}},
		{Left, maze.Position{Row: 3, Col: 3}},
		{Right, maze.Position{Row: 3, Col: 5}},
		{UpLeft, maze.Position{Row: 2, Col: 3}},
		{UpRight, maze.Position{Row: 2, Col: 5}},
		{DownLeft, maze.Position{Row: 4, Col: 3}},
		{DownRight, maze.Position{Row: 4, Col: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.d.String(), func(t *testing.T) {
			got, outcome := Apply(openCells{tc.want: true}, from, tc.d)
			assert.Equal(t, Accepted, outcome)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyDiagonalUpLeft(t *testing.T) {
	grid := openCells{{Row: 2, Col: 3}: true}

	got, outcome := Apply(grid, maze.Position{Row: 3, Col: 4}, UpLeft)

	assert.Equal(t, Accepted, outcome)
	assert.Equal(t, maze.Position{Row: 2, Col: 3}, got)
}

func TestApplyBlockedIsIdempotent(t *testing.T) {
	grid := openCells{}
	pos := maze.Position{Row: 1, Col: 1}

	for i := 0; i < 5; i++ {
		next, outcome := Apply(grid, pos, Right)
		assert.Equal(t, Blocked, outcome)
		assert.Equal(t, pos, next)
		pos = next
	}
}

func TestApplyUnrecognized(t *testing.T) {
	grid := openCells{{Row: 0, Col: 0}: true, {Row: 1, Col: 0}: true}
	pos := maze.Position{Row: 1, Col: 1}

	for _, d := range []Direction{0, Direction(9), Direction(-1)} {
		next, outcome := Apply(grid, pos, d)
		assert.Equal(t, Unrecognized, outcome)
		assert.Equal(t, pos, next)
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"up":         Up,
		"DOWN":       Down,
		" left ":     Left,
		"Right":      Right,
		"up-left":    UpLeft,
		"down-right": DownRight,
		"8":          Up,
		"numpad2":    Down,
		"NUMPAD7":    UpLeft,
		"9":          UpRight,
		"1":          DownLeft,
		"3":          DownRight,
		"5":          0,
		"space":      0,
		"":           0,
	}
	for key, want := range cases {
		assert.Equal(t, want, ParseDirection(key), "key %q", key)
	}
}

func TestOutcomeCodes(t *testing.T) {
	assert.Equal(t, 0, int(Accepted))
	assert.Equal(t, 1, int(Blocked))
	assert.Equal(t, 2, int(Unrecognized))
	assert.Equal(t, "blocked", Blocked.String())
	assert.False(t, Direction(0).Valid())
	assert.True(t, DownLeft.Valid())
}
