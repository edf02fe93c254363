// Package movement validates and applies 8-directional player moves on a maze.
package movement

import (
	"strings"

	"github.com/beka-birhanu/vinom-maze-client/maze"
)

// Direction is one of the eight move directions. The zero value is not a direction.
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// Outcome reports what happened to a move request.
type Outcome int

const (
	Accepted     Outcome = 0 // The player moved to the target cell.
	Blocked      Outcome = 1 // The target cell cannot be occupied, the player stays.
	Unrecognized Outcome = 2 // The direction is not one of the eight, the player stays.
)

var outcomeNames = map[Outcome]string{
	Accepted:     "accepted",
	Blocked:      "blocked",
	Unrecognized: "unrecognized",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Grid is the connectivity query a move is validated against.
type Grid interface {
	PossibleToGo(row, col int) bool
}

var deltas = map[Direction]maze.Position{
	Up:        {Row: -1, Col: 0},
	Down:      {Row: 1, Col: 0},
	Left:      {Row: 0, Col: -1},
	Right:     {Row: 0, Col: 1},
	UpLeft:    {Row: -1, Col: -1},
	UpRight:   {Row: -1, Col: 1},
	DownLeft:  {Row: 1, Col: -1},
	DownRight: {Row: 1, Col: 1},
}

var directionNames = map[Direction]string{
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	UpLeft:    "up-left",
	UpRight:   "up-right",
	DownLeft:  "down-left",
	DownRight: "down-right",
}

// keys maps input names to directions. Digits follow the numeric keypad layout.
var keys = map[string]Direction{
	"up": Up, "down": Down, "left": Left, "right": Right,
	"up-left": UpLeft, "up-right": UpRight, "down-left": DownLeft, "down-right": DownRight,
	"8": Up, "2": Down, "4": Left, "6": Right,
	"7": UpLeft, "9": UpRight, "1": DownLeft, "3": DownRight,
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// Valid reports whether d is one of the eight directions.
func (d Direction) Valid() bool {
	_, ok := deltas[d]
	return ok
}

// ParseDirection maps an input key to a direction. Unknown keys yield the zero Direction.
func ParseDirection(key string) Direction {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.TrimPrefix(k, "numpad")
	return keys[k]
}

// Apply moves pos one step towards d when the grid allows it.
// It has no side effects and does not look at the goal.
func Apply(g Grid, pos maze.Position, d Direction) (maze.Position, Outcome) {
	delta, ok := deltas[d]
	if !ok {
		return pos, Unrecognized
	}

	target := maze.Position{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
	if !g.PossibleToGo(target.Row, target.Col) {
		return pos, Blocked
	}
	return target, Accepted
}
