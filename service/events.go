package service

import (
	"fmt"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/beka-birhanu/vinom-maze-client/logging"
	"github.com/beka-birhanu/vinom-maze-client/maze"
	"github.com/beka-birhanu/vinom-maze-client/movement"
	"github.com/beka-birhanu/vinom-maze-client/service/i"
	"github.com/google/uuid"
)

// EventKind tags a runtime state transition.
type EventKind int

const (
	EventLoad EventKind = iota + 1
	EventGenerate
	EventMove
	EventSolve
	EventReset
	EventGetSolve
)

var eventNames = map[EventKind]string{
	EventLoad:     "load",
	EventGenerate: "generate",
	EventMove:     "move",
	EventSolve:    "solve",
	EventReset:    "reset",
	EventGetSolve: "getSolve",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Snapshot is the runtime state captured in one critical section.
type Snapshot struct {
	MazeID          uuid.UUID
	Maze            i.Maze
	Position        maze.Position
	Solved          bool
	LastMoveOutcome movement.Outcome
	Solution        *maze.Solution
}

// HasMaze reports whether a maze was loaded or generated.
func (s Snapshot) HasMaze() bool {
	return s.Maze != nil
}

// Event is delivered to the presentation layer after every successful transition.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// Notifier receives runtime events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify implements Notifier.
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// ChannelNotifier forwards events to a channel. Move and reset events are dropped when the
// channel is full; load, generate, solve and getSolve events wait for room, so the listener
// must keep draining Events until Close.
type ChannelNotifier struct {
	ch     chan Event
	logger general_i.Logger
}

// NewChannelNotifier creates a ChannelNotifier with a channel of the given capacity.
func NewChannelNotifier(size int, logger general_i.Logger) *ChannelNotifier {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &ChannelNotifier{ch: make(chan Event, size), logger: logger}
}

// Notify implements Notifier.
func (n *ChannelNotifier) Notify(e Event) {
	if mustDeliver(e.Kind) {
		n.ch <- e
		return
	}

	select {
	case n.ch <- e:
	default:
		n.logger.Warning(fmt.Sprintf("dropped %s event: listener is not keeping up", e.Kind))
	}
}

// mustDeliver reports whether an event announces a one-off transition the listener
// cannot recover from a later snapshot.
func mustDeliver(k EventKind) bool {
	switch k {
	case EventLoad, EventGenerate, EventSolve, EventGetSolve:
		return true
	}
	return false
}

// Events returns the receiving side of the channel.
func (n *ChannelNotifier) Events() <-chan Event {
	return n.ch
}

// Close closes the channel. Notify must not be called afterwards.
func (n *ChannelNotifier) Close() {
	close(n.ch)
}
