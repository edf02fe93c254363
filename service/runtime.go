package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/beka-birhanu/vinom-maze-client/config"
	"github.com/beka-birhanu/vinom-maze-client/logging"
	"github.com/beka-birhanu/vinom-maze-client/maze"
	"github.com/beka-birhanu/vinom-maze-client/mazefile"
	"github.com/beka-birhanu/vinom-maze-client/movement"
	"github.com/beka-birhanu/vinom-maze-client/protocol"
	"github.com/beka-birhanu/vinom-maze-client/service/i"
	"github.com/google/uuid"
)

var _ i.Maze = &maze.Maze{}

// Runtime-related errors.
var (
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrPrecondition      = errors.New("no maze loaded")
	ErrMazeReplaced      = errors.New("maze replaced during exchange")
	ErrMissingDependency = errors.New("missing dependency")
)

const (
	minDimension = 3             // Minimum maze dimension (rows or cols).
	maxDimension = math.MaxInt32 // Dimensions travel as int32 on the wire.
)

// Exchanger runs one strategy against a remote service.
type Exchanger interface {
	Exchange(ctx context.Context, host string, port int, s protocol.Strategy) error
}

// Endpoint is the network address of a remote service.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// MazeFactory builds a maze from its buffer form.
type MazeFactory func([]byte) (i.Maze, error)

// NewMaze is the MazeFactory backed by the maze package.
func NewMaze(b []byte) (i.Maze, error) {
	m, err := maze.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Config carries the runtime dependencies.
type Config struct {
	Generator    Endpoint
	Solver       Endpoint
	Exchanger    Exchanger
	Decompressor i.Decompressor
	MazeFactory  MazeFactory
	Notifier     Notifier
	Logger       general_i.Logger
	Settings     config.Settings
}

// Runtime owns the current maze, the player position and the last solution.
// It validates moves, talks to the services and announces every transition.
type Runtime struct {
	generator    Endpoint
	solver       Endpoint
	exchanger    Exchanger
	decompressor i.Decompressor
	mazeFactory  MazeFactory
	notifier     Notifier
	logger       general_i.Logger
	settings     config.Settings

	mazeID      uuid.UUID
	maze        i.Maze
	position    maze.Position
	solved      bool
	lastOutcome movement.Outcome
	solution    *maze.Solution

	sync.RWMutex
}

// NewRuntime creates a Runtime with no maze loaded.
func NewRuntime(c *Config) (*Runtime, error) {
	if c.Exchanger == nil || c.Decompressor == nil {
		return nil, fmt.Errorf("%w: exchanger and decompressor are required", ErrMissingDependency)
	}

	r := &Runtime{
		generator:    c.Generator,
		solver:       c.Solver,
		exchanger:    c.Exchanger,
		decompressor: c.Decompressor,
		mazeFactory:  c.MazeFactory,
		notifier:     c.Notifier,
		logger:       c.Logger,
		settings:     c.Settings,
	}

	if r.mazeFactory == nil {
		r.mazeFactory = NewMaze
	}
	if r.notifier == nil {
		r.notifier = NotifierFunc(func(Event) {})
	}
	if r.logger == nil {
		r.logger = logging.Nop{}
	}
	if r.settings == (config.Settings{}) {
		r.settings = config.DefaultSettings()
	}
	return r, nil
}

// Load reads a persisted maze file and makes it the current maze.
func (r *Runtime) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error(fmt.Sprintf("reading maze file %s: %s", path, err))
		return fmt.Errorf("reading maze file %s: %w", path, err)
	}
	return r.LoadBytes(data)
}

// LoadBytes decodes a persisted maze and makes it the current maze, with the player
// on the decoded start coordinate. On failure the current state is kept and no event is sent.
func (r *Runtime) LoadBytes(data []byte) error {
	startRow, startCol, buf, err := mazefile.Decode(data)
	if err != nil {
		r.logger.Error(fmt.Sprintf("decoding maze file: %s", err))
		return err
	}

	m, err := r.mazeFactory(buf)
	if err != nil {
		err = fmt.Errorf("%w: %w", mazefile.ErrMalformedFile, err)
		r.logger.Error(fmt.Sprintf("building loaded maze: %s", err))
		return err
	}

	start := maze.Position{Row: int(startRow), Col: int(startCol)}
	if !m.InBound(start.Row, start.Col) {
		err = fmt.Errorf("%w: start %v lies outside the %dx%d maze", mazefile.ErrMalformedFile, start, m.Rows(), m.Cols())
		r.logger.Error(fmt.Sprintf("building loaded maze: %s", err))
		return err
	}

	r.Lock()
	r.replaceMaze(m, start)
	snap := r.snapshot()
	r.Unlock()

	r.notifier.Notify(Event{Kind: EventLoad, Snapshot: snap})
	r.logger.Info(fmt.Sprintf("loaded maze %dx%d", m.Rows(), m.Cols()))
	return nil
}

// Generate asks the generation service for a rows x cols maze and makes it the current maze.
// Both dimensions must be bigger than 2 and the maze buffer must fit in one frame.
func (r *Runtime) Generate(ctx context.Context, rows, cols int) error {
	if rows < minDimension || cols < minDimension {
		r.logger.Warning(fmt.Sprintf("wrong parameters %dx%d, both dimensions must be bigger than 2", rows, cols))
		return fmt.Errorf("%w: dimensions %dx%d must both be bigger than 2", ErrInvalidParameters, rows, cols)
	}
	if rows > maxDimension || cols > maxDimension ||
		int64(rows)*int64(cols)+maze.HeaderSize > protocol.MaxFrameSize {
		r.logger.Warning(fmt.Sprintf("wrong parameters %dx%d, maze is too large", rows, cols))
		return fmt.Errorf("%w: a %dx%d maze exceeds %d bytes", ErrInvalidParameters, rows, cols, protocol.MaxFrameSize)
	}

	strategy := protocol.NewGenerateStrategy(rows, cols, r.decompressor)
	if err := r.exchanger.Exchange(ctx, r.generator.Host, r.generator.Port, strategy); err != nil {
		r.logger.Error(fmt.Sprintf("generating maze %dx%d: %s", rows, cols, err))
		return err
	}

	m, err := r.mazeFactory(strategy.MazeBuffer())
	if err != nil {
		err = fmt.Errorf("%w: building generated maze: %w", protocol.ErrExchange, err)
		r.logger.Error(err.Error())
		return err
	}
	if m.Rows() != rows || m.Cols() != cols {
		err = fmt.Errorf("%w: asked for a %dx%d maze, got %dx%d", protocol.ErrExchange, rows, cols, m.Rows(), m.Cols())
		r.logger.Error(err.Error())
		return err
	}

	r.Lock()
	r.replaceMaze(m, m.StartPosition())
	snap := r.snapshot()
	generator := r.settings.Generator
	r.Unlock()

	r.notifier.Notify(Event{Kind: EventGenerate, Snapshot: snap})
	r.logger.Info(fmt.Sprintf("generated maze %dx%d using %s", rows, cols, generator))
	return nil
}

// Move applies one player move. Reaching the goal for the first time on the current maze
// additionally announces EventSolve.
func (r *Runtime) Move(d movement.Direction) (movement.Outcome, error) {
	r.Lock()
	if r.maze == nil {
		r.Unlock()
		return movement.Unrecognized, fmt.Errorf("%w: cannot move", ErrPrecondition)
	}

	next, outcome := movement.Apply(r.maze, r.position, d)
	r.position = next
	r.lastOutcome = outcome

	reachedGoal := outcome == movement.Accepted && next == r.maze.GoalPosition() && !r.solved
	if reachedGoal {
		r.solved = true
	}
	snap := r.snapshot()
	r.Unlock()

	r.notifier.Notify(Event{Kind: EventMove, Snapshot: snap})
	if reachedGoal {
		r.notifier.Notify(Event{Kind: EventSolve, Snapshot: snap})
		r.logger.Info("player solved the maze")
	}
	return outcome, nil
}

// RequestSolution asks the solving service to solve the current maze. EventGetSolve is sent
// whether the exchange succeeded or not.
func (r *Runtime) RequestSolution(ctx context.Context) error {
	r.RLock()
	m, id, searcher := r.maze, r.mazeID, r.settings.Searcher
	r.RUnlock()
	if m == nil {
		return fmt.Errorf("%w: cannot solve", ErrPrecondition)
	}

	r.logger.Info(fmt.Sprintf("solving maze %dx%d using %s", m.Rows(), m.Cols(), searcher))
	strategy := protocol.NewSolveStrategy(m.Bytes())
	err := r.exchanger.Exchange(ctx, r.solver.Host, r.solver.Port, strategy)

	r.Lock()
	if err == nil {
		if r.mazeID == id {
			r.solution = strategy.Solution()
		} else {
			err = ErrMazeReplaced
		}
	}
	snap := r.snapshot()
	r.Unlock()

	if err != nil {
		r.logger.Error(fmt.Sprintf("solving maze: %s", err))
	}
	r.notifier.Notify(Event{Kind: EventGetSolve, Snapshot: snap})
	return err
}

// Reset puts the player back on the start position of the current maze.
func (r *Runtime) Reset() error {
	r.Lock()
	if r.maze == nil {
		r.Unlock()
		return fmt.Errorf("%w: cannot reset", ErrPrecondition)
	}
	r.position = r.maze.StartPosition()
	r.solved = false
	snap := r.snapshot()
	r.Unlock()

	r.notifier.Notify(Event{Kind: EventReset, Snapshot: snap})
	r.logger.Info("player restarted the current maze")
	return nil
}

// Save writes the current maze to path with the player position as its start coordinate.
func (r *Runtime) Save(path string) error {
	r.RLock()
	m, pos := r.maze, r.position
	r.RUnlock()
	if m == nil {
		return fmt.Errorf("%w: cannot save", ErrPrecondition)
	}

	data, err := mazefile.Encode(int32(pos.Row), int32(pos.Col), m.Bytes())
	if err != nil {
		r.logger.Error(fmt.Sprintf("encoding maze: %s", err))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.logger.Error(fmt.Sprintf("writing maze file %s: %s", path, err))
		return fmt.Errorf("writing maze file %s: %w", path, err)
	}

	r.logger.Info(fmt.Sprintf("saved maze to %s", path))
	return nil
}

// SaveSettings replaces the game settings after validating them.
func (r *Runtime) SaveSettings(s config.Settings) error {
	if err := s.Validate(); err != nil {
		r.logger.Warning(fmt.Sprintf("rejected settings: %s", err))
		return err
	}

	r.Lock()
	r.settings = s
	r.Unlock()

	r.logger.Info("client changed the properties")
	r.logger.Info(fmt.Sprintf("maze generator: %s", s.Generator))
	r.logger.Info(fmt.Sprintf("maze searcher: %s", s.Searcher))
	r.logger.Info(fmt.Sprintf("num of threads: %d", s.Threads))
	return nil
}

// Settings returns the current game settings.
func (r *Runtime) Settings() config.Settings {
	r.RLock()
	defer r.RUnlock()
	return r.settings
}

// Snapshot returns the current state.
func (r *Runtime) Snapshot() Snapshot {
	r.RLock()
	defer r.RUnlock()
	return r.snapshot()
}

// Maze returns the current maze, nil before the first load or generate.
func (r *Runtime) Maze() i.Maze {
	r.RLock()
	defer r.RUnlock()
	return r.maze
}

// Position returns the player position.
func (r *Runtime) Position() maze.Position {
	r.RLock()
	defer r.RUnlock()
	return r.position
}

// LastMoveOutcome returns the outcome of the latest move.
func (r *Runtime) LastMoveOutcome() movement.Outcome {
	r.RLock()
	defer r.RUnlock()
	return r.lastOutcome
}

// Solution returns the latest solution of the current maze, nil if none was received.
func (r *Runtime) Solution() *maze.Solution {
	r.RLock()
	defer r.RUnlock()
	return r.solution
}

// Solved reports whether the player reached the goal of the current maze.
func (r *Runtime) Solved() bool {
	r.RLock()
	defer r.RUnlock()
	return r.solved
}

// replaceMaze swaps in a new maze together with everything tied to the previous one.
// The caller must hold the write lock.
func (r *Runtime) replaceMaze(m i.Maze, start maze.Position) {
	r.mazeID = uuid.New()
	r.maze = m
	r.position = start
	r.solved = false
	r.lastOutcome = movement.Accepted
	r.solution = nil
}

// snapshot must be called with the lock held.
func (r *Runtime) snapshot() Snapshot {
	return Snapshot{
		MazeID:          r.mazeID,
		Maze:            r.maze,
		Position:        r.position,
		Solved:          r.solved,
		LastMoveOutcome: r.lastOutcome,
		Solution:        r.solution,
	}
}
