package protocol

import (
	"bufio"
	"fmt"

	"github.com/beka-birhanu/vinom-maze-client/maze"
	"github.com/beka-birhanu/vinom-maze-client/service/i"
)

var (
	_ Strategy = &GenerateStrategy{}
	_ Strategy = &SolveStrategy{}
)

// GenerateStrategy requests a rows x cols maze and decompresses the reply.
type GenerateStrategy struct {
	rows         int
	cols         int
	decompressor i.Decompressor
	mazeBuffer   []byte
}

// NewGenerateStrategy creates the generation exchange for a rows x cols maze.
func NewGenerateStrategy(rows, cols int, d i.Decompressor) *GenerateStrategy {
	return &GenerateStrategy{rows: rows, cols: cols, decompressor: d}
}

// Name implements Strategy.
func (g *GenerateStrategy) Name() string {
	return "generate"
}

// Run implements Strategy.
func (g *GenerateStrategy) Run(rw *bufio.ReadWriter) error {
	if err := WriteFrame(rw.Writer, EncodeGenerateRequest(g.rows, g.cols)); err != nil {
		return fmt.Errorf("sending dimensions: %w", err)
	}
	if err := rw.Flush(); err != nil {
		return fmt.Errorf("sending dimensions: %w", err)
	}

	frame, err := ReadFrame(rw.Reader)
	if err != nil {
		return fmt.Errorf("receiving maze: %w", err)
	}
	compressed, err := DecodeGenerateResponse(frame)
	if err != nil {
		return fmt.Errorf("receiving maze: %w", err)
	}

	buf, err := g.decompressor.Decompress(compressed, g.rows*g.cols+maze.HeaderSize)
	if err != nil {
		return fmt.Errorf("decompressing maze: %w", err)
	}

	g.mazeBuffer = buf
	return nil
}

// MazeBuffer returns the decompressed maze buffer once Run succeeded.
func (g *GenerateStrategy) MazeBuffer() []byte {
	return g.mazeBuffer
}

// SolveStrategy sends a maze and receives its solution.
type SolveStrategy struct {
	mazeBuffer []byte
	solution   *maze.Solution
}

// NewSolveStrategy creates the solving exchange for the maze in buffer form.
func NewSolveStrategy(mazeBuffer []byte) *SolveStrategy {
	return &SolveStrategy{mazeBuffer: mazeBuffer}
}

// Name implements Strategy.
func (s *SolveStrategy) Name() string {
	return "solve"
}

// Run implements Strategy.
func (s *SolveStrategy) Run(rw *bufio.ReadWriter) error {
	if err := WriteFrame(rw.Writer, EncodeSolveRequest(s.mazeBuffer)); err != nil {
		return fmt.Errorf("sending maze: %w", err)
	}
	if err := rw.Flush(); err != nil {
		return fmt.Errorf("sending maze: %w", err)
	}

	frame, err := ReadFrame(rw.Reader)
	if err != nil {
		return fmt.Errorf("receiving solution: %w", err)
	}
	solution, err := DecodeSolveResponse(frame)
	if err != nil {
		return fmt.Errorf("receiving solution: %w", err)
	}

	s.solution = &solution
	return nil
}

// Solution returns the received solution, nil until Run succeeded.
func (s *SolveStrategy) Solution() *maze.Solution {
	return s.solution
}
