package protocol

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-maze-client/maze"
	"google.golang.org/protobuf/encoding/protowire"
)

// MaxFrameSize bounds a single message on the wire.
const MaxFrameSize = 64 << 20

// Wire-related errors.
var (
	ErrFrameTooLarge  = errors.New("frame too large")
	ErrMalformedFrame = errors.New("malformed message")
)

// Field numbers of the wire messages.
const (
	rowsField protowire.Number = 1
	colsField protowire.Number = 2

	compressedMazeField protowire.Number = 1
	mazeField           protowire.Number = 1
	stateField          protowire.Number = 1

	posRowField protowire.Number = 1
	posColField protowire.Number = 2
)

// WriteFrame writes msg prefixed with its uvarint length. The caller flushes w.
func WriteFrame(w *bufio.Writer, msg []byte) error {
	if len(msg) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(msg))
	}
	if _, err := w.Write(protowire.AppendVarint(nil, uint64(len(msg)))); err != nil {
		return err
	}
	_, err := w.Write(msg)
	return err
}

// ReadFrame reads one length prefixed message.
func ReadFrame(r *bufio.Reader) ([]byte, error) {
	size, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	msg := make([]byte, size)
	if _, err := io.ReadFull(r, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// EncodeGenerateRequest encodes the dimensions of the maze to generate.
func EncodeGenerateRequest(rows, cols int) []byte {
	var b []byte
	b = protowire.AppendTag(b, rowsField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(int32(rows))))
	b = protowire.AppendTag(b, colsField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(int32(cols))))
	return b
}

// DecodeGenerateRequest is the service side of EncodeGenerateRequest.
func DecodeGenerateRequest(b []byte) (rows, cols int, err error) {
	err = walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if typ != protowire.VarintType || (num != rowsField && num != colsField) {
			return skipField(num, typ, v)
		}
		x, n := protowire.ConsumeVarint(v)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		if num == rowsField {
			rows = int(int32(x))
		} else {
			cols = int(int32(x))
		}
		return n, nil
	})
	return rows, cols, err
}

// EncodeGenerateResponse wraps a compressed maze.
func EncodeGenerateResponse(compressedMaze []byte) []byte {
	b := protowire.AppendTag(nil, compressedMazeField, protowire.BytesType)
	return protowire.AppendBytes(b, compressedMaze)
}

// DecodeGenerateResponse returns the compressed maze carried by a generation response.
func DecodeGenerateResponse(b []byte) ([]byte, error) {
	var compressed []byte
	found := false
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != compressedMazeField || typ != protowire.BytesType {
			return skipField(num, typ, v)
		}
		x, n := protowire.ConsumeBytes(v)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		compressed, found = x, true
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: generation response carries no maze", ErrMalformedFrame)
	}
	return compressed, nil
}

// EncodeSolveRequest wraps the buffer form of the maze to solve.
func EncodeSolveRequest(mazeBuffer []byte) []byte {
	b := protowire.AppendTag(nil, mazeField, protowire.BytesType)
	return protowire.AppendBytes(b, mazeBuffer)
}

// DecodeSolveRequest is the service side of EncodeSolveRequest.
func DecodeSolveRequest(b []byte) ([]byte, error) {
	var mazeBuffer []byte
	found := false
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != mazeField || typ != protowire.BytesType {
			return skipField(num, typ, v)
		}
		x, n := protowire.ConsumeBytes(v)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		mazeBuffer, found = x, true
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: solve request carries no maze", ErrMalformedFrame)
	}
	return mazeBuffer, nil
}

// EncodeSolveResponse encodes a solution as repeated positions.
func EncodeSolveResponse(s maze.Solution) []byte {
	var b []byte
	for _, p := range s.States {
		var pos []byte
		pos = protowire.AppendTag(pos, posRowField, protowire.VarintType)
		pos = protowire.AppendVarint(pos, uint64(int64(int32(p.Row))))
		pos = protowire.AppendTag(pos, posColField, protowire.VarintType)
		pos = protowire.AppendVarint(pos, uint64(int64(int32(p.Col))))

		b = protowire.AppendTag(b, stateField, protowire.BytesType)
		b = protowire.AppendBytes(b, pos)
	}
	return b
}

// DecodeSolveResponse returns the solution carried by a solve response.
func DecodeSolveResponse(b []byte) (maze.Solution, error) {
	var s maze.Solution
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != stateField || typ != protowire.BytesType {
			return skipField(num, typ, v)
		}
		x, n := protowire.ConsumeBytes(v)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		pos, err := decodePosition(x)
		if err != nil {
			return 0, err
		}
		s.States = append(s.States, pos)
		return n, nil
	})
	return s, err
}

func decodePosition(b []byte) (maze.Position, error) {
	var p maze.Position
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if typ != protowire.VarintType || (num != posRowField && num != posColField) {
			return skipField(num, typ, v)
		}
		x, n := protowire.ConsumeVarint(v)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		if num == posRowField {
			p.Row = int(int32(x))
		} else {
			p.Col = int(int32(x))
		}
		return n, nil
	})
	return p, err
}

// walkFields calls fn for every field of b. fn consumes the field value and returns its length.
func walkFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedFrame, protowire.ParseError(n))
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedFrame, num, err)
		}
		b = b[m:]
	}
	return nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}
