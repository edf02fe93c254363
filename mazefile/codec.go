// Package mazefile reads and writes persisted maze files.
//
// File layout, all integers big-endian:
//
//	0..7    player start row, start column (int32 each)
//	8..31   24 bytes of maze metadata, copied verbatim
//	32..    one 4 byte word per maze cell, only the low byte carries the cell-type code
package mazefile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	metadataSize = 24
	headerSize   = 8 + metadataSize
	wordSize     = 4
)

// ErrMalformedFile is returned for files that do not follow the layout above.
var ErrMalformedFile = errors.New("malformed maze file")

// Decode returns the player start coordinate and the maze buffer held in a persisted file.
// The maze buffer is the metadata followed by one byte per cell.
func Decode(data []byte) (startRow, startCol int32, mazeBuffer []byte, err error) {
	if len(data) < headerSize {
		return 0, 0, nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrMalformedFile, len(data), headerSize)
	}

	body := len(data) - headerSize
	if body%wordSize != 0 {
		return 0, 0, nil, fmt.Errorf("%w: %d cell bytes is not a multiple of %d", ErrMalformedFile, body, wordSize)
	}

	startRow = int32(binary.BigEndian.Uint32(data[0:4]))
	startCol = int32(binary.BigEndian.Uint32(data[4:8]))

	mazeBuffer = make([]byte, metadataSize, metadataSize+body/wordSize)
	copy(mazeBuffer, data[8:headerSize])
	for i := headerSize; i < len(data); i += wordSize {
		mazeBuffer = append(mazeBuffer, data[i+wordSize-1])
	}

	return startRow, startCol, mazeBuffer, nil
}

// Encode is the inverse of Decode: it widens every cell byte of mazeBuffer to a 4 byte word.
func Encode(startRow, startCol int32, mazeBuffer []byte) ([]byte, error) {
	if len(mazeBuffer) < metadataSize {
		return nil, fmt.Errorf("%w: maze buffer of %d bytes has no metadata", ErrMalformedFile, len(mazeBuffer))
	}

	cells := mazeBuffer[metadataSize:]
	data := make([]byte, 0, headerSize+len(cells)*wordSize)
	data = binary.BigEndian.AppendUint32(data, uint32(startRow))
	data = binary.BigEndian.AppendUint32(data, uint32(startCol))
	data = append(data, mazeBuffer[:metadataSize]...)
	for _, c := range cells {
		data = binary.BigEndian.AppendUint32(data, uint32(c))
	}

	return data, nil
}
