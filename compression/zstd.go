// Package compression implements the payload transform shared with the generation service.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-maze-client/service/i"
	"github.com/klauspost/compress/zstd"
)

var _ i.Decompressor = &Zstd{}

// ErrSizeMismatch is returned when a payload does not expand to the expected size.
var ErrSizeMismatch = errors.New("decompressed size mismatch")

// Zstd compresses and decompresses payloads with zstandard.
type Zstd struct{}

// Compress returns the zstd frame of src.
func (z *Zstd) Compress(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	out := enc.EncodeAll(src, nil)
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing zstd encoder: %w", err)
	}
	return out, nil
}

// Decompress implements i.Decompressor. It never expands src beyond expected bytes,
// and memory grows with the bytes actually decoded rather than with expected.
func (z *Zstd) Decompress(src []byte, expected int) ([]byte, error) {
	if expected < 0 {
		return nil, fmt.Errorf("%w: negative expected size %d", ErrSizeMismatch, expected)
	}

	dec, err := zstd.NewReader(bytes.NewReader(src), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	// One byte past expected is enough to tell an oversized payload.
	out, err := io.ReadAll(io.LimitReader(dec, int64(expected)+1))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	if len(out) < expected {
		return nil, fmt.Errorf("%w: payload holds fewer than %d bytes", ErrSizeMismatch, expected)
	}
	if len(out) > expected {
		return nil, fmt.Errorf("%w: payload holds more than %d bytes", ErrSizeMismatch, expected)
	}

	return out, nil
}
