package protocol

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/beka-birhanu/vinom-maze-client/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestFrames(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriter(&out)
	require.NoError(t, WriteFrame(w, []byte("first")))
	require.NoError(t, WriteFrame(w, nil))
	require.NoError(t, WriteFrame(w, bytes.Repeat([]byte{7}, 300)))
	require.NoError(t, w.Flush())

	r := bufio.NewReader(&out)
	got, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	got, err = ReadFrame(r)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ReadFrame(r)
	require.NoError(t, err)
	assert.Len(t, got, 300)
}

func TestReadFrameTooLarge(t *testing.T) {
	prefix := protowire.AppendVarint(nil, MaxFrameSize+1)
	_, err := ReadFrame(bufio.NewReader(bytes.NewReader(prefix)))
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestGenerateRequest(t *testing.T) {
	rows, cols, err := DecodeGenerateRequest(EncodeGenerateRequest(12, 30))
	require.NoError(t, err)
	assert.Equal(t, 12, rows)
	assert.Equal(t, 30, cols)

	rows, cols, err = DecodeGenerateRequest(EncodeGenerateRequest(-3, 0))
	require.NoError(t, err)
	assert.Equal(t, -3, rows)
	assert.Equal(t, 0, cols)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, 9, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))
	b = protowire.AppendTag(b, 8, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 1)
	b = append(b, EncodeGenerateResponse([]byte{1, 2, 3})...)

	got, err := DecodeGenerateResponse(b)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestDecodeMissingFields(t *testing.T) {
	_, err := DecodeGenerateResponse(nil)
	assert.ErrorIs(t, err, ErrMalformedFrame)

	_, err = DecodeSolveRequest(nil)
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestDecodeTruncated(t *testing.T) {
	b := EncodeGenerateResponse([]byte{1, 2, 3, 4})
	_, err := DecodeGenerateResponse(b[:len(b)-1])
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestSolveResponse(t *testing.T) {
	want := maze.Solution{States: []maze.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 2}}}

	got, err := DecodeSolveResponse(EncodeSolveResponse(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err := DecodeSolveResponse(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}
