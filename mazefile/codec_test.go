package mazefile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMazeBuffer(r *rand.Rand, rows, cols int) []byte {
	b := make([]byte, metadataSize+rows*cols)
	r.Read(b[:metadataSize])
	for i := metadataSize; i < len(b); i++ {
		b[i] = byte(r.Intn(2))
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	cases := []struct {
		rows, cols         int
		startRow, startCol int32
	}{
		{3, 3, 0, 0},
		{10, 7, 9, 6},
		{1, 50, 0, 49},
		{64, 64, 31, 12},
		{5, 5, -1, 70000},
	}

	for _, tc := range cases {
		buf := randomMazeBuffer(r, tc.rows, tc.cols)

		data, err := Encode(tc.startRow, tc.startCol, buf)
		require.NoError(t, err)
		require.Len(t, data, headerSize+tc.rows*tc.cols*wordSize)

		sr, sc, got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, tc.startRow, sr)
		assert.Equal(t, tc.startCol, sc)
		assert.Len(t, got, metadataSize+tc.rows*tc.cols)
		assert.Equal(t, buf, got)
	}
}

func TestDecodeLayout(t *testing.T) {
	data := []byte{
		0, 0, 0, 2, // start row
		0, 0, 0, 5, // start col
	}
	for i := 0; i < metadataSize; i++ {
		data = append(data, byte(100+i))
	}
	data = append(data,
		0, 0, 0, 1,
		0xAA, 0xBB, 0xCC, 0, // padding is ignored
		0, 0, 0, 7,
	)

	sr, sc, buf, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int32(2), sr)
	assert.Equal(t, int32(5), sc)
	require.Len(t, buf, metadataSize+3)
	assert.Equal(t, data[8:32], buf[:metadataSize])
	assert.Equal(t, []byte{1, 0, 7}, buf[metadataSize:])
}

func TestDecodeNegativeStart(t *testing.T) {
	data := make([]byte, headerSize)
	copy(data, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE})

	sr, sc, buf, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), sr)
	assert.Equal(t, int32(-2), sc)
	assert.Len(t, buf, metadataSize)
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"shorter than header", make([]byte, headerSize-1)},
		{"partial cell word", make([]byte, headerSize+5)},
		{"three byte remainder", make([]byte, headerSize+3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, buf, err := Decode(tc.data)
			assert.ErrorIs(t, err, ErrMalformedFile)
			assert.Nil(t, buf)
		})
	}
}

func TestEncodeRejectsMissingMetadata(t *testing.T) {
	_, err := Encode(0, 0, make([]byte, metadataSize-1))
	assert.ErrorIs(t, err, ErrMalformedFile)
}
