package sbe

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt64(t *testing.T) {
	for _, x := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 1609459200} {
		data := AppendInt64(nil, x)
		require.Len(t, data, 8)
		y, rest, err := ReadInt64(data)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, x, y)
	}
}

func TestInt32(t *testing.T) {
	for _, x := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 999_999_999} {
		data := AppendInt32(nil, x)
		require.Len(t, data, 4)
		y, rest, err := ReadInt32(data)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, x, y)
	}
}

func TestLittleEndian(t *testing.T) {
	data := AppendInt64(nil, 1)
	data = AppendInt32(data, -2)
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0xfe, 0xff, 0xff, 0xff}, data)
}

func TestShort(t *testing.T) {
	_, _, err := ReadUint64(make([]byte, 7))
	require.Error(t, err)
	_, _, err = ReadUint32(make([]byte, 3))
	require.Error(t, err)
}

func TestReadFull(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3, 4, 5})
	data, err := ReadFull(r, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	_, err = ReadFull(r, 3)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	_, err = ReadFull(r, 1)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}
