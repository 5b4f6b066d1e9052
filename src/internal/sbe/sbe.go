// package sbe implements simple binary encoding formats for serializing and deserializing data.
// All integers are fixed width and little-endian.
package sbe

import (
	"encoding/binary"
	"fmt"
	"io"
)

func AppendUint64(out []byte, x uint64) []byte {
	return binary.LittleEndian.AppendUint64(out, x)
}

func ReadUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, fmt.Errorf("too short to contain uint64")
	}
	return binary.LittleEndian.Uint64(data[:8]), data[8:], nil
}

func AppendUint32(out []byte, x uint32) []byte {
	return binary.LittleEndian.AppendUint32(out, x)
}

func ReadUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("too short to contain uint32")
	}
	return binary.LittleEndian.Uint32(data[:4]), data[4:], nil
}

// AppendInt64 appends the two's complement form of x.
func AppendInt64(out []byte, x int64) []byte {
	return AppendUint64(out, uint64(x))
}

func ReadInt64(data []byte) (int64, []byte, error) {
	x, rest, err := ReadUint64(data)
	return int64(x), rest, err
}

// AppendInt32 appends the two's complement form of x.
func AppendInt32(out []byte, x int32) []byte {
	return AppendUint32(out, uint32(x))
}

func ReadInt32(data []byte) (int32, []byte, error) {
	x, rest, err := ReadUint32(data)
	return int32(x), rest, err
}

// ReadFull reads exactly n bytes from r.
// A stream which ends early is reported as io.ErrUnexpectedEOF, even if no bytes were read.
func ReadFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading %d bytes: %w", n, err)
	}
	return buf, nil
}
