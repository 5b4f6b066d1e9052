package et

import (
	"fmt"
	"io"

	"github.com/gotvc/et/src/internal/sbe"
)

const formatBinary = "binary"

// Size is the length of the positional binary encoding.
// It is the seconds as a little-endian int64 followed by the nanoseconds as a little-endian int32.
const Size = 8 + 4

// Marshal appends the positional binary encoding of t to out.
func (t Timestamp) Marshal(out []byte) []byte {
	out = sbe.AppendInt64(out, t.sec)
	out = sbe.AppendInt32(out, t.nsec)
	return out
}

// AppendBinary implements encoding.BinaryAppender.
func (t Timestamp) AppendBinary(out []byte) ([]byte, error) {
	return t.Marshal(out), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t Timestamp) MarshalBinary() ([]byte, error) {
	return t.Marshal(make([]byte, 0, Size)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Timestamp) UnmarshalBinary(data []byte) error {
	x, err := Parse(data)
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// Parse decodes exactly Size bytes produced by Marshal.
func Parse(data []byte) (Timestamp, error) {
	if len(data) != Size {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: fmt.Errorf("expected %d bytes, found %d", Size, len(data))}
	}
	sec, data, err := sbe.ReadInt64(data)
	if err != nil {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: err}
	}
	nsec, _, err := sbe.ReadInt32(data)
	if err != nil {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: err}
	}
	return New(sec, nsec), nil
}

// Read reads the seconds and then the nanoseconds from r.
// It consumes exactly Size bytes on success.
func Read(r io.Reader) (Timestamp, error) {
	secData, err := sbe.ReadFull(r, 8)
	if err != nil {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: fmt.Errorf("sec: %w", err)}
	}
	nsecData, err := sbe.ReadFull(r, 4)
	if err != nil {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: fmt.Errorf("nsec: %w", err)}
	}
	sec, _, err := sbe.ReadInt64(secData)
	if err != nil {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: err}
	}
	nsec, _, err := sbe.ReadInt32(nsecData)
	if err != nil {
		return Timestamp{}, ErrMalformed{Format: formatBinary, Err: err}
	}
	return New(sec, nsec), nil
}

// WriteTo implements io.WriterTo
func (t Timestamp) WriteTo(w io.Writer) (int64, error) {
	var buf [Size]byte
	n, err := w.Write(t.Marshal(buf[:0]))
	return int64(n), err
}
