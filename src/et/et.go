// Package et provides Timestamp, an exact point in time stored as seconds and nanoseconds
// since the Unix epoch, along with its display form and its wire encodings.
//
// There are two independent families of encodings:
//   - keyed encodings (JSON, YAML, TOML) which carry the fields "sec" and "nsec" by name.
//   - a positional binary encoding: 8 bytes of seconds followed by 4 bytes of nanoseconds.
//
// A Timestamp never normalizes its fields. The pair it was built from is the pair it
// compares and encodes.
package et

import (
	"fmt"
	"time"
)

// Timespec is a native (seconds, nanoseconds) pair measured from the Unix epoch.
type Timespec struct {
	Sec  int64
	Nsec int32
}

// Timestamp is an immutable point in time.
// Two Timestamps are equal iff both of their fields are equal, so == can be used directly.
type Timestamp struct {
	sec  int64
	nsec int32
}

// From wraps ts without validating or normalizing it.
func From(ts Timespec) Timestamp {
	return Timestamp{sec: ts.Sec, nsec: ts.Nsec}
}

// New is shorthand for From(Timespec{Sec: sec, Nsec: nsec}).
func New(sec int64, nsec int32) Timestamp {
	return From(Timespec{Sec: sec, Nsec: nsec})
}

// FromGoTime returns the Timestamp for x.
// The nanoseconds are always in [0, 1e9) since time.Time is normalized.
func FromGoTime(x time.Time) Timestamp {
	return From(Timespec{Sec: x.Unix(), Nsec: int32(x.Nanosecond())})
}

// Sec returns the seconds since the Unix epoch.
func (t Timestamp) Sec() int64 {
	return t.sec
}

// Nsec returns the nanoseconds, exactly as they were supplied.
func (t Timestamp) Nsec() int32 {
	return t.nsec
}

// Timespec returns the pair the Timestamp was built from.
func (t Timestamp) Timespec() Timespec {
	return Timespec{Sec: t.sec, Nsec: t.nsec}
}

// GoTime converts t to a time.Time.
// time.Time normalizes, so nanoseconds outside [0, 1e9) are carried into the seconds.
func (t Timestamp) GoTime() time.Time {
	return time.Unix(t.sec, int64(t.nsec)).UTC()
}

func (t Timestamp) Equals(other Timestamp) bool {
	return t == other
}

// String implements fmt.Stringer using Format.
// Timestamps which cannot be displayed are printed with their raw fields.
func (t Timestamp) String() string {
	s, err := t.Format()
	if err != nil {
		return fmt.Sprintf("et.Timestamp(sec=%d, nsec=%d)", t.sec, t.nsec)
	}
	return s
}
