package et

import (
	"go.brendoncarroll.net/tai64"
)

// TAI64N converts t to a TAI64N label.
func (t Timestamp) TAI64N() tai64.TAI64N {
	return tai64.FromGoTime(t.GoTime())
}

// FromTAI64 returns the Timestamp for a TAI64 label. The nanoseconds are 0.
func FromTAI64(x tai64.TAI64) Timestamp {
	return New(x.GoTime().Unix(), 0)
}
