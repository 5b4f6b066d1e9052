package et

import (
	"time"
)

const displayLayout = "2006-01-02T15:04:05Z"

const (
	// MinDisplaySec is 0000-01-01T00:00:00Z
	MinDisplaySec int64 = -62167219200
	// MaxDisplaySec is 9999-12-31T23:59:59Z
	MaxDisplaySec int64 = 253402300799
)

// Format returns t in the form YYYY-MM-DDTHH:MM:SSZ, in UTC.
//
// Only the seconds are displayed. Timestamps which differ only in their nanoseconds
// format identically.
// Seconds outside of [MinDisplaySec, MaxDisplaySec] have no 4 digit year and produce ErrFormatRange.
func (t Timestamp) Format() (string, error) {
	if t.sec < MinDisplaySec || t.sec > MaxDisplaySec {
		return "", ErrFormatRange{Sec: t.sec}
	}
	return time.Unix(t.sec, 0).UTC().Format(displayLayout), nil
}
