package et

import (
	"fmt"
	"math"
)

const (
	fieldSec  = "sec"
	fieldNsec = "nsec"
)

// Fields decides which value slot each field name is routed to when decoding a keyed encoding.
// Encoding always writes "sec" with the seconds and "nsec" with the nanoseconds.
type Fields uint8

const (
	// NaturalFields routes "sec" to the seconds and "nsec" to the nanoseconds.
	// It is the mapping used by UnmarshalJSON, UnmarshalYAML and UnmarshalTOML.
	NaturalFields Fields = iota
	// SwappedFields routes "sec" to the nanoseconds and "nsec" to the seconds.
	// It reads data from peers which decode with the names inverted.
	SwappedFields
)

func (f Fields) String() string {
	switch f {
	case NaturalFields:
		return "natural"
	case SwappedFields:
		return "swapped"
	default:
		return fmt.Sprintf("Fields(%d)", uint8(f))
	}
}

type slot uint8

const (
	slotSec slot = iota
	slotNsec
)

func (s slot) name() string {
	if s == slotSec {
		return fieldSec
	}
	return fieldNsec
}

// route returns the slot for the field name.
func (f Fields) route(name string) (slot, error) {
	var s slot
	switch name {
	case fieldSec:
		s = slotSec
	case fieldNsec:
		s = slotNsec
	default:
		return 0, ErrUnknownField{Field: name}
	}
	if f == SwappedFields {
		if s == slotSec {
			s = slotNsec
		} else {
			s = slotSec
		}
	}
	return s, nil
}

// keyedState collects the fields of a keyed encoding as they are decoded.
type keyedState struct {
	sec, nsec       int64
	hasSec, hasNsec bool
}

// set stores x in the slot. Later values for the same slot replace earlier ones.
func (ks *keyedState) set(s slot, x int64) error {
	switch s {
	case slotSec:
		ks.sec, ks.hasSec = x, true
	case slotNsec:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return fmt.Errorf("value %d for %s does not fit in 32 bits", x, s.name())
		}
		ks.nsec, ks.hasNsec = x, true
	}
	return nil
}

// finish returns the Timestamp once both slots are filled.
func (ks *keyedState) finish() (Timestamp, error) {
	if !ks.hasSec {
		return Timestamp{}, ErrMissingField{Field: fieldSec}
	}
	if !ks.hasNsec {
		return Timestamp{}, ErrMissingField{Field: fieldNsec}
	}
	return New(ks.sec, int32(ks.nsec)), nil
}
