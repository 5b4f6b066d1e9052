package et

import (
	"fmt"
	"sort"
)

const formatTOML = "toml"

// MarshalTOML implements toml.Marshaler.
// The output is the inline table { sec = <seconds>, nsec = <nanoseconds> }.
func (t Timestamp) MarshalTOML() ([]byte, error) {
	return fmt.Appendf(nil, "{ sec = %d, nsec = %d }", t.sec, t.nsec), nil
}

// UnmarshalTOML implements toml.Unmarshaler using NaturalFields.
func (t *Timestamp) UnmarshalTOML(data any) error {
	x, err := DecodeTOML(data, NaturalFields)
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// DecodeTOML decodes a table, as produced by the toml decoder, holding "sec" and "nsec".
func DecodeTOML(data any, fields Fields) (Timestamp, error) {
	malformed := func(err error) (Timestamp, error) {
		return Timestamp{}, ErrMalformed{Format: formatTOML, Err: err}
	}
	table, ok := data.(map[string]any)
	if !ok {
		return malformed(fmt.Errorf("expected table, found %T", data))
	}
	// tables are unordered; sort so that errors are deterministic.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	var ks keyedState
	for _, name := range names {
		s, err := fields.route(name)
		if err != nil {
			return Timestamp{}, err
		}
		x, ok := table[name].(int64)
		if !ok {
			return malformed(fmt.Errorf("field %q: expected integer, found %T", name, table[name]))
		}
		if err := ks.set(s, x); err != nil {
			return malformed(err)
		}
	}
	return ks.finish()
}
