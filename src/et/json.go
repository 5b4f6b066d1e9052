package et

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const formatJSON = "json"

// jsonTimestamp fixes the order of the fields on the wire.
type jsonTimestamp struct {
	Sec  int64 `json:"sec"`
	Nsec int32 `json:"nsec"`
}

// MarshalJSON implements json.Marshaler.
// The output is {"sec":<seconds>,"nsec":<nanoseconds>}.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTimestamp{Sec: t.sec, Nsec: t.nsec})
}

// UnmarshalJSON implements json.Unmarshaler using NaturalFields.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	x, err := DecodeJSON(data, NaturalFields)
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// DecodeJSON decodes a single JSON object holding "sec" and "nsec", in either order.
// fields controls which slot each name is routed to.
func DecodeJSON(data []byte, fields Fields) (Timestamp, error) {
	malformed := func(err error) (Timestamp, error) {
		return Timestamp{}, ErrMalformed{Format: formatJSON, Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}
	if tok != json.Delim('{') {
		return malformed(fmt.Errorf("expected object, found %v", tok))
	}
	var ks keyedState
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformed(err)
		}
		name, ok := tok.(string)
		if !ok {
			return malformed(fmt.Errorf("expected field name, found %v", tok))
		}
		s, err := fields.route(name)
		if err != nil {
			return Timestamp{}, err
		}
		tok, err = dec.Token()
		if err != nil {
			return malformed(err)
		}
		num, ok := tok.(json.Number)
		if !ok {
			return malformed(fmt.Errorf("field %q: expected integer, found %v", name, tok))
		}
		x, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return malformed(fmt.Errorf("field %q: %w", name, err))
		}
		if err := ks.set(s, x); err != nil {
			return malformed(err)
		}
	}
	// the object must be closed, and nothing may follow it.
	tok, err = dec.Token()
	if err != nil {
		return malformed(err)
	}
	if tok != json.Delim('}') {
		return malformed(fmt.Errorf("expected end of object, found %v", tok))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return malformed(fmt.Errorf("trailing data after object"))
	}
	return ks.finish()
}
