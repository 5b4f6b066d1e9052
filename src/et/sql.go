package et

import (
	"database/sql/driver"
	"fmt"
)

// Value implements driver.Valuer.
// Timestamps are stored as the positional binary encoding.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Marshal(nil), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	data, ok := src.([]byte)
	if !ok {
		return ErrMalformed{Format: "sql", Err: fmt.Errorf("cannot scan %T into et.Timestamp", src)}
	}
	return t.UnmarshalBinary(data)
}
