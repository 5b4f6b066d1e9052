package etcmd

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gotvc/et/src/et"
)

// Format is an output or input representation of a Timestamp.
type Format string

const (
	// FormatText is the display form. It cannot be decoded.
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatTOML is a document with the Timestamp as the inline table "at".
	FormatTOML Format = "toml"
	// FormatHex is the positional binary encoding as hex.
	FormatHex Format = "hex"
	// FormatBin is the raw positional binary encoding.
	FormatBin Format = "bin"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatHex, FormatBin}

func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, expected one of %v", s, formats)
}

func ParseFields(s string) (et.Fields, error) {
	switch s {
	case "", "natural":
		return et.NaturalFields, nil
	case "swapped":
		return et.SwappedFields, nil
	default:
		return 0, fmt.Errorf("unknown field mapping %q, expected natural or swapped", s)
	}
}

type tomlDoc struct {
	At et.Timestamp `toml:"at"`
}

// Encode writes x to w in format f.
// Text formats are terminated with a newline.
func Encode(w io.Writer, f Format, x et.Timestamp) error {
	switch f {
	case FormatText:
		s, err := x.Format()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case FormatJSON:
		data, err := json.Marshal(x)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(x); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(tomlDoc{At: x})
	case FormatHex:
		_, err := fmt.Fprintln(w, hex.EncodeToString(x.Marshal(nil)))
		return err
	case FormatBin:
		_, err := x.WriteTo(w)
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Decode reads everything from r and decodes a single Timestamp in format f.
// fields only applies to the keyed formats.
func Decode(r io.Reader, f Format, fields et.Fields) (et.Timestamp, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return et.Timestamp{}, err
	}
	switch f {
	case FormatJSON:
		return et.DecodeJSON(bytes.TrimSpace(data), fields)
	case FormatYAML:
		return et.ParseYAML(data, fields)
	case FormatTOML:
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return et.Timestamp{}, et.ErrMalformed{Format: string(f), Err: err}
		}
		at, ok := doc["at"]
		if !ok {
			return et.Timestamp{}, et.ErrMalformed{Format: string(f), Err: fmt.Errorf("missing table %q", "at")}
		}
		return et.DecodeTOML(at, fields)
	case FormatHex:
		raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return et.Timestamp{}, et.ErrMalformed{Format: string(f), Err: err}
		}
		return et.Parse(raw)
	case FormatBin:
		return et.Parse(data)
	case FormatText:
		return et.Timestamp{}, fmt.Errorf("the %s format is for display and cannot be decoded", f)
	default:
		return et.Timestamp{}, fmt.Errorf("unknown format %q", f)
	}
}
