package et

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const formatYAML = "yaml"

type yamlTimestamp struct {
	Sec  int64 `yaml:"sec"`
	Nsec int32 `yaml:"nsec"`
}

// MarshalYAML implements yaml.Marshaler.
// The output is a mapping with "sec" followed by "nsec".
func (t Timestamp) MarshalYAML() (any, error) {
	return yamlTimestamp{Sec: t.sec, Nsec: t.nsec}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler using NaturalFields.
func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	x, err := DecodeYAML(node, NaturalFields)
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// ParseYAML decodes a YAML document containing a single Timestamp mapping.
func ParseYAML(data []byte, fields Fields) (Timestamp, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Timestamp{}, ErrMalformed{Format: formatYAML, Err: err}
	}
	return DecodeYAML(&node, fields)
}

// DecodeYAML decodes a mapping node holding "sec" and "nsec", in either order.
// Document nodes are unwrapped and aliases are followed.
func DecodeYAML(node *yaml.Node, fields Fields) (Timestamp, error) {
	malformed := func(err error) (Timestamp, error) {
		return Timestamp{}, ErrMalformed{Format: formatYAML, Err: err}
	}
	if node == nil {
		return malformed(fmt.Errorf("no node"))
	}
	node = resolveYAML(node)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) != 1 {
			return malformed(fmt.Errorf("empty document"))
		}
		node = resolveYAML(node.Content[0])
	}
	if node.Kind != yaml.MappingNode {
		return malformed(fmt.Errorf("line %d: expected mapping, found %s", node.Line, node.ShortTag()))
	}
	var ks keyedState
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveYAML(node.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return malformed(fmt.Errorf("line %d: expected field name", key.Line))
		}
		s, err := fields.route(key.Value)
		if err != nil {
			return Timestamp{}, err
		}
		if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!int" {
			return malformed(fmt.Errorf("line %d: field %q: expected integer, found %s", val.Line, key.Value, val.ShortTag()))
		}
		var x int64
		if err := val.Decode(&x); err != nil {
			return malformed(fmt.Errorf("field %q: %w", key.Value, err))
		}
		if err := ks.set(s, x); err != nil {
			return malformed(err)
		}
	}
	return ks.finish()
}

func resolveYAML(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
