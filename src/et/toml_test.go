package et

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

func TestTOMLRoundTrip(t *testing.T) {
	type doc struct {
		Name string    `toml:"name"`
		At   Timestamp `toml:"at"`
	}
	tcs := []Timestamp{
		New(0, 0),
		New(1609459200, 500_000_000),
		New(-100, 1_500_000_000),
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x := doc{Name: "n", At: tc}
			var buf bytes.Buffer
			require.NoError(t, toml.NewEncoder(&buf).Encode(x))
			var y doc
			_, err := toml.Decode(buf.String(), &y)
			require.NoError(t, err)
			require.Equal(t, x, y)
		})
	}
}

func TestMarshalTOML(t *testing.T) {
	data, err := New(1609459200, 5).MarshalTOML()
	require.NoError(t, err)
	require.Equal(t, "{ sec = 1609459200, nsec = 5 }", string(data))
}

func TestDecodeTOML(t *testing.T) {
	x, err := DecodeTOML(map[string]any{"nsec": int64(2), "sec": int64(1)}, NaturalFields)
	require.NoError(t, err)
	require.Equal(t, New(1, 2), x)

	x, err = DecodeTOML(map[string]any{"nsec": int64(2), "sec": int64(1)}, SwappedFields)
	require.NoError(t, err)
	require.Equal(t, New(2, 1), x)

	_, err = DecodeTOML(map[string]any{"sec": int64(1)}, NaturalFields)
	require.Equal(t, ErrMissingField{Field: "nsec"}, err)

	_, err = DecodeTOML(map[string]any{"sec": int64(1), "nsec": int64(2), "foo": int64(3)}, NaturalFields)
	require.Equal(t, ErrUnknownField{Field: "foo"}, err)

	for i, in := range []any{
		int64(5),
		"2021-01-01T00:00:00Z",
		map[string]any{"sec": "1", "nsec": int64(2)},
		map[string]any{"sec": int64(1), "nsec": int64(1) << 40},
	} {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := DecodeTOML(in, NaturalFields)
			require.True(t, IsMalformed(err), "%v", err)
		})
	}
}
