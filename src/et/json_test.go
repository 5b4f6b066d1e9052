package et

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	tcs := []Timestamp{
		New(0, 0),
		New(1609459200, 500_000_000),
		New(-62167219200, 1),
		New(math.MaxInt64, math.MaxInt32),
		New(math.MinInt64, math.MinInt32),
		New(3, 1_500_000_000),
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			data, err := json.Marshal(tc)
			require.NoError(t, err)
			var y Timestamp
			require.NoError(t, json.Unmarshal(data, &y))
			require.Equal(t, tc, y)
			require.Equal(t, tc.Sec(), y.Sec())
		})
	}
}

func TestJSONFieldOrder(t *testing.T) {
	data, err := json.Marshal(New(1609459200, 5))
	require.NoError(t, err)
	require.Equal(t, `{"sec":1609459200,"nsec":5}`, string(data))
}

func TestJSONEmbedded(t *testing.T) {
	type event struct {
		Name string    `json:"name"`
		At   Timestamp `json:"at"`
	}
	x := event{Name: "a", At: New(-5, 6)}
	data, err := json.Marshal(x)
	require.NoError(t, err)
	require.Equal(t, `{"name":"a","at":{"sec":-5,"nsec":6}}`, string(data))
	var y event
	require.NoError(t, json.Unmarshal(data, &y))
	require.Equal(t, x, y)
}

func TestDecodeJSON(t *testing.T) {
	tcs := []struct {
		In     string
		Fields Fields
		Want   Timestamp
	}{
		{`{"sec":1,"nsec":2}`, NaturalFields, New(1, 2)},
		{`{"nsec":2,"sec":1}`, NaturalFields, New(1, 2)},
		{` { "sec" : -1 , "nsec" : 0 } `, NaturalFields, New(-1, 0)},
		{`{"sec":1,"sec":3,"nsec":2}`, NaturalFields, New(3, 2)},
		{`{"sec":1,"nsec":2}`, SwappedFields, New(2, 1)},
		{`{"nsec":1609459200,"sec":2}`, SwappedFields, New(1609459200, 2)},
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, err := DecodeJSON([]byte(tc.In), tc.Fields)
			require.NoError(t, err)
			require.Equal(t, tc.Want, x)
		})
	}
}

func TestDecodeJSONSwappedWidth(t *testing.T) {
	// a natural encoding of a real timestamp puts a 64 bit value in the 32 bit slot.
	data, err := json.Marshal(New(1<<40, 2))
	require.NoError(t, err)
	_, err = DecodeJSON(data, SwappedFields)
	require.True(t, IsMalformed(err))
}

func TestDecodeJSONMissing(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"sec":1}`), NaturalFields)
	require.Equal(t, ErrMissingField{Field: "nsec"}, err)
	require.True(t, IsMissingField(err))

	_, err = DecodeJSON([]byte(`{"nsec":1}`), NaturalFields)
	require.Equal(t, ErrMissingField{Field: "sec"}, err)

	_, err = DecodeJSON([]byte(`{}`), NaturalFields)
	require.Equal(t, ErrMissingField{Field: "sec"}, err)

	var x Timestamp
	err = json.Unmarshal([]byte(`{"sec":1}`), &x)
	require.True(t, IsMissingField(err))
}

func TestDecodeJSONUnknown(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"sec":1,"foo":3,"nsec":2}`), NaturalFields)
	require.Equal(t, ErrUnknownField{Field: "foo"}, err)
	require.True(t, IsUnknownField(err))

	_, err = DecodeJSON([]byte(`{"foo":{"bar":1}}`), SwappedFields)
	require.True(t, IsUnknownField(err))
}

func TestDecodeJSONMalformed(t *testing.T) {
	tcs := []string{
		``,
		`null`,
		`[1,2]`,
		`1609459200`,
		`{"sec":1,"nsec":2`,
		`{"sec":1`,
		`{"sec":"1","nsec":2}`,
		`{"sec":1.5,"nsec":2}`,
		`{"sec":1,"nsec":null}`,
		`{"sec":1,"nsec":2147483648}`,
		`{"sec":9223372036854775808,"nsec":0}`,
		`{"sec":1,"nsec":2}{}`,
		`{"sec":1,"nsec":2} 3`,
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := DecodeJSON([]byte(tc), NaturalFields)
			require.Error(t, err)
			require.True(t, IsMalformed(err), "%v", err)
		})
	}
}
