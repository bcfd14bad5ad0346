package attr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"max int64", Int(math.MaxInt64), "9223372036854775807"},
		{"float", Float(37.7749), "37.7749"},
		{"integral float", Float(3), "3.0"},
		{"zero float", Float(0), "0.0"},
		{"large float", Float(1e21), "1e+21"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"array of strings", Strings([]string{"a", "b"}), `["a","b"]`},
		{"nested object", Object{"a": Object{"b": Int(1)}}, `{"a":{"b":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := Object{
		"updated_at": String("u"),
		"__class__":  String("User"),
		"id":         String("1"),
		"created_at": String("c"),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"__class__":"User","created_at":"c","id":"1","updated_at":"u"}`, string(result))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical(String("<a & b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(result))
}

func TestMarshalCanonicalPreservesDecomposed(t *testing.T) {
	// "e" followed by a combining acute accent must not be composed.
	decomposed := "caf" + "e" + string(rune(0x0301))

	result, err := MarshalCanonical(String(decomposed))
	require.NoError(t, err)
	assert.Equal(t, `"`+decomposed+`"`, string(result))

	result, err = MarshalCanonical(Object{decomposed: Int(1)})
	require.NoError(t, err)
	assert.Equal(t, `{"`+decomposed+`":1}`, string(result))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	ls := string(rune(0x2028))
	ps := string(rune(0x2029))

	result, err := MarshalCanonical(String("a" + ls + "b" + ps))
	require.NoError(t, err)
	assert.Equal(t, `"a`+ls+`b`+ps+`"`, string(result))

	// A literal backslash followed by u2028 text stays escaped.
	result, err = MarshalCanonical(String("\\u2028"))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(result))
}

func TestMarshalCanonicalRejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(Float(math.NaN()))
	assert.Error(t, err)

	_, err = MarshalCanonical(Object{"lat": Float(math.Inf(1))})
	assert.ErrorContains(t, err, `"lat"`)
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	obj := Object{}
	for _, k := range []string{"z", "y", "x", "w", "v", "u", "t", "s"} {
		obj[k] = String(k)
	}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
