package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	values := []Value{Null{}, String("cat"), Int(3), Bool(true)}
	for _, v := range values {
		switch v.(type) {
		case Null, String, Int, Bool:
		default:
			t.Fatalf("unexpected Value type %T", v)
		}
	}
}

func TestHelperConstructors(t *testing.T) {
	assert.Equal(t, String("the cat sat"), NewString("the cat sat"))
	assert.Equal(t, Int(7), NewInt(7))
	assert.Equal(t, Bool(false), NewBool(false))
}

func TestNative(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected any
	}{
		{"string", String("cat & sat"), "cat & sat"},
		{"int", Int(32), int64(32)},
		{"bool", Bool(true), true},
		{"null", Null{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Native(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := Native(nil)
	assert.Error(t, err)
}

func TestFromNative(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"nil", nil, Null{}},
		{"string", "x", String("x")},
		{"bool", true, Bool(true)},
		{"int", 4, Int(4)},
		{"int64", int64(-9), Int(-9)},
		{"uint64", uint64(12), Int(12)},
		{"integral float", float64(16), Int(16)},
		{"json number", json.Number("42"), Int(42)},
		{"value passthrough", String("y"), String("y")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromNativeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"fractional float", 0.5},
		{"json float", json.Number("1.5")},
		{"json exponent", json.Number("1e3")},
		{"huge uint", uint64(1 << 63)},
		{"slice", []any{1}},
		{"map", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromNative(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalValue(t *testing.T) {
	v, err := UnmarshalValue([]byte(`"fat & rat"`))
	require.NoError(t, err)
	assert.Equal(t, String("fat & rat"), v)

	v, err = UnmarshalValue([]byte(`12`))
	require.NoError(t, err)
	assert.Equal(t, Int(12), v)

	v, err = UnmarshalValue([]byte(`null`))
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)

	_, err = UnmarshalValue([]byte(`1.25`))
	assert.Error(t, err)

	_, err = UnmarshalValue([]byte(`[1,2]`))
	assert.Error(t, err)

	_, err = UnmarshalValue([]byte(`{`))
	assert.Error(t, err)
}

func TestMarshalValue(t *testing.T) {
	tests := []struct {
		input    Value
		expected string
	}{
		{Null{}, "null"},
		{String("a'b"), `"a'b"`},
		{Int(-1), "-1"},
		{Bool(true), "true"},
	}

	for _, tt := range tests {
		got, err := MarshalValue(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, string(got))

		back, err := UnmarshalValue(got)
		require.NoError(t, err)
		assert.Equal(t, tt.input, back)
	}
}
