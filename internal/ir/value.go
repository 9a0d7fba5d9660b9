package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a sealed interface over the literal values an expression leaf
// may carry. Only Null, String, Int and Bool implement it.
type Value interface {
	irValue()
}

// Null is the SQL NULL literal.
type Null struct{}

func (Null) irValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String is a text literal.
type String string

func (String) irValue() {}

// Int is an integer literal. Always int64.
type Int int64

func (Int) irValue() {}

// Bool is a boolean literal.
type Bool bool

func (Bool) irValue() {}

// NewString creates a String value.
func NewString(s string) String {
	return String(s)
}

// NewInt creates an Int value.
func NewInt(n int64) Int {
	return Int(n)
}

// NewBool creates a Bool value.
func NewBool(b bool) Bool {
	return Bool(b)
}

// Native converts a Value into the Go type handed to database/sql drivers
// as a statement argument.
func Native(v Value) (any, error) {
	switch val := v.(type) {
	case String:
		return string(val), nil
	case Int:
		return int64(val), nil
	case Bool:
		return bool(val), nil
	case Null:
		return nil, nil
	case nil:
		return nil, fmt.Errorf("nil Value cannot be used as a parameter")
	default:
		return nil, fmt.Errorf("unsupported Value type for parameter: %T", v)
	}
}

// FromNative converts a decoded YAML, CUE or JSON scalar into a Value.
// Floats are rejected unless they hold an integral value, since YAML and
// CUE decoders commonly surface whole numbers as float64.
func FromNative(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float64:
		if val != float64(int64(val)) {
			return nil, fmt.Errorf("float literals are not allowed: %v", val)
		}
		return Int(int64(val)), nil
	case json.Number:
		return numberToValue(val)
	default:
		return nil, fmt.Errorf("unsupported literal type: %T", v)
	}
}

// UnmarshalValue decodes a single JSON scalar into a Value.
// Floats, arrays and objects are rejected.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	switch raw.(type) {
	case []any, map[string]any:
		return nil, fmt.Errorf("literal must be a scalar, got %T", raw)
	}
	return FromNative(raw)
}

// MarshalValue marshals a Value to plain JSON.
// NOTE: not canonical. Use MarshalCanonical for hashing.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Int:
		return json.Marshal(int64(val))
	case Bool:
		return json.Marshal(bool(val))
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

func numberToValue(n json.Number) (Value, error) {
	s := string(n)
	if strings.ContainsAny(s, ".eE") {
		return nil, fmt.Errorf("float literals are not allowed: %s", s)
	}
	i, err := n.Int64()
	if err != nil {
		return nil, fmt.Errorf("number out of int64 range: %s", s)
	}
	return Int(i), nil
}
