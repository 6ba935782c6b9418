// Package types defines the scalar value union and the vertex/edge records
// that make up the graph database's data model.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which variant of the scalar union a Value holds.
type Kind int

const (
	// KindString holds a string scalar.
	KindString Kind = iota
	// KindInt holds an integer scalar.
	KindInt
	// KindFloat holds a floating-point scalar.
	KindFloat
	// KindBool holds a boolean scalar.
	KindBool
)

// Value is a tagged union over the four attribute scalar kinds: string,
// integer, floating-point, and boolean. Exactly one of the typed fields is
// meaningful for a given Kind.
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Flt  float64
	Bool bool
}

// NewString builds a string-kind Value.
func NewString(s string) Value { return Value{Kind: KindString, Str: s} }

// NewInt builds an int-kind Value.
func NewInt(i int64) Value { return Value{Kind: KindInt, Int: i} }

// NewFloat builds a float-kind Value.
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Flt: f} }

// NewBool builds a bool-kind Value.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsNumeric reports whether the value is an integer or a float.
func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// Float64 returns the value as a float64, valid only when IsNumeric is true.
func (v Value) Float64() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Flt
}

// String returns the canonical string form of the value. This is the
// value-key form used for index keys and for query literal coercion of
// string-valued attributes; it is never case-folded.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Equal reports whether two values hold the same kind and scalar content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Flt == o.Flt
	case KindBool:
		return v.Bool == o.Bool
	default:
		return false
	}
}

// MarshalJSON renders the value as a plain JSON scalar (string, number, or
// bool) rather than as a tagged object, matching the companion-file wire
// format.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Flt)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return nil, fmt.Errorf("types: value has unknown kind %d", v.Kind)
	}
}

// UnmarshalJSON recovers a Value from a plain JSON scalar, picking the kind
// from the JSON token: strings become KindString, true/false become
// KindBool, and numbers become KindInt when they parse as an integer with
// no fractional part, KindFloat otherwise.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromInterface converts a decoded JSON scalar (string, bool, float64, or
// json.Number) into a Value, rejecting anything else (nested objects,
// arrays, null).
func FromInterface(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case string:
		return NewString(x), nil
	case bool:
		return NewBool(x), nil
	case float64:
		if x == float64(int64(x)) {
			return NewInt(int64(x)), nil
		}
		return NewFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("types: cannot parse number %q", x)
		}
		return NewFloat(f), nil
	default:
		return Value{}, fmt.Errorf("types: unsupported attribute value %#v", raw)
	}
}
