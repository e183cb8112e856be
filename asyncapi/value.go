package asyncapi

import (
	"encoding/json"
	"fmt"
)

// ValueKind identifies which JSON variant a Value holds.
type ValueKind int

const (
	// KindNull is the JSON null value
	KindNull ValueKind = iota
	// KindBool is a JSON boolean
	KindBool
	// KindNumber is a JSON number
	KindNumber
	// KindString is a JSON string
	KindString
	// KindArray is a JSON array
	KindArray
	// KindObject is a JSON object
	KindObject
)

// Value is a tagged JSON value. It backs free-form schema keywords
// (enum, const, unrecognized fields) where the document model cannot
// commit to a concrete type.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Str    string
	Array  []Value
	Object map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{Kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// ArrayValue wraps an array of values.
func ArrayValue(items ...Value) Value { return Value{Kind: KindArray, Array: items} }

// ObjectValue wraps an object of values.
func ObjectValue(fields map[string]Value) Value { return Value{Kind: KindObject, Object: fields} }

// Equal reports structural equality between two values.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindNumber:
		return v.Number == other.Number
	case KindString:
		return v.Str == other.Str
	case KindArray:
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Object) != len(other.Object) {
			return false
		}
		for k, val := range v.Object {
			o, ok := other.Object[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.Bool)
	case KindNumber:
		return json.Marshal(v.Number)
	case KindString:
		return json.Marshal(v.Str)
	case KindArray:
		if v.Array == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Array)
	case KindObject:
		if v.Object == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.Object)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromInterface converts a decoded JSON value (as produced by
// encoding/json into interface{}) into a Value.
func FromInterface(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case string:
		return StringValue(t), nil
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			val, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
		return Value{Kind: KindArray, Array: items}, nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			val, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			fields[k] = val
		}
		return Value{Kind: KindObject, Object: fields}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// ToInterface converts a Value back into the generic form used by
// encoding/json.
func (v Value) ToInterface() interface{} {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.Str
	case KindArray:
		items := make([]interface{}, 0, len(v.Array))
		for _, item := range v.Array {
			items = append(items, item.ToInterface())
		}
		return items
	case KindObject:
		fields := make(map[string]interface{}, len(v.Object))
		for k, item := range v.Object {
			fields[k] = item.ToInterface()
		}
		return fields
	default:
		return nil
	}
}
