package models

import json "github.com/goccy/go-json"

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindInvalid is the zero Kind. It marks a value the decoder could not represent.
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a decoded JSON value. Exactly one payload field is meaningful,
// selected by Kind. Numbers keep their literal text so callers can tell
// 3 from 3.0.
type Value struct {
	Kind   Kind
	Bool   bool
	Number json.Number
	String string
	Array  []Value
	Object *Object
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object whose members are kept in decoder enumeration order.
// Keys are unique.
type Object struct {
	Members []Member
}

// NullValue returns a null Value.
func NullValue() Value { return Value{Kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberValue wraps a numeric literal.
func NumberValue(literal string) Value { return Value{Kind: KindNumber, Number: json.Number(literal)} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: KindString, String: s} }

// ArrayValue wraps a sequence of values.
func ArrayValue(items ...Value) Value { return Value{Kind: KindArray, Array: items} }

// ObjectValue wraps an Object.
func ObjectValue(obj *Object) Value { return Value{Kind: KindObject, Object: obj} }

// NewObject builds an Object from members, applying Set for each.
func NewObject(members ...Member) *Object {
	obj := &Object{}
	for _, m := range members {
		obj.Set(m.Key, m.Value)
	}
	return obj
}

// Set stores value under key. A key seen before keeps its position and takes
// the new value.
func (o *Object) Set(key string, value Value) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Get looks up key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the member keys in enumeration order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}
