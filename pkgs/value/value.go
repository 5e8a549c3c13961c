// Package value defines the document model produced by parsing Gura text: a
// tagged value tree whose objects preserve key insertion order.
package value

import (
	"math"
)

// Type discriminates the payload of a Value.
type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
	ObjectType
)

var typeNames = [...]string{
	NullType:   "null",
	BoolType:   "bool",
	IntType:    "integer",
	FloatType:  "float",
	StringType: "string",
	ArrayType:  "array",
	ObjectType: "object",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Value is one node of a parsed Gura document. Exactly one payload field is
// meaningful, selected by Type. Values are immutable once the parser returns
// them; the serializer only reads.
type Value struct {
	Type  Type
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Items []*Value
	Obj   *Object
}

// Null returns the null value.
func Null() *Value {
	return &Value{Type: NullType}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return &Value{Type: BoolType, Bool: b}
}

// NewInt returns an integer value.
func NewInt(n int64) *Value {
	return &Value{Type: IntType, Int: n}
}

// NewFloat returns a float value.
func NewFloat(f float64) *Value {
	return &Value{Type: FloatType, Float: f}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{Type: StringType, Str: s}
}

// NewArray returns an array value holding the given elements.
func NewArray(items ...*Value) *Value {
	return &Value{Type: ArrayType, Items: items}
}

// FromObject wraps an Object as a Value.
func FromObject(o *Object) *Value {
	return &Value{Type: ObjectType, Obj: o}
}

// EmptyObject returns a fresh empty object value.
func EmptyObject() *Value {
	return FromObject(NewObject())
}

// IsScalar reports whether v is a string, integer or float. Only scalars may
// be bound to variables or interpolated into strings.
func (v *Value) IsScalar() bool {
	switch v.Type {
	case StringType, IntType, FloatType:
		return true
	}
	return false
}

// Get looks up a key on an object value. It returns nil when v is not an
// object or the key is absent, so lookups can be chained:
//
//	doc.Get("server").Get("port")
func (v *Value) Get(key string) *Value {
	if v == nil || v.Type != ObjectType {
		return nil
	}
	got, ok := v.Obj.Get(key)
	if !ok {
		return nil
	}
	return got
}

// Equal reports deep equality of two value trees. Object comparison is
// order-sensitive because insertion order is part of the model. NaN floats
// compare equal to each other so that round-trip checks hold.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case IntType:
		return a.Int == b.Int
	case FloatType:
		if math.IsNaN(a.Float) && math.IsNaN(b.Float) {
			return true
		}
		return a.Float == b.Float
	case StringType:
		return a.Str == b.Str
	case ArrayType:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		return a.Obj.Equal(b.Obj)
	}
	return false
}
