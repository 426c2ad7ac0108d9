package hjson

import "github.com/iancoleman/orderedmap"

// ValueType tags the variant a Value currently holds.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBool
	TypeInt
	TypeDouble
	TypeString
	TypeVector
	TypeMap
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeVector:
		return "vector"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an Hjson value-tree node. It is a tagged variant over
// null/bool/int/double/string/vector/map, carrying the four comment
// strings (before, after, key, inside) that a decoder attaches around it
// and an encoder reattaches on the way back out (inside only for
// vectors: an empty map is always encoded as {}).
//
// The Map variant is backed by an *orderedmap.OrderedMap so that key
// order always matches insertion order, a key can be looked up by its
// index, and overwriting an existing key updates it in place rather than
// moving it to the end.
type Value struct {
	typ ValueType

	b   bool
	i   int64
	f   float64
	s   string
	vec []*Value
	m   *orderedmap.OrderedMap

	before, after, key, inside string
}

// NewUndefined returns a Value with no type. The decoder never produces
// one; the encoder skips it inside vectors and maps and writes null for
// it elsewhere.
func NewUndefined() *Value { return &Value{typ: TypeUndefined} }

// NewNull returns an explicit null Value.
func NewNull() *Value { return &Value{typ: TypeNull} }

// NewBool returns a boolean Value.
func NewBool(b bool) *Value { return &Value{typ: TypeBool, b: b} }

// NewInt returns an integer Value.
func NewInt(i int64) *Value { return &Value{typ: TypeInt, i: i} }

// NewDouble returns a floating-point Value.
func NewDouble(f float64) *Value { return &Value{typ: TypeDouble, f: f} }

// NewString returns a string Value.
func NewString(s string) *Value { return &Value{typ: TypeString, s: s} }

// NewVector returns an empty array Value.
func NewVector() *Value { return &Value{typ: TypeVector} }

// NewMap returns an empty object Value.
func NewMap() *Value { return &Value{typ: TypeMap, m: orderedmap.New()} }

// Type reports which variant v holds.
func (v *Value) Type() ValueType {
	if v == nil {
		return TypeUndefined
	}
	return v.typ
}

// Defined reports whether v holds an actual value, as opposed to being
// nil or of TypeUndefined.
func (v *Value) Defined() bool { return v != nil && v.typ != TypeUndefined }

// IsNull reports whether v is an explicit null.
func (v *Value) IsNull() bool { return v != nil && v.typ == TypeNull }

// Bool returns the boolean payload. It is the zero value unless
// v.Type() == TypeBool.
func (v *Value) Bool() bool { return v.b }

// Int returns the integer payload. It is the zero value unless
// v.Type() == TypeInt.
func (v *Value) Int() int64 { return v.i }

// Float returns the floating-point payload. It is the zero value unless
// v.Type() == TypeDouble.
func (v *Value) Float() float64 { return v.f }

// Str returns the string payload. It is the zero value unless
// v.Type() == TypeString.
func (v *Value) Str() string { return v.s }

// Before returns the comment text (including its own leading whitespace
// and line breaks) that precedes v in document order.
func (v *Value) Before() string { return v.before }

// After returns the comment text that trails v on the same line; for the
// last element of a container or document it also holds the comments
// that follow, up to the closing delimiter or end of input.
func (v *Value) After() string { return v.after }

// Key returns the comment text attached between a map key and its value,
// on either side of the colon.
func (v *Value) Key() string { return v.key }

// Inside returns the comment text captured between the brackets of an
// otherwise-empty vector or map.
func (v *Value) Inside() string { return v.inside }

// SetBefore sets the before-comment.
func (v *Value) SetBefore(s string) { v.before = s }

// SetAfter sets the after-comment.
func (v *Value) SetAfter(s string) { v.after = s }

// SetKey sets the key-comment.
func (v *Value) SetKey(s string) { v.key = s }

// SetInside sets the inside-comment.
func (v *Value) SetInside(s string) { v.inside = s }

// Len reports the number of elements in a vector or the number of keys in
// a map. It is 0 for any other type.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.typ {
	case TypeVector:
		return len(v.vec)
	case TypeMap:
		return len(v.m.Keys())
	default:
		return 0
	}
}

// At returns the i'th element of a vector, or nil if v is not a vector or
// i is out of range.
func (v *Value) At(i int) *Value {
	if v == nil || v.typ != TypeVector || i < 0 || i >= len(v.vec) {
		return nil
	}
	return v.vec[i]
}

// Push appends elem to a vector.
func (v *Value) Push(elem *Value) {
	v.vec = append(v.vec, elem)
}

// KeyAt returns the key at position i in a map's insertion order.
func (v *Value) KeyAt(i int) (string, bool) {
	if v == nil || v.typ != TypeMap {
		return "", false
	}
	keys := v.m.Keys()
	if i < 0 || i >= len(keys) {
		return "", false
	}
	return keys[i], true
}

// Get looks up key in a map.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.typ != TypeMap {
		return nil, false
	}
	raw, ok := v.m.Get(key)
	if !ok {
		return nil, false
	}
	return raw.(*Value), true
}

// Set inserts elem at key, appending a new entry at the end of the
// insertion order, or - if key already exists - overwriting that entry in
// place without moving it. The new value's comments replace whatever
// comments the old entry at that key carried.
func (v *Value) Set(key string, elem *Value) {
	v.m.Set(key, elem)
}

// Keys returns a map's keys in insertion order.
func (v *Value) Keys() []string {
	if v == nil || v.typ != TypeMap {
		return nil
	}
	return v.m.Keys()
}

// String renders v using the default encoder options. It never returns an
// error message in place of output: on encode failure it returns "".
func (v *Value) String() string {
	out, err := Marshal(v)
	if err != nil {
		return ""
	}
	return out
}
