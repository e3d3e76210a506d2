// Package jsonvalue holds an untyped JSON document as a tree of tagged
// values. Objects keep their member order and numbers keep their literal
// text, so callers decide how a number should be read.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is one node of a parsed JSON document. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the literal text of a number
	arr  []Value
	obj  *Members
}

// TypeError reports that a Value was read as the wrong kind
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) expect(k Kind) error {
	if v.kind != k {
		return &TypeError{Want: k, Got: v.kind}
	}
	return nil
}

// AsBool returns the value of a boolean
func (v Value) AsBool() (bool, error) {
	if err := v.expect(Bool); err != nil {
		return false, err
	}
	return v.b, nil
}

// AsString returns the contents of a string
func (v Value) AsString() (string, error) {
	if err := v.expect(String); err != nil {
		return "", err
	}
	return v.s, nil
}

// AsNumber returns the literal text of a number
func (v Value) AsNumber() (json.Number, error) {
	if err := v.expect(Number); err != nil {
		return "", err
	}
	return json.Number(v.s), nil
}

// AsUint reads a number as a non-negative integer. Fractions, exponents,
// negative values and values overflowing uint64 are rejected with a
// *strconv.NumError.
func (v Value) AsUint() (uint64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(n.String(), 10, 64)
}

// AsArray returns the elements of an array
func (v Value) AsArray() ([]Value, error) {
	if err := v.expect(Array); err != nil {
		return nil, err
	}
	return v.arr, nil
}

// AsObject returns the members of an object
func (v Value) AsObject() (*Members, error) {
	if err := v.expect(Object); err != nil {
		return nil, err
	}
	return v.obj, nil
}

// MarshalJSON renders the value back to compact JSON
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(data)
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.b))
	case Number:
		buf.WriteString(v.s)
	case String:
		return encodeString(buf, v.s)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		return v.obj.encode(buf)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// Members is the ordered key/value content of a JSON object
type Members struct {
	keys   []string
	values map[string]Value
}

func newMembers() *Members {
	return &Members{values: make(map[string]Value)}
}

// set stores a member. A repeated key replaces the earlier value but keeps
// its original position.
func (m *Members) set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up a member by key
func (m *Members) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns member keys in document order
func (m *Members) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *Members) Len() int { return len(m.keys) }

// Without returns a copy of the object with the given keys removed
func (m *Members) Without(keys ...string) *Members {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}

	rest := newMembers()
	for _, k := range m.keys {
		if !drop[k] {
			rest.set(k, m.values[k])
		}
	}
	return rest
}

func (m *Members) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := m.values[k].encode(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (m *Members) String() string {
	var buf bytes.Buffer
	if err := m.encode(&buf); err != nil {
		return fmt.Sprintf("<object: %v>", err)
	}
	return buf.String()
}
