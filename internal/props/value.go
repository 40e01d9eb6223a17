package props

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is a tagged scalar/list/map value decoded from a properties literal.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    Map
}

// Map holds the decoded properties of a node or edge.
type Map map[string]Value

// Null returns the null value
func Null() Value { return Value{} }

// String returns a string value
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list value
func List(elems ...Value) Value { return Value{kind: KindList, list: elems} }

// FromMap wraps a Map as a Value
func FromMap(m Map) Value { return Value{kind: KindMap, m: m} }

// Kind returns the tag of the value
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload; zero value for other kinds
func (v Value) Str() string { return v.str }

// Num returns the numeric payload; zero value for other kinds
func (v Value) Num() float64 { return v.num }

// BoolVal returns the boolean payload; false for other kinds
func (v Value) BoolVal() bool { return v.b }

// ListVal returns the list payload; nil for other kinds
func (v Value) ListVal() []Value { return v.list }

// MapVal returns the map payload; nil for other kinds
func (v Value) MapVal() Map { return v.m }

// Equal reports deep equality between two values
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(o.m)
	}
	return false
}

// String renders the value as a JSON-style literal, with map keys sorted so
// the output is deterministic.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		writeQuoted(sb, v.str)
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			fmt.Fprintf(sb, "%d", int64(v.num))
		} else {
			sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
		}
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindList:
		sb.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		v.m.write(sb)
	}
}

// writeQuoted emits a JSON string literal. strconv.Quote is not used here:
// its \x and \U escapes for control and non-ASCII characters are Go syntax,
// not JSON, and the rendered literal must decode again.
func writeQuoted(sb *strings.Builder, s string) {
	b, _ := json.Marshal(s)
	sb.Write(b)
}

// MarshalJSON renders the value as its JSON literal
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// MarshalJSON renders the map as its JSON object literal with sorted keys
func (m Map) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// Equal reports whether two property maps hold equal values for the same keys
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of the map. Values are immutable once decoded,
// so a shallow copy is sufficient for overwrite semantics.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns the union of m and o; on key collision the value from o wins.
// Neither input is modified.
func (m Map) Merge(o Map) Map {
	out := make(Map, len(m)+len(o))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// String renders the map as a JSON-style object literal with sorted keys
func (m Map) String() string {
	var sb strings.Builder
	m.write(&sb)
	return sb.String()
}

func (m Map) write(sb *strings.Builder) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeQuoted(sb, k)
		sb.WriteString(": ")
		v := m[k]
		v.write(sb)
	}
	sb.WriteByte('}')
}
