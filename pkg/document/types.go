// ABOUTME: Tree data model for schema-less documents
// ABOUTME: Tagged-variant values with canonical scalar leaves

package document

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IDKey is the reserved field holding a document's unique identifier.
const IDKey = "_id"

// ErrMissingID indicates a document without the reserved id field
var ErrMissingID = errors.New("document: missing id field")

// Value is one node of a document tree: a Mapping, a Sequence or a Scalar.
// The three variants are exhaustive; nothing else implements Value.
type Value interface {
	isValue()
}

// Field is one key/value pair of a Mapping.
type Field struct {
	Key   string
	Value Value
}

// Mapping is an internal node with ordered keys.
type Mapping []Field

// Sequence is an ordered list node.
type Sequence []Value

// Scalar is a leaf. Its value is canonicalized at construction to one of
// string, float64, bool or nil, so equal leaves are equal Go values.
type Scalar struct {
	v any
}

func (Mapping) isValue()  {}
func (Sequence) isValue() {}
func (Scalar) isValue()   {}

// String returns a string leaf.
func String(s string) Scalar { return Scalar{v: s} }

// Number returns a numeric leaf. All numeric kinds canonicalize to float64.
func Number(f float64) Scalar { return Scalar{v: f} }

// Bool returns a boolean leaf.
func Bool(b bool) Scalar { return Scalar{v: b} }

// Null returns the null leaf.
func Null() Scalar { return Scalar{} }

// Value returns the canonical Go value of the leaf: string, float64, bool
// or nil. The result is always comparable.
func (s Scalar) Value() any { return s.v }

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Value, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// ExtractID returns the identifier stored under idKey. The id must be a
// scalar leaf; documents without one cannot be indexed.
func ExtractID(m Mapping, idKey string) (any, error) {
	v, ok := m.Get(idKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingID, idKey)
	}
	s, ok := v.(Scalar)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a scalar", ErrMissingID, idKey)
	}
	return s.Value(), nil
}

// FromAny converts a decoded-JSON style value (map[string]any, []any and
// scalars) into a Value tree. Map keys are sorted so branch enumeration is
// deterministic; order never affects query results. Values that already
// implement Value pass through unchanged.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(Mapping, 0, len(keys))
		for _, k := range keys {
			child, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			m = append(m, Field{Key: k, Value: child})
		}
		return m, nil
	case []any:
		seq := make(Sequence, 0, len(t))
		for _, e := range t {
			child, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			seq = append(seq, child)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("document: unsupported value type %T", v)
	}
}

// String renders the leaf in a JSON-like form.
func (s Scalar) String() string {
	switch v := s.v.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return "null"
	}
}

// String renders the mapping in a JSON-like form, preserving field order.
func (m Mapping) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(f.Key))
		b.WriteString(": ")
		fmt.Fprintf(&b, "%v", f.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// String renders the sequence in a JSON-like form.
func (q Sequence) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range q {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", e)
	}
	b.WriteByte(']')
	return b.String()
}
