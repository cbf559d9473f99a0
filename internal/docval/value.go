// Package docval models decoded documents as a closed value tree and
// provides the traversal and canonicalization primitives shared by the
// fingerprinting and forensic engines.
package docval

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Kind identifies the type of a Value node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// TypeName returns the stable name used in structural signatures.
func (k Kind) TypeName() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Value is one node of a decoded document tree. Values are immutable once
// decoded; both engines share them freely.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	list []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean leaf.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a numeric leaf.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String wraps a string leaf.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List wraps an ordered list of values.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map wraps a string-keyed object.
func Map(fields map[string]Value) Value { return Value{kind: KindMap, obj: fields} }

// Kind reports the node type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the node is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean payload; valid only for KindBool.
func (v Value) BoolValue() bool { return v.b }

// NumberValue returns the numeric payload; valid only for KindNumber.
func (v Value) NumberValue() float64 { return v.num }

// StringValue returns the string payload; valid only for KindString.
func (v Value) StringValue() string { return v.str }

// ListValue returns the element slice; valid only for KindList.
func (v Value) ListValue() []Value { return v.list }

// MapValue returns the field map; valid only for KindMap.
func (v Value) MapValue() map[string]Value { return v.obj }

// SortedKeys returns the map keys in lexicographic order.
func (v Value) SortedKeys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports deep equality of two value trees. List order matters,
// map key order does not.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			o, ok := other.obj[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts the value back to the plain Go form produced by
// encoding/json, suitable for re-serialization by the calling layer.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Interface()
		}
		return out
	}
	return nil
}

// Guard errors raised at the decode boundary. The engines themselves never
// reject input; anything that survives decoding is analyzable.
var (
	ErrUnsupportedType = errors.New("docval: unsupported value type")
	ErrTooDeep         = errors.New("docval: document exceeds maximum nesting depth")
	ErrTooLarge        = errors.New("docval: document exceeds maximum field count")
)

// Limits bounds the size of documents accepted by Decode. Zero fields mean
// no bound.
type Limits struct {
	MaxDepth  int
	MaxFields int
}

// Decode converts a JSON-compatible tree (the output of encoding/json
// unmarshalling into any) into a Value, enforcing the given limits.
// Non-JSON-compatible input is rejected with ErrUnsupportedType rather than
// degraded to an opaque leaf, so tampering can never be silently understated.
func Decode(doc any, limits Limits) (Value, error) {
	d := decoder{limits: limits}
	v, err := d.decode(doc, 1)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

type decoder struct {
	limits Limits
	fields int
}

func (d *decoder) decode(doc any, depth int) (Value, error) {
	if d.limits.MaxDepth > 0 && depth > d.limits.MaxDepth {
		return Value{}, fmt.Errorf("%w (limit %d)", ErrTooDeep, d.limits.MaxDepth)
	}
	switch val := doc.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(float64(val)), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: malformed number %q", ErrUnsupportedType, val)
		}
		return Number(f), nil
	case string:
		return String(val), nil
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			if err := d.countField(); err != nil {
				return Value{}, err
			}
			v, err := d.decode(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return List(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(val))
		for k, item := range val {
			if err := d.countField(); err != nil {
				return Value{}, err
			}
			v, err := d.decode(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return Map(fields), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, doc)
	}
}

func (d *decoder) countField() error {
	d.fields++
	if d.limits.MaxFields > 0 && d.fields > d.limits.MaxFields {
		return fmt.Errorf("%w (limit %d)", ErrTooLarge, d.limits.MaxFields)
	}
	return nil
}
