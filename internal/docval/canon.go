package docval

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Canonical produces the deterministic serialization of a value tree.
// Map keys are sorted lexicographically at every level, strings are
// NFC-normalized, numbers use the shortest round-trip representation, and
// non-ASCII UTF-8 is preserved unescaped. Equal trees always serialize to
// equal bytes, which is what the content hash and the overall-similarity
// ratio rely on.
func Canonical(v Value) []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, v)
	return buf.Bytes()
}

func writeCanonical(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(strconv.FormatFloat(v.num, 'f', -1, 64))
	case KindString:
		writeCanonicalString(buf, v.str)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonical(buf, item)
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, k := range v.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			writeCanonical(buf, v.obj[k])
		}
		buf.WriteByte('}')
	}
}

// writeCanonicalString writes a JSON string escaping only what JSON
// requires. Raw UTF-8 stays raw so the serialization is byte-stable across
// encoders.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	s = norm.NFC.String(s)
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r < 0x20:
			fmt.Fprintf(buf, `\u%04x`, r)
		default:
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}

// FieldCount counts every key and index slot in the tree, recursively.
// A scalar root counts as zero.
func FieldCount(v Value) int {
	switch v.kind {
	case KindList:
		n := len(v.list)
		for _, item := range v.list {
			n += FieldCount(item)
		}
		return n
	case KindMap:
		n := len(v.obj)
		for _, item := range v.obj {
			n += FieldCount(item)
		}
		return n
	default:
		return 0
	}
}

// MaxDepth returns the deepest nesting level of the tree. A scalar is
// depth 1; each container level adds one.
func MaxDepth(v Value) int {
	switch v.kind {
	case KindList:
		deepest := 0
		for _, item := range v.list {
			if d := MaxDepth(item); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	case KindMap:
		deepest := 0
		for _, item := range v.obj {
			if d := MaxDepth(item); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	default:
		return 1
	}
}

// WalkStrings visits every string leaf in the tree in deterministic order
// (sorted map keys, list order). Used by the semantic layer.
func WalkStrings(v Value, fn func(s string)) {
	switch v.kind {
	case KindString:
		fn(v.str)
	case KindList:
		for _, item := range v.list {
			WalkStrings(item, fn)
		}
	case KindMap:
		for _, k := range v.SortedKeys() {
			WalkStrings(v.obj[k], fn)
		}
	}
}

// WalkKeys visits every map key in the tree at every depth in deterministic
// order. Used by the style layer's naming-convention histogram.
func WalkKeys(v Value, fn func(key string)) {
	switch v.kind {
	case KindList:
		for _, item := range v.list {
			WalkKeys(item, fn)
		}
	case KindMap:
		for _, k := range v.SortedKeys() {
			fn(k)
			WalkKeys(v.obj[k], fn)
		}
	}
}
