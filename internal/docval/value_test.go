package docval

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustDecode(t *testing.T, raw string) Value {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, err := Decode(doc, Limits{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return v
}

func TestDecodeRoundTrip(t *testing.T) {
	raw := `{"name":"Ada","scores":[1,2.5,null],"active":true,"meta":{"version":"2"}}`
	v := mustDecode(t, raw)

	out, err := json.Marshal(v.Interface())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var a, b any
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if err := json.Unmarshal(out, &b); err != nil {
		t.Fatalf("unmarshal round-trip: %v", err)
	}
	va, err := Decode(a, Limits{})
	if err != nil {
		t.Fatalf("Decode a: %v", err)
	}
	vb, err := Decode(b, Limits{})
	if err != nil {
		t.Fatalf("Decode b: %v", err)
	}
	if !va.Equal(vb) {
		t.Errorf("round-trip changed the tree: %s vs %s", raw, out)
	}
}

func TestDecodeRejectsUnsupportedTypes(t *testing.T) {
	_, err := Decode(map[string]any{"ch": make(chan int)}, Limits{})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestDecodeDepthGuard(t *testing.T) {
	doc := any("leaf")
	for i := 0; i < 10; i++ {
		doc = map[string]any{"nested": doc}
	}
	if _, err := Decode(doc, Limits{MaxDepth: 5}); !errors.Is(err, ErrTooDeep) {
		t.Errorf("expected ErrTooDeep, got %v", err)
	}
	if _, err := Decode(doc, Limits{MaxDepth: 50}); err != nil {
		t.Errorf("within limit should decode, got %v", err)
	}
}

func TestDecodeFieldGuard(t *testing.T) {
	items := make([]any, 100)
	for i := range items {
		items[i] = float64(i)
	}
	if _, err := Decode(items, Limits{MaxFields: 10}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestCanonicalKeyOrdering(t *testing.T) {
	a := mustDecode(t, `{"zeta":1,"alpha":{"b":2,"a":1}}`)
	got := string(Canonical(a))
	want := `{"alpha":{"a":1,"b":2},"zeta":1}`
	if got != want {
		t.Errorf("Canonical = %s, want %s", got, want)
	}
}

func TestCanonicalDeterministic(t *testing.T) {
	raw := `{"b":[1,2,{"x":"café"}],"a":null}`
	first := string(Canonical(mustDecode(t, raw)))
	for i := 0; i < 5; i++ {
		if got := string(Canonical(mustDecode(t, raw))); got != first {
			t.Fatalf("canonical form unstable: %s vs %s", got, first)
		}
	}
}

func TestCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute vs precomposed é.
	decomposed := String("José")
	precomposed := String("José")
	if string(Canonical(decomposed)) != string(Canonical(precomposed)) {
		t.Error("NFC normalization should unify equivalent strings")
	}
}

func TestFieldCountAndDepth(t *testing.T) {
	v := mustDecode(t, `{"a":1,"b":{"c":[1,2,3]},"d":"x"}`)
	// Slots: a, b, c, d plus three list indices.
	if got := FieldCount(v); got != 7 {
		t.Errorf("FieldCount = %d, want 7", got)
	}
	// root map -> b map -> list -> scalar.
	if got := MaxDepth(v); got != 4 {
		t.Errorf("MaxDepth = %d, want 4", got)
	}
}

func TestWalkStringsOrder(t *testing.T) {
	v := mustDecode(t, `{"b":"second","a":"first","c":["third","fourth"]}`)
	var got []string
	WalkStrings(v, func(s string) { got = append(got, s) })
	want := []string{"first", "second", "third", "fourth"}
	if len(got) != len(want) {
		t.Fatalf("visited %d strings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %q, want %q", i, got[i], want[i])
		}
	}
}
