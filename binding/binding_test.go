package binding

import "testing"

func TestInterpolateData(t *testing.T) {
	data := map[string]any{
		"user":  map[string]any{"name": "Ada"},
		"items": []any{"first", map[string]any{"n": 2.0}},
	}
	got := Interpolate("hi ${user.name}, ${items[0]} ${items[1].n} ${missing.x}", data)
	want := "hi Ada, first 2 ${missing.x}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestInterpolateNilDataKeepsText(t *testing.T) {
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("expected placeholder kept, got %q", got)
	}
}

func TestScopeVarsShadowData(t *testing.T) {
	s := Scope{
		Data: map[string]any{"depth": "data", "title": "T"},
		Vars: map[string]any{"depth": 3},
	}
	if got := s.Interpolate("${depth}/${title}"); got != "3/T" {
		t.Fatalf("got %q", got)
	}
}

func TestLookupBadIndex(t *testing.T) {
	s := Scope{Data: map[string]any{"a": []any{1}}}
	if _, ok := s.Lookup("a[x]"); ok {
		t.Fatalf("non-numeric index should not resolve")
	}
	if _, ok := s.Lookup("a[3]"); ok {
		t.Fatalf("out of range index should not resolve")
	}
}
