package caption

import (
	"math"
	"testing"
)

func TestAutoscale(t *testing.T) {
	tests := []struct {
		name                         string
		width, scale, unit, maxWidth float64
		want                         float64
	}{
		{"unconstrained", 100, 1, 3.5, 0, 1},
		{"fits", 10, 1, 3.5, 200, 1},
		{"oversized big", 100, 1, 3.5, 200, 200.0 / 350.0},
		{"oversized compact", 300, 1, 1, 150, 0.5},
		{"scale factored in", 100, 2, 1, 100, 0.5},
		{"exactly at limit", 100, 1, 1, 100, 1},
	}
	for _, tt := range tests {
		got := autoscaleFor(tt.width, tt.scale, tt.unit, tt.maxWidth)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: autoscale = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveCascadesInvalidation(t *testing.T) {
	n := NewTextNode()
	n.SetText("hello")
	n.dirty.width = false
	n.dirty.layout = false

	got := n.resolveText(PlainResolver{})
	if got != "hello" {
		t.Errorf("resolved = %q", got)
	}
	if n.dirty.translation {
		t.Error("resolve should clear translation dirty")
	}
	if !n.dirty.width || !n.dirty.layout {
		t.Error("resolve must cascade width and layout invalidation")
	}

	// Clean resolve leaves the cascade alone.
	n.dirty.width = false
	n.dirty.layout = false
	n.resolveText(PlainResolver{})
	if n.dirty.width || n.dirty.layout {
		t.Error("clean resolve must not re-invalidate width or layout")
	}
}

func TestLanguageChangeRefreshesResolution(t *testing.T) {
	n := NewTextNode()
	n.SetText("greeting")
	n.resolveText(PlainResolver{})
	if n.dirty.translation {
		t.Fatal("resolve should clear the flag")
	}
	n.OnLanguageChange()
	if !n.dirty.translation {
		t.Error("language change must mark translation dirty")
	}
}

func TestResourceResolverLookup(t *testing.T) {
	r := &ResourceResolver{Strings: map[string]string{"greeting": "Hello ${N}!"}}

	got, valid := r.Resolve(`{"r": "greeting", "s": [["${N}", {"v": "Sam"}]]}`, "test")
	if !valid || got != "Hello Sam!" {
		t.Errorf("resolve = %q (valid=%v), want \"Hello Sam!\"", got, valid)
	}

	got, valid = r.Resolve("plain", "test")
	if !valid || got != "plain" {
		t.Errorf("plain text should pass through, got %q (valid=%v)", got, valid)
	}
}

func TestResourceResolverNestedSubst(t *testing.T) {
	r := &ResourceResolver{Strings: map[string]string{
		"outer": "A ${X} B",
		"inner": "nested",
	}}
	got, valid := r.Resolve(`{"r": "outer", "s": [["${X}", {"r": "inner"}]]}`, "test")
	if !valid || got != "A nested B" {
		t.Errorf("resolve = %q (valid=%v)", got, valid)
	}
}

func TestResourceResolverFallback(t *testing.T) {
	r := &ResourceResolver{}
	got, valid := r.Resolve(`{"r": "missing", "f": "fallback"}`, "test")
	if !valid || got != "fallback" {
		t.Errorf("resolve = %q (valid=%v), want fallback", got, valid)
	}
}

func TestResourceResolverMalformed(t *testing.T) {
	resetLogOnce()
	r := &ResourceResolver{}
	tests := []string{
		`{broken}`,
		`{"r": "nope"}`, // unknown resource, no fallback
	}
	for _, raw := range tests {
		got, valid := r.Resolve(raw, "test")
		if valid {
			t.Errorf("%q should resolve invalid", raw)
		}
		if got != raw {
			t.Errorf("%q should fall back to the raw text, got %q", raw, got)
		}
	}
}
