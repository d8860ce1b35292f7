package caption

import "testing"

func TestNodeDefaults(t *testing.T) {
	n := NewTextNode()
	if n.Opacity() != 1 || n.Scale() != 1 || n.ProjectScale() != 1 || n.TrailProjectScale() != 1 {
		t.Error("scalar defaults wrong")
	}
	if n.Color() != [4]float64{1, 1, 1, 1} {
		t.Errorf("color default = %v, want white opaque", n.Color())
	}
	if n.HAttach() != HAttachLeft || n.VAttach() != VAttachBottom {
		t.Error("attach default should be bottom-left")
	}
	if n.HAlign() != HAlignCenter || n.VAlign() != VAlignCenter {
		t.Error("align default should be center")
	}
	if n.MaxWidth() != 0 {
		t.Error("max width should default to unconstrained")
	}
	if n.dirty != allDirty {
		t.Error("all caches should start dirty")
	}
}

func TestSetTextIdempotent(t *testing.T) {
	n := NewTextNode()
	n.SetText("score")
	if !n.dirty.translation {
		t.Fatal("changing text should mark translation dirty")
	}
	n.dirty.translation = false

	n.SetText("score") // same value
	if n.dirty.translation {
		t.Error("setting text to its current value must not mark translation dirty")
	}
	n.SetText("lives")
	if !n.dirty.translation {
		t.Error("changing text should mark translation dirty again")
	}
}

// Each setter must set exactly the flags whose derived value depends on it.
func TestSetterInvalidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *TextNode)
		want   invalidation
	}{
		{"text", func(n *TextNode) { n.SetText("x") }, invalidation{translation: true}},
		{"big", func(n *TextNode) { n.SetBig(true) }, invalidation{width: true, layout: true}},
		{"position", func(n *TextNode) { _ = n.SetPosition([]float64{1, 2}) }, invalidation{anchor: true}},
		{"h_align", func(n *TextNode) { _ = n.SetHAlign(HAlignLeft) }, invalidation{layout: true}},
		{"v_align", func(n *TextNode) { _ = n.SetVAlign(VAlignTop) }, invalidation{layout: true}},
		{"h_attach", func(n *TextNode) { _ = n.SetHAttach(HAttachRight) }, invalidation{anchor: true}},
		{"v_attach", func(n *TextNode) { _ = n.SetVAttach(VAttachTop) }, invalidation{anchor: true}},
		{"in_world", func(n *TextNode) { n.SetInWorld(true) }, invalidation{anchor: true}},
		{"color", func(n *TextNode) { _ = n.SetColor([]float64{1, 0, 0}) }, invalidation{}},
		{"opacity", func(n *TextNode) { n.SetOpacity(0.5) }, invalidation{}},
		{"scale", func(n *TextNode) { n.SetScale(2) }, invalidation{}},
		{"max_width", func(n *TextNode) { n.SetMaxWidth(100) }, invalidation{}},
		{"rotate", func(n *TextNode) { n.SetRotate(45) }, invalidation{}},
	}
	for _, tt := range tests {
		n := NewTextNode()
		n.dirty = invalidation{}
		tt.mutate(n)
		if n.dirty != tt.want {
			t.Errorf("%s: dirty = %+v, want %+v", tt.name, n.dirty, tt.want)
		}
	}
}

func TestSetColorValidation(t *testing.T) {
	n := NewTextNode()

	if err := n.SetColor([]float64{0.2, 0.4, 0.6}); err != nil {
		t.Fatalf("RGB color rejected: %v", err)
	}
	if got := n.Color(); got != [4]float64{0.2, 0.4, 0.6, 1.0} {
		t.Errorf("color = %v, want alpha defaulted to 1", got)
	}

	if err := n.SetColor([]float64{1, 1, 1, 0.5}); err != nil {
		t.Fatalf("RGBA color rejected: %v", err)
	}

	prior := n.Color()
	if err := n.SetColor([]float64{1, 1}); err == nil {
		t.Error("length-2 color should be rejected")
	}
	if err := n.SetColor([]float64{1, 1, 1, 1, 1}); err == nil {
		t.Error("length-5 color should be rejected")
	}
	if n.Color() != prior {
		t.Error("rejected mutation must leave prior color unchanged")
	}
}

func TestSetTrailColorValidation(t *testing.T) {
	n := NewTextNode()
	if err := n.SetTrailColor([]float64{1, 0, 0}); err != nil {
		t.Fatalf("trail color rejected: %v", err)
	}
	if n.TrailColor() != [3]float64{1, 0, 0} {
		t.Errorf("trail color = %v", n.TrailColor())
	}
	if err := n.SetTrailColor([]float64{1, 0, 0, 1}); err == nil {
		t.Error("length-4 trail color should be rejected")
	}
	if n.TrailColor() != [3]float64{1, 0, 0} {
		t.Error("rejected mutation must leave prior trail color unchanged")
	}
}

func TestSetPositionValidation(t *testing.T) {
	n := NewTextNode()
	if err := n.SetPosition([]float64{1, 2}); err != nil {
		t.Fatalf("2-component position rejected: %v", err)
	}
	if err := n.SetPosition([]float64{1, 2, 3}); err != nil {
		t.Fatalf("3-component position rejected: %v", err)
	}
	if err := n.SetPosition([]float64{1}); err == nil {
		t.Error("length-1 position should be rejected")
	}
	if err := n.SetPosition(nil); err == nil {
		t.Error("nil position should be rejected")
	}
	if got := n.Position(); len(got) != 3 || got[2] != 3 {
		t.Errorf("rejected mutation must leave prior position unchanged, got %v", got)
	}
}

func TestSetAlignValidation(t *testing.T) {
	n := NewTextNode()
	if err := n.SetHAlign(HAlign(9)); err == nil {
		t.Error("out-of-range h_align should be rejected")
	}
	if n.HAlign() != HAlignCenter {
		t.Error("rejected mutation must leave prior h_align unchanged")
	}
	if err := n.SetVAttach(VAttach(9)); err == nil {
		t.Error("out-of-range v_attach should be rejected")
	}
	if n.VAttach() != VAttachBottom {
		t.Error("rejected mutation must leave prior v_attach unchanged")
	}
}

// checkingResolver records Resolve calls and reports validity per a table.
type checkingResolver struct {
	calls   int
	invalid map[string]bool
}

func (r *checkingResolver) Resolve(raw, tag string) (string, bool) {
	r.calls++
	return raw, !r.invalid[raw]
}

func TestSetTextFormatCheckHeuristic(t *testing.T) {
	resetLogOnce()
	res := &checkingResolver{invalid: map[string]bool{"{broken}": true}}
	s := NewScene()
	s.Resolver = res
	n := s.NewTextNode()

	n.SetText("plain text")
	if res.calls != 0 {
		t.Error("plain text must not trigger the format check")
	}

	n.SetText(`{"r": "valid.json.like"}`)
	if res.calls != 0 {
		t.Error("brace-bounded text with quotes and colon must not trigger the check")
	}

	n.SetText("{broken}")
	if res.calls != 1 {
		t.Errorf("suspicious text should trigger one validation call, got %d", res.calls)
	}
	if n.Text() != "{broken}" {
		t.Error("diagnostic check must never block the mutation")
	}
}
