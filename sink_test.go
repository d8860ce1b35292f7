package caption

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPremultiplied(t *testing.T) {
	s := NewEbitenSink()

	cmd := &DrawCommand{Color: Color{R: 1, G: 0.5, B: 0.25, A: 0.5}}
	got := s.premultiplied(cmd)
	want := Color{R: 0.5, G: 0.25, B: 0.125, A: 0.5}
	if got != want {
		t.Errorf("premultiplied = %+v, want %+v", got, want)
	}

	// Glow commands carry premultiplied additive color already.
	cmd.Blend = BlendGlow
	cmd.Color = Color{R: 0.4, G: 0.2, B: 0, A: 0}
	if got := s.premultiplied(cmd); got != cmd.Color {
		t.Errorf("glow color = %+v, want passthrough", got)
	}
}

func TestScreenAffineFlipsY(t *testing.T) {
	s := NewEbitenSink()
	ep := NewEbitenPass(ebiten.NewImage(400, 300), 800, 600)

	m := s.screenAffine(ep, identityTransform)
	check := func(name string, px, py, wantX, wantY float64) {
		t.Helper()
		gx := m[0]*px + m[2]*py + m[4]
		gy := m[1]*px + m[3]*py + m[5]
		assertNear(t, name+" x", gx, wantX)
		assertNear(t, name+" y", gy, wantY)
	}
	// Pass origin is bottom-left; pixel origin is top-left.
	check("origin", 0, 0, 0, 300)
	check("top-right", 800, 600, 400, 0)
	check("center", 400, 300, 200, 150)
}

func TestScreenAffineComposesCommandTransform(t *testing.T) {
	s := NewEbitenSink()
	ep := NewEbitenPass(ebiten.NewImage(800, 600), 800, 600)

	tr := identityTransform
	tr.translate(10, 20, 0)
	m := s.screenAffine(ep, tr)
	gx := m[0]*0 + m[2]*0 + m[4]
	gy := m[1]*0 + m[3]*0 + m[5]
	assertNear(t, "x", gx, 10)
	assertNear(t, "y", gy, 600-20)
}

func TestEbitenTargetsFallback(t *testing.T) {
	overlay := NewEbitenPass(nil, 800, 600)
	targets := &EbitenTargets{Overlay: overlay}
	if targets.Pass(PassWorldOverlay) != overlay {
		t.Error("unset pass should fall back to overlay")
	}

	front := NewEbitenPass(nil, 800, 600)
	targets.FrontOverlay = front
	if targets.Pass(PassFrontOverlay) != front {
		t.Error("set pass should resolve directly")
	}
}

func TestSubmitIgnoresForeignPass(t *testing.T) {
	s := NewEbitenSink()
	// Batches for a pass the sink does not own are dropped, not an error.
	s.Submit(&fakePass{w: 800, h: 600}, []DrawCommand{{}})
}

func TestSinkSmoke(t *testing.T) {
	page := NewAtlasPage(ebiten.NewImage(256, 256))
	f, err := LoadGlyphFont([]byte(testFnt), []*AtlasPage{page, page})
	if err != nil {
		t.Fatal(err)
	}

	scene := NewScene()
	n := scene.NewTextNode()
	n.SetText("AV")
	n.SetShadow(0.5)

	sink := NewEbitenSink()
	screen := ebiten.NewImage(800, 600)
	frame := &FrameContext{
		Resolver: PlainResolver{},
		Measurer: f,
		Layouter: f,
		Viewport: StaticViewport{W: 800, H: 600},
		Tilt:     NoTilt,
		Targets:  &EbitenTargets{Overlay: NewEbitenPass(screen, 800, 600)},
		Roles:    HostRole,
		Sink:     sink,
	}
	// Both modes render without incident end to end.
	scene.Draw(frame)
	n.SetBig(true)
	scene.Draw(frame)
}
