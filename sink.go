package caption

import "github.com/hajimehoshi/ebiten/v2"

// EbitenPass is a concrete render pass backed by an Ebitengine image. Pass
// coordinates are virtual units with the origin at the bottom-left and Y
// increasing upward; the sink maps them to the target's pixel space.
type EbitenPass struct {
	Target *ebiten.Image
	VW, VH float64
}

// NewEbitenPass wraps a target image with the given virtual dimensions.
func NewEbitenPass(target *ebiten.Image, vw, vh float64) *EbitenPass {
	return &EbitenPass{Target: target, VW: vw, VH: vh}
}

// VirtualWidth returns the pass's virtual width.
func (p *EbitenPass) VirtualWidth() float64 { return p.VW }

// VirtualHeight returns the pass's virtual height.
func (p *EbitenPass) VirtualHeight() float64 { return p.VH }

// EbitenTargets resolves logical pass kinds to Ebitengine passes. Unset
// passes fall back to Overlay.
type EbitenTargets struct {
	Overlay      *EbitenPass
	WorldOverlay *EbitenPass
	FrontOverlay *EbitenPass
	FixedOverlay *EbitenPass
}

// Pass implements TargetProvider.
func (t *EbitenTargets) Pass(kind PassKind) RenderPass {
	var p *EbitenPass
	switch kind {
	case PassWorldOverlay:
		p = t.WorldOverlay
	case PassFrontOverlay:
		p = t.FrontOverlay
	case PassFixedOverlay:
		p = t.FixedOverlay
	}
	if p == nil {
		p = t.Overlay
	}
	return p
}

// EbitenSink renders draw commands produced by the composer onto Ebitengine
// pass targets. Commands whose mesh or texture is not the Ebitengine
// flavor (VertexMesh, AtlasPage) are ignored.
//
// The sink approximates shadow rendering by drawing the mesh twice: first a
// black offset copy at the shadow intensity, then the main copy. Shadow
// blur and the flatness shading parameter need a shader and are not
// applied here.
type EbitenSink struct {
	verts []ebiten.Vertex // scratch buffer reused across draws
}

// NewEbitenSink creates a sink.
func NewEbitenSink() *EbitenSink {
	return &EbitenSink{}
}

// Submit implements DrawSink. Commands draw back-to-front in batch order.
func (s *EbitenSink) Submit(pass RenderPass, cmds []DrawCommand) {
	ep, ok := pass.(*EbitenPass)
	if !ok || ep.Target == nil {
		return
	}
	for i := range cmds {
		s.draw(ep, &cmds[i])
	}
}

func (s *EbitenSink) draw(ep *EbitenPass, cmd *DrawCommand) {
	vm, ok := cmd.Mesh.(*VertexMesh)
	if !ok || len(vm.Vertices) == 0 {
		return
	}
	page, ok := cmd.Texture.(*AtlasPage)
	if !ok || page.img == nil {
		return
	}

	m := s.screenAffine(ep, cmd.Transform)

	if cmd.Shadow.Intensity > 0 {
		// Offset shadow copy behind the glyphs. The UV offsets convert to
		// mesh-local units via the reference texel density.
		shadow := cmd.Transform
		shadow.translate(cmd.Shadow.UOffset*pageUVReference, cmd.Shadow.VOffset*pageUVReference, 0)
		sc := Color{A: cmd.Shadow.Intensity * cmd.Color.A}
		s.drawVerts(ep.Target, vm, s.screenAffine(ep, shadow), sc, cmd.Blend, page.img)
	}

	s.drawVerts(ep.Target, vm, m, s.premultiplied(cmd), cmd.Blend, page.img)
}

// premultiplied returns the command color in premultiplied form. Glow
// commands arrive already premultiplied (alpha 0 carries additive RGB).
func (s *EbitenSink) premultiplied(cmd *DrawCommand) Color {
	c := cmd.Color
	if cmd.Blend == BlendGlow {
		return c
	}
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// screenAffine composes the target's pass-to-pixel mapping (scale plus Y
// flip) with a command transform.
func (s *EbitenSink) screenAffine(ep *EbitenPass, t Transform) [6]float64 {
	b := ep.Target.Bounds()
	kx := float64(b.Dx()) / ep.VW
	ky := float64(b.Dy()) / ep.VH
	flip := [6]float64{kx, 0, 0, -ky, 0, ky * ep.VH}
	return multiplyAffine(flip, t.M)
}

// drawVerts transforms the mesh vertices into screen space, applies the
// premultiplied tint, and issues one DrawTriangles call.
func (s *EbitenSink) drawVerts(target *ebiten.Image, vm *VertexMesh, m [6]float64, tint Color, blend BlendMode, src *ebiten.Image) {
	if cap(s.verts) < len(vm.Vertices) {
		s.verts = make([]ebiten.Vertex, len(vm.Vertices))
	}
	dst := s.verts[:len(vm.Vertices)]

	a, bb, c, d, tx, ty := m[0], m[1], m[2], m[3], m[4], m[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range vm.Vertices {
		v := &vm.Vertices[i]
		ox := float64(v.DstX)
		oy := float64(v.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(bb*ox + d*oy + ty),
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR * cr,
			ColorG: v.ColorG * cg,
			ColorB: v.ColorB * cb,
			ColorA: v.ColorA * ca,
		}
	}

	var op ebiten.DrawTrianglesOptions
	op.Blend = blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles(dst, vm.Indices, src, &op)
}
