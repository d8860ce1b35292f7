package caption

// ContentResolver expands resource references and substitutions in raw node
// text. Resolution may be expensive; the node caches the result and only
// re-resolves when the raw text or the active language changes.
//
// The tag identifies the call site for diagnostics. valid reports whether
// the raw string was well formed; an invalid string still yields a
// best-effort resolved value.
type ContentResolver interface {
	Resolve(raw, tag string) (resolved string, valid bool)
}

// WidthMeasurer measures the width of resolved text in layout units. The
// big flag selects the large-format glyph set, which uses different internal
// units than the compact one.
type WidthMeasurer interface {
	StringWidth(s string, big bool) float64
}

// GlyphLayouter shapes resolved text into a drawable glyph mesh. The mesh is
// regenerated wholesale on every invalidation, never mutated in place.
// scaleHint is a fixed internal scale applied in big mode only; compact
// callers pass 1.
type GlyphLayouter interface {
	Layout(s string, h HAlign, v VAlign, big bool, scaleHint float64) GlyphMesh
}

// Texture is an opaque texture handle owned by the GlyphLayouter backend.
// Preloaded reports whether the texture has finished streaming; elements
// whose texture is not yet preloaded are skipped silently during drawing.
type Texture interface {
	Preloaded() bool
}

// Mesh is an opaque drawable produced by a GlyphLayouter and consumed by the
// matching DrawSink. The core never inspects it.
type Mesh any

// GlyphElement is one drawable unit of a glyph mesh, typically all glyphs
// sharing an atlas page. UScale and VScale convert texture-space shadow
// offsets to this element's texel density. Elements that cannot be tinted
// (full-color glyph pages) report CanColor false and are drawn white so the
// source coloring survives.
type GlyphElement struct {
	Texture     Texture
	Mask        Texture // UV2 shadow mask, may be nil
	Mesh        Mesh
	UScale      float64
	VScale      float64
	MaxFlatness float64
	CanColor    bool
}

// GlyphMesh is the product of one GlyphLayouter.Layout call.
type GlyphMesh interface {
	Elements() []GlyphElement
	// Release frees mesh resources. Called when the layout is invalidated or
	// the owning node is removed from its scene.
	Release()
}

// Viewport exposes the current virtual screen dimensions used for anchor
// resolution. Callers must invoke Scene.OnViewportResized (or the node-level
// OnViewportResized) when these change.
type Viewport interface {
	VirtualWidth() float64
	VirtualHeight() float64
}

// TiltProvider exposes the device tilt vector, sampled once per frame, for
// the tilt-parallax translation.
type TiltProvider interface {
	Tilt() Vec2
}

// RoleQuery answers whether the current frame is being evaluated in the
// host role. Used by the client-only/host-only visibility gate.
type RoleQuery interface {
	IsHost() bool
}

// PassKind identifies a logical render pass.
type PassKind uint8

const (
	PassOverlay      PassKind = iota // default screen overlay
	PassWorldOverlay                 // world-space 3D overlay
	PassFrontOverlay                 // overlay forced in front of other UI
	PassFixedOverlay                 // head-fixed overlay in VR mode
)

// RenderPass is a concrete drawable surface resolved from a PassKind. Its
// virtual dimensions may differ from the screen viewport's.
type RenderPass interface {
	VirtualWidth() float64
	VirtualHeight() float64
}

// TargetProvider resolves a logical pass selection to a render pass.
type TargetProvider interface {
	Pass(kind PassKind) RenderPass
}

// DrawCommand is one draw instruction within a batch. Ordering within a
// batch is significant (painter's algorithm).
type DrawCommand struct {
	Transform Transform
	Texture   Texture
	Mask      Texture // nil when no shadow mask applies
	Mesh      Mesh
	Color     Color
	Blend     BlendMode
	Glow      Glow
	Shadow    Shadow
	Flatness  float64
}

// DrawSink accepts ordered draw batches. A batch may be empty; an empty
// Submit still closes out the batch so the composer stays stateless between
// passes. Ordering across nodes is the caller's responsibility.
type DrawSink interface {
	Submit(pass RenderPass, cmds []DrawCommand)
}

// FrameContext carries the per-frame collaborators for TextNode.Draw.
// Rendering providers are injected here rather than read from globals so the
// engine stays testable without a live rendering context.
type FrameContext struct {
	Resolver ContentResolver
	Measurer WidthMeasurer
	Layouter GlyphLayouter
	Viewport Viewport
	Tilt     TiltProvider
	Targets  TargetProvider
	Roles    RoleQuery
	Sink     DrawSink

	// VRMode enables the stereo/immersive rendering adjustments.
	VRMode bool
	// FixedVROverlay prefers the head-fixed overlay pass in VR mode. A
	// node's front flag overrides it.
	FixedVROverlay bool
	// OverlayNodeZ is the z depth at which overlay nodes are drawn.
	OverlayNodeZ float64
}
