package caption

import (
	"fmt"
	"strings"
)

// invalidation is the set of dirty flags gating the node's derived caches.
// Each flag is bound one-to-one to a derived field: setters set exactly the
// flags whose derived value depends on the mutated property, and each flag
// is cleared independently when its recomputation runs.
type invalidation struct {
	translation bool // resolved text out of date
	width       bool // measured width out of date
	layout      bool // glyph mesh out of date
	anchor      bool // final anchor position out of date
}

// allDirty is the initial state: every derived cache starts invalid.
var allDirty = invalidation{translation: true, width: true, layout: true, anchor: true}

// TextNode is a single attributed text element in an overlay scene. All
// mutation happens through validated setters; derived state is recomputed
// lazily during Draw based on the invalidation flags.
type TextNode struct {
	scene *Scene // owning scene, may be nil for standalone nodes
	Name  string // used in diagnostics only

	dirty invalidation

	// Raw properties.
	text                string
	big                 bool
	position            []float64 // 2 or 3 components
	hAlign              HAlign
	vAlign              VAlign
	hAttach             HAttach
	vAttach             VAttach
	inWorld             bool
	opacity             float64
	trailOpacity        float64
	color               [4]float64
	trailColor          [3]float64
	projectScale        float64
	trailProjectScale   float64
	scale               float64
	shadow              float64
	flatness            float64
	maxWidth            float64
	tiltTranslate       float64
	rotate              float64
	vrDepth             float64
	trail               bool
	opacityScalesShadow bool
	clientOnly          bool
	hostOnly            bool
	front               bool

	// Derived caches, each guarded by one invalidation flag.
	resolved    string
	width       float64
	finalAnchor Vec3
	mesh        GlyphMesh
}

// newTextNode creates a node with default state bound to the given scene.
// All caches start dirty.
func newTextNode(scene *Scene) *TextNode {
	return &TextNode{
		scene:             scene,
		dirty:             allDirty,
		position:          []float64{0, 0},
		hAlign:            HAlignCenter,
		vAlign:            VAlignCenter,
		hAttach:           HAttachLeft,
		vAttach:           VAttachBottom,
		opacity:           1,
		trailOpacity:      1,
		color:             [4]float64{1, 1, 1, 1},
		trailColor:        [3]float64{1, 1, 1},
		projectScale:      1,
		trailProjectScale: 1,
		scale:             1,
	}
}

// NewTextNode creates a standalone node not owned by a scene. Standalone
// nodes skip set-time resource-string validation (no resolver is available)
// but render identically.
func NewTextNode() *TextNode {
	return newTextNode(nil)
}

// label names the node in diagnostics.
func (n *TextNode) label() string {
	if n.Name != "" {
		return n.Name
	}
	return "(unnamed)"
}

// --- Text ---

// SetText replaces the node's raw text. Setting the current value again is a
// no-op and leaves all caches valid. When the raw text looks like a
// malformed resource string, a best-effort validation runs against the
// scene's resolver and logs the failure; it never blocks the mutation.
func (n *TextNode) SetText(text string) {
	if n.text == text {
		return
	}
	n.checkResourceString(text)
	n.text = text
	n.dirty.translation = true
}

// checkResourceString runs the cheap structured-string heuristic: raw text
// bounded by braces that is missing quotes or a colon looks like a
// hand-typed resource reference gone wrong. Catching that here is far more
// useful than a silent mangle at draw time.
func (n *TextNode) checkResourceString(text string) {
	if n.scene == nil || n.scene.Resolver == nil {
		return
	}
	if len(text) < 2 || text[0] != '{' || text[len(text)-1] != '}' {
		return
	}
	if strings.Contains(text, `"`) && strings.Contains(text, ":") {
		return
	}
	if _, valid := n.scene.Resolver.Resolve(text, "SetText format check"); !valid {
		logOnce(fmt.Sprintf("invalid resource string: %q on node %q", text, n.label()))
	} else {
		// The check is meant to be rare; note when the heuristic fired on a
		// string that turned out fine.
		logOnce(fmt.Sprintf("resource-string false positive for %q on node %q", text, n.label()))
	}
}

// Text returns the raw (unresolved) text.
func (n *TextNode) Text() string { return n.text }

// SetBig switches between the large-format and compact rendering modes.
// The glyph sets differ, so both layout and width are invalidated.
func (n *TextNode) SetBig(big bool) {
	n.big = big
	n.dirty.layout = true
	n.dirty.width = true
}

// Big reports whether large-format mode is active.
func (n *TextNode) Big() bool { return n.big }

// --- Placement ---

// SetPosition sets the node's local offset. Accepts 2 or 3 components; a
// missing z defaults to 0 at anchor resolution.
func (n *TextNode) SetPosition(vals []float64) error {
	if len(vals) != 2 && len(vals) != 3 {
		return fmt.Errorf("caption: expected float array of length 2 or 3 for position; got %d", len(vals))
	}
	n.position = append(n.position[:0], vals...)
	n.dirty.anchor = true
	return nil
}

// Position returns a copy of the local offset as set (2 or 3 components).
func (n *TextNode) Position() []float64 {
	return append([]float64(nil), n.position...)
}

// SetHAlign sets the horizontal glyph-run justification.
func (n *TextNode) SetHAlign(a HAlign) error {
	if !a.valid() {
		return fmt.Errorf("caption: invalid h_align for text node: %d", uint8(a))
	}
	n.hAlign = a
	n.dirty.layout = true
	return nil
}

// HAlign returns the horizontal alignment.
func (n *TextNode) HAlign() HAlign { return n.hAlign }

// SetVAlign sets the vertical glyph-run justification.
func (n *TextNode) SetVAlign(a VAlign) error {
	if !a.valid() {
		return fmt.Errorf("caption: invalid v_align for text node: %d", uint8(a))
	}
	n.vAlign = a
	n.dirty.layout = true
	return nil
}

// VAlign returns the vertical alignment.
func (n *TextNode) VAlign() VAlign { return n.vAlign }

// SetHAttach sets which viewport edge the local offset is anchored to
// horizontally.
func (n *TextNode) SetHAttach(a HAttach) error {
	if !a.valid() {
		return fmt.Errorf("caption: invalid h_attach for text node: %d", uint8(a))
	}
	n.hAttach = a
	n.dirty.anchor = true
	return nil
}

// HAttach returns the horizontal attachment.
func (n *TextNode) HAttach() HAttach { return n.hAttach }

// SetVAttach sets which viewport edge the local offset is anchored to
// vertically.
func (n *TextNode) SetVAttach(a VAttach) error {
	if !a.valid() {
		return fmt.Errorf("caption: invalid v_attach for text node: %d", uint8(a))
	}
	n.vAttach = a
	n.dirty.anchor = true
	return nil
}

// VAttach returns the vertical attachment.
func (n *TextNode) VAttach() VAttach { return n.vAttach }

// SetInWorld places the node in world space (the offset passes through
// unanchored) instead of the screen overlay.
func (n *TextNode) SetInWorld(inWorld bool) {
	n.inWorld = inWorld
	n.dirty.anchor = true
}

// InWorld reports whether the node renders in world space.
func (n *TextNode) InWorld() bool { return n.inWorld }

// SetFront forces the node into the front overlay pass, above regular
// overlay content. In VR mode it also overrides the fixed-overlay
// preference.
func (n *TextNode) SetFront(front bool) { n.front = front }

// Front reports whether the front overlay pass is forced.
func (n *TextNode) Front() bool { return n.front }

// SetVRDepth sets the extra z offset applied to 2D text in VR mode.
func (n *TextNode) SetVRDepth(d float64) { n.vrDepth = d }

// VRDepth returns the VR depth offset.
func (n *TextNode) VRDepth() float64 { return n.vrDepth }

// --- Color and opacity ---

// SetColor sets the text color. Accepts RGB or RGBA; alpha defaults to 1.
func (n *TextNode) SetColor(vals []float64) error {
	if len(vals) != 3 && len(vals) != 4 {
		return fmt.Errorf("caption: expected float array of size 3 or 4 for color")
	}
	copy(n.color[:], vals)
	if len(vals) == 3 {
		n.color[3] = 1
	}
	return nil
}

// Color returns the stored RGBA color.
func (n *TextNode) Color() [4]float64 { return n.color }

// SetTrailColor sets the trail glow color. Exactly 3 components.
func (n *TextNode) SetTrailColor(vals []float64) error {
	if len(vals) != 3 {
		return fmt.Errorf("caption: expected float array of size 3 for trailcolor")
	}
	copy(n.trailColor[:], vals)
	return nil
}

// TrailColor returns the stored trail color.
func (n *TextNode) TrailColor() [3]float64 { return n.trailColor }

// SetOpacity sets the node opacity, multiplied into the color alpha.
func (n *TextNode) SetOpacity(o float64) { n.opacity = o }

// Opacity returns the node opacity.
func (n *TextNode) Opacity() float64 { return n.opacity }

// SetTrailOpacity sets the trail pass opacity.
func (n *TextNode) SetTrailOpacity(o float64) { n.trailOpacity = o }

// TrailOpacity returns the trail pass opacity.
func (n *TextNode) TrailOpacity() float64 { return n.trailOpacity }

// SetOpacityScalesShadow selects whether shadow intensity follows the
// squared final alpha.
func (n *TextNode) SetOpacityScalesShadow(v bool) { n.opacityScalesShadow = v }

// OpacityScalesShadow reports the shadow-scaling rule.
func (n *TextNode) OpacityScalesShadow() bool { return n.opacityScalesShadow }

// --- Scale and effects ---

// SetScale sets the node's explicit scale.
func (n *TextNode) SetScale(s float64) { n.scale = s }

// Scale returns the explicit scale.
func (n *TextNode) Scale() float64 { return n.scale }

// SetProjectScale sets the primary projection scale (big mode).
func (n *TextNode) SetProjectScale(s float64) { n.projectScale = s }

// ProjectScale returns the primary projection scale.
func (n *TextNode) ProjectScale() float64 { return n.projectScale }

// SetTrailProjectScale sets the trail pass projection scale. The trail only
// draws when it differs from the primary projection scale.
func (n *TextNode) SetTrailProjectScale(s float64) { n.trailProjectScale = s }

// TrailProjectScale returns the trail projection scale.
func (n *TextNode) TrailProjectScale() float64 { return n.trailProjectScale }

// SetTrail enables the trail ghost pass (big mode only).
func (n *TextNode) SetTrail(trail bool) { n.trail = trail }

// Trail reports whether the trail pass is enabled.
func (n *TextNode) Trail() bool { return n.trail }

// SetShadow sets the drop-shadow strength.
func (n *TextNode) SetShadow(s float64) { n.shadow = s }

// Shadow returns the drop-shadow strength.
func (n *TextNode) Shadow() float64 { return n.shadow }

// SetFlatness caps how flat (unshaded) the text renders in compact mode.
func (n *TextNode) SetFlatness(f float64) { n.flatness = f }

// Flatness returns the flatness cap.
func (n *TextNode) Flatness() float64 { return n.flatness }

// SetMaxWidth constrains the rendered width; oversized content is shrunk by
// the autoscale factor. Zero means unconstrained.
func (n *TextNode) SetMaxWidth(w float64) { n.maxWidth = w }

// MaxWidth returns the width constraint.
func (n *TextNode) MaxWidth() float64 { return n.maxWidth }

// SetTiltTranslate sets the device-tilt parallax coefficient (big mode).
func (n *TextNode) SetTiltTranslate(t float64) { n.tiltTranslate = t }

// TiltTranslate returns the tilt parallax coefficient.
func (n *TextNode) TiltTranslate() float64 { return n.tiltTranslate }

// SetRotate sets the rotation angle in degrees (compact mode).
func (n *TextNode) SetRotate(deg float64) { n.rotate = deg }

// Rotate returns the rotation angle in degrees.
func (n *TextNode) Rotate() float64 { return n.rotate }

// --- Visibility gating ---

// SetClientOnly restricts rendering to client execution contexts.
func (n *TextNode) SetClientOnly(v bool) { n.clientOnly = v }

// ClientOnly reports the client-only restriction.
func (n *TextNode) ClientOnly() bool { return n.clientOnly }

// SetHostOnly restricts rendering to host execution contexts.
func (n *TextNode) SetHostOnly(v bool) { n.hostOnly = v }

// HostOnly reports the host-only restriction.
func (n *TextNode) HostOnly() bool { return n.hostOnly }

// --- Lifecycle ---

// release frees the cached glyph mesh. Called when the owning scene removes
// the node.
func (n *TextNode) release() {
	if n.mesh != nil {
		n.mesh.Release()
		n.mesh = nil
	}
	n.dirty.layout = true
}

// OnLanguageChange marks the resolved text dirty so the resolver output is
// refreshed on the next draw. Nothing else is touched here; the resolve step
// cascades the width and layout invalidation itself.
func (n *TextNode) OnLanguageChange() {
	n.dirty.translation = true
}

// OnViewportResized marks the anchor dirty so attachment offsets are
// recomputed against the new viewport dimensions.
func (n *TextNode) OnViewportResized() {
	n.dirty.anchor = true
}
