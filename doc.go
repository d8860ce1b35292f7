// Package caption is a retained-mode overlay text-node engine for
// [Ebitengine].
//
// Caption provides a single, heavily cached scene node, [TextNode], for
// HUD and overlay text that is mutated at arbitrary times and drawn every
// frame. The node tracks a small set of invalidation flags so that derived
// state (resolved text, measured width, anchor position, glyph mesh) is
// recomputed lazily, at most once per frame, and only when a property it
// depends on actually changed.
//
// # Quick start
//
//	scene := caption.NewScene()
//	node := scene.NewTextNode()
//	node.SetText("Hello")
//	_ = node.SetPosition([]float64{10, 20})
//	_ = node.SetHAttach(caption.HAttachCenter)
//
// Each frame, build a [FrameContext] with your collaborators and draw:
//
//	scene.Draw(frame)
//
// # Collaborators
//
// The engine does no text shaping, rasterization, or GPU submission of its
// own. Those concerns are injected per frame through [FrameContext]:
// a [ContentResolver] expands resource strings, a [WidthMeasurer] measures
// resolved text, a [GlyphLayouter] produces glyph meshes, and a [DrawSink]
// receives ordered draw batches. Ebitengine-backed implementations are
// provided ([GlyphFont], [EbitenSink], [FaceMeasurer]), but tests and
// alternative backends can supply their own.
//
// # Render passes
//
// A node renders into one of four logical passes (world overlay, front
// overlay, fixed VR overlay, or the default overlay) selected per frame
// from the node's placement properties. A [TargetProvider] maps the logical
// pass to a concrete render target.
//
// Caption is single-threaded: property mutation and drawing must not
// interleave for the same node. There is no internal locking.
//
// [Ebitengine]: https://ebitengine.org
package caption
