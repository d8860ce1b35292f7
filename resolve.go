package caption

// resolveText refreshes the resolved-text cache if the raw text or language
// changed since the last resolve. Because resolved text feeds both the width
// measurement and the glyph layout, a resolve cascades those invalidations.
// Returns the resolved string; empty is a valid terminal state meaning
// nothing to draw.
func (n *TextNode) resolveText(r ContentResolver) string {
	if n.dirty.translation {
		n.resolved, _ = r.Resolve(n.text, "TextNode.Draw")
		n.dirty.translation = false
		n.dirty.width = true
		n.dirty.layout = true
	}
	return n.resolved
}

// measureWidth refreshes the measured-width cache. Must run after
// resolveText for the current frame.
func (n *TextNode) measureWidth(m WidthMeasurer) float64 {
	if n.dirty.width {
		n.width = m.StringWidth(n.resolved, n.big)
		n.dirty.width = false
	}
	return n.width
}

// bigLayoutScaleHint is the fixed internal scale passed to the layouter in
// big mode. Compact mode layouts at unit scale.
const bigLayoutScaleHint = 2.5

// ensureLayout regenerates the glyph mesh if content, alignment, or mode
// changed. The previous mesh is released wholesale; layouts are never
// mutated in place.
func (n *TextNode) ensureLayout(l GlyphLayouter) GlyphMesh {
	if n.dirty.layout {
		if n.mesh != nil {
			n.mesh.Release()
		}
		scaleHint := 1.0
		if n.big {
			scaleHint = bigLayoutScaleHint
		}
		n.mesh = l.Layout(n.resolved, n.hAlign, n.vAlign, n.big, scaleHint)
		n.dirty.layout = false
	}
	return n.mesh
}

// autoscaleFor computes the multiplier that shrinks oversized content to fit
// maxWidth. width is the measured text width, scale the node's explicit
// scale, and unitScale the mode-dependent width multiplier (bigWidthScale in
// big mode, 1 in compact mode). Unconstrained or fitting content yields 1.
//
// Evaluated fresh every frame: it depends on the mutable scale and
// constraint even when content and layout are unchanged.
func autoscaleFor(width, scale, unitScale, maxWidth float64) float64 {
	if maxWidth > 0 && width*scale*unitScale > maxWidth {
		return maxWidth / (width * scale * unitScale)
	}
	return 1
}
