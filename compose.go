package caption

import "math"

// Unit multipliers relating measured width to rendered width. The big-mode
// glyph set uses wider internal units than the compact one; 3.5 is a legacy
// visual-compatibility constant, preserved exactly. Changing it requires a
// visual regression baseline, not re-derivation.
const (
	bigWidthScale     = 3.5
	compactWidthScale = 1.0
)

// trailPasses is the fixed number of ghost iterations in the trail pass.
const trailPasses = 2

// Big-mode placement fudge offsets, also legacy visual-compatibility
// constants preserved exactly.
const (
	bigFudgeX          = 7.0
	bigFudgeY          = 35.0
	bigFudgeTranslateY = 70.0
)

// Shadow UV offset factors per mode.
const (
	bigShadowUVOffset     = -0.002
	compactShadowUVOffset = -0.004
	bigShadowBlur         = 2.5
)

// trailVRDepthStep is the per-iteration z recession of trail ghosts in VR.
const trailVRDepthStep = 15.0

// Draw composes and submits this node's draw commands for the current
// frame. Derived caches are refreshed lazily in dependency order first:
// resolved text, measured width, glyph layout, then anchor. A frame with a
// violated visibility restriction or empty resolved text terminates without
// draw calls; that is not an error.
func (n *TextNode) Draw(frame *FrameContext) {
	if n.clientOnly && frame.Roles.IsHost() {
		return
	}
	if n.hostOnly && !frame.Roles.IsHost() {
		return
	}

	resolved := n.resolveText(frame.Resolver)
	if resolved == "" {
		return
	}
	width := n.measureWidth(frame.Measurer)
	mesh := n.ensureLayout(frame.Layouter)
	anchor := n.updateAnchor(frame.Viewport)

	vr2D := frame.VRMode && !n.inWorld

	// In VR mode the head-fixed overlay is preferred when the frame asks for
	// it, except that a front node always wins.
	vrUseFixed := frame.VRMode && frame.FixedVROverlay
	if n.front {
		vrUseFixed = false
	}

	var pass RenderPass
	switch {
	case n.inWorld:
		pass = frame.Targets.Pass(PassWorldOverlay)
	case vrUseFixed:
		pass = frame.Targets.Pass(PassFixedOverlay)
	case n.front:
		pass = frame.Targets.Pass(PassFrontOverlay)
	default:
		pass = frame.Targets.Pass(PassOverlay)
	}

	if n.big {
		n.drawBig(frame, pass, mesh, anchor, width, vr2D)
	} else {
		n.drawCompact(frame, pass, mesh, anchor, width, vr2D)
	}
}

// shadowIntensity derives the final shadow opacity from the node's shadow
// strength and the opacity-scales-shadow rule (squared final alpha).
func (n *TextNode) shadowIntensity() float64 {
	intensity := n.shadow
	if n.opacityScalesShadow {
		o := n.color[3] * n.opacity
		intensity *= o * o
	}
	return intensity
}

// drawBig renders the large-format path: optional trail ghosts first, then
// the main glyph layer, each element submitted as its own batch.
func (n *TextNode) drawBig(frame *FrameContext, pass RenderPass, mesh GlyphMesh, anchor Vec3, width float64, vr2D bool) {
	z := frame.OverlayNodeZ
	if vr2D {
		z = 0
	}

	tx := anchor.X
	ty := anchor.Y

	// Left/right shift from tilting the device.
	var txTilt, tyTilt float64
	if n.tiltTranslate != 0 {
		tilt := frame.Tilt.Tilt()
		txTilt = -tilt.Y * n.tiltTranslate
		tyTilt = tilt.X * n.tiltTranslate
	}

	extraScale := autoscaleFor(width, n.scale, bigWidthScale, n.maxWidth) * n.scale

	passWidth := pass.VirtualWidth()
	passHeight := pass.VirtualHeight()
	elems := mesh.Elements()

	// Trail ghosts: only when the trail projection scale actually differs
	// from the main one; equal scales would stack identical copies.
	if n.trail && n.trailProjectScale != n.projectScale {
		for i := 0; i < trailPasses; i++ {
			o := n.trailOpacity * 0.5
			frac := float64(i) / trailPasses
			x := tx + txTilt*frac - passWidth/2
			y := ty + tyTilt*frac - passHeight/2
			projectScale := n.trailProjectScale + float64(i)*(n.projectScale-n.trailProjectScale)/trailPasses

			c := newDrawComponent(pass, frame.Sink)
			c.setBlend(BlendGlow)
			c.setColor(Color{R: n.trailColor[0] * o, G: n.trailColor[1] * o, B: n.trailColor[2] * o, A: 0})
			c.setGlow(1, 3)
			for _, e := range elems {
				// Gracefully skip unloaded textures.
				if !e.Texture.Preloaded() {
					continue
				}
				c.setTexture(e.Texture)
				c.setMaskTexture(e.Mask)
				c.pushTransform()
				if vr2D {
					c.translate(0, 0, n.vrDepth-trailVRDepthStep*float64(trailPasses-i))
				}
				c.translate(passWidth/2+bigFudgeX, passHeight/2+bigFudgeY, z)
				c.scale(projectScale, projectScale, 1)
				c.translate(x, y+bigFudgeTranslateY, 0)
				c.scale(extraScale*bigWidthScale, extraScale*bigWidthScale, 1)
				c.drawMesh(e.Mesh)
				c.popTransform()
			}
			c.submit()
		}
	}

	c := newDrawComponent(pass, frame.Sink)
	c.setColor(Color{R: n.color[0], G: n.color[1], B: n.color[2], A: n.color[3] * n.opacity})

	didSubmit := false
	for _, e := range elems {
		if !e.Texture.Preloaded() {
			continue
		}
		c.setTexture(e.Texture)
		intensity := n.shadowIntensity()
		c.setShadow(bigShadowUVOffset*e.UScale, bigShadowUVOffset*e.VScale, bigShadowBlur, intensity)
		if intensity > 0 {
			c.setMaskTexture(e.Mask)
		} else {
			c.clearMaskTexture()
		}

		c.pushTransform()
		if vr2D {
			c.translate(0, 0, n.vrDepth)
		}
		c.translate(passWidth/2+bigFudgeX, passHeight/2+bigFudgeY, z)
		c.scale(n.projectScale, n.projectScale, 1)
		c.translate(tx+txTilt-passWidth/2, ty+tyTilt-passHeight/2+bigFudgeTranslateY, 0)
		c.scale(extraScale*bigWidthScale, extraScale*bigWidthScale, 1)
		c.drawMesh(e.Mesh)
		c.popTransform()
		// Big-mode elements are layered as individual batches.
		c.submit()
		didSubmit = true
	}
	if !didSubmit {
		// Close out the batch even when every element was skipped.
		c.submit()
	}
}

// drawCompact renders the compact single-pass path: one batch for all
// elements, with optional rotation and per-element color/flatness handling.
func (n *TextNode) drawCompact(frame *FrameContext, pass RenderPass, mesh GlyphMesh, anchor Vec3, width float64, vr2D bool) {
	var z float64
	switch {
	case vr2D:
		z = 0
	case n.inWorld:
		z = anchor.Z
	default:
		z = frame.OverlayNodeZ
	}

	extraScale := autoscaleFor(width, 1, compactWidthScale, n.maxWidth)

	c := newDrawComponent(pass, frame.Sink)
	finalAlpha := n.color[3] * n.opacity
	for _, e := range mesh.Elements() {
		if !e.Texture.Preloaded() {
			continue
		}
		c.setTexture(e.Texture)
		intensity := n.shadowIntensity()
		c.setShadow(compactShadowUVOffset*e.UScale, compactShadowUVOffset*e.VScale, 0, intensity)
		if intensity > 0 {
			c.setMaskTexture(e.Mask)
		} else {
			c.clearMaskTexture()
		}
		if e.CanColor {
			c.setColor(Color{R: n.color[0], G: n.color[1], B: n.color[2], A: finalAlpha})
		} else {
			// Full-color glyphs keep their source coloring.
			c.setColor(Color{R: 1, G: 1, B: 1, A: finalAlpha})
		}
		if frame.VRMode {
			c.setFlatness(e.MaxFlatness)
		} else {
			c.setFlatness(math.Min(e.MaxFlatness, n.flatness))
		}
		c.pushTransform()
		if vr2D {
			c.translate(0, 0, n.vrDepth)
		}
		c.translate(anchor.X, anchor.Y, z)
		if n.rotate != 0 {
			c.rotate(n.rotate)
		}
		c.scale(n.scale*extraScale, n.scale*extraScale, extraScale)
		c.drawMesh(e.Mesh)
		c.popTransform()
	}
	c.submit()
}
