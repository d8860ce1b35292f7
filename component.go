package caption

// drawComponent accumulates draw state and emits ordered commands for one
// batch. It mirrors the immediate-mode pattern of a graphics component:
// set state, push/transform, drawMesh, pop, and finally submit. Submit
// always runs, even with zero commands, so every pass closes out its batch
// and the composer carries no state between passes.
type drawComponent struct {
	pass RenderPass
	sink DrawSink

	blend    BlendMode
	color    Color
	glow     Glow
	tex      Texture
	mask     Texture
	shadow   Shadow
	flatness float64

	stack transformStack
	cmds  []DrawCommand
}

func newDrawComponent(pass RenderPass, sink DrawSink) *drawComponent {
	return &drawComponent{pass: pass, sink: sink, stack: newTransformStack()}
}

func (c *drawComponent) setBlend(b BlendMode)         { c.blend = b }
func (c *drawComponent) setColor(col Color)           { c.color = col }
func (c *drawComponent) setGlow(amount, blur float64) { c.glow = Glow{Amount: amount, Blur: blur} }
func (c *drawComponent) setTexture(t Texture)         { c.tex = t }
func (c *drawComponent) setMaskTexture(t Texture)     { c.mask = t }
func (c *drawComponent) clearMaskTexture()            { c.mask = nil }
func (c *drawComponent) setFlatness(f float64)        { c.flatness = f }

func (c *drawComponent) setShadow(uOffset, vOffset, blur, intensity float64) {
	c.shadow = Shadow{UOffset: uOffset, VOffset: vOffset, Blur: blur, Intensity: intensity}
}

func (c *drawComponent) pushTransform()               { c.stack.push() }
func (c *drawComponent) popTransform()                { c.stack.pop() }
func (c *drawComponent) translate(dx, dy, dz float64) { c.stack.cur.translate(dx, dy, dz) }
func (c *drawComponent) scale(sx, sy, sz float64)     { c.stack.cur.scale(sx, sy, sz) }
func (c *drawComponent) rotate(deg float64)           { c.stack.cur.rotate(deg) }

// drawMesh snapshots the current state and transform into one command.
func (c *drawComponent) drawMesh(m Mesh) {
	c.cmds = append(c.cmds, DrawCommand{
		Transform: c.stack.cur,
		Texture:   c.tex,
		Mask:      c.mask,
		Mesh:      m,
		Color:     c.color,
		Blend:     c.blend,
		Glow:      c.glow,
		Shadow:    c.shadow,
		Flatness:  c.flatness,
	})
}

// submit flushes the accumulated commands as one ordered batch and resets
// the command buffer. The batch slice is handed to the sink as-is; sinks
// that retain it past the call must copy.
func (c *drawComponent) submit() {
	c.sink.Submit(c.pass, c.cmds)
	c.cmds = nil
}
