package caption

import "math"

// Transform is the coordinate mapping carried by a draw command: a 2D affine
// matrix plus a separate z channel. Overlay text only ever rotates about the
// z axis, so a full 4x4 matrix buys nothing here.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Transform struct {
	M      [6]float64
	Z      float64 // accumulated z translation
	ZScale float64 // accumulated z scale
}

// identityTransform is the identity mapping.
var identityTransform = Transform{M: [6]float64{1, 0, 0, 1, 0, 0}, ZScale: 1}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Apply maps a local-space point through the affine part of the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.M[0]*x + t.M[2]*y + t.M[4], t.M[1]*x + t.M[3]*y + t.M[5]
}

// translate post-multiplies a translation: the offset is expressed in the
// current local frame.
func (t *Transform) translate(dx, dy, dz float64) {
	t.M[4] += t.M[0]*dx + t.M[2]*dy
	t.M[5] += t.M[1]*dx + t.M[3]*dy
	t.Z += t.ZScale * dz
}

// scale post-multiplies an axis-aligned scale.
func (t *Transform) scale(sx, sy, sz float64) {
	t.M[0] *= sx
	t.M[1] *= sx
	t.M[2] *= sy
	t.M[3] *= sy
	t.ZScale *= sz
}

// rotate post-multiplies a rotation about the z axis, in degrees.
func (t *Transform) rotate(deg float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	t.M = multiplyAffine(t.M, [6]float64{cos, sin, -sin, cos, 0, 0})
}

// transformStack is the push/pop transform state used while composing draw
// commands. The zero value is not ready; use newTransformStack.
type transformStack struct {
	cur   Transform
	saved []Transform
}

func newTransformStack() transformStack {
	return transformStack{cur: identityTransform}
}

func (s *transformStack) push() {
	s.saved = append(s.saved, s.cur)
}

func (s *transformStack) pop() {
	if len(s.saved) == 0 {
		panic("caption: transform stack underflow")
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}
