package caption

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestTransformIdentity(t *testing.T) {
	x, y := identityTransform.Apply(3, 4)
	assertNear(t, "x", x, 3)
	assertNear(t, "y", y, 4)
	assertNear(t, "z", identityTransform.Z, 0)
	assertNear(t, "zscale", identityTransform.ZScale, 1)
}

func TestTransformTranslateIsLocal(t *testing.T) {
	tr := identityTransform
	tr.scale(2, 3, 1)
	tr.translate(10, 10, 0)

	// The offset is expressed in the scaled local frame.
	x, y := tr.Apply(0, 0)
	assertNear(t, "x", x, 20)
	assertNear(t, "y", y, 30)
}

func TestTransformRotate(t *testing.T) {
	tr := identityTransform
	tr.rotate(90)
	x, y := tr.Apply(1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)

	tr = identityTransform
	tr.rotate(180)
	x, y = tr.Apply(1, 2)
	assertNear(t, "x", x, -1)
	assertNear(t, "y", y, -2)
}

func TestTransformZChannel(t *testing.T) {
	tr := identityTransform
	tr.translate(0, 0, 5)
	tr.scale(1, 1, 0.5)
	tr.translate(0, 0, 4)
	assertNear(t, "z", tr.Z, 7)
	assertNear(t, "zscale", tr.ZScale, 0.5)
}

func TestTransformComposeOrder(t *testing.T) {
	// Post-multiplication: translate then rotate spins about the translated
	// origin, not the world origin.
	tr := identityTransform
	tr.translate(10, 0, 0)
	tr.rotate(90)
	x, y := tr.Apply(1, 0)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 1)
}

func TestTransformStackPushPop(t *testing.T) {
	s := newTransformStack()
	s.cur.translate(5, 5, 0)
	s.push()
	s.cur.scale(10, 10, 1)
	s.pop()

	x, y := s.cur.Apply(0, 0)
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 5)
	assertNear(t, "xscale", s.cur.M[0], 1)
}

func TestTransformStackUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("pop on an empty stack should panic")
		}
	}()
	s := newTransformStack()
	s.pop()
}

func TestMultiplyAffine(t *testing.T) {
	p := [6]float64{2, 0, 0, 2, 10, 20} // scale 2 then offset
	c := [6]float64{1, 0, 0, 1, 3, 4}   // pure translation
	got := multiplyAffine(p, c)
	want := [6]float64{2, 0, 0, 2, 16, 28}
	for i := range got {
		assertNear(t, "m", got[i], want[i])
	}
}
