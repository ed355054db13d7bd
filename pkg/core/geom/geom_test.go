package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestNormaliseRange(t *testing.T) {
	cases := []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -3 * math.Pi, 1e6, -1e6}
	for _, a := range cases {
		n := Normalise(a)
		if float64(n) <= -math.Pi || float64(n) > math.Pi {
			t.Errorf("Normalise(%v) = %v out of (-pi, pi]", a, n)
		}
	}
}

func TestTransformComposeAssociative(t *testing.T) {
	t1 := NewTransform2d(NewRotation2d(0.3), Vector2[float64]{X: 1, Y: 2})
	t2 := NewTransform2d(NewRotation2d(-0.8), Vector2[float64]{X: -3, Y: 0.5})
	p := Point2[float64]{X: 4, Y: -7}

	lhs := t1.Compose(t2).ApplyPoint(p)
	rhs := t1.ApplyPoint(t2.ApplyPoint(p))

	if !almostEqual(lhs.X, rhs.X, 1e-6) || !almostEqual(lhs.Y, rhs.Y, 1e-6) {
		t.Errorf("composition not associative: %v vs %v", lhs, rhs)
	}
}

func TestTransformInverseIsIdentity(t *testing.T) {
	tr := NewTransform2d(NewRotation2d(1.234), Vector2[float64]{X: 5, Y: -9})
	id := tr.Compose(tr.Inverse())

	if !almostEqual(id.Rot.Phi, 0, 1e-6) {
		t.Errorf("expected identity rotation, got phi=%v", id.Rot.Phi)
	}
	if !almostEqual(id.Tr.X, 0, 1e-6) || !almostEqual(id.Tr.Y, 0, 1e-6) {
		t.Errorf("expected identity translation, got %v", id.Tr)
	}
}

func TestRectInsideOf(t *testing.T) {
	parent := Size2u{W: 10, H: 10}
	r := Rect2u{Origin: Point2[uint32]{X: 2, Y: 2}, Size: Size2u{W: 5, H: 5}}
	if !r.InsideOf(parent) {
		t.Errorf("expected rect to be inside parent")
	}
	r2 := Rect2u{Origin: Point2[uint32]{X: 8, Y: 8}, Size: Size2u{W: 5, H: 5}}
	if r2.InsideOf(parent) {
		t.Errorf("expected rect to NOT be inside parent")
	}
}
