package array2d

import (
	"testing"

	"github.com/itohio/slam2d/pkg/core/geom"
)

func TestResizeOnSharedPreservesAliasContent(t *testing.T) {
	a := NewFilled[int](4, 4, 7)
	a.Set(1, 1, 99)

	alias := a.Clone()
	if !a.Shares() {
		t.Fatalf("expected a to be shared after Clone")
	}

	a.Resize(8, 8, 0)

	if !a.Owns() {
		t.Errorf("expected a to own its storage after detaching resize")
	}
	if got := alias.Get(1, 1); got != 99 {
		t.Errorf("alias content changed after resize-on-shared: got %v want 99", got)
	}
	if got := alias.Cols(); got != 4 {
		t.Errorf("alias cols changed: got %v want 4", got)
	}
}

func TestROIOutOfRangeIsEmptyNotPanic(t *testing.T) {
	a := NewFilled[int](4, 4, 0)
	roi, ok := a.ROI(geom.Rect2u{Origin: geom.Point2[uint32]{X: 3, Y: 3}, Size: geom.Size2u{W: 4, H: 4}})
	if ok {
		t.Fatalf("expected out-of-range ROI to fail")
	}
	if !roi.Empty() {
		t.Errorf("expected empty array on failed ROI construction")
	}
}

func TestROIWritesThroughToParent(t *testing.T) {
	a := NewFilled[int](10, 10, 0)
	roi, ok := a.ROI(geom.Rect2u{Origin: geom.Point2[uint32]{X: 2, Y: 2}, Size: geom.Size2u{W: 3, H: 3}})
	if !ok {
		t.Fatalf("expected ROI to succeed")
	}
	roi.Set(0, 0, 42)
	if got := a.Get(2, 2); got != 42 {
		t.Errorf("ROI write not visible in parent: got %v want 42", got)
	}
}

func TestRectangleIteratorFullyInside(t *testing.T) {
	a := NewFilled[int](21, 21, 0)
	it := a.Rectangle(10, 10, 9, 9)
	count := 0
	for it.Next() {
		count++
	}
	if count != 81 {
		t.Errorf("expected 81 cells visited fully inside, got %d", count)
	}
}

func TestRectangleIteratorClipped(t *testing.T) {
	a := NewFilled[int](21, 21, 0)
	it := a.Rectangle(0, 0, 9, 9)
	count := 0
	for it.Next() {
		x, y := it.localXY()
		if x < 0 || x > 4 || y < 0 || y > 4 {
			t.Errorf("visited cell outside expected clip region: (%d,%d)", x, y)
		}
		count++
	}
	if count == 0 || count >= 81 {
		t.Errorf("expected clipped count strictly between 0 and 81, got %d", count)
	}
}

func TestRectangleIteratorCentreOutsideYieldsNothing(t *testing.T) {
	a := NewFilled[int](10, 10, 0)
	it := a.Rectangle(-5, -5, 3, 3)
	if it.Next() {
		t.Errorf("expected no cells when centre is outside the array")
	}
}

func TestCircleIteratorStaysInBounds(t *testing.T) {
	a := NewFilled[int](20, 20, 0)
	it := a.Circle(0, 0, 5)
	count := 0
	for it.Next() {
		x, y := it.rect.localXY()
		if !a.InBounds(x, y) {
			t.Fatalf("circle iterator produced out-of-bounds cell (%d,%d)", x, y)
		}
		count++
	}
	if count == 0 {
		t.Errorf("expected circle iterator to visit some cells")
	}
}

func TestEllipseIteratorStaysInBounds(t *testing.T) {
	a := NewFilled[int](20, 20, 0)
	it := a.Ellipse(10, 10, 6, 3, 0.4)
	count := 0
	for it.Next() {
		x, y := it.rect.localXY()
		if !a.InBounds(x, y) {
			t.Fatalf("ellipse iterator produced out-of-bounds cell (%d,%d)", x, y)
		}
		count++
	}
	if count == 0 {
		t.Errorf("expected ellipse iterator to visit some cells")
	}
}
