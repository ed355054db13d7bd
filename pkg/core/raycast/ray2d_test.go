package raycast

import "testing"

// TestRay2dAxisAlignedTraversal exercises the DDA cursor along the +x axis,
// the pattern described by the spec's "ray to axis" scenario: starting at
// the left edge of cell (5,0) and travelling exactly 10 cell-widths visits
// cells 5..14 in order, then terminates.
func TestRay2dAxisAlignedTraversal(t *testing.T) {
	r := New(5, 0, 20, 20, 0.1, 0.5, 0.05, 1, 0, 1.0)

	var got []int
	for r.Next() {
		x, y := r.Cell()
		if y != 0 {
			t.Fatalf("expected y==0 throughout, got %d", y)
		}
		got = append(got, x)
	}

	want := []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
	if len(got) != len(want) {
		t.Fatalf("got %d cells %v, want %d cells %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRay2dLeavesGrid(t *testing.T) {
	r := New(8, 8, 10, 10, 1.0, 8.5, 8.5, 1, 1, 100.0)
	count := 0
	for r.Next() {
		count++
		if count > 10 {
			t.Fatalf("ray did not terminate on leaving the grid")
		}
	}
	if count == 0 {
		t.Fatalf("expected at least the starting cell to be visited")
	}
}

func TestRay2dZeroDirection(t *testing.T) {
	r := New(0, 0, 5, 5, 1.0, 0.5, 0.5, 0, 0, 10.0)
	if r.Next() {
		t.Errorf("expected a degenerate (zero-length) direction to yield nothing")
	}
}
