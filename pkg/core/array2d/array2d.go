// Package array2d implements SharedArray2d, a copy-on-write 2-D block store
// with aliasing ROI views, plus the line/rectangle/circle/ellipse iterator
// family that walks it (spec §4.2, C2).
package array2d

import (
	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/logger"
)

// storage is the shared, reference-counted backing buffer. Row-major,
// stride == cols.
type storage[T any] struct {
	buf        []T
	cols, rows int
	refs       int
}

// SharedArray2d is a 2-D view, possibly a ROI, over a shared storage block.
// The zero value is a valid, empty array.
type SharedArray2d[T any] struct {
	st                 *storage[T]
	x0, y0, w, h       int // ROI offset/extent within st
}

// New constructs an empty array (no storage).
func New[T any]() SharedArray2d[T] {
	return SharedArray2d[T]{}
}

// NewFilled constructs an array of the given size with every cell set to fill.
func NewFilled[T any](cols, rows int, fill T) SharedArray2d[T] {
	if cols <= 0 || rows <= 0 {
		return SharedArray2d[T]{}
	}
	buf := make([]T, cols*rows)
	for i := range buf {
		buf[i] = fill
	}
	st := &storage[T]{buf: buf, cols: cols, rows: rows, refs: 1}
	return SharedArray2d[T]{st: st, w: cols, h: rows}
}

// Cols returns the view's width.
func (a SharedArray2d[T]) Cols() int { return a.w }

// Rows returns the view's height.
func (a SharedArray2d[T]) Rows() int { return a.h }

// Empty reports whether the array has no storage or zero extent.
func (a SharedArray2d[T]) Empty() bool { return a.st == nil || a.w <= 0 || a.h <= 0 }

// Owns reports whether this handle is the sole reference to its storage.
func (a SharedArray2d[T]) Owns() bool { return a.st != nil && a.st.refs == 1 }

// Shares reports whether this handle aliases storage with another handle.
func (a SharedArray2d[T]) Shares() bool { return a.st != nil && a.st.refs > 1 }

func (a SharedArray2d[T]) index(x, y int) int {
	return (a.y0+y)*a.st.cols + (a.x0 + x)
}

// Get returns the value at local (x,y). Panics if out of range, the same
// contract as indexing a Go slice out of bounds.
func (a SharedArray2d[T]) Get(x, y int) T {
	return a.st.buf[a.index(x, y)]
}

// Set writes the value at local (x,y).
func (a SharedArray2d[T]) Set(x, y int, v T) {
	a.st.buf[a.index(x, y)] = v
}

// Ptr returns a pointer to the cell at local (x,y), for in-place mutation.
func (a SharedArray2d[T]) Ptr(x, y int) *T {
	return &a.st.buf[a.index(x, y)]
}

// InBounds reports whether (x,y) is a valid local index.
func (a SharedArray2d[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.w && y < a.h
}

// Clone returns a handle aliasing the same storage (the "shared copy").
// Mutating through either handle is visible through the other until one of
// them triggers a detaching resize.
func (a SharedArray2d[T]) Clone() SharedArray2d[T] {
	if a.st == nil {
		return a
	}
	a.st.refs++
	return a
}

// CreateCopy returns a deep copy with brand new, unshared storage.
func (a SharedArray2d[T]) CreateCopy() SharedArray2d[T] {
	if a.st == nil {
		return SharedArray2d[T]{}
	}
	buf := make([]T, a.w*a.h)
	for y := 0; y < a.h; y++ {
		srcRow := a.st.buf[a.index(0, y) : a.index(0, y)+a.w]
		copy(buf[y*a.w:(y+1)*a.w], srcRow)
	}
	st := &storage[T]{buf: buf, cols: a.w, rows: a.h, refs: 1}
	return SharedArray2d[T]{st: st, w: a.w, h: a.h}
}

// Release decrements the storage refcount. It is the cooperative counterpart
// of Clone/ROI; like the teacher's mat.Matrix.Release, it is a best-effort
// bookkeeping call since Go storage is otherwise garbage collected.
func (a SharedArray2d[T]) Release() {
	if a.st != nil && a.st.refs > 0 {
		a.st.refs--
	}
}

// Resize mutates this handle to the requested size, filling new cells with
// fill. If the storage is currently shared, this detaches: a fresh block is
// allocated and the old aliases keep their original content untouched.
func (a *SharedArray2d[T]) Resize(cols, rows int, fill T) {
	if cols <= 0 || rows <= 0 {
		a.Release()
		*a = SharedArray2d[T]{}
		return
	}

	newBuf := make([]T, cols*rows)
	for i := range newBuf {
		newBuf[i] = fill
	}
	// Preserve overlap of old content into the new buffer.
	if a.st != nil {
		ow, oh := a.w, a.h
		if cols < ow {
			ow = cols
		}
		if rows < oh {
			oh = rows
		}
		for y := 0; y < oh; y++ {
			src := a.st.buf[a.index(0, y) : a.index(0, y)+ow]
			copy(newBuf[y*cols:y*cols+ow], src)
		}
		a.Release()
	}

	a.st = &storage[T]{buf: newBuf, cols: cols, rows: rows, refs: 1}
	a.x0, a.y0, a.w, a.h = 0, 0, cols, rows
}

// ROI constructs a view into the parent's storage. If rect does not lie
// entirely inside the parent, construction fails: the returned array is
// empty and the failure is logged, per §4.2's OutOfRange edge case -- it
// never panics.
func (a SharedArray2d[T]) ROI(rect geom.Rect2u) (SharedArray2d[T], bool) {
	if a.st == nil {
		logger.Log.Error().Msg("array2d.ROI: parent has no storage")
		return SharedArray2d[T]{}, false
	}
	if !rect.InsideOf(geom.Size2u{W: uint32(a.w), H: uint32(a.h)}) {
		logger.Log.Error().
			Uint32("x", rect.Origin.X).Uint32("y", rect.Origin.Y).
			Uint32("w", rect.Size.W).Uint32("h", rect.Size.H).
			Msg("array2d.ROI: rectangle outside parent bounds")
		return SharedArray2d[T]{}, false
	}
	a.st.refs++
	return SharedArray2d[T]{
		st: a.st,
		x0: a.x0 + int(rect.Origin.X),
		y0: a.y0 + int(rect.Origin.Y),
		w:  int(rect.Size.W),
		h:  int(rect.Size.H),
	}, true
}
