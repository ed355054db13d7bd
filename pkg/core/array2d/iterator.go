package array2d

import "math"

// LineIterator walks a 1-D span of a SharedArray2d with a configurable
// element stride -- used for rows, columns, or every-Nth element.
type LineIterator[T any] struct {
	arr           SharedArray2d[T]
	x0, y0        int // starting local coordinate
	dx, dy        int // per-step delta, in local coordinates
	count, i      int // total steps, current step
}

// Row returns a single-pass iterator over row y.
func (a SharedArray2d[T]) Row(y int) *LineIterator[T] {
	return &LineIterator[T]{arr: a, x0: 0, y0: y, dx: 1, dy: 0, count: a.w}
}

// Col returns a single-pass iterator over column x.
func (a SharedArray2d[T]) Col(x int) *LineIterator[T] {
	return &LineIterator[T]{arr: a, x0: x, y0: 0, dx: 0, dy: 1, count: a.h}
}

// Line returns a single-pass iterator starting at (x,y), stepping by
// (dx,dy) each call, for count steps, clipped to the array extent.
func (a SharedArray2d[T]) Line(x, y, dx, dy, count int) *LineIterator[T] {
	return &LineIterator[T]{arr: a, x0: x, y0: y, dx: dx, dy: dy, count: count}
}

// Next advances the cursor. It returns false once the span is exhausted or
// a step would leave the array bounds; like all iterators in this family it
// is single-pass and not restartable.
func (l *LineIterator[T]) Next() bool {
	if l.i >= l.count {
		return false
	}
	x := l.x0 + l.dx*l.i
	y := l.y0 + l.dy*l.i
	if !l.arr.InBounds(x, y) {
		l.i = l.count
		return false
	}
	l.i++
	return true
}

// LocalIndex returns the 0-based step index just consumed by Next.
func (l *LineIterator[T]) LocalIndex() int { return l.i - 1 }

// GlobalIndex returns the parent storage index of the current cell.
func (l *LineIterator[T]) GlobalIndex() int {
	x := l.x0 + l.dx*(l.i-1)
	y := l.y0 + l.dy*(l.i-1)
	return l.arr.index(x, y)
}

// Cell returns a pointer to the current cell.
func (l *LineIterator[T]) Cell() *T {
	x := l.x0 + l.dx*(l.i-1)
	y := l.y0 + l.dy*(l.i-1)
	return l.arr.Ptr(x, y)
}

// RectIterator walks a (w,h) rectangle centred at (x,y), clipping to the
// array's extent on all four sides.
type RectIterator[T any] struct {
	arr            SharedArray2d[T]
	cx, cy         int
	w, h           int // requested rectangle extent
	lx0, ly0       int // local-to-rectangle top-left (can be negative, pre-clip)
	i, j           int // current rectangle-local row/col being visited
	started        bool
	localIdxCursor int
}

// Rectangle returns an iterator over a w*h rectangle centred at (cx,cy)
// (inclusive of cx,cy; w,h need not be odd). Parts that fall outside the
// array are silently skipped. If the centre itself is outside the array,
// the iterator yields nothing.
func (a SharedArray2d[T]) Rectangle(cx, cy, w, h int) *RectIterator[T] {
	lx0 := cx - w/2
	ly0 := cy - h/2
	return &RectIterator[T]{arr: a, cx: cx, cy: cy, w: w, h: h, lx0: lx0, ly0: ly0, i: -1, j: 0}
}

func (r *RectIterator[T]) outsideArray() bool {
	return r.cx < 0 || r.cy < 0 || r.cx >= r.arr.w || r.cy >= r.arr.h
}

// Next advances to the next in-bounds cell of the rectangle, returning
// false once the full (clipped) rectangle has been visited.
func (r *RectIterator[T]) Next() bool {
	if r.outsideArray() {
		return false
	}
	for {
		r.i++
		if r.i >= r.w {
			r.i = 0
			r.j++
		}
		if r.j >= r.h {
			return false
		}
		x := r.lx0 + r.i
		y := r.ly0 + r.j
		if r.arr.InBounds(x, y) {
			r.localIdxCursor = r.j*r.w + r.i
			return true
		}
		// skip out-of-bounds cells silently, continue scanning
	}
}

func (r *RectIterator[T]) localXY() (int, int) { return r.lx0 + r.i, r.ly0 + r.j }

// LocalIndex returns the index into the (unclipped) w*h shape.
func (r *RectIterator[T]) LocalIndex() int { return r.localIdxCursor }

// GlobalIndex returns the parent storage index of the current cell.
func (r *RectIterator[T]) GlobalIndex() int {
	x, y := r.localXY()
	return r.arr.index(x, y)
}

// Cell returns a pointer to the current cell.
func (r *RectIterator[T]) Cell() *T {
	x, y := r.localXY()
	return r.arr.Ptr(x, y)
}

// CircleIterator extends RectIterator, additionally testing that each
// candidate cell lies within the circle of radius r centred at (cx,cy).
type CircleIterator[T any] struct {
	rect   *RectIterator[T]
	radius float64
}

// Circle returns an iterator over the disc of the given radius centred at
// (cx,cy). As with Rectangle, parts outside the array are clipped and a
// centre outside the array yields nothing.
func (a SharedArray2d[T]) Circle(cx, cy int, radius float64) *CircleIterator[T] {
	d := int(math.Ceil(radius)) * 2
	if d < 1 {
		d = 1
	}
	return &CircleIterator[T]{
		rect:   a.Rectangle(cx, cy, d, d),
		radius: radius,
	}
}

// Next advances to the next cell within both the clipped bounding rectangle
// and the circle, skipping non-circle cells, returning false once the
// bounding rectangle is exhausted.
func (c *CircleIterator[T]) Next() bool {
	half := float64(c.rect.w) / 2
	for c.rect.Next() {
		lx := float64(c.rect.i) - half + 0.5
		ly := float64(c.rect.j) - half + 0.5
		if lx*lx+ly*ly <= c.radius*c.radius {
			return true
		}
	}
	return false
}

func (c *CircleIterator[T]) LocalIndex() int  { return c.rect.LocalIndex() }
func (c *CircleIterator[T]) GlobalIndex() int { return c.rect.GlobalIndex() }
func (c *CircleIterator[T]) Cell() *T         { return c.rect.Cell() }

// EllipseIterator extends RectIterator with a rotated containment test.
type EllipseIterator[T any] struct {
	rect     *RectIterator[T]
	rx, ry   float64
	sinPhi   float64
	cosPhi   float64
}

// Ellipse returns an iterator over the rotated ellipse with semi-axes
// (rx,ry) rotated by phi, centred at (cx,cy).
func (a SharedArray2d[T]) Ellipse(cx, cy int, rx, ry, phi float64) *EllipseIterator[T] {
	maxR := rx
	if ry > maxR {
		maxR = ry
	}
	d := int(math.Ceil(maxR)) * 2
	if d < 1 {
		d = 1
	}
	return &EllipseIterator[T]{
		rect:   a.Rectangle(cx, cy, d, d),
		rx:     rx,
		ry:     ry,
		sinPhi: math.Sin(-phi),
		cosPhi: math.Cos(-phi),
	}
}

// Next advances to the next cell within both the bounding rectangle and the
// rotated ellipse, skipping cells that fail the containment test.
func (e *EllipseIterator[T]) Next() bool {
	half := float64(e.rect.w) / 2
	for e.rect.Next() {
		dx := float64(e.rect.i) - half + 0.5
		dy := float64(e.rect.j) - half + 0.5
		u := (e.cosPhi*dx - e.sinPhi*dy) / e.rx
		v := (e.sinPhi*dx + e.cosPhi*dy) / e.ry
		if u*u+v*v < 1 {
			return true
		}
	}
	return false
}

func (e *EllipseIterator[T]) LocalIndex() int  { return e.rect.LocalIndex() }
func (e *EllipseIterator[T]) GlobalIndex() int { return e.rect.GlobalIndex() }
func (e *EllipseIterator[T]) Cell() *T         { return e.rect.Cell() }
