// Package raycast implements the 2-D DDA (Amanatides-Woo style) grid ray
// caster used to register laser scans into occupancy/TSD grids and to
// reconstruct synthetic scans from them (spec §4.3, C3).
package raycast

import "math"

// Ray2d is a stateful cursor that visits every cell a ray crosses, in
// order, until it has travelled maxDist or it leaves the grid.
type Ray2d struct {
	ix, iy       int
	nx, ny       int
	stepX, stepY int
	sideDistX    float64
	sideDistY    float64
	deltaDistX   float64
	deltaDistY   float64
	travelled    float64
	maxDist      float64
	cellSize     float64
	started      bool
	done         bool
}

// New constructs a ray caster starting at grid cell (ix,iy) of a (nx,ny)
// grid with cell size s, from world position p travelling along unit
// direction d (‖d‖ in [0.99,1.01]) for at most maxDist metres.
func New(ix, iy, nx, ny int, cellSize float64, px, py, dx, dy, maxDist float64) *Ray2d {
	r := &Ray2d{
		ix: ix, iy: iy, nx: nx, ny: ny,
		cellSize: cellSize, maxDist: maxDist,
	}

	norm := math.Hypot(dx, dy)
	if norm < 1e-9 {
		r.done = true
		return r
	}

	if dx == 0 {
		r.deltaDistX = math.Inf(1)
	} else {
		r.deltaDistX = math.Abs(norm / dx * cellSize)
	}
	if dy == 0 {
		r.deltaDistY = math.Inf(1)
	} else {
		r.deltaDistY = math.Abs(norm / dy * cellSize)
	}

	// World position of the start within its own cell, to compute the
	// initial partial distance to the next grid line on each axis.
	cellOriginX := float64(ix) * cellSize
	cellOriginY := float64(iy) * cellSize

	if dx > 0 {
		r.stepX = 1
		r.sideDistX = (cellOriginX + cellSize - px) / dx * norm
	} else if dx < 0 {
		r.stepX = -1
		r.sideDistX = (px - cellOriginX) / -dx * norm
	} else {
		r.stepX = 0
		r.sideDistX = math.Inf(1)
	}

	if dy > 0 {
		r.stepY = 1
		r.sideDistY = (cellOriginY + cellSize - py) / dy * norm
	} else if dy < 0 {
		r.stepY = -1
		r.sideDistY = (py - cellOriginY) / -dy * norm
	} else {
		r.stepY = 0
		r.sideDistY = math.Inf(1)
	}

	if ix < 0 || ix >= nx || iy < 0 || iy >= ny {
		r.done = true
	}

	return r
}

// Valid reports whether the cursor currently points at an in-grid,
// within-range cell. It is the "operator bool" of the source design.
func (r *Ray2d) Valid() bool {
	if r.done {
		return false
	}
	return r.ix >= 0 && r.ix < r.nx && r.iy >= 0 && r.iy < r.ny && r.travelled < r.maxDist-rayEpsilon
}

// rayEpsilon absorbs floating-point drift in the accumulated side
// distances, so a ray whose maxDist ends exactly on a grid line stops
// there instead of entering the next cell.
const rayEpsilon = 1e-9

// Cell returns the current cell index.
func (r *Ray2d) Cell() (int, int) { return r.ix, r.iy }

// Distance returns the distance travelled to reach the current cell.
func (r *Ray2d) Distance() float64 { return r.travelled }

// Next advances the cursor to the next cell the ray crosses, returning
// false once the ray has left the grid or exceeded maxDist. The first call
// to Next after construction positions the cursor at the ray's starting
// cell (an "incremental" iterator, per the source's ++ray idiom).
func (r *Ray2d) Next() bool {
	if r.done {
		return false
	}
	if !r.started {
		r.started = true
		return r.Valid()
	}

	if r.sideDistX < r.sideDistY {
		r.travelled = r.sideDistX
		r.sideDistX += r.deltaDistX
		r.ix += r.stepX
	} else {
		r.travelled = r.sideDistY
		r.sideDistY += r.deltaDistY
		r.iy += r.stepY
	}

	if !r.Valid() {
		r.done = true
		return false
	}
	return true
}

// Begin resets this cursor's semantics to match the "begin/interim/end"
// iterator-style view used by range-for style consumers. Since a Ray2d is
// single-pass, Begin is only meaningful immediately after construction.
func (r *Ray2d) Begin() *Ray2d { return r }

// End reports whether iteration has terminated.
func (r *Ray2d) End() bool { return r.done || !r.Valid() }
