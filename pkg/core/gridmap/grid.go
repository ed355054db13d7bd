// Package gridmap implements the occupancy and TSD grid representations and
// their ray-cast-driven update/reconstruct operations (spec §3 Grid<Cell>,
// §4.4 C4, §4.5 C5).
package gridmap

import (
	"github.com/itohio/slam2d/pkg/core/array2d"
	"github.com/itohio/slam2d/pkg/core/geom"
)

// Grid is a 2-D array of Cell with a world-space origin and cell size.
type Grid[Cell any] struct {
	CellSize float64
	Origin   geom.Point2[float64]
	Data     array2d.SharedArray2d[Cell]
}

// NewGrid constructs a grid of cols x rows cells, each initialised to fill.
func NewGrid[Cell any](cols, rows int, cellSize float64, origin geom.Point2[float64], fill Cell) Grid[Cell] {
	return Grid[Cell]{
		CellSize: cellSize,
		Origin:   origin,
		Data:     array2d.NewFilled[Cell](cols, rows, fill),
	}
}

// Valid reports the §3 grid validity invariant.
func (g Grid[Cell]) Valid() bool {
	return g.CellSize > 0 && g.Data.Cols() > 0 && g.Data.Rows() > 0
}

// Count returns (cols, rows).
func (g Grid[Cell]) Count() (int, int) { return g.Data.Cols(), g.Data.Rows() }

// WorldSize returns count * cellSize.
func (g Grid[Cell]) WorldSize() geom.Size2[float64] {
	cols, rows := g.Count()
	return geom.Size2[float64]{W: float64(cols) * g.CellSize, H: float64(rows) * g.CellSize}
}

// Index maps a world point to its cell index: floor((p-origin)/cellSize).
func (g Grid[Cell]) Index(p geom.Point2[float64]) (int, int) {
	x := int(floor((p.X - g.Origin.X) / g.CellSize))
	y := int(floor((p.Y - g.Origin.Y) / g.CellSize))
	return x, y
}

// Centre maps a cell index back to its world-space centre.
func (g Grid[Cell]) Centre(x, y int) geom.Point2[float64] {
	return geom.Point2[float64]{
		X: g.Origin.X + (float64(x)+0.5)*g.CellSize,
		Y: g.Origin.Y + (float64(y)+0.5)*g.CellSize,
	}
}

// InBounds reports whether the integer cell index is within the grid.
func (g Grid[Cell]) InBounds(x, y int) bool { return g.Data.InBounds(x, y) }

func floor(v float64) float64 {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}
