package gridmap

import (
	"math"

	"github.com/itohio/slam2d/pkg/core/geom"
)

// wMax caps a TSD cell's running-average weight.
const wMax = 200

// TsdCell holds a truncated signed-distance running average and the
// number of updates folded into it (capped at wMax), or NaN/0 before the
// first touch.
type TsdCell struct {
	Tsd    float64
	Weight int
}

// NewTsdGrid builds a cols x rows TSD grid with every cell untouched.
func NewTsdGrid(cols, rows int, cellSize float64, origin geom.Point2[float64]) Grid[TsdCell] {
	return NewGrid(cols, rows, cellSize, origin, TsdCell{Tsd: math.NaN()})
}

// UpdateTsd folds a single measurement into cell: sdf is the signed
// distance (measurement - distance to sensor), truncated to [-1,1] by
// maxTruncation, then combined into the cell's running weighted average.
func UpdateTsd(cell *TsdCell, sdf, maxTruncation float64) {
	tsdf := clamp(sdf/maxTruncation, -1, 1)

	cell.Weight++
	if cell.Weight > wMax {
		cell.Weight = wMax
	}

	if math.IsNaN(cell.Tsd) {
		cell.Tsd = tsdf
		return
	}
	w := float64(cell.Weight)
	cell.Tsd = (cell.Tsd*(w-1) + tsdf) / w
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConvertTsdToOccupancy is a lossy projection: occ is occupied (1.0) where
// tsd > 0, else free (0.0). Untouched (NaN) TSD cells stay unknown.
func ConvertTsdToOccupancy(tsd Grid[TsdCell]) Grid[OccupancyCell] {
	cols, rows := tsd.Count()
	occ := NewOccupancyGrid(cols, rows, tsd.CellSize, tsd.Origin)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := tsd.Data.Get(x, y)
			var v float64
			switch {
			case math.IsNaN(c.Tsd):
				v = math.NaN()
			case c.Tsd > 0:
				v = 1.0
			default:
				v = 0.0
			}
			occ.Data.Set(x, y, OccupancyCell{Value: v})
		}
	}
	return occ
}
