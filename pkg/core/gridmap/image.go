package gridmap

import (
	"math"

	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/imageio"
)

// ConvertToImage renders an occupancy grid into an 8-bit grayscale image:
// 200 for unknown (NaN) cells, 255 for value<=0.1, otherwise darker as the
// cell becomes more occupied.
func ConvertToImage(grid Grid[OccupancyCell]) *imageio.Image {
	cols, rows := grid.Count()
	img := imageio.NewGray(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := grid.Data.Get(x, y).Value
			var px uint8
			switch {
			case math.IsNaN(v):
				px = 200
			case v <= 0.1:
				px = 255
			default:
				px = uint8((100 - math.Round(v*100)) * 2)
			}
			img.SetPixel(y, x, px)
		}
	}
	return img
}

// CreateFromImage is the inverse of ConvertToImage: pixel 255 maps to 0.1,
// pixels below 100 map to (100-px)/100, anything else maps to unknown.
func CreateFromImage(img *imageio.Image, cellSize float64, origin geom.Point2[float64]) Grid[OccupancyCell] {
	cols, rows := img.Cols(), img.Rows()
	grid := NewOccupancyGrid(cols, rows, cellSize, origin)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := img.Pixel(y, x)
			var v float64
			switch {
			case px == 255:
				v = 0.1
			case px < 100:
				v = float64(100-int(px)) / 100
			default:
				v = math.NaN()
			}
			grid.Data.Set(x, y, OccupancyCell{Value: v})
		}
	}
	return grid
}
