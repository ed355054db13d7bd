package stages

import (
	"math"

	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/pipeline"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

// ConvertLaserScanToPoints projects a scan's finite beams into sensor-frame
// points and estimates a per-point surface normal from each point's
// neighbours. It threads no model of its own.
type ConvertLaserScanToPoints struct {
	pipeline.BaseStage

	Scan *pipeline.InputPort[sensors.LaserScan]

	Points  *pipeline.OutputPort[[]geom.Point2[float64]]
	Normals *pipeline.OutputPort[[]float64]
}

func NewConvertLaserScanToPoints() *ConvertLaserScanToPoints {
	scan := pipeline.NewInputPort[sensors.LaserScan]("scan")
	points := pipeline.NewOutputPort[[]geom.Point2[float64]]("points")
	normals := pipeline.NewOutputPort[[]float64]("normals")

	return &ConvertLaserScanToPoints{
		BaseStage: pipeline.BaseStage{
			StageName: "ConvertLaserScanToPoints",
			Inputs:    []*pipeline.Port{scan.Port()},
			Outputs:   []*pipeline.Port{points.Port(), normals.Port()},
		},
		Scan:    scan,
		Points:  points,
		Normals: normals,
	}
}

func (s *ConvertLaserScanToPoints) DoProcess(_ *struct{}) bool {
	scan, err := s.Scan.Get()
	if err != nil {
		return false
	}

	pts := make([]geom.Point2[float64], 0, scan.NumBeams())
	for i := 0; i < scan.NumBeams(); i++ {
		if !scan.IsReturn(i) {
			continue
		}
		angle := scan.BeamAngle(i)
		d := scan.Distances[i]
		pts = append(pts, geom.Point2[float64]{X: math.Cos(angle) * d, Y: math.Sin(angle) * d})
	}

	normals := make([]float64, len(pts))
	for i := range pts {
		prev, next := i-1, i+1
		if prev < 0 {
			prev = i
		}
		if next >= len(pts) {
			next = i
		}
		tangent := pts[next].Sub(pts[prev])
		normals[i] = math.Atan2(tangent.X, -tangent.Y)
	}

	if err := s.Points.Set(pts); err != nil {
		return false
	}
	return s.Normals.Set(normals) == nil
}
