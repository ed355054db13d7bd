// Package stages wires the core algorithmic packages (gridmap, icp,
// kalman, sensors) into the concrete, named-port pipelines exposed at the
// top level (spec §6, C8): SimulateLaserScan, UpdateOccupancyGrid,
// LocalizeOnOccupancyGrid, ConvertLaserScanToPoints, UpdateEgoObject.
package stages

import (
	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/gridmap"
	"github.com/itohio/slam2d/pkg/core/pipeline"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

// SimulateLaserScan casts a synthetic scan against a ground-truth
// occupancy grid (its model), given a sensor pose, an ego pose and a
// timestamp; it emits the scan and its world-space points.
type SimulateLaserScan struct {
	pipeline.BaseStage

	SensorPose *pipeline.InputPort[geom.Pose2d]
	EgoPose    *pipeline.InputPort[geom.Pose2d]
	TimeStamp  *pipeline.InputPort[float64]

	Points *pipeline.OutputPort[[]geom.Point2[float64]]
	Scan   *pipeline.OutputPort[sensors.LaserScan]

	NumBeams   int
	PhiMin     float64
	PhiStep    float64
	Range      float64
	Divergence float64
}

// NewSimulateLaserScan builds the stage for an N-beam sensor spanning
// [phiMin, phiMin+(n-1)*phiStep] with the given max range and beam cone.
func NewSimulateLaserScan(numBeams int, phiMin, phiStep, rangeParam, divergence float64) *SimulateLaserScan {
	sensorPose := pipeline.NewInputPort[geom.Pose2d]("sensorPose")
	egoPose := pipeline.NewInputPort[geom.Pose2d]("egoPose")
	timeStamp := pipeline.NewInputPort[float64]("timeStamp")
	points := pipeline.NewOutputPort[[]geom.Point2[float64]]("points")
	scan := pipeline.NewOutputPort[sensors.LaserScan]("scan")

	return &SimulateLaserScan{
		BaseStage: pipeline.BaseStage{
			StageName: "SimulateLaserScan",
			Inputs:    []*pipeline.Port{sensorPose.Port(), egoPose.Port(), timeStamp.Port()},
			Outputs:   []*pipeline.Port{points.Port(), scan.Port()},
		},
		SensorPose: sensorPose,
		EgoPose:    egoPose,
		TimeStamp:  timeStamp,
		Points:     points,
		Scan:       scan,
		NumBeams:   numBeams,
		PhiMin:     phiMin,
		PhiStep:    phiStep,
		Range:      rangeParam,
		Divergence: divergence,
	}
}

func (s *SimulateLaserScan) DoProcess(groundTruth *gridmap.Grid[gridmap.OccupancyCell]) bool {
	sensorPose, err := s.SensorPose.Get()
	if err != nil {
		return false
	}
	egoPose, err := s.EgoPose.Get()
	if err != nil {
		return false
	}
	t, err := s.TimeStamp.Get()
	if err != nil {
		return false
	}

	scan := gridmap.ReconstructLaserScan(*groundTruth, egoPose, sensorPose, s.PhiMin, s.PhiStep, s.NumBeams, s.Range, s.Divergence, t)
	points := gridmap.ReconstructPoints(scan, egoPose)

	if err := s.Scan.Set(scan); err != nil {
		return false
	}
	return s.Points.Set(points) == nil
}
