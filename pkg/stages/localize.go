package stages

import (
	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/gridmap"
	"github.com/itohio/slam2d/pkg/core/icp"
	"github.com/itohio/slam2d/pkg/core/pipeline"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

// LocalizeOnOccupancyGrid aligns a scan against its model occupancy grid
// via ICP: it reconstructs a synthetic scan at the measured scan's sensor
// pose, converts both to point sets, and estimates the rigid transform
// from the reconstructed (map) points to the measured points. The
// resulting delta, applied to the scan's own pose, is the pose
// measurement this stage emits.
type LocalizeOnOccupancyGrid struct {
	pipeline.BaseStage

	Scan *pipeline.InputPort[sensors.LaserScan]

	Points          *pipeline.OutputPort[[]geom.Point2[float64]]
	PoseMeasurement *pipeline.OutputPort[sensors.PoseSensorData]

	Icp                     *icp.Icp
	PositionVariance        float64
	OrientationVariance     float64
}

func NewLocalizeOnOccupancyGrid(maxIterations int, maxRMS, terminationRMS, positionVariance, orientationVariance float64) *LocalizeOnOccupancyGrid {
	scan := pipeline.NewInputPort[sensors.LaserScan]("scan")
	points := pipeline.NewOutputPort[[]geom.Point2[float64]]("points")
	poseMeasurement := pipeline.NewOutputPort[sensors.PoseSensorData]("poseMeasurement")

	return &LocalizeOnOccupancyGrid{
		BaseStage: pipeline.BaseStage{
			StageName: "LocalizeOnOccupancyGrid",
			Inputs:    []*pipeline.Port{scan.Port()},
			Outputs:   []*pipeline.Port{points.Port(), poseMeasurement.Port()},
		},
		Scan:                scan,
		Points:              points,
		PoseMeasurement:     poseMeasurement,
		Icp:                 icp.NewIcp(maxIterations, maxRMS, terminationRMS),
		PositionVariance:    positionVariance,
		OrientationVariance: orientationVariance,
	}
}

func (s *LocalizeOnOccupancyGrid) DoProcess(grid *gridmap.Grid[gridmap.OccupancyCell]) bool {
	scan, err := s.Scan.Get()
	if err != nil {
		return false
	}

	egoPose := geom.Pose2d{}
	reconstructed := gridmap.ReconstructLaserScan(*grid, egoPose, scan.Pose, scan.PhiMin, scan.PhiStep, scan.NumBeams(), scan.Range, scan.Divergence, scan.TimeStamp)
	mapPoints := gridmap.ReconstructPoints(reconstructed, egoPose)
	scanPoints := gridmap.ReconstructPoints(scan, egoPose)

	if len(mapPoints) == 0 || len(scanPoints) == 0 {
		return false
	}

	delta, err := s.Icp.EstimateTransform(mapPoints, scanPoints)
	if err != nil {
		return false
	}

	measuredPose := delta.ApplyPose(scan.Pose)

	var cov [3][3]float64
	cov[0][0], cov[1][1] = s.PositionVariance, s.PositionVariance
	cov[2][2] = s.OrientationVariance

	if err := s.Points.Set(scanPoints); err != nil {
		return false
	}
	return s.PoseMeasurement.Set(sensors.PoseSensorData{
		TimeStamp:  scan.TimeStamp,
		Pose:       measuredPose,
		Covariance: cov,
	}) == nil
}
