package stages

import (
	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/gridmap"
	"github.com/itohio/slam2d/pkg/core/pipeline"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

// UpdateOccupancyGrid folds a laser scan into its model grid via
// gridmap.PushLaserScan. It has no outputs; the grid is mutated in place.
type UpdateOccupancyGrid struct {
	pipeline.BaseStage

	Scan    *pipeline.InputPort[sensors.LaserScan]
	Normals *pipeline.InputPort[[]float64]
	EgoPose *pipeline.InputPort[geom.Pose2d]

	EndDelta float64
}

// NewUpdateOccupancyGrid builds the stage, optional normals left unbound.
func NewUpdateOccupancyGrid(endDelta float64) *UpdateOccupancyGrid {
	scan := pipeline.NewInputPort[sensors.LaserScan]("scan")
	normals := pipeline.NewInputPort[[]float64]("normals")
	egoPose := pipeline.NewInputPort[geom.Pose2d]("egoPose")

	return &UpdateOccupancyGrid{
		BaseStage: pipeline.BaseStage{
			StageName: "UpdateOccupancyGrid",
			Inputs:    []*pipeline.Port{scan.Port(), egoPose.Port(), normals.Port()},
		},
		Scan:     scan,
		Normals:  normals,
		EgoPose:  egoPose,
		EndDelta: endDelta,
	}
}

// IsReady only requires scan/egoPose; normals is an optional third input,
// so this stage checks readiness directly instead of using BaseStage's
// all-inputs-bound predicate.
func (s *UpdateOccupancyGrid) IsReady() bool {
	return s.Scan.Port().Bound() && s.EgoPose.Port().Bound()
}

func (s *UpdateOccupancyGrid) DoProcess(grid *gridmap.Grid[gridmap.OccupancyCell]) bool {
	scan, err := s.Scan.Get()
	if err != nil {
		return false
	}
	egoPose, err := s.EgoPose.Get()
	if err != nil {
		return false
	}
	normals, _ := s.Normals.Get()

	gridmap.PushLaserScan(grid, scan, egoPose, normals, s.EndDelta)
	return true
}
