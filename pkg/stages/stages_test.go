package stages

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/gridmap"
	"github.com/itohio/slam2d/pkg/core/kalman"
	"github.com/itohio/slam2d/pkg/core/pipeline"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

func wallGrid() gridmap.Grid[gridmap.OccupancyCell] {
	grid := gridmap.NewOccupancyGrid(30, 10, 1.0, geom.Point2[float64]{})
	for y := 0; y < 10; y++ {
		grid.Data.Set(20, y, gridmap.OccupancyCell{Value: 0.95})
	}
	return grid
}

func TestSimulateLaserScanEmitsScanAndPoints(t *testing.T) {
	grid := wallGrid()
	stage := NewSimulateLaserScan(1, 0, 0, 25, 0.05)

	sensorPose := pipeline.NewOutputPort[geom.Pose2d]("sensorPose")
	egoPose := pipeline.NewOutputPort[geom.Pose2d]("egoPose")
	ts := pipeline.NewOutputPort[float64]("timeStamp")
	require.NoError(t, pipeline.ConnectTyped(sensorPose, stage.SensorPose))
	require.NoError(t, pipeline.ConnectTyped(egoPose, stage.EgoPose))
	require.NoError(t, pipeline.ConnectTyped(ts, stage.TimeStamp))

	require.NoError(t, sensorPose.Set(geom.Pose2d{Position: geom.Point2[float64]{X: 0.5, Y: 5.5}}))
	require.NoError(t, egoPose.Set(geom.Pose2d{}))
	require.NoError(t, ts.Set(0))

	assert.True(t, pipeline.Process[gridmap.Grid[gridmap.OccupancyCell]](stage, &grid))

	scan, err := stage.Scan.Get()
	require.NoError(t, err)
	assert.True(t, scan.IsReturn(0))
}

func TestUpdateOccupancyGridMarksCells(t *testing.T) {
	grid := gridmap.NewOccupancyGrid(20, 5, 1.0, geom.Point2[float64]{})
	stage := NewUpdateOccupancyGrid(0.125)

	scanOut := pipeline.NewOutputPort[sensors.LaserScan]("scan")
	egoOut := pipeline.NewOutputPort[geom.Pose2d]("egoPose")
	require.NoError(t, pipeline.ConnectTyped(scanOut, stage.Scan))
	require.NoError(t, pipeline.ConnectTyped(egoOut, stage.EgoPose))

	require.NoError(t, scanOut.Set(sensors.LaserScan{Distances: []float64{5}, Range: 10, Divergence: 0.05}))
	require.NoError(t, egoOut.Set(geom.Pose2d{Position: geom.Point2[float64]{X: 0.5, Y: 2.5}}))

	assert.True(t, pipeline.Process[gridmap.Grid[gridmap.OccupancyCell]](stage, &grid))
	v := grid.Data.Get(2, 2).Value
	assert.False(t, math.IsNaN(v))
}

func TestConvertLaserScanToPointsSkipsNoReturns(t *testing.T) {
	stage := NewConvertLaserScanToPoints()
	scanOut := pipeline.NewOutputPort[sensors.LaserScan]("scan")
	require.NoError(t, pipeline.ConnectTyped(scanOut, stage.Scan))

	require.NoError(t, scanOut.Set(sensors.LaserScan{
		Distances: []float64{1, math.Inf(1)},
		PhiMin:    0, PhiMax: 0.1, PhiStep: 0.1,
	}))

	var m struct{}
	assert.True(t, pipeline.Process[struct{}](stage, &m))
	pts, err := stage.Points.Get()
	require.NoError(t, err)
	assert.Len(t, pts, 1)
}

func TestUpdateEgoObjectFoldsPoseSample(t *testing.T) {
	ego := sensors.NewEgoObject(geom.Pose2d{}, 100, 100, 0)
	stage := NewUpdateEgoObject()

	sampleOut := pipeline.NewOutputPort[sensors.Sample]("sensorData")
	require.NoError(t, pipeline.ConnectTyped(sampleOut, stage.SensorData))

	var cov [3][3]float64
	cov[0][0], cov[1][1], cov[2][2] = 0.01, 0.01, 0.01
	require.NoError(t, sampleOut.Set(sensors.Sample{
		Kind: sensors.SamplePose,
		Pose: sensors.PoseSensorData{
			TimeStamp:  1,
			Pose:       geom.Pose2d{Position: geom.Point2[float64]{X: 3, Y: 4}},
			Covariance: cov,
		},
	}))

	assert.True(t, pipeline.Process[*sensors.EgoObject](stage, &ego))
	assert.InDelta(t, 3, ego.Pose().Position.X, 1.0)
	assert.InDelta(t, 4, ego.Pose().Position.Y, 1.0)
}

func TestConvertLaserScanToPointsSkipsWhenUnbound(t *testing.T) {
	stage := NewConvertLaserScanToPoints()

	var m struct{}
	assert.False(t, stage.IsReady())
	assert.True(t, pipeline.Process[struct{}](stage, &m))

	_, err := stage.Points.Get()
	assert.Error(t, err)
}

func TestEgoModelObservationMatrixShape(t *testing.T) {
	pack := kalman.MustAttributePack(kalman.PosX, kalman.PosY)
	H := kalman.ObservationMatrix(pack, kalman.EgoAttributes)
	r, c := H.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, kalman.EgoAttributes.Len(), c)
	assert.Equal(t, 1.0, H.At(0, 0))
	assert.NotEqual(t, mat.NewDense(r, c, nil), nil)
}
