package stages

import (
	"gonum.org/v1/gonum/mat"

	"github.com/itohio/slam2d/pkg/core/kalman"
	"github.com/itohio/slam2d/pkg/core/pipeline"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

// UpdateEgoObject folds a single sensor sample into its model EgoObject's
// Kalman filter. It has no outputs; the model itself is the running state
// estimate consumers read.
type UpdateEgoObject struct {
	pipeline.BaseStage

	SensorData *pipeline.InputPort[sensors.Sample]

	posePack   kalman.AttributePack
	motionPack kalman.AttributePack
}

func NewUpdateEgoObject() *UpdateEgoObject {
	sensorData := pipeline.NewInputPort[sensors.Sample]("sensorData")

	return &UpdateEgoObject{
		BaseStage: pipeline.BaseStage{
			StageName: "UpdateEgoObject",
			Inputs:    []*pipeline.Port{sensorData.Port()},
		},
		SensorData: sensorData,
		posePack:   kalman.MustAttributePack(kalman.PosX, kalman.PosY, kalman.Yaw),
		motionPack: kalman.MustAttributePack(kalman.VelX, kalman.YawRate),
	}
}

func (s *UpdateEgoObject) DoProcess(ego **sensors.EgoObject) bool {
	sample, err := s.SensorData.Get()
	if err != nil {
		return false
	}

	e := *ego
	switch sample.Kind {
	case sensors.SamplePose:
		z := mat.NewVecDense(3, []float64{
			sample.Pose.Pose.Position.X,
			sample.Pose.Pose.Position.Y,
			float64(sample.Pose.Pose.Orientation),
		})
		R := mat.NewDense(3, 3, nil)
		for i := 0; i < 3; i++ {
			R.Set(i, i, sample.Pose.Covariance[i][i])
		}
		H := kalman.ObservationMatrix(s.posePack, kalman.EgoAttributes)
		return e.Filter.Update(sample.Pose.TimeStamp, z, R, H, s.posePack) == nil

	case sensors.SampleEgoMotion:
		z := mat.NewVecDense(2, []float64{sample.EgoMotion.Velocity, sample.EgoMotion.YawRate})
		R := mat.NewDense(2, 2, nil)
		for i := 0; i < 2; i++ {
			R.Set(i, i, sample.EgoMotion.Covariance[i][i])
		}
		H := kalman.ObservationMatrix(s.motionPack, kalman.EgoAttributes)
		return e.Filter.Update(sample.EgoMotion.TimeStamp, z, R, H, s.motionPack) == nil
	}
	return false
}
