package sensors

import (
	"gonum.org/v1/gonum/mat"

	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/kalman"
)

// EgoObject holds the ego vehicle's current Kalman filter state,
// covariance, and timestamp, and projects a Pose2d out of it.
type EgoObject struct {
	Filter *kalman.Filter
}

// NewEgoObject constructs an EgoObject at the given pose and timestamp,
// with an initial covariance diagonal of posVariance/angleVariance.
func NewEgoObject(pose geom.Pose2d, posVariance, angleVariance, t0 float64) *EgoObject {
	model := kalman.NewEgoModel()
	x0 := kalman.NewStateVector(kalman.EgoAttributes)
	x0.Set(kalman.PosX, pose.Position.X)
	x0.Set(kalman.PosY, pose.Position.Y)
	x0.Set(kalman.Yaw, float64(pose.Orientation))

	n := kalman.EgoAttributes.Len()
	p0 := mat.NewDense(n, n, nil)
	for i, a := range kalman.EgoAttributes {
		if a == kalman.Roll || a == kalman.Pitch || a == kalman.Yaw {
			p0.Set(i, i, angleVariance)
		} else {
			p0.Set(i, i, posVariance)
		}
	}

	return &EgoObject{Filter: kalman.NewFilter(model, x0, p0, t0)}
}

// Pose projects the current filter state into a Pose2d.
func (e *EgoObject) Pose() geom.Pose2d {
	return geom.Pose2d{
		Position:    geom.Point2[float64]{X: e.Filter.X.X(), Y: e.Filter.X.Y()},
		Orientation: geom.Normalise(e.Filter.X.Yaw()),
	}
}

// TimeStamp returns the filter's current time.
func (e *EgoObject) TimeStamp() float64 { return e.Filter.Now }
