package sensors

import "github.com/itohio/slam2d/pkg/core/geom"

// PoseSensorData is an absolute pose measurement with a 3x3 covariance.
type PoseSensorData struct {
	TimeStamp  float64
	Pose       geom.Pose2d
	Covariance [3][3]float64
}

// EgoMotionSensorData is a relative-motion measurement (e.g. wheel odometry).
type EgoMotionSensorData struct {
	TimeStamp  float64
	Velocity   float64
	YawRate    float64
	Covariance [2][2]float64
}

// SampleKind tags which reading a Sample carries, since a pipeline port
// must be monomorphic: a single sensorData port needs one Go type able to
// carry either a pose fix or an ego-motion reading.
type SampleKind int

const (
	SamplePose SampleKind = iota
	SampleEgoMotion
)

// Sample is the sensorData value flowing into UpdateEgoObject: exactly one
// of Pose/EgoMotion is meaningful, selected by Kind.
type Sample struct {
	Kind      SampleKind
	Pose      PoseSensorData
	EgoMotion EgoMotionSensorData
}
