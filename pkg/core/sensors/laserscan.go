// Package sensors holds the measurement contracts fused by the mapping and
// localisation pipelines: LaserScan, PoseSensorData, EgoMotionSensorData,
// and the EgoObject that threads estimated state through a pipeline run
// (spec §3, §6).
package sensors

import (
	"math"

	"github.com/itohio/slam2d/pkg/core/geom"
)

// LaserScan is an immutable range-sensor measurement. Distances may be
// finite, NaN, or +Inf; NaN/Inf both mean "no return" for that beam.
type LaserScan struct {
	Distances  []float64
	Pose       geom.Pose2d // sensor pose relative to ego
	PhiMin     float64
	PhiMax     float64
	PhiStep    float64
	Range      float64 // maximum sensor range
	Divergence float64 // full beam cone angle
	TimeStamp  float64
	SensorName string
}

// NumBeams returns round((phiMax-phiMin)/phiStep)+1, tolerant of rounding,
// which should match len(Distances).
func (s LaserScan) NumBeams() int {
	if s.PhiStep == 0 {
		return len(s.Distances)
	}
	return int(math.Round((s.PhiMax-s.PhiMin)/s.PhiStep)) + 1
}

// BeamAngle returns the local beam angle (relative to sensor pose) for beam i.
func (s LaserScan) BeamAngle(i int) float64 {
	return s.PhiMin + float64(i)*s.PhiStep
}

// BeamDiameter returns the beam's point diameter at its measured distance:
// 2*sin(divergence/2)*distance.
func (s LaserScan) BeamDiameter(i int) float64 {
	return 2 * math.Sin(s.Divergence/2) * s.Distances[i]
}

// IsReturn reports whether distance[i] denotes an actual return (finite).
func (s LaserScan) IsReturn(i int) bool {
	d := s.Distances[i]
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}
