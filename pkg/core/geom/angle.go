// Package geom holds the plane-geometry value types every other package in
// this module builds on: angles, points, vectors, rectangles, poses and
// rigid transforms. The spec treats these as external collaborators with
// "obvious" semantics; this package gives them a concrete, tested home so
// the rest of the library has something to import.
package geom

import "math"

// Angle is a real number in radians, unconstrained.
type Angle = float64

// NormalisedAngle is an angle folded into (-pi, pi].
type NormalisedAngle float64

// Normalise folds a radians into (-pi, pi].
func Normalise(a float64) NormalisedAngle {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return NormalisedAngle(a)
}

// Add returns a+b normalised into (-pi, pi].
func (a NormalisedAngle) Add(b NormalisedAngle) NormalisedAngle {
	return Normalise(float64(a) + float64(b))
}

// Sub returns a-b normalised into (-pi, pi].
func (a NormalisedAngle) Sub(b NormalisedAngle) NormalisedAngle {
	return Normalise(float64(a) - float64(b))
}

// Diff returns the signed shortest angular distance a-b, in (-pi, pi].
func (a NormalisedAngle) Diff(b NormalisedAngle) NormalisedAngle {
	return a.Sub(b)
}

func (a NormalisedAngle) Radians() float64 { return float64(a) }
func (a NormalisedAngle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// FromDegrees converts degrees to a NormalisedAngle, lossless up to the fold.
func FromDegrees(deg float64) NormalisedAngle {
	return Normalise(deg * math.Pi / 180)
}
