package geom

import "math"

// Pose2d is a position plus a normalised orientation.
type Pose2d struct {
	Position    Point2[float64]
	Orientation NormalisedAngle
}

// Rotation2d is a 2x2 rotation matrix built from a single angle, used by
// Transform2d. It carries its angle around for composition/inversion.
type Rotation2d struct {
	Phi      float64
	sin, cos float64
}

func NewRotation2d(phi float64) Rotation2d {
	return Rotation2d{Phi: phi, sin: math.Sin(phi), cos: math.Cos(phi)}
}

// Apply rotates v by this rotation.
func (r Rotation2d) Apply(v Vector2[float64]) Vector2[float64] {
	return Vector2[float64]{
		X: r.cos*v.X - r.sin*v.Y,
		Y: r.sin*v.X + r.cos*v.Y,
	}
}

// Inverse returns the inverse rotation (negated angle).
func (r Rotation2d) Inverse() Rotation2d { return NewRotation2d(-r.Phi) }

// Transform2d is a rigid 2-D transform: rotate then translate.
type Transform2d struct {
	Rot Rotation2d
	Tr  Vector2[float64]
}

// Identity2d is the identity transform.
func Identity2d() Transform2d {
	return Transform2d{Rot: NewRotation2d(0), Tr: Vector2[float64]{}}
}

func NewTransform2d(rot Rotation2d, tr Vector2[float64]) Transform2d {
	return Transform2d{Rot: rot, Tr: tr}
}

// ApplyPoint applies the transform to a point: rotate then translate.
func (t Transform2d) ApplyPoint(p Point2[float64]) Point2[float64] {
	rotated := t.Rot.Apply(Vector2[float64]{X: p.X, Y: p.Y})
	return Point2[float64]{X: rotated.X + t.Tr.X, Y: rotated.Y + t.Tr.Y}
}

// ApplyVector rotates (but does not translate) a vector.
func (t Transform2d) ApplyVector(v Vector2[float64]) Vector2[float64] {
	return t.Rot.Apply(v)
}

// ApplyPose composes T*Pose2d = Pose2d(rot*pos+tr, orient+rot.phi).
func (t Transform2d) ApplyPose(p Pose2d) Pose2d {
	return Pose2d{
		Position:    t.ApplyPoint(p.Position),
		Orientation: p.Orientation.Add(NormalisedAngle(t.Rot.Phi)),
	}
}

// Compose returns t*other (apply other first, then t).
func (t Transform2d) Compose(other Transform2d) Transform2d {
	rot := NewRotation2d(t.Rot.Phi + other.Rot.Phi)
	tr := t.Rot.Apply(other.Tr).Add(t.Tr)
	return Transform2d{Rot: rot, Tr: tr}
}

// Inverse returns T^-1 such that T*T.Inverse() == Identity.
func (t Transform2d) Inverse() Transform2d {
	invRot := t.Rot.Inverse()
	invTr := invRot.Apply(t.Tr).Scale(-1)
	return Transform2d{Rot: invRot, Tr: invTr}
}
