package kalman

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// EgoAttributes is the fixed attribute pack of the concrete ego model:
// position, velocity and acceleration in x/y, plus roll/pitch/yaw and their
// rates, in this exact order (spec §4.7).
var EgoAttributes = MustAttributePack(
	PosX, PosY, VelX, VelY, AccX, AccY,
	Roll, Pitch, Yaw, RollRate, PitchRate, YawRate,
)

// egoNoiseProfile gives each attribute's per-second variance contribution to
// the process noise matrix Q, which scales linearly in dt.
var egoNoiseProfile = map[Attribute]float64{
	PosX: 0.001, PosY: 0.001,
	VelX: 0.01, VelY: 0.01,
	AccX: 0.1, AccY: 0.1,
	Roll: 0.0005, Pitch: 0.0005, Yaw: 0.01,
	RollRate: 0.005, PitchRate: 0.005, YawRate: 0.05,
}

// EgoModel is a nonlinear constant-acceleration-with-yaw prediction model,
// linearised at the current state for the covariance propagation.
type EgoModel struct{}

func NewEgoModel() EgoModel { return EgoModel{} }

func (EgoModel) Attributes() AttributePack { return EgoAttributes }

// PredictionMatrix linearises the nonlinear constant-acceleration-with-yaw
// motion model at state, for the given dt. Position/velocity evolve via the
// body-frame acceleration rotated by yaw; yaw evolves via yaw rate; roll and
// pitch are carried forward with their rates (planar vehicles keep these
// near zero but the attributes are tracked for completeness).
func (m EgoModel) PredictionMatrix(state *StateVector, dt float64) *mat.Dense {
	n := EgoAttributes.Len()
	M := eye(n)

	idx := func(a Attribute) int { return state.IndexOf(a) }

	yaw := state.Yaw()
	cos, sin := math.Cos(yaw), math.Sin(yaw)

	ix, iy := idx(PosX), idx(PosY)
	ivx, ivy := idx(VelX), idx(VelY)
	iax, iay := idx(AccX), idx(AccY)
	iyaw := idx(Yaw)
	iyawRate := idx(YawRate)
	iroll, irollRate := idx(Roll), idx(RollRate)
	ipitch, ipitchRate := idx(Pitch), idx(PitchRate)

	// position += velocity*dt + 0.5*acc*dt^2 (body-frame acc rotated by yaw)
	if ix >= 0 {
		if ivx >= 0 {
			M.Set(ix, ivx, dt*cos)
		}
		if ivy >= 0 {
			M.Set(ix, ivy, -dt*sin)
		}
		if iax >= 0 {
			M.Set(ix, iax, 0.5*dt*dt*cos)
		}
		if iay >= 0 {
			M.Set(ix, iay, -0.5*dt*dt*sin)
		}
	}
	if iy >= 0 {
		if ivx >= 0 {
			M.Set(iy, ivx, dt*sin)
		}
		if ivy >= 0 {
			M.Set(iy, ivy, dt*cos)
		}
		if iax >= 0 {
			M.Set(iy, iax, 0.5*dt*dt*sin)
		}
		if iay >= 0 {
			M.Set(iy, iay, 0.5*dt*dt*cos)
		}
	}
	// velocity += acc*dt
	if ivx >= 0 && iax >= 0 {
		M.Set(ivx, iax, dt)
	}
	if ivy >= 0 && iay >= 0 {
		M.Set(ivy, iay, dt)
	}
	// yaw += yawRate*dt
	if iyaw >= 0 && iyawRate >= 0 {
		M.Set(iyaw, iyawRate, dt)
	}
	if iroll >= 0 && irollRate >= 0 {
		M.Set(iroll, irollRate, dt)
	}
	if ipitch >= 0 && ipitchRate >= 0 {
		M.Set(ipitch, ipitchRate, dt)
	}

	return M
}

// SystemNoiseMatrix returns a diagonal Q with each attribute's variance
// scaled linearly in dt.
func (EgoModel) SystemNoiseMatrix(dt float64) *mat.Dense {
	n := EgoAttributes.Len()
	q := mat.NewDense(n, n, nil)
	for i, a := range EgoAttributes {
		q.Set(i, i, egoNoiseProfile[a]*dt)
	}
	return q
}
