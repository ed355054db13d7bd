package kalman

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/itohio/slam2d/pkg/core/logger"
)

// ErrTemporalOrder is returned when a predict/update is requested for a
// time earlier than the filter's current time.
var ErrTemporalOrder = errors.New("kalman: predict to a time earlier than t_now")

// ErrNumericalFailure covers a singular innovation covariance or other
// degenerate linear-algebra failure during a measurement update.
var ErrNumericalFailure = errors.New("kalman: numerical failure during update")

// Filter is the generic Kalman filter core: a state vector, its covariance,
// a model supplying prediction/noise matrices, and predict/update operations.
type Filter struct {
	Model FilterModel
	X     *StateVector
	P     *mat.Dense // n x n covariance
	Now   float64
}

// NewFilter initialises a filter at (x0, P0, t0).
func NewFilter(model FilterModel, x0 *StateVector, P0 *mat.Dense, t0 float64) *Filter {
	f := &Filter{Model: model, X: x0, P: mat.DenseCopyOf(P0), Now: t0}
	return f
}

// PredictToTime advances the filter's state/covariance from Now to t.
// Predicting to a time before Now fails with ErrTemporalOrder and leaves
// the filter state unchanged.
func (f *Filter) PredictToTime(t float64) error {
	if t < f.Now {
		logger.Log.Error().Float64("now", f.Now).Float64("t", t).Msg("kalman: temporal order violation")
		return ErrTemporalOrder
	}
	dt := t - f.Now
	if dt < 0 {
		dt = 0
	}

	n := f.X.Pack.Len()
	m := f.Model.PredictionMatrix(f.X, dt)

	xNext := mat.NewVecDense(n, nil)
	xNext.MulVec(m, f.X.V)
	f.X.V.CopyVec(xNext)

	var mp mat.Dense
	mp.Mul(m, f.P)
	var mpmt mat.Dense
	mpmt.Mul(&mp, m.T())

	q := f.Model.SystemNoiseMatrix(dt)
	var pNext mat.Dense
	pNext.Add(&mpmt, q)
	f.P.Copy(&pNext)

	f.Now = t
	return nil
}

// Update predicts to t, then folds in measurement z (covariance R) via the
// observation matrix H mapping sensorPack onto the filter's attribute pack.
// Angle-valued rows of the innovation (per sensorPack) are normalised to
// (-pi, pi] before the gain is applied.
func (f *Filter) Update(t float64, z *mat.VecDense, R, H *mat.Dense, sensorPack AttributePack) error {
	if err := f.PredictToTime(t); err != nil {
		return err
	}

	m, _ := H.Dims()
	n := f.X.Pack.Len()

	zPred := mat.NewVecDense(m, nil)
	zPred.MulVec(H, f.X.V)

	y := mat.NewVecDense(m, nil)
	y.SubVec(z, zPred)
	for i := 0; i < m && i < len(sensorPack); i++ {
		if isAngle(sensorPack[i]) {
			y.SetVec(i, wrapAngle(y.AtVec(i)))
		}
	}

	var hp mat.Dense
	hp.Mul(H, f.P)
	var s mat.Dense
	s.Mul(&hp, H.T())
	s.Add(&s, R)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		logger.Log.Error().Err(err).Msg("kalman: innovation covariance is singular")
		return ErrNumericalFailure
	}

	var ph mat.Dense
	ph.Mul(f.P, H.T())
	var k mat.Dense
	k.Mul(&ph, &sInv)

	var ky mat.VecDense
	ky.MulVec(&k, y)
	f.X.V.AddVec(f.X.V, &ky)

	var kh mat.Dense
	kh.Mul(&k, H)
	var imkh mat.Dense
	imkh.Sub(eye(n), &kh)
	var pNext mat.Dense
	pNext.Mul(&imkh, f.P)
	f.P.Copy(&pNext)

	f.Now = t
	return nil
}

// Process is predictToTime(t) followed by update(t,...). The predict that
// Update itself runs is then a no-op, since predicting twice to the same t
// has dt=0. Calling Process twice with the same t folds the measurement in
// twice.
func (f *Filter) Process(t float64, z *mat.VecDense, R, H *mat.Dense, sensorPack AttributePack) error {
	if err := f.PredictToTime(t); err != nil {
		return err
	}
	return f.Update(t, z, R, H, sensorPack)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
