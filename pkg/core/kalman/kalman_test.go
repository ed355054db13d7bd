package kalman

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newTestFilter(t *testing.T) *Filter {
	t.Helper()
	model := NewEgoModel()
	x0 := NewStateVector(EgoAttributes)
	P0 := eye(EgoAttributes.Len())
	for i := 0; i < EgoAttributes.Len(); i++ {
		P0.Set(i, i, 100)
	}
	return NewFilter(model, x0, P0, 0)
}

func TestAttributePackRejectsDuplicates(t *testing.T) {
	_, err := NewAttributePack(PosX, PosY, PosX)
	require.Error(t, err)
}

func TestAttributePackIndexInjective(t *testing.T) {
	p := MustAttributePack(PosX, Yaw, VelX)
	seen := map[int]bool{}
	for _, a := range p {
		i, ok := p.IndexOf(a)
		require.True(t, ok)
		require.False(t, seen[i])
		seen[i] = true
	}
}

func TestPredictToTimeIdempotent(t *testing.T) {
	f := newTestFilter(t)
	require.NoError(t, f.PredictToTime(1.0))
	snapshot := mat.DenseCopyOf(f.P)
	require.NoError(t, f.PredictToTime(1.0))

	assert.Equal(t, 1.0, f.Now)
	for i := 0; i < f.P.RawMatrix().Rows; i++ {
		for j := 0; j < f.P.RawMatrix().Cols; j++ {
			assert.InDelta(t, snapshot.At(i, j), f.P.At(i, j), 1e-9)
		}
	}
}

func TestPredictToTimeRejectsPast(t *testing.T) {
	f := newTestFilter(t)
	require.NoError(t, f.PredictToTime(2.0))
	err := f.PredictToTime(1.0)
	assert.ErrorIs(t, err, ErrTemporalOrder)
	assert.Equal(t, 2.0, f.Now, "state must be unchanged on a rejected predict")
}

func TestUpdateConvergesTowardMeasurement(t *testing.T) {
	f := newTestFilter(t)
	sensorPack := MustAttributePack(PosX, PosY)
	H := ObservationMatrix(sensorPack, EgoAttributes)
	R := mat.NewDense(2, 2, nil)
	R.Set(0, 0, 0.01)
	R.Set(1, 1, 0.01)

	z := mat.NewVecDense(2, []float64{5, 5})
	for i := 0; i < 20; i++ {
		require.NoError(t, f.Update(float64(i+1)*0.1, z, R, H, sensorPack))
	}

	assert.InDelta(t, 5.0, f.X.X(), 0.5)
	assert.InDelta(t, 5.0, f.X.Y(), 0.5)
}

func TestUpdateWrapsAngleInnovation(t *testing.T) {
	f := newTestFilter(t)
	f.X.Set(Yaw, math.Pi-0.01)

	sensorPack := MustAttributePack(Yaw)
	H := ObservationMatrix(sensorPack, EgoAttributes)
	R := mat.NewDense(1, 1, []float64{0.001})
	z := mat.NewVecDense(1, []float64{-math.Pi + 0.01})

	require.NoError(t, f.Update(0.1, z, R, H, sensorPack))

	// true angular distance is tiny (0.02 rad); an unwrapped update would
	// have pulled yaw toward -pi instead.
	assert.InDelta(t, math.Pi-0.01, f.X.Yaw(), 0.2)
}

// TestFilterTracksCircularMotion drives a noisy (x,y,yaw) measurement
// stream around a radius-10 circle at a constant angular rate, updating
// once every 10 predict steps, and checks that after one full revolution
// the position error stays bounded and the yaw rate estimate converges.
func TestFilterTracksCircularMotion(t *testing.T) {
	const (
		radius = 10.0
		omega  = 1.0 // rad/s
		dt     = 0.01
	)
	neededTime := 2 * math.Pi / omega
	steps := int(neededTime/dt + 0.5)

	f := newTestFilter(t)
	sensorPack := MustAttributePack(PosX, PosY, Yaw)
	H := ObservationMatrix(sensorPack, EgoAttributes)
	R := mat.NewDense(3, 3, nil)
	R.Set(0, 0, 0.0025)
	R.Set(1, 1, 0.0025)
	R.Set(2, 2, 0.0025)

	noise := rand.New(rand.NewSource(1))

	for i := 1; i <= steps; i++ {
		tt := float64(i) * dt
		if i%10 != 0 {
			require.NoError(t, f.PredictToTime(tt))
			continue
		}
		trueYaw := omega * tt
		trueX := radius * math.Sin(trueYaw)
		trueY := radius * (1 - math.Cos(trueYaw))

		z := mat.NewVecDense(3, []float64{
			trueX + noise.NormFloat64()*0.05,
			trueY + noise.NormFloat64()*0.05,
			trueYaw + noise.NormFloat64()*0.05,
		})
		require.NoError(t, f.Update(tt, z, R, H, sensorPack))
	}

	finalYaw := omega * neededTime
	wantX := radius * math.Sin(finalYaw)
	wantY := radius * (1 - math.Cos(finalYaw))

	assert.InDelta(t, wantX, f.X.X(), 1.0)
	assert.InDelta(t, wantY, f.X.Y(), 1.0)
	assert.InDelta(t, omega, f.X.YawRate(), 0.1*omega)
}
