package icp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/slam2d/pkg/core/geom"
)

func diagonalPoints() []geom.Point2[float64] {
	pts := make([]geom.Point2[float64], 0, 14)
	for i := 1; i <= 7; i++ {
		v := float64(i)
		pts = append(pts, geom.Point2[float64]{X: v, Y: v})
	}
	for i := 1; i <= 7; i++ {
		v := float64(i) + 0.5
		pts = append(pts, geom.Point2[float64]{X: v, Y: v})
	}
	return pts
}

func TestEstimateTransformRecoversKnownRotationAndTranslation(t *testing.T) {
	origin := diagonalPoints()
	want := geom.NewTransform2d(geom.NewRotation2d(30*math.Pi/180), geom.Vector2[float64]{X: 0.5, Y: 0.3})

	target := make([]geom.Point2[float64], len(origin))
	for i, p := range origin {
		target[i] = want.ApplyPoint(p)
	}

	icp := NewIcp(100, 10, 0.05)
	got, err := icp.EstimateTransform(origin, target)
	require.NoError(t, err)

	assert.InDelta(t, want.Rot.Phi, got.Rot.Phi, 0.1*math.Pi/180)
	assert.InDelta(t, want.Tr.X, got.Tr.X, 0.01)
	assert.InDelta(t, want.Tr.Y, got.Tr.Y, 0.01)
}

func TestFlannEstimatorFindsNearestPairs(t *testing.T) {
	model := []geom.Point2[float64]{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 0}}
	e := NewFlannEstimator()
	e.SetModel(model)

	pairs, err := e.FindPairs([]geom.Point2[float64]{{X: 0.1, Y: 0.1}, {X: 9.9, Y: 9.9}})
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, 0, pairs[0].ModelIndex)
	assert.Equal(t, 1, pairs[1].ModelIndex)
}

func TestFlannEstimatorWithoutModelFails(t *testing.T) {
	e := NewFlannEstimator()
	_, err := e.FindPairs([]geom.Point2[float64]{{X: 0, Y: 0}})
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestEstimateRigidTransformDegenerateReturnsNegativeRMS(t *testing.T) {
	rms, _ := EstimateRigidTransform(nil, nil, nil, 1)
	assert.Less(t, rms, 0.0)
}
