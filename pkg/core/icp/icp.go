// Package icp implements iterative-closest-point scan-to-map alignment:
// a point-pair search over a model point set, a closed-form rigid 2-D
// transform estimator, and the iterative refinement loop that composes
// the two into a single estimated transform.
package icp

import (
	"errors"
	"math"
	"sort"

	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/logger"
)

// ErrNoModel is returned by findPairs when setModel has not been called.
var ErrNoModel = errors.New("icp: no model set")

// Pair is a correspondence between a model point and a query point.
type Pair struct {
	ModelIndex int
	QueryIndex int
	Distance   float64
}

// PointPairEstimator finds nearest-neighbour correspondences between a
// fixed model point set and successive query point sets.
type PointPairEstimator interface {
	SetModel(points []geom.Point2[float64])
	FindPairs(query []geom.Point2[float64]) ([]Pair, error)
}

// FlannEstimator is a PointPairEstimator backed by a 2-D k-d tree,
// grounded on the graph package's k-d tree shape but specialised to
// 2-D float64 points and a single nearest-neighbour query per point.
type FlannEstimator struct {
	model []geom.Point2[float64]
	tree  *kdTree
}

func NewFlannEstimator() *FlannEstimator { return &FlannEstimator{} }

func (f *FlannEstimator) SetModel(points []geom.Point2[float64]) {
	f.model = points
	gp := make([]geomPoint, len(points))
	for i, p := range points {
		gp[i] = geomPoint{X: p.X, Y: p.Y}
	}
	f.tree = newKDTree(gp)
}

func (f *FlannEstimator) FindPairs(query []geom.Point2[float64]) ([]Pair, error) {
	if f.tree == nil {
		return nil, ErrNoModel
	}
	pairs := make([]Pair, 0, len(query))
	for qi, q := range query {
		mi, d := f.tree.nearest(geomPoint{X: q.X, Y: q.Y})
		if mi < 0 {
			continue
		}
		pairs = append(pairs, Pair{ModelIndex: mi, QueryIndex: qi, Distance: d})
	}
	return pairs, nil
}

// TransformEstimationFn computes the rigid 2-D transform mapping a onto b
// (so its inverse moves b onto a) using the pairs whose distance is below
// maxDistance, returning the RMS
// of the kept pairs' distances and the estimated transform. Returns a
// negative RMS on any input violation (no kept pairs, degenerate centroid).
type TransformEstimationFn func(a, b []geom.Point2[float64], pairs []Pair, maxDistance float64) (float64, geom.Transform2d)

// EstimateRigidTransform is the spec's closed-form 2-D ICP transform
// step: centroid subtraction, cross/dot accumulation, atan2 rotation.
func EstimateRigidTransform(a, b []geom.Point2[float64], pairs []Pair, maxDistance float64) (float64, geom.Transform2d) {
	kept := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Distance < maxDistance {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return -1, geom.Identity2d()
	}

	var ca, cb geom.Point2[float64]
	for _, p := range kept {
		ca.X += a[p.ModelIndex].X
		ca.Y += a[p.ModelIndex].Y
		cb.X += b[p.QueryIndex].X
		cb.Y += b[p.QueryIndex].Y
	}
	n := float64(len(kept))
	ca.X, ca.Y = ca.X/n, ca.Y/n
	cb.X, cb.Y = cb.X/n, cb.Y/n

	var N, D, rmsSum float64
	for _, p := range kept {
		da := geom.Point2[float64]{X: a[p.ModelIndex].X - ca.X, Y: a[p.ModelIndex].Y - ca.Y}
		db := geom.Point2[float64]{X: b[p.QueryIndex].X - cb.X, Y: b[p.QueryIndex].Y - cb.Y}
		N += da.Y*db.X - da.X*db.Y
		D += da.X*db.X + da.Y*db.Y
		rmsSum += p.Distance
	}
	if N == 0 && D == 0 {
		return -1, geom.Identity2d()
	}

	phi := -math.Atan2(N, D)
	rot := geom.NewRotation2d(phi)
	rotCa := rot.Apply(geom.Vector2[float64]{X: ca.X, Y: ca.Y})
	tr := geom.Vector2[float64]{X: cb.X - rotCa.X, Y: cb.Y - rotCa.Y}

	rms := rmsSum / n
	return rms, geom.Transform2d{Rot: rot, Tr: tr}
}

// Icp runs the iterative-closest-point refinement loop.
type Icp struct {
	Estimator          PointPairEstimator
	TransformEstimator  TransformEstimationFn
	MaxIterations      int
	MaxRMS             float64
	TerminationRMS     float64
}

// NewIcp builds an Icp with the Flann-backed estimator and the closed-form
// transform estimation function.
func NewIcp(maxIterations int, maxRMS, terminationRMS float64) *Icp {
	return &Icp{
		Estimator:          NewFlannEstimator(),
		TransformEstimator: EstimateRigidTransform,
		MaxIterations:      maxIterations,
		MaxRMS:             maxRMS,
		TerminationRMS:     terminationRMS,
	}
}

// ErrDiverged is returned when the RMS reaches MaxRMS, or MaxIterations
// pass, before the RMS falls to TerminationRMS.
var ErrDiverged = errors.New("icp: rms exceeded max_rms before convergence")

// EstimateTransform aligns target onto origin, returning the accumulated
// transform T such that T applied to origin's points approximates target
// (T's inverse moves target onto origin).
func (icp *Icp) EstimateTransform(origin, target []geom.Point2[float64]) (geom.Transform2d, error) {
	icp.Estimator.SetModel(origin)

	moved := make([]geom.Point2[float64], len(target))
	copy(moved, target)

	T := geom.Identity2d()
	prevRMS := math.Inf(1)

	for iter := 0; iter < icp.MaxIterations; iter++ {
		pairs, err := icp.Estimator.FindPairs(moved)
		if err != nil {
			return T, err
		}
		if len(pairs) == 0 {
			return T, ErrNoModel
		}

		threshold := medianDistance(pairs) * 2
		if prevRMS*10 > threshold {
			threshold = prevRMS * 10
		}

		rms, tIter := icp.TransformEstimator(origin, moved, pairs, threshold)
		if rms < 0 {
			logger.Log.Error().Msg("icp: degenerate transform estimate")
			return T, ErrNoModel
		}

		T = T.Compose(tIter)

		inv := tIter.Inverse()
		for i := range moved {
			moved[i] = inv.ApplyPoint(moved[i])
		}

		prevRMS = rms
		if rms <= icp.TerminationRMS {
			return T, nil
		}
		if rms >= icp.MaxRMS {
			return T, ErrDiverged
		}
	}

	return T, ErrDiverged
}

func medianDistance(pairs []Pair) float64 {
	d := make([]float64, len(pairs))
	for i, p := range pairs {
		d[i] = p.Distance
	}
	sort.Float64s(d)
	return d[len(d)/2]
}
