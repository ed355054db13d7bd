package gridmap

import (
	"math"

	"github.com/itohio/slam2d/pkg/core/geom"
	"github.com/itohio/slam2d/pkg/core/raycast"
	"github.com/itohio/slam2d/pkg/core/sensors"
)

// OccupancyCell holds a log-odds-like occupancy probability in [0,1], or
// NaN before its first touch.
type OccupancyCell struct {
	Value float64
}

// freeLikelihood is the per-event likelihood applied to every cell a ray
// passes through on its way to a return (or its max range, on a miss).
const freeLikelihood = 0.35

// endDelta is the default distance subtracted from a beam's measured
// range before the free-space update stops short of the end cell.
const endDelta = 0.125

// NewOccupancyGrid builds a cols x rows occupancy grid with every cell
// unknown (NaN).
func NewOccupancyGrid(cols, rows int, cellSize float64, origin geom.Point2[float64]) Grid[OccupancyCell] {
	return NewGrid(cols, rows, cellSize, origin, OccupancyCell{Value: math.NaN()})
}

// updateOccupancy folds a single per-event likelihood m into cell, per the
// grid's log-odds-like combination rule. The cell's first touch simply
// adopts m; later touches combine multiplicatively.
func updateOccupancy(cell *OccupancyCell, m float64) {
	v := cell.Value
	if math.IsNaN(v) {
		cell.Value = m
		return
	}
	cell.Value = (m * v) / (m*v + (1-m)*(1-v))
}

// occupiedLikelihood returns the end-cell likelihood as a function of the
// angle between the surface orientation and the beam direction: close to
// head-on gives a confident return, near-grazing decays toward 0.5.
func occupiedLikelihood(orientation, beamAngle float64) float64 {
	diff := geom.Normalise(orientation - beamAngle - math.Pi)
	return 0.5 + 0.45*math.Abs(math.Cos(float64(diff)))
}

// occupiedRegionCells returns the (always odd, >=1) set of world points
// spanning an end-cell region of the given diameter, centred at endPoint
// and spread along the tangent of orientation (i.e. perpendicular to it).
func occupiedRegionCells(endPoint geom.Point2[float64], orientation, diameter, cellSize float64) []geom.Point2[float64] {
	n := int(math.Ceil(diameter / cellSize))
	if n < 1 {
		n = 1
	}
	if n%2 == 0 {
		n++
	}
	half := n / 2
	tangent := geom.Vector2[float64]{X: math.Cos(orientation + math.Pi/2), Y: math.Sin(orientation + math.Pi/2)}

	pts := make([]geom.Point2[float64], n)
	for i := -half; i <= half; i++ {
		pts[i+half] = endPoint.Add(tangent.Scale(float64(i) * cellSize))
	}
	return pts
}

// PushLaserScan registers a single scan into grid: every ray-traversed
// free cell is folded with the free likelihood, and each beam's end
// region (when the beam returned) is folded with an occupied likelihood
// oriented by normals[i] if given, else by the beam angle. delta <= 0
// uses the default 0.125m pull-back from the measured endpoint.
func PushLaserScan(grid *Grid[OccupancyCell], scan sensors.LaserScan, egoPose geom.Pose2d, normals []float64, delta float64) {
	if delta <= 0 {
		delta = endDelta
	}

	origin := geom.Point2[float64]{
		X: scan.Pose.Position.X + egoPose.Position.X,
		Y: scan.Pose.Position.Y + egoPose.Position.Y,
	}
	ox, oy := grid.Index(origin)
	cols, rows := grid.Count()

	for i := 0; i < scan.NumBeams(); i++ {
		beamAngle := scan.PhiMin + float64(i)*scan.PhiStep + float64(scan.Pose.Orientation) + float64(egoPose.Orientation)
		dx, dy := math.Cos(beamAngle), math.Sin(beamAngle)

		dist := scan.Distances[i]
		finite := scan.IsReturn(i)

		travel := scan.Range
		if finite {
			travel = math.Max(0, dist-delta)
		}

		ray := raycast.New(ox, oy, cols, rows, grid.CellSize, origin.X, origin.Y, dx, dy, travel)
		for ray.Next() {
			cx, cy := ray.Cell()
			updateOccupancy(grid.Data.Ptr(cx, cy), freeLikelihood)
		}

		if !finite {
			continue
		}

		orientation := beamAngle
		if i < len(normals) {
			orientation = normals[i]
		}
		diameter := scan.BeamDiameter(i)
		m := occupiedLikelihood(orientation, beamAngle)
		endPoint := geom.Point2[float64]{X: origin.X + dx*dist, Y: origin.Y + dy*dist}

		for _, p := range occupiedRegionCells(endPoint, orientation, diameter, grid.CellSize) {
			cx, cy := grid.Index(p)
			if !grid.InBounds(cx, cy) {
				continue
			}
			updateOccupancy(grid.Data.Ptr(cx, cy), m)
		}
	}
}

// possiblyOccupied is the threshold a sub-ray treats as "might be a wall",
// below the returned threshold, and above it keeps scanning for a local max.
const possiblyOccupied = 0.75

// returnThreshold is the confidence a reconstructed sub-ray accepts as an
// actual return.
const returnThreshold = 0.8

// reconstructSubray walks a single ray from origin along angle up to
// rangeParam, returning the distance to the first local-maximum occupied
// region (a run of strictly increasing values past possiblyOccupied) whose
// peak reaches returnThreshold, and whether one was found at all.
func reconstructSubray(grid Grid[OccupancyCell], origin geom.Point2[float64], angle, rangeParam float64) (float64, bool) {
	ix, iy := grid.Index(origin)
	cols, rows := grid.Count()
	dx, dy := math.Cos(angle), math.Sin(angle)

	ray := raycast.New(ix, iy, cols, rows, grid.CellSize, origin.X, origin.Y, dx, dy, rangeParam)
	for ray.Next() {
		cx, cy := ray.Cell()
		v := grid.Data.Get(cx, cy).Value
		if math.IsNaN(v) || v <= possiblyOccupied {
			continue
		}

		bestDist, bestVal := ray.Distance(), v
		for ray.Next() {
			cx, cy = ray.Cell()
			v = grid.Data.Get(cx, cy).Value
			if math.IsNaN(v) || v <= bestVal {
				break
			}
			bestVal, bestDist = v, ray.Distance()
		}
		if bestVal >= returnThreshold {
			return bestDist, true
		}
	}
	return 0, false
}

// ReconstructLaserScan simulates a LaserScan against grid, casting a fan of
// sub-rays per beam across the divergence cone and averaging the sub-rays
// that found a return; beams with no sub-ray return get +Inf.
func ReconstructLaserScan(grid Grid[OccupancyCell], egoPose, sensorPose geom.Pose2d, phiMin, phiStep float64, n int, rangeParam, divergence, t float64) sensors.LaserScan {
	origin := geom.Point2[float64]{
		X: sensorPose.Position.X + egoPose.Position.X,
		Y: sensorPose.Position.Y + egoPose.Position.Y,
	}

	beamWidth := 2 * math.Sin(divergence/2) * rangeParam
	subCount := int(math.Ceil(beamWidth/grid.CellSize)) + 2
	if subCount < 1 {
		subCount = 1
	}

	distances := make([]float64, n)
	for i := 0; i < n; i++ {
		beamAngle := phiMin + float64(i)*phiStep + float64(sensorPose.Orientation) + float64(egoPose.Orientation)

		var sum float64
		var count int
		for k := 0; k < subCount; k++ {
			sub := beamAngle
			if subCount > 1 {
				frac := float64(k)/float64(subCount-1) - 0.5
				sub = beamAngle + frac*divergence
			}
			if d, ok := reconstructSubray(grid, origin, sub, rangeParam); ok {
				sum += d
				count++
			}
		}

		if count == 0 {
			distances[i] = math.Inf(1)
		} else {
			distances[i] = sum / float64(count)
		}
	}

	return sensors.LaserScan{
		Distances:  distances,
		Pose:       sensorPose,
		PhiMin:     phiMin,
		PhiMax:     phiMin + float64(n-1)*phiStep,
		PhiStep:    phiStep,
		Range:      rangeParam,
		Divergence: divergence,
		TimeStamp:  t,
	}
}

// ReconstructPoints returns only the finite beams' world-space endpoints.
func ReconstructPoints(scan sensors.LaserScan, egoPose geom.Pose2d) []geom.Point2[float64] {
	origin := geom.Point2[float64]{
		X: scan.Pose.Position.X + egoPose.Position.X,
		Y: scan.Pose.Position.Y + egoPose.Position.Y,
	}

	pts := make([]geom.Point2[float64], 0, scan.NumBeams())
	for i := 0; i < scan.NumBeams(); i++ {
		if !scan.IsReturn(i) {
			continue
		}
		angle := scan.BeamAngle(i) + float64(scan.Pose.Orientation) + float64(egoPose.Orientation)
		d := scan.Distances[i]
		pts = append(pts, geom.Point2[float64]{X: origin.X + math.Cos(angle)*d, Y: origin.Y + math.Sin(angle)*d})
	}
	return pts
}
