package icp

import "math"

// kdNode is a single node of a 2-D k-d tree, splitting alternately on x/y.
type kdNode struct {
	point       geomPoint
	index       int
	dim         int
	left, right *kdNode
}

// geomPoint is the minimal 2-D point shape the tree operates on, kept
// free of a geom import so this file stays a self-contained index.
type geomPoint struct{ X, Y float64 }

// kdTree is a Flann-like 2-D nearest-neighbour index, grounded on the
// same recursive alternating-dimension build/search shape used by the
// graph package's k-d tree, specialised to 2 dimensions and float64.
type kdTree struct {
	root   *kdNode
	points []geomPoint
}

func newKDTree(points []geomPoint) *kdTree {
	t := &kdTree{points: points}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(idx, 0)
	return t
}

func (t *kdTree) build(idx []int, depth int) *kdNode {
	if len(idx) == 0 {
		return nil
	}
	dim := depth % 2
	sortByDim(idx, t.points, dim)
	mid := len(idx) / 2
	node := &kdNode{point: t.points[idx[mid]], index: idx[mid], dim: dim}
	node.left = t.build(idx[:mid], depth+1)
	node.right = t.build(idx[mid+1:], depth+1)
	return node
}

func sortByDim(idx []int, points []geomPoint, dim int) {
	val := func(i int) float64 {
		if dim == 0 {
			return points[i].X
		}
		return points[i].Y
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && val(idx[j-1]) > val(idx[j]); j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
}

// nearest returns the index into the original points slice of the
// closest point to query, and its distance.
func (t *kdTree) nearest(query geomPoint) (int, float64) {
	if t.root == nil {
		return -1, math.Inf(1)
	}
	bestIdx, bestDist := -1, math.Inf(1)
	var search func(n *kdNode)
	search = func(n *kdNode) {
		if n == nil {
			return
		}
		d := dist(query, n.point)
		if d < bestDist {
			bestDist = d
			bestIdx = n.index
		}
		var qv, nv float64
		if n.dim == 0 {
			qv, nv = query.X, n.point.X
		} else {
			qv, nv = query.Y, n.point.Y
		}
		diff := qv - nv
		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}
		search(near)
		if diff*diff < bestDist*bestDist {
			search(far)
		}
	}
	search(t.root)
	return bestIdx, bestDist
}

func dist(a, b geomPoint) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
