package geometry

import (
	"sort"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy. Leaves hold one
// shape on both sides or two shapes, one per side.
type BVHNode struct {
	Left        Shape
	Right       Shape
	single      bool // Left and Right are the same shape
	boundingBox core.AABB
}

// NewBVH constructs a BVH over shapes. The split axis of every node is drawn
// from sampler, so the tree is reproducible for a given seed. Building over no
// shapes panics.
func NewBVH(shapes []Shape, sampler core.Sampler) *BVHNode {
	if len(shapes) == 0 {
		panic("geometry: BVH built over an empty shape list")
	}

	// Make a copy of the shapes slice to avoid modifying the original
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return buildBVH(shapesCopy, sampler)
}

// buildBVH sorts along a random axis and splits at the midpoint
func buildBVH(shapes []Shape, sampler core.Sampler) *BVHNode {
	axis := core.SampleIntn(sampler, 3)
	sortShapesByAxis(shapes, axis)

	node := &BVHNode{}
	switch len(shapes) {
	case 1:
		node.Left, node.Right = shapes[0], shapes[0]
		node.single = true
	case 2:
		node.Left, node.Right = shapes[0], shapes[1]
	default:
		mid := len(shapes) / 2
		node.Left = buildBVH(shapes[:mid], sampler)
		node.Right = buildBVH(shapes[mid:], sampler)
	}
	node.boundingBox = node.Left.BoundingBox().Union(node.Right.BoundingBox())
	return node
}

// sortShapesByAxis sorts shapes by the minimum of their bounding box along axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Min.Axis(axis) < shapes[j].BoundingBox().Min.Axis(axis)
	})
}

// Hit tests if a ray intersects any shape in the BVH
func (n *BVHNode) Hit(ray core.Ray) (*material.HitRecord, bool) {
	// First check if ray hits the bounding box
	if !n.boundingBox.Hit(ray) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray)
	if hitLeft {
		ray = ray.WithMaxT(leftHit.T)
	}
	if n.single {
		return leftHit, hitLeft
	}
	if rightHit, hitRight := n.Right.Hit(ray); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached union of the children's bounds
func (n *BVHNode) BoundingBox() core.AABB {
	return n.boundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leafNodes  int
	maxDepth   int
	shapes     int
}

// stats walks the tree and collects its shape
func (n *BVHNode) stats() bvhStats {
	var s bvhStats
	n.collectStats(0, &s)
	return s
}

func (n *BVHNode) collectStats(depth int, s *bvhStats) {
	s.totalNodes++
	s.maxDepth = max(s.maxDepth, depth)

	left, leftIsNode := n.Left.(*BVHNode)
	right, rightIsNode := n.Right.(*BVHNode)
	if !leftIsNode && !rightIsNode {
		s.leafNodes++
		if n.single {
			s.shapes++
		} else {
			s.shapes += 2
		}
		return
	}
	if leftIsNode {
		left.collectStats(depth+1, s)
	} else {
		s.shapes++
	}
	if rightIsNode {
		right.collectStats(depth+1, s)
	} else {
		s.shapes++
	}
}
