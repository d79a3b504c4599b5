package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// ShapeList is an unaccelerated group of shapes
type ShapeList struct {
	Shapes []Shape
	bbox   core.AABB
}

// NewShapeList creates a list and caches the union of its children's bounds
func NewShapeList(shapes ...Shape) *ShapeList {
	bbox := core.EmptyAABB()
	for _, shape := range shapes {
		bbox = bbox.Union(shape.BoundingBox())
	}
	return &ShapeList{Shapes: shapes, bbox: bbox}
}

// Hit returns the nearest hit over all children by linear search
func (l *ShapeList) Hit(ray core.Ray) (*material.HitRecord, bool) {
	return hitClosest(l.Shapes, ray)
}

// BoundingBox returns the union of the children's bounds
func (l *ShapeList) BoundingBox() core.AABB {
	return l.bbox
}

// hitClosest narrows the ray's far bound as closer hits are found
func hitClosest(shapes []Shape, ray core.Ray) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray); isHit {
			closestHit = hit
			ray = ray.WithMaxT(hit.T)
		}
	}
	return closestHit, closestHit != nil
}
