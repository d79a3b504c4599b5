package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// FlipNormals wraps a shape and reverses its normals
type FlipNormals struct {
	Shape Shape
}

// NewFlipNormals creates a normal-flipping wrapper
func NewFlipNormals(shape Shape) *FlipNormals {
	return &FlipNormals{Shape: shape}
}

// Hit returns the child's hit with the normal negated
func (f *FlipNormals) Hit(ray core.Ray) (*material.HitRecord, bool) {
	hit, ok := f.Shape.Hit(ray)
	if !ok {
		return nil, false
	}
	hit.Normal = hit.Normal.Negate()
	return hit, true
}

// BoundingBox returns the child's bound
func (f *FlipNormals) BoundingBox() core.AABB {
	return f.Shape.BoundingBox()
}
