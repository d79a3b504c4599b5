package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// Transform places a shape in the world through an affine matrix
type Transform struct {
	Shape   Shape
	forward core.Matrix4 // object to world
	inverse core.Matrix4 // world to object
	bbox    core.AABB
}

// NewTransform wraps shape with an object-to-world matrix. The matrix must be
// invertible.
func NewTransform(forward core.Matrix4, shape Shape) *Transform {
	return &Transform{
		Shape:   shape,
		forward: forward,
		inverse: forward.Inverse(),
		bbox:    forward.TransformAABB(shape.BoundingBox()),
	}
}

// NewTRS builds the transform that scales, rotates about Z, Y then X, and
// finally translates. Angles are in radians.
func NewTRS(translate, rotateRad, scale core.Vec3, shape Shape) *Transform {
	m := core.Identity().
		Translate(translate).
		RotateX(rotateRad.X).
		RotateY(rotateRad.Y).
		RotateZ(rotateRad.Z).
		Scale(scale)
	return NewTransform(m, shape)
}

// Matrix returns the object-to-world matrix
func (t *Transform) Matrix() core.Matrix4 {
	return t.forward
}

// Hit intersects the child in object space. The direction is not normalized,
// so t is the same in both spaces.
func (t *Transform) Hit(ray core.Ray) (*material.HitRecord, bool) {
	hit, ok := t.Shape.Hit(t.inverse.TransformRay(ray))
	if !ok {
		return nil, false
	}
	hit.Point = t.forward.TransformPoint(hit.Point)
	hit.Normal = t.inverse.TransformNormal(hit.Normal).Normalize()
	return hit, true
}

// BoundingBox returns the bound of the eight transformed corners of the child bound
func (t *Transform) BoundingBox() core.AABB {
	return t.bbox
}
