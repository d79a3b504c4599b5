package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with t in [ray.MinT, ray.MaxT)
	Hit(ray core.Ray) (*material.HitRecord, bool)
	// BoundingBox returns a conservative world-space bound
	BoundingBox() core.AABB
}
