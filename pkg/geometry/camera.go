package geometry

import (
	"math"

	"github.com/df07/skirt/pkg/core"
)

// CameraConfig contains the parameters used to build a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the plane in focus; 0 means |Center-LookAt|
}

// Camera generates rays through a thin lens. It is immutable after creation.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	config          CameraConfig
}

// NewCamera creates a thin-lens camera from config
func NewCamera(config CameraConfig) *Camera {
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight
	fd := config.FocusDistance

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeftCorner := config.Center.
		Subtract(u.Multiply(halfWidth * fd)).
		Subtract(v.Multiply(halfHeight * fd)).
		Subtract(w.Multiply(fd))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * fd),
		vertical:        v.Multiply(2 * halfHeight * fd),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1;
// (0, 0) is the bottom-left of the image
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRayInterval(origin, direction, core.ShadowEpsilon, math.Inf(1))
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the parameters the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
