package geometry

import (
	"math"
	"testing"

	"github.com/df07/skirt/pkg/core"
)

func TestCameraGetCameraForward(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(3, 3, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 2.0,
		VFov:        20.0,
	}
	camera := NewCamera(config)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(-3, -3, -3).Normalize()

	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
	if got := camera.Config().FocusDistance; math.Abs(got-math.Sqrt(27)) > 1e-9 {
		t.Errorf("Expected default focus distance %f, got %f", math.Sqrt(27), got)
	}
}

func TestCameraPinholeRays(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 2.0,
		VFov:        90.0,
	})
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"Center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"Bottom left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"Top right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected pinhole origin, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCameraLensOffsetConverges(t *testing.T) {
	// Every lens sample aims at the same point on the focus plane
	camera := NewCamera(CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      2.0,
		FocusDistance: 10,
	})
	sampler := core.NewSeededSampler(2)

	focusPoint := core.NewVec3(0, 0, -10)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Origin.Length() > 1+1e-9 {
			t.Fatalf("Lens origin %v outside aperture", ray.Origin)
		}
		if p := ray.At(1); p.Subtract(focusPoint).Length() > 1e-9 {
			t.Fatalf("Expected ray through %v, got %v", focusPoint, p)
		}
	}
}
