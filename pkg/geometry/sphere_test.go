package geometry

import (
	"math"
	"testing"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_EntryDistance(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"Unit sphere from +Z", core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 0, 5)},
		{"Offset sphere", core.NewVec3(3, -2, 1), 0.5, core.NewVec3(-4, 6, 2)},
		{"Large ground sphere", core.NewVec3(0, -1000, 0), 1000, core.NewVec3(13, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, nil)
			ray := core.NewRay(tt.origin, tt.center.Subtract(tt.origin).Normalize())
			hit, isHit := sphere.Hit(ray)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expected := tt.origin.Subtract(tt.center).Length() - tt.radius
			if math.Abs(hit.T-expected) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", expected, hit.T)
			}
		})
	}
}

func TestSphere_Hit_Normals(t *testing.T) {
	tests := []struct {
		name           string
		radius         float64
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "outside hit",
			radius:         1,
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "inside hit keeps outward normal",
			radius:         1,
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "negative radius points inward",
			radius:         -1,
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, 0), tt.radius, nil)
			hit, isHit := sphere.Hit(core.NewRay(tt.rayOrigin, tt.rayDirection))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			tolerance := 1e-9
			if hit.Normal.Subtract(tt.expectedNormal).Length() > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	origin := core.NewVec3(0, 0, 5)
	dir := core.NewVec3(0, 0, -1)

	// Far bound before the sphere
	if _, isHit := sphere.Hit(core.NewRayInterval(origin, dir, 0.001, 3.9)); isHit {
		t.Error("Expected miss when MaxT ends before the sphere")
	}

	// Near bound past the entry point yields the exit point
	hit, isHit := sphere.Hit(core.NewRayInterval(origin, dir, 4.5, math.Inf(1)))
	if !isHit {
		t.Fatal("Expected exit hit")
	}
	if math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected t=6, got t=%f", hit.T)
	}
}

func TestSphere_BoundingBoxAndMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(1, 2, 3), -0.5, mat)

	expected := core.NewAABB(core.NewVec3(0.5, 1.5, 2.5), core.NewVec3(1.5, 2.5, 3.5))
	if got := sphere.BoundingBox(); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(1, 2, 10), core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != mat {
		t.Error("Expected hit to carry the sphere material")
	}
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name     string
		normal   core.Vec3
		expected core.Vec2
	}{
		{"North pole", core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1)},
		{"South pole", core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0)},
		{"+X", core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"+Z", core.NewVec3(0, 0, 1), core.NewVec2(0.25, 0.5)},
		{"-Z", core.NewVec3(0, 0, -1), core.NewVec2(0.75, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := SphereUV(tt.normal)
			if math.Abs(uv.X-tt.expected.X) > 1e-9 || math.Abs(uv.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, uv)
			}
		})
	}
}
