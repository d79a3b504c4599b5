package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMatrix4_InverseIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix4
	}{
		{"Identity", Identity()},
		{"Translation", Translation(NewVec3(1, -2, 3))},
		{"Non-uniform scale", Scaling(NewVec3(2, 0.5, 4))},
		{"Rotation about Y", RotationY(math.Pi / 6)},
		{"Arbitrary axis", Rotation(NewVec3(1, 1, 0), 0.7)},
		{
			"Composite",
			Identity().Translate(NewVec3(212.5, 82.5, 147.5)).RotateY(-math.Pi / 6).Scale(NewVec3(82.5, 165, 82.5)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := tt.m.Multiply(tt.m.Inverse())
			if diff := cmp.Diff(Identity(), product, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("M * M^-1 mismatch (-want +got):\n%s", diff)
			}
			product = tt.m.Inverse().Multiply(tt.m)
			if diff := cmp.Diff(Identity(), product, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("M^-1 * M mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatrix4_InverseSingularPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic inverting singular matrix")
		}
	}()
	Scaling(NewVec3(1, 0, 1)).Inverse()
}

func TestMatrix4_CompositionOrder(t *testing.T) {
	// Scale is applied first, then the translation
	m := Identity().Translate(NewVec3(10, 0, 0)).Scale(NewVec3(2, 2, 2))
	got := m.TransformPoint(NewVec3(1, 1, 1))
	expected := NewVec3(12, 2, 2)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if v := m.TransformVector(NewVec3(1, 0, 0)); v != NewVec3(2, 0, 0) {
		t.Errorf("Expected vectors to ignore translation, got %v", v)
	}
}

func TestMatrix4_Rotations(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix4
		input    Vec3
		expected Vec3
	}{
		{"90 about Z", RotationZ(math.Pi / 2), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"90 about Y", RotationY(math.Pi / 2), NewVec3(1, 0, 0), NewVec3(0, 0, -1)},
		{"90 about X", RotationX(math.Pi / 2), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Axis Z matches RotationZ", Rotation(NewVec3(0, 0, 3), math.Pi/2), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.input)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMatrix4_NormalStaysPerpendicular(t *testing.T) {
	m := Scaling(NewVec3(4, 1, 1)).Multiply(RotationZ(math.Pi / 4))
	inv := m.Inverse()

	// Tangent of the plane x + y = 0 and its normal
	tangent := NewVec3(1, -1, 0)
	normal := NewVec3(1, 1, 0).Normalize()

	worldTangent := m.TransformVector(tangent)
	worldNormal := inv.TransformNormal(normal).Normalize()

	if d := worldTangent.Dot(worldNormal); math.Abs(d) > 1e-9 {
		t.Errorf("Expected transformed normal perpendicular to tangent, dot = %f", d)
	}
}

func TestMatrix4_TransformAABB(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	got := RotationY(math.Pi / 4).TransformAABB(box)
	s := math.Sqrt2
	expected := NewAABB(NewVec3(-s, -1, -s), NewVec3(s, 1, s))
	if diff := cmp.Diff(expected, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("TransformAABB mismatch (-want +got):\n%s", diff)
	}
}
