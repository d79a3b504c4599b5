package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/skirt/pkg/core"
)

func TestTransform_Translate(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	moved := NewTransform(core.Translation(core.NewVec3(5, 0, 0)), sphere)

	hit, isHit := moved.Hit(core.NewRay(core.NewVec3(5, 0, 10), core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit on translated sphere")
	}
	if math.Abs(hit.T-9) > 1e-9 {
		t.Errorf("Expected t=9, got %f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(5, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected world point (5, 0, 1), got %v", hit.Point)
	}

	if _, isHit := moved.Hit(core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))); isHit {
		t.Error("Expected miss where the sphere used to be")
	}
}

func TestTransform_NonUniformScaleNormal(t *testing.T) {
	// Unit sphere stretched into an ellipsoid with semi-axes (2, 1, 1)
	ellipsoid := NewTransform(core.Scaling(core.NewVec3(2, 1, 1)), NewSphere(core.Vec3{}, 1, nil))

	origin := core.NewVec3(10, 10, 0)
	target := core.NewVec3(math.Sqrt2, math.Sqrt2/2, 0) // on the ellipsoid surface
	hit, isHit := ellipsoid.Hit(core.NewRay(origin, target.Subtract(origin)))
	if !isHit {
		t.Fatal("Expected hit on ellipsoid")
	}

	// Gradient of x²/4 + y² = 1
	expected := core.NewVec3(hit.Point.X/2, 2*hit.Point.Y, 0).Normalize()
	if diff := cmp.Diff(expected, hit.Normal, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("Normal mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func TestTransform_BoundingBox(t *testing.T) {
	box := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), nil)
	tr := NewTRS(core.NewVec3(10, 0, 0), core.NewVec3(0, math.Pi/4, 0), core.NewVec3(1, 2, 1), box)

	s := math.Sqrt2
	expected := core.NewAABB(core.NewVec3(10-s, -2, -s), core.NewVec3(10+s, 2, s))
	if diff := cmp.Diff(expected, tr.BoundingBox(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Bound mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_RotatedBoxFace(t *testing.T) {
	box := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), nil)
	tr := NewTRS(core.Vec3{}, core.NewVec3(0, math.Pi/2, 0), core.NewVec3(1, 1, 1), box)

	hit, isHit := tr.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected outward normal (0, 0, 1), got %v", hit.Normal)
	}
}
