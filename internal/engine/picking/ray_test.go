package picking

import (
	"testing"

	"github.com/Faultbox/wikiwalk/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := BoxAround(math.V3(0, 1, -5), math.V3(1, 1, 0.1))

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{"straight ahead", NewRay(math.V3(0, 1, 0), math.V3(0, 0, -1)), true, 4.9},
		{"facing away", NewRay(math.V3(0, 1, 0), math.V3(0, 0, 1)), false, 0},
		{"passes above", NewRay(math.V3(0, 3, 0), math.V3(0, 0, -1)), false, 0},
		{"parallel outside slab", NewRay(math.V3(5, 1, -5), math.V3(0, 1, 0)), false, 0},
		{"starts inside", NewRay(math.V3(0, 1, -5), math.V3(0, 0, -1)), true, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && math.Abs(got-tt.wantT) > 1e-4 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestTransformAABB(t *testing.T) {
	box := BoxAround(math.Vec3{}, math.V3(1, 2, 3))
	m := math.Compose(math.V3(10, 0, 0), math.QuatFromAxisAngle(math.UnitY, math.Pi/2), math.V3(2, 2, 2))
	got := box.Transform(m)

	// Rotating 90 degrees about Y swaps the X and Z extents.
	want := BoxAround(math.V3(10, 0, 0), math.V3(6, 4, 2))
	if !got.Min.ApproxEqual(want.Min, 1e-4) || !got.Max.ApproxEqual(want.Max, 1e-4) {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(math.V3(1, 1, 1), math.V3(0, 0, -2))
	if got := r.At(3); !got.ApproxEqual(math.V3(1, 1, -2), 1e-6) {
		t.Errorf("At(3) = %v", got)
	}
}
