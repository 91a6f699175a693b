package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func TestRect_PerpendicularRays(t *testing.T) {
	tests := []struct {
		name           string
		rect           Primitive
		origin         core.Vec3
		direction      core.Vec3
		expectHit      bool
		expectedNormal core.Vec3
	}{
		{
			name:           "XY center hit",
			rect:           NewRectXY(-1, 1, -1, 1, 0, false, testMaterial),
			origin:         core.NewVec3(0, 0, 5),
			direction:      core.NewVec3(0, 0, -1),
			expectHit:      true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:      "XY outside span",
			rect:      NewRectXY(-1, 1, -1, 1, 0, false, testMaterial),
			origin:    core.NewVec3(2, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:           "XZ flipped",
			rect:           NewRectXZ(0, 555, 0, 555, 555, true, testMaterial),
			origin:         core.NewVec3(278, 0, 278),
			direction:      core.NewVec3(0, 1, 0),
			expectHit:      true,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
		{
			name:      "XZ outside span",
			rect:      NewRectXZ(0, 555, 0, 555, 555, true, testMaterial),
			origin:    core.NewVec3(278, 0, 600),
			direction: core.NewVec3(0, 1, 0),
			expectHit: false,
		},
		{
			name:           "YZ from negative side",
			rect:           NewRectYZ(0, 2, 0, 2, 3, false, testMaterial),
			origin:         core.NewVec3(0, 1, 1),
			direction:      core.NewVec3(1, 0, 0),
			expectHit:      true,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:      "YZ outside span",
			rect:      NewRectYZ(0, 2, 0, 2, 3, false, testMaterial),
			origin:    core.NewVec3(0, -1, 1),
			direction: core.NewVec3(1, 0, 0),
			expectHit: false,
		},
		{
			name:      "parallel ray",
			rect:      NewRectXY(-1, 1, -1, 1, 0, false, testMaterial),
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(1, 0, 0),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.rect.Hit(core.NewRay(tt.origin, tt.direction), 0.001, math.Inf(1))
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if math.Abs(hit.Point.Subtract(tt.origin).Length()-hit.T*tt.direction.Length()) > 1e-9 {
				t.Errorf("Hit point %v inconsistent with t=%f", hit.Point, hit.T)
			}
		})
	}
}

func TestRect_Distance(t *testing.T) {
	rect := NewRectXY(-1, 1, -1, 1, -4, false, testMaterial)
	hit, ok := rect.Hit(core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 0, -2)), 0.001, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-12 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if _, ok := rect.Hit(core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 0, 1)), 0.001, 100); ok {
		t.Error("Expected miss for a ray pointing away from the plane")
	}
}

func TestRect_BoundingBoxIsExtruded(t *testing.T) {
	tests := []struct {
		name     string
		rect     Primitive
		min, max core.Vec3
	}{
		{"XY", NewRectXY(0, 1, 2, 3, 5, false, testMaterial), core.NewVec3(0, 2, 5-rectThickness), core.NewVec3(1, 3, 5+rectThickness)},
		{"XZ", NewRectXZ(0, 1, 2, 3, 5, false, testMaterial), core.NewVec3(0, 5-rectThickness, 2), core.NewVec3(1, 5+rectThickness, 3)},
		{"YZ", NewRectYZ(1, 0, 2, 3, 5, true, testMaterial), core.NewVec3(5-rectThickness, 0, 2), core.NewVec3(5+rectThickness, 1, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := tt.rect.BoundingBox()
			if box.Min != tt.min || box.Max != tt.max {
				t.Errorf("Expected [%v,%v], got [%v,%v]", tt.min, tt.max, box.Min, box.Max)
			}
			if !box.IsValid() {
				t.Error("Expected a valid box")
			}
		})
	}
}
