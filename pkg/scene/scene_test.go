package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

func TestNew_EmptyScene(t *testing.T) {
	_, err := New("empty", DefaultView(), nil, nil, geometry.DefaultBVHOptions())
	if !errors.Is(err, geometry.ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene, got %v", err)
	}
}

func TestScene_Hit_ClosestPrimitive(t *testing.T) {
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	far := material.NewLambertian(core.NewVec3(0, 0, 1))
	prims := []geometry.Primitive{
		geometry.NewSphere(core.NewVec3(0, 0, -10), 1, far),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, near),
	}
	s, err := New("two spheres", DefaultView(), []*material.Material{near, far}, prims, geometry.DefaultBVHOptions())
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Material != near {
		t.Error("Expected the nearer sphere's material")
	}

	if _, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))); ok {
		t.Error("Expected miss behind the camera")
	}
}

func TestScene_Hit_FlatTriangle(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	prims := []geometry.Primitive{
		geometry.NewTriangle(core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0), mat),
	}
	s, err := New("flat triangle", DefaultView(), []*material.Material{mat}, prims, geometry.DefaultBVHOptions())
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Material != mat {
		t.Error("Expected the triangle's material")
	}
}

func TestCornellScene_Hits(t *testing.T) {
	s, err := NewCornellScene(geometry.DefaultBVHOptions())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		ray            core.Ray
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "camera axis reaches back wall",
			ray:            core.NewRay(DefaultView().Center, core.NewVec3(0, 0, 1)),
			expectedT:      1355,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "floor point sees ceiling, not itself",
			ray:            core.NewRay(core.NewVec3(50, 0, 50), core.NewVec3(0, 1, 0)),
			expectedT:      555,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
		{
			name:           "light panel below ceiling",
			ray:            core.NewRay(core.NewVec3(278, 300, 278), core.NewVec3(0, 1, 0)),
			expectedT:      254,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.Hit(tt.ray)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestCornellScene_Bounds(t *testing.T) {
	s, err := NewCornellScene(geometry.BVHOptions{Strategy: geometry.SplitLongestAxis})
	if err != nil {
		t.Fatal(err)
	}
	bounds := s.Bounds()
	// Walls are extruded slightly along their fixed axis
	if math.Abs(bounds.Min.X) > 1e-3 || math.Abs(bounds.Max.X-boxSize) > 1e-3 || bounds.Min.Z != 0 {
		t.Errorf("Expected bounds to enclose the box, got %v", bounds)
	}
	if len(s.Materials) != 6 {
		t.Errorf("Expected 6 materials, got %d", len(s.Materials))
	}
}
