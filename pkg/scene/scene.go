package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// View places the camera. The aspect ratio comes from the output image.
type View struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
}

// DefaultView looks into the 555-unit Cornell box from outside its open side
func DefaultView() View {
	return View{
		Center: core.NewVec3(278, 278, -800),
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}
}

// Scene owns the geometry index and every material the primitives reference.
// It is read-only once built and safe to query from many goroutines.
type Scene struct {
	Title     string
	View      View
	Materials []*material.Material

	bvh *geometry.BVH
}

// New builds the BVH over prims and returns the assembled scene
func New(title string, view View, materials []*material.Material, prims []geometry.Primitive, opts geometry.BVHOptions) (*Scene, error) {
	bvh, err := geometry.NewBVH(prims, opts)
	if err != nil {
		return nil, fmt.Errorf("while building BVH for scene %q: %w", title, err)
	}
	return &Scene{
		Title:     title,
		View:      view,
		Materials: materials,
		bvh:       bvh,
	}, nil
}

// Hit finds the closest intersection in front of the ray origin,
// skipping t below core.ShadowAcneEpsilon
func (s *Scene) Hit(ray core.Ray) (material.HitRecord, bool) {
	return s.bvh.Hit(ray, core.ShadowAcneEpsilon, math.Inf(1))
}

// Stats reports the shape of the scene's BVH
func (s *Scene) Stats() geometry.BVHStats {
	return s.bvh.Stats()
}

// Bounds returns the bounding box of all scene geometry
func (s *Scene) Bounds() core.AABB {
	return s.bvh.Bounds()
}
