package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewSpheresScene creates three spheres of different materials on a large
// ground sphere, lit by an overhead panel, with a triangle backdrop
func NewSpheresScene(opts geometry.BVHOptions) (*Scene, error) {
	view := View{
		Center: core.NewVec3(0, 2, 9),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   35.0,
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	diffuse := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)
	backdrop := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	light := material.NewEmission(core.NewVec3(6, 6, 6))

	// Backdrop quad split into two triangles facing the camera
	b0 := core.NewVec3(-6, 0, -3)
	b1 := core.NewVec3(6, 0, -3)
	b2 := core.NewVec3(6, 5, -3)
	b3 := core.NewVec3(-6, 5, -3)

	prims := []geometry.Primitive{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(-2.2, 1, 0), 1, diffuse),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
		geometry.NewSphere(core.NewVec3(2.2, 1, 0), 1, gold),
		geometry.NewTriangle(b0, b1, b2, backdrop),
		geometry.NewTriangle(b0, b2, b3, backdrop),
		geometry.NewRectXZ(-3, 3, -2, 2, 7, true, light),
	}

	materials := []*material.Material{ground, diffuse, glass, gold, backdrop, light}
	return New("Spheres", view, materials, prims, opts)
}
