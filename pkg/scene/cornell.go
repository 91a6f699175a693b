package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// NewCornellScene creates a classic Cornell box with an area light and two spheres
func NewCornellScene(opts geometry.BVHOptions) (*Scene, error) {
	// Create materials
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmission(core.NewVec3(15, 15, 15))
	glass := material.NewDielectric(1.5)
	mirror := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.0)

	// Walls face into the box so diffuse bounces stay inside
	prims := []geometry.Primitive{
		geometry.NewRectYZ(0, boxSize, 0, boxSize, boxSize, true, green), // left
		geometry.NewRectYZ(0, boxSize, 0, boxSize, 0, false, red),        // right
		geometry.NewRectXZ(0, boxSize, 0, boxSize, 0, false, white),      // floor
		geometry.NewRectXZ(0, boxSize, 0, boxSize, boxSize, true, white), // ceiling
		geometry.NewRectXY(0, boxSize, 0, boxSize, boxSize, true, white), // back
		geometry.NewRectXZ(213, 343, 227, 332, boxSize-1, true, light),

		geometry.NewSphere(core.NewVec3(190, 90, 190), 90, glass),
		geometry.NewSphere(core.NewVec3(370, 120, 370), 120, mirror),
	}

	return New("Cornell box", DefaultView(), []*material.Material{white, red, green, light, glass, mirror}, prims, opts)
}
